package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVersion replaces the stamped build version for the duration of a test.
func stubVersion(t *testing.T, version string) {
	t.Helper()
	original := Version
	Version = version
	t.Cleanup(func() { Version = original })
}

// TestGetBuildWarnings tests build sanity warnings.
//
// It verifies:
//   - Development builds are flagged
//   - Non-semver release versions are flagged
//   - Prerelease versions are flagged
//   - Clean release versions produce no warning
func TestGetBuildWarnings(t *testing.T) {
	stubVersion(t, "dev")
	assert.Contains(t, GetBuildWarnings(), "development build")

	stubVersion(t, "not.a.version")
	assert.Contains(t, GetBuildWarnings(), "not a valid semantic version")

	stubVersion(t, "1.2.3-rc1")
	assert.Contains(t, GetBuildWarnings(), "prerelease build")

	stubVersion(t, "1.2.3")
	assert.Empty(t, GetBuildWarnings())
}

// TestVersionCommand tests the version subcommand output.
func TestVersionCommand(t *testing.T) {
	stubVersion(t, "1.2.3")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, ExecuteTest())
	assert.Contains(t, out.String(), "Version:  1.2.3")
	assert.Contains(t, out.String(), "Platform:")
	assert.Contains(t, out.String(), "Go:")
}
