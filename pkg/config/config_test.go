package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/conancheck/pkg/semver"
)

// writeConfig writes a config file into a temp dir and returns its path.
func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestDefault tests the built-in defaults.
func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "major", cfg.Target)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.TimeoutSeconds)
	assert.Equal(t, FormatTable, cfg.Format)
	assert.Empty(t, cfg.Filter)
}

// TestLoad tests config loading precedence.
//
// It verifies:
//   - An explicit path is loaded and must exist
//   - A local .conancheck.yml is picked up from the working directory
//   - Without either, the built-in defaults apply
//   - Unset fields fall back to defaults
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "custom.yml", "target: minor\ntimeout: 60\nformat: json\nfilter:\n  - boost*\n")

	cfg, err := Load(path, dir)
	require.NoError(t, err)
	assert.Equal(t, "minor", cfg.Target)
	assert.Equal(t, 60, cfg.TimeoutSeconds)
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.Equal(t, []string{"boost*"}, cfg.Filter)

	_, err = Load(filepath.Join(dir, "missing.yml"), dir)
	assert.Error(t, err)

	localDir := t.TempDir()
	writeConfig(t, localDir, LocalConfigName, "target: patch\n")
	cfg, err = Load("", localDir)
	require.NoError(t, err)
	assert.Equal(t, "patch", cfg.Target)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.TimeoutSeconds)

	cfg, err = Load("", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

// TestLoadInvalid tests rejection of malformed and inconsistent files.
func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := writeConfig(t, dir, "bad.yml", "target: [broken\n")
	_, err := Load(bad, dir)
	assert.Error(t, err)

	invalid := writeConfig(t, dir, "invalid.yml", "target: gigantic\n")
	_, err = Load(invalid, dir)
	assert.Error(t, err)
}

// TestValidate tests the consistency checks.
func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg = Default()
	cfg.Target = "huge"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.TimeoutSeconds = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Format = "xml"
	assert.Error(t, cfg.Validate())
}

// TestTargetPart tests target string to VersionPart conversion.
func TestTargetPart(t *testing.T) {
	cfg := Default()
	assert.Equal(t, semver.PartMajor, cfg.TargetPart())

	cfg.Target = "minor"
	assert.Equal(t, semver.PartMinor, cfg.TargetPart())

	cfg.Target = "patch"
	assert.Equal(t, semver.PartPatch, cfg.TargetPart())
}
