package conan

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRun replaces the Conan command runner for the duration of a test.
func stubRun(t *testing.T, fn RunFunc) {
	t.Helper()
	original := Run
	Run = fn
	t.Cleanup(func() { Run = original })
}

// TestListRequirements tests parsing of `conan info --json` output.
//
// It verifies:
//   - Progress lines before the JSON result are ignored
//   - requires and build_requires of the conanfile entry are combined
//   - Unparseable requirement strings are skipped, not fatal
func TestListRequirements(t *testing.T) {
	stdout := strings.Join([]string{
		"fmt/8.0.0: Downloaded recipe",
		"",
		`[{"reference": "fmt/8.0.0", "requires": []},` +
			` {"reference": "conanfile.txt",` +
			` "requires": ["fmt/8.0.0", "boost/[>=1.78 <2]", "not a reference"],` +
			` "build_requires": ["cmake/3.22.0"]}]`,
	}, "\n")

	stubRun(t, func(ctx context.Context, args ...string) ([]byte, error) {
		assert.Equal(t, []string{"info", "conanfile.txt", "--json"}, args)
		return []byte(stdout), nil
	})

	refs, err := ListRequirements(context.Background(), "conanfile.txt")
	require.NoError(t, err)
	require.Len(t, refs, 3)
	assert.Equal(t, "fmt", refs[0].Package)
	assert.Equal(t, "boost", refs[1].Package)
	assert.Equal(t, KindRange, refs[1].Version.Kind)
	assert.Equal(t, "cmake", refs[2].Package)
}

// TestListRequirementsErrors tests failure handling of the info adapter.
//
// It verifies:
//   - Runner errors propagate
//   - Empty and malformed output produce errors
func TestListRequirementsErrors(t *testing.T) {
	stubRun(t, func(ctx context.Context, args ...string) ([]byte, error) {
		return nil, errors.New("conan executable not found")
	})
	_, err := ListRequirements(context.Background(), "conanfile.txt")
	assert.Error(t, err)

	stubRun(t, func(ctx context.Context, args ...string) ([]byte, error) {
		return []byte("\n\n"), nil
	})
	_, err = ListRequirements(context.Background(), "conanfile.txt")
	assert.Error(t, err)

	stubRun(t, func(ctx context.Context, args ...string) ([]byte, error) {
		return []byte("not json"), nil
	})
	_, err = ListRequirements(context.Background(), "conanfile.txt")
	assert.Error(t, err)

	stubRun(t, func(ctx context.Context, args ...string) ([]byte, error) {
		return []byte(`[{"reference": "fmt/8.0.0"}]`), nil
	})
	_, err = ListRequirements(context.Background(), "conanfile.txt")
	assert.Error(t, err, "output without a conanfile entry should fail")
}

// TestSearchVersions tests parsing of `conan search` output.
//
// It verifies:
//   - Remote header lines are skipped
//   - Only references with matching user and channel are kept
//   - Version strings are classified semantic or opaque
func TestSearchVersions(t *testing.T) {
	stdout := strings.Join([]string{
		"Remote 'conancenter':",
		"boost/1.78.0",
		"boost/1.79.0",
		"boost/cci.20220101",
		"boost/1.80.0@someone/testing",
		"other/1.0.0",
		"",
	}, "\n")

	stubRun(t, func(ctx context.Context, args ...string) ([]byte, error) {
		assert.Equal(t, []string{"search", "boost/*", "--remote", "all", "--raw"}, args)
		return []byte(stdout), nil
	})

	ref, err := ParseReference("boost/1.78.0")
	require.NoError(t, err)

	versions, err := SearchVersions(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, "1.78.0", versions[0].Raw)
	assert.True(t, versions[1].IsSemantic())
	assert.Equal(t, KindOpaque, versions[2].Kind)
}

// TestSearchVersionsUserChannel tests user/channel filtering of search results.
//
// It verifies:
//   - A qualified reference only matches results with the same qualifiers
func TestSearchVersionsUserChannel(t *testing.T) {
	stdout := "pkg/1.0.0\npkg/1.1.0@company/stable\npkg/1.2.0@company/testing\n"

	stubRun(t, func(ctx context.Context, args ...string) ([]byte, error) {
		return []byte(stdout), nil
	})

	ref, err := ParseReference("pkg/1.0.0@company/stable")
	require.NoError(t, err)

	versions, err := SearchVersions(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, "1.1.0", versions[0].Raw)
}
