package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/conancheck/pkg/checker"
	"github.com/ajxudir/conancheck/pkg/conan"
	"github.com/ajxudir/conancheck/pkg/semver"
)

// result builds an UpdateResult carrying an applicable upgrade.
func result(t *testing.T, declared, update string) checker.UpdateResult {
	t.Helper()
	ref, err := conan.ParseReference(declared)
	require.NoError(t, err)

	current := ref.Version
	up := semver.MustParse(update)
	return checker.UpdateResult{Ref: ref, Current: &current, Update: &up}
}

// TestUpgradeConanfile tests the textual substitution of upgraded references.
//
// It verifies:
//   - Each reference is replaced in place, leaving the rest untouched
//   - The applied changes are reported in order
func TestUpgradeConanfile(t *testing.T) {
	content := "[requires]\nboost/1.79.0\nfmt/8.0.0\n\n[generators]\ncmake\n"

	updated, changes, err := UpgradeConanfile(content, []checker.UpdateResult{
		result(t, "boost/1.79.0", "1.81.0"),
		result(t, "fmt/8.0.0", "9.1.0"),
	})
	require.NoError(t, err)
	assert.Equal(t, "[requires]\nboost/1.81.0\nfmt/9.1.0\n\n[generators]\ncmake\n", updated)

	require.Len(t, changes, 2)
	assert.Equal(t, Change{Old: "boost/1.79.0", New: "boost/1.81.0"}, changes[0])
	assert.Equal(t, Change{Old: "fmt/8.0.0", New: "fmt/9.1.0"}, changes[1])
}

// TestUpgradeConanfileSkips tests that results without an applicable upgrade
// leave the text unchanged.
func TestUpgradeConanfileSkips(t *testing.T) {
	content := "[requires]\nboost/1.79.0\n"

	ref, err := conan.ParseReference("boost/1.79.0")
	require.NoError(t, err)
	current := ref.Version

	updated, changes, err := UpgradeConanfile(content, []checker.UpdateResult{
		{Ref: ref, Current: &current},
		{Ref: ref},
	})
	require.NoError(t, err)
	assert.Equal(t, content, updated)
	assert.Empty(t, changes)
}

// TestUpgradeConanfileDropsRevision tests that a revision qualifier is not
// carried into the rewritten reference.
func TestUpgradeConanfileDropsRevision(t *testing.T) {
	content := "[requires]\nboost/1.79.0#4d670581ccb765839f2239cc8dff8637\n"

	updated, changes, err := UpgradeConanfile(content, []checker.UpdateResult{
		result(t, "boost/1.79.0#4d670581ccb765839f2239cc8dff8637", "1.81.0"),
	})
	require.NoError(t, err)
	assert.Equal(t, "[requires]\nboost/1.81.0\n", updated)
	require.Len(t, changes, 1)
	assert.Equal(t, "boost/1.81.0", changes[0].New)
}

// TestUpgradeConanfileConflicts tests the exactly-once occurrence rule.
//
// It verifies:
//   - A reference missing from the text is an error
//   - A reference occurring twice is an error, nothing is rewritten
func TestUpgradeConanfileConflicts(t *testing.T) {
	_, _, err := UpgradeConanfile("[requires]\nzlib/1.2.13\n", []checker.UpdateResult{
		result(t, "boost/1.79.0", "1.81.0"),
	})
	require.Error(t, err)
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 0, conflict.Occurrences)
	assert.Contains(t, conflict.Error(), "not found")

	_, _, err = UpgradeConanfile("boost/1.79.0\nboost/1.79.0\n", []checker.UpdateResult{
		result(t, "boost/1.79.0", "1.81.0"),
	})
	require.Error(t, err)
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 2, conflict.Occurrences)
	assert.Contains(t, conflict.Error(), "refusing to guess")
}
