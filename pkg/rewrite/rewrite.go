// Package rewrite performs in-place version upgrades of conanfile text.
// Substitution is purely textual and refuses to guess: every reference to
// rewrite must occur exactly once in the manifest.
package rewrite

import (
	"fmt"
	"strings"

	"github.com/ajxudir/conancheck/pkg/checker"
	"github.com/ajxudir/conancheck/pkg/verbose"
)

// ConflictError reports a reference that cannot be rewritten safely because
// it occurs zero times or more than once in the manifest text.
//
// Fields:
//   - Reference: The reference string that was searched for
//   - Occurrences: How many times it was found
type ConflictError struct {
	Reference   string
	Occurrences int
}

// Error implements the error interface.
//
// Returns:
//   - string: "not found" for zero occurrences, "ambiguous" for several
func (e *ConflictError) Error() string {
	if e.Occurrences == 0 {
		return fmt.Sprintf("reference %q not found in conanfile", e.Reference)
	}
	return fmt.Sprintf("reference %q occurs %d times in conanfile, refusing to guess which to rewrite", e.Reference, e.Occurrences)
}

// Change describes one substitution applied to the manifest.
//
// Fields:
//   - Old: The reference string that was replaced
//   - New: The reference string it was replaced with
type Change struct {
	Old string
	New string
}

// UpgradeConanfile substitutes upgraded references into manifest text.
//
// It performs the following operations:
//   - Selects the results that carry both a current and an update version
//   - Builds the replacement reference with the version swapped and any
//     revision qualifier dropped (a revision addresses an exact version)
//   - Requires exactly one occurrence of each original reference in the
//     accumulating text, then replaces that single occurrence
//
// Substitutions apply sequentially; each one sees the text produced by the
// previous ones.
//
// Parameters:
//   - content: The manifest text
//   - results: Check results to apply
//
// Returns:
//   - string: The rewritten manifest text
//   - []Change: The substitutions that were applied, in order
//   - error: A *ConflictError when a reference occurs zero or several times
func UpgradeConanfile(content string, results []checker.UpdateResult) (string, []Change, error) {
	var changes []Change

	for _, result := range results {
		if result.Current == nil || result.Update == nil {
			continue
		}

		old := result.Ref.String()
		updated := result.Ref.WithVersion(*result.Update).String()

		if n := strings.Count(content, old); n != 1 {
			return "", nil, &ConflictError{Reference: old, Occurrences: n}
		}

		content = strings.Replace(content, old, updated, 1)
		changes = append(changes, Change{Old: old, New: updated})
		verbose.Debugf("Rewrote %s -> %s", old, updated)
	}

	return content, changes, nil
}
