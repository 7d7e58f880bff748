package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iancoleman/orderedmap"

	"github.com/ajxudir/conancheck/pkg/checker"
)

// WriteJSON renders the check results as a JSON object keyed by package
// name.
//
// An ordered map preserves the sorted package order in the emitted object
// so the output is stable and diff-friendly. Each entry carries the
// declared expression, the resolved current version (null when a declared
// range matched nothing), the permitted update (null when none), and the
// full available-version list.
//
// Parameters:
//   - w: Destination writer
//   - results: Check results, assumed sorted by package name
//
// Returns:
//   - error: Any marshaling or write error
func WriteJSON(w io.Writer, results []checker.UpdateResult) error {
	root := orderedmap.New()

	for _, r := range results {
		entry := orderedmap.New()
		entry.Set("declared", r.Ref.Version.String())
		if r.Current != nil {
			entry.Set("current", r.Current.String())
		} else {
			entry.Set("current", nil)
		}
		if r.Update != nil {
			entry.Set("update", r.Update.String())
		} else {
			entry.Set("update", nil)
		}

		versions := make([]string, 0, len(r.Versions))
		for _, v := range r.Versions {
			versions = append(versions, v.String())
		}
		entry.Set("versions", versions)

		root.Set(r.Ref.Package, entry)
	}

	data, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
