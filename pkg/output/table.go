package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/ajxudir/conancheck/pkg/checker"
)

// minColumnWidth keeps short package lists from producing cramped columns.
const minColumnWidth = 10

var updateHighlight = color.New(color.FgRed)

// WriteTable renders the check results as an aligned two-column-plus-arrow
// report.
//
// It performs the following operations:
//   - Skips packages that are already at their best matching version
//   - Aligns the package and current-version columns using display widths
//     (wide unicode characters count correctly)
//   - Prints the update version with the differing suffix highlighted, or
//     the raw available-version list for non-semantic packages
//
// Parameters:
//   - w: Destination writer
//   - results: Check results, assumed sorted by package name
//   - colored: Whether to apply color highlighting
func WriteTable(w io.Writer, results []checker.UpdateResult, colored bool) {
	nameWidth, versionWidth := minColumnWidth, minColumnWidth
	for _, r := range results {
		nameWidth = maxInt(nameWidth, runewidth.StringWidth(r.Ref.Package))
		versionWidth = maxInt(versionWidth, runewidth.StringWidth(currentColumn(r)))
	}

	for _, r := range results {
		if r.UpToDate() {
			continue
		}
		_, _ = fmt.Fprintf(w, "%s %s  →  %s\n",
			padRight(r.Ref.Package, nameWidth+1),
			padLeft(currentColumn(r), versionWidth),
			updateColumn(r, colored))
	}
}

// currentColumn formats the current-version cell of a result.
func currentColumn(r checker.UpdateResult) string {
	if r.Current == nil {
		return r.Ref.Version.String()
	}
	return r.Current.String()
}

// updateColumn formats the rightmost cell of a result row.
//
// Non-semantic packages list their raw available versions; packages with an
// update show it with the changed suffix highlighted; the rest repeat the
// current version.
func updateColumn(r checker.UpdateResult, colored bool) string {
	if r.Current == nil || !r.Current.IsSemantic() {
		raw := make([]string, 0, len(r.Versions))
		for _, v := range r.Versions {
			raw = append(raw, v.String())
		}
		return strings.Join(raw, ", ")
	}
	if r.Update != nil {
		return highlightDifference(r.Update.String(), r.Current.String(), colored)
	}
	return r.Current.String()
}

// highlightDifference returns version with the suffix that differs from
// compare rendered in the highlight color.
func highlightDifference(version, compare string, colored bool) string {
	if !colored {
		return version
	}

	limit := len(version)
	if len(compare) < limit {
		limit = len(compare)
	}
	diff := limit
	for i := 0; i < limit; i++ {
		if version[i] != compare[i] {
			diff = i
			break
		}
	}
	if diff == len(version) {
		return version
	}
	return version[:diff] + updateHighlight.Sprint(version[diff:])
}

// padRight pads a string to a display width with trailing spaces.
func padRight(val string, width int) string {
	gap := width - runewidth.StringWidth(val)
	if gap <= 0 {
		return val
	}
	return val + strings.Repeat(" ", gap)
}

// padLeft pads a string to a display width with leading spaces.
func padLeft(val string, width int) string {
	gap := width - runewidth.StringWidth(val)
	if gap <= 0 {
		return val
	}
	return strings.Repeat(" ", gap) + val
}

// maxInt returns the larger of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
