package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajxudir/conancheck/pkg/checker"
	"github.com/ajxudir/conancheck/pkg/conan"
	"github.com/ajxudir/conancheck/pkg/semver"
)

// tableResult builds an UpdateResult for rendering tests.
func tableResult(t *testing.T, declared string, current, update string, versions ...string) checker.UpdateResult {
	t.Helper()
	ref, err := conan.ParseReference(declared)
	require.NoError(t, err)

	r := checker.UpdateResult{Ref: ref}
	for _, v := range versions {
		r.Versions = append(r.Versions, conan.ParseVersionValue(v))
	}
	if current != "" {
		spec := conan.ParseVersionValue(current)
		r.Current = &spec
	}
	if update != "" {
		v := semver.MustParse(update)
		r.Update = &v
	}
	return r
}

// TestWriteTable tests the aligned result table.
//
// It verifies:
//   - Up-to-date packages produce no row
//   - Package and version columns are padded to a shared width
//   - Opaque packages list their raw available versions
func TestWriteTable(t *testing.T) {
	results := []checker.UpdateResult{
		tableResult(t, "boost/1.81.0", "1.81.0", ""),
		tableResult(t, "fmt/[^8.0]", "8.1.1", "9.1.0"),
		tableResult(t, "opaquepackage/cci.20211112", "cci.20211112", "", "cci.20211112", "cci.20220101"),
	}

	var buf bytes.Buffer
	WriteTable(&buf, results, false)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2, "up-to-date boost row must be skipped")

	assert.Equal(t, "fmt"+strings.Repeat(" ", 19)+"8.1.1  →  9.1.0", lines[0])
	assert.Equal(t, "opaquepackage  cci.20211112  →  cci.20211112, cci.20220101", lines[1])
}

// TestWriteTableUnresolvedRange tests rendering of a range no published
// version satisfies: the declared expression is shown instead.
func TestWriteTableUnresolvedRange(t *testing.T) {
	results := []checker.UpdateResult{
		tableResult(t, "fmt/[>=10]", "", "", "8.0.0", "9.1.0"),
	}

	var buf bytes.Buffer
	WriteTable(&buf, results, false)

	out := buf.String()
	assert.Contains(t, out, "[>=10]")
	assert.Contains(t, out, "8.0.0, 9.1.0")
}

// TestWriteTableHighlight tests color highlighting of the changed suffix.
func TestWriteTableHighlight(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = noColor })

	results := []checker.UpdateResult{
		tableResult(t, "fmt/8.0.0", "8.0.0", "8.1.1"),
	}

	var buf bytes.Buffer
	WriteTable(&buf, results, true)

	out := buf.String()
	assert.Contains(t, out, "8."+updateHighlight.Sprint("1.1"), "only the differing suffix is highlighted")
}

// TestHighlightDifference tests the suffix diff in isolation.
func TestHighlightDifference(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = noColor })

	assert.Equal(t, "9.1.0", highlightDifference("9.1.0", "8.0.0", false))
	assert.Equal(t, updateHighlight.Sprint("9.1.0"), highlightDifference("9.1.0", "8.0.0", true))
	assert.Equal(t, "1.2."+updateHighlight.Sprint("4"), highlightDifference("1.2.4", "1.2.3", true))
	assert.Equal(t, "1.2.3", highlightDifference("1.2.3", "1.2.3", true))
	assert.Equal(t, "1.2.3"+updateHighlight.Sprint("0"), highlightDifference("1.2.30", "1.2.3", true))
}
