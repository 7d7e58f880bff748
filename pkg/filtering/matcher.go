// Package filtering implements package-name filtering for update checks.
// Patterns use shell-style globs (* and ?) and can be inverted with a
// leading "!"; an empty pattern list matches every name.
package filtering

import (
	"path/filepath"
	"strings"
)

// MatchesAny reports whether a package name matches any of the patterns.
//
// It performs the following operations:
//   - Returns true when the pattern list is empty
//   - Matches each pattern as a shell glob (* and ? wildcards)
//   - Inverts a pattern with a leading "!", e.g. "!boost*" matches every
//     name that does not start with "boost"
//
// Parameters:
//   - name: The package name to test
//   - patterns: Glob patterns, possibly inverted
//
// Returns:
//   - bool: true if any pattern matches (or the list is empty)
func MatchesAny(name string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if matches(name, pattern) {
			return true
		}
	}
	return false
}

// matches tests a single, possibly inverted, glob pattern.
func matches(name, pattern string) bool {
	shouldMatch := !strings.HasPrefix(pattern, "!")
	pattern = strings.TrimLeft(pattern, "!")

	// Invalid patterns cannot match anything.
	ok, err := filepath.Match(pattern, name)
	if err != nil {
		return false
	}
	return ok == shouldMatch
}
