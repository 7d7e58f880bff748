// Package semver implements semantic version parsing, ordering, and
// node-semver style version range evaluation for Conan recipe references.
// It supports strict semver.org grammar as well as a loose mode that
// tolerates partial version cores (1, 1.2) and prerelease suffixes glued
// to the patch component (1.2.3rc1), both common on Conan remotes.
package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// VersionPart identifies a component of a semantic version.
//
// The ordering of the constants matters: a larger part represents a larger
// change magnitude. This allows a part to serve both as a difference report
// ("which field changed between two versions") and as an upper bound for
// update searches ("allow at most a minor bump").
type VersionPart int

const (
	// PartNone indicates no difference between two versions.
	PartNone VersionPart = iota
	// PartBuild indicates a change in build metadata only.
	PartBuild
	// PartPrerelease indicates a change in the prerelease identifiers.
	PartPrerelease
	// PartPatch indicates a patch-level change.
	PartPatch
	// PartMinor indicates a minor-level change.
	PartMinor
	// PartMajor indicates a major-level change.
	PartMajor
)

// String returns the lowercase name of the version part.
//
// Returns:
//   - string: "major", "minor", "patch", "prerelease", "build", or "none"
func (p VersionPart) String() string {
	switch p {
	case PartMajor:
		return "major"
	case PartMinor:
		return "minor"
	case PartPatch:
		return "patch"
	case PartPrerelease:
		return "prerelease"
	case PartBuild:
		return "build"
	default:
		return "none"
	}
}

// ParseVersionPart converts a target name into a VersionPart.
//
// Parameters:
//   - value: One of "major", "minor", "patch" (case-insensitive)
//
// Returns:
//   - VersionPart: The matching part
//   - error: When value is not a recognized update target
func ParseVersionPart(value string) (VersionPart, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "major":
		return PartMajor, nil
	case "minor":
		return PartMinor, nil
	case "patch":
		return PartPatch, nil
	default:
		return PartNone, fmt.Errorf("unknown update target %q (expected major, minor or patch)", value)
	}
}

// InvalidVersionError reports a version string that could not be parsed.
//
// Fields:
//   - Input: The rejected version string
type InvalidVersionError struct {
	// Input is the version string that failed to parse.
	Input string
}

// Error implements the error interface.
//
// Returns:
//   - string: Message naming the rejected input
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid semantic version %q", e.Input)
}

// IsInvalidVersion reports whether err is an InvalidVersionError.
//
// Parameters:
//   - err: The error to check
//
// Returns:
//   - bool: true if err wraps an InvalidVersionError
func IsInvalidVersion(err error) bool {
	var ive *InvalidVersionError
	return errors.As(err, &ive)
}

// Version is an immutable semantic version.
//
// The tuple (Major, Minor, Patch, Prerelease) defines the total order;
// Build metadata is carried along but never participates in comparison.
//
// Fields:
//   - Major: Major version number
//   - Minor: Minor version number
//   - Patch: Patch version number
//   - Prerelease: Dot-separated prerelease identifiers, empty if none
//   - Build: Dot-separated build identifiers, empty if none
type Version struct {
	Major      uint64
	Minor      uint64
	Patch      uint64
	Prerelease string
	Build      string
}

// Strict semver.org grammar.
var strictVersionPattern = regexp.MustCompile(
	`^(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
		`(?:-((?:0|[1-9]\d*|\d*[A-Za-z-][0-9A-Za-z-]*)(?:\.(?:0|[1-9]\d*|\d*[A-Za-z-][0-9A-Za-z-]*))*))?` +
		`(?:\+([0-9A-Za-z-]+(?:\.[0-9A-Za-z-]+)*))?$`)

// Loose grammar: optional v/= prefix, partial core, extra numeric segments
// past patch (dropped), prerelease with or without a separating hyphen.
var looseVersionPattern = regexp.MustCompile(
	`^[v=\s]*(\d+)(?:\.(\d+))?(?:\.(\d+))?((?:\.\d+)*)` +
		`(?:[-.]?([0-9A-Za-z][0-9A-Za-z.-]*?))?` +
		`(?:\+([0-9A-Za-z.-]+))?$`)

// Parse parses a version string in strict or loose mode.
//
// Strict mode requires the full MAJOR.MINOR.PATCH core with optional
// -PRERELEASE and +BUILD suffixes per semver.org. Loose mode additionally
// accepts partial cores (missing minor/patch default to 0), a leading "v"
// or "=" prefix, a prerelease glued to the core without a hyphen
// ("1.2.3rc1"), and ignores numeric dot-segments beyond patch
// ("1.2.3.4" parses as 1.2.3).
//
// Parameters:
//   - value: The version string to parse
//   - loose: Whether to apply the loose grammar
//
// Returns:
//   - Version: The parsed version
//   - error: An *InvalidVersionError when the string matches neither grammar
func Parse(value string, loose bool) (Version, error) {
	trimmed := strings.TrimSpace(value)

	if m := strictVersionPattern.FindStringSubmatch(trimmed); m != nil {
		return Version{
			Major:      mustUint(m[1]),
			Minor:      mustUint(m[2]),
			Patch:      mustUint(m[3]),
			Prerelease: m[4],
			Build:      m[5],
		}, nil
	}

	if !loose {
		return Version{}, &InvalidVersionError{Input: value}
	}

	m := looseVersionPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return Version{}, &InvalidVersionError{Input: value}
	}

	v := Version{Major: mustUint(m[1])}
	if m[2] != "" {
		v.Minor = mustUint(m[2])
	}
	if m[3] != "" {
		v.Patch = mustUint(m[3])
	}
	// m[4] holds extra numeric segments past patch and is dropped.
	v.Prerelease = m[5]
	v.Build = m[6]
	return v, nil
}

// MustParse parses a version string in loose mode and panics on failure.
//
// Use this only for compile-time constant versions that are known valid.
//
// Parameters:
//   - value: The version string to parse
//
// Returns:
//   - Version: The parsed version
func MustParse(value string) Version {
	v, err := Parse(value, true)
	if err != nil {
		panic("invalid version literal: " + err.Error())
	}
	return v
}

// String returns the canonical string form of the version.
//
// Returns:
//   - string: "MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD]"
func (v Version) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		sb.WriteByte('-')
		sb.WriteString(v.Prerelease)
	}
	if v.Build != "" {
		sb.WriteByte('+')
		sb.WriteString(v.Build)
	}
	return sb.String()
}

// Compare returns the semver precedence ordering of two versions.
//
// It performs the following operations:
//   - Compares the (major, minor, patch) core numerically
//   - Treats a version with a prerelease as lower than the same core without one
//   - Compares prerelease identifiers left to right: numeric identifiers
//     compare numerically and rank below alphanumeric ones; a version with
//     fewer identifiers ranks below one that extends it
//
// Build metadata is ignored.
//
// Parameters:
//   - other: The version to compare against
//
// Returns:
//   - int: Negative if v < other, zero if equal, positive if v > other
func (v Version) Compare(other Version) int {
	if c := compareUints(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareUints(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareUints(v.Patch, other.Patch); c != 0 {
		return c
	}
	return comparePrerelease(v.Prerelease, other.Prerelease)
}

// Less reports whether v orders strictly before other.
//
// Parameters:
//   - other: The version to compare against
//
// Returns:
//   - bool: true if v < other under semver precedence
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Equal reports whether two versions have identical precedence.
//
// Build metadata is ignored, so 1.0.0+1 and 1.0.0+2 are equal.
//
// Parameters:
//   - other: The version to compare against
//
// Returns:
//   - bool: true if the versions compare equal
func (v Version) Equal(other Version) bool {
	return v.Compare(other) == 0
}

// Difference returns the most significant part in which two versions differ.
//
// Parts are checked in order major, minor, patch, prerelease, build; the
// first mismatch wins.
//
// Parameters:
//   - a: The first version
//   - b: The second version
//
// Returns:
//   - VersionPart: The differing part, or PartNone when fully identical
func Difference(a, b Version) VersionPart {
	switch {
	case a.Major != b.Major:
		return PartMajor
	case a.Minor != b.Minor:
		return PartMinor
	case a.Patch != b.Patch:
		return PartPatch
	case a.Prerelease != b.Prerelease:
		return PartPrerelease
	case a.Build != b.Build:
		return PartBuild
	default:
		return PartNone
	}
}

// comparePrerelease orders two dot-separated prerelease strings.
//
// An empty string (no prerelease) ranks above any prerelease. Identifiers
// are compared pairwise: numeric vs numeric compares numerically, numeric
// ranks below alphanumeric, otherwise byte-wise string comparison applies.
// When all shared identifiers are equal, the shorter list ranks lower.
func comparePrerelease(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return 1
	}
	if b == "" {
		return -1
	}

	idsA := strings.Split(a, ".")
	idsB := strings.Split(b, ".")
	for i := 0; i < len(idsA) && i < len(idsB); i++ {
		if c := comparePrereleaseID(idsA[i], idsB[i]); c != 0 {
			return c
		}
	}
	return compareUints(uint64(len(idsA)), uint64(len(idsB)))
}

// comparePrereleaseID orders two single prerelease identifiers.
func comparePrereleaseID(a, b string) int {
	numA, okA := parseNumericID(a)
	numB, okB := parseNumericID(b)
	switch {
	case okA && okB:
		return compareUints(numA, numB)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// parseNumericID parses an identifier consisting only of digits.
func parseNumericID(id string) (uint64, bool) {
	if id == "" {
		return 0, false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// compareUints compares two unsigned integers.
func compareUints(a, b uint64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

// mustUint parses a digit string already validated by a pattern match.
func mustUint(s string) uint64 {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		panic("version pattern produced non-numeric group: " + s)
	}
	return n
}
