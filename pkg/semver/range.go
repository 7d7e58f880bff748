package semver

import (
	"fmt"
	"sort"
	"strings"
)

// Operator is a comparator applied by a single range condition.
type Operator int

const (
	// OpEqual matches versions with identical precedence.
	OpEqual Operator = iota
	// OpGreater matches versions strictly above the condition version.
	OpGreater
	// OpGreaterEqual matches versions at or above the condition version.
	OpGreaterEqual
	// OpLess matches versions strictly below the condition version.
	OpLess
	// OpLessEqual matches versions at or below the condition version.
	OpLessEqual
	// OpTilde matches patch-level changes within a fixed major.minor.
	OpTilde
	// OpCaret matches changes that keep the leftmost non-zero component.
	OpCaret
)

// String returns the textual form of the operator.
//
// Returns:
//   - string: "=", ">", ">=", "<", "<=", "~" or "^"
func (op Operator) String() string {
	switch op {
	case OpGreater:
		return ">"
	case OpGreaterEqual:
		return ">="
	case OpLess:
		return "<"
	case OpLessEqual:
		return "<="
	case OpTilde:
		return "~"
	case OpCaret:
		return "^"
	default:
		return "="
	}
}

// InvalidRangeError reports a range expression or condition token that
// could not be parsed.
//
// Fields:
//   - Input: The rejected token or expression
//   - Reason: Short explanation of the failure
type InvalidRangeError struct {
	// Input is the token or expression that failed to parse.
	Input string

	// Reason explains why parsing failed.
	Reason string
}

// Error implements the error interface.
//
// Returns:
//   - string: Message naming the rejected input and the reason
func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid version range %q: %s", e.Input, e.Reason)
}

// RangeCondition is one atomic comparator of a version range.
//
// Fields:
//   - Op: The comparison operator
//   - Version: The version the operator compares against
//   - IncludePrerelease: Whether prerelease versions may satisfy the condition
type RangeCondition struct {
	Op                Operator
	Version           Version
	IncludePrerelease bool
}

// ParseCondition parses a single comparator token.
//
// It performs the following operations:
//   - Resolves the wildcard tokens "*" and "*-" to ">=0.0.0"
//   - Splits an optional operator prefix (=, >, >=, <, <=, ~, ^), defaulting to "="
//   - Treats a trailing bare "-" on the version token as a sentinel that
//     forces prerelease matching for this condition
//   - Parses the remaining version in loose mode
//
// A condition whose version carries a non-empty prerelease always matches
// prereleases regardless of the caller-supplied default: a constraint that
// mentions a prerelease must be able to match one.
//
// Parameters:
//   - token: The comparator token, e.g. "^1.2.3" or ">=2.0"
//   - includePrerelease: Default prerelease opt-in inherited from the range
//
// Returns:
//   - RangeCondition: The parsed condition
//   - error: An *InvalidRangeError when the token is malformed
func ParseCondition(token string, includePrerelease bool) (RangeCondition, error) {
	trimmed := strings.TrimSpace(token)
	if trimmed == "" {
		return RangeCondition{}, &InvalidRangeError{Input: token, Reason: "empty condition"}
	}

	switch trimmed {
	case "*":
		return RangeCondition{Op: OpGreaterEqual, IncludePrerelease: includePrerelease}, nil
	case "*-":
		return RangeCondition{Op: OpGreaterEqual, IncludePrerelease: true}, nil
	}

	op := OpEqual
	rest := trimmed
	switch {
	case strings.HasPrefix(rest, ">="):
		op, rest = OpGreaterEqual, rest[2:]
	case strings.HasPrefix(rest, "<="):
		op, rest = OpLessEqual, rest[2:]
	case strings.HasPrefix(rest, ">"):
		op, rest = OpGreater, rest[1:]
	case strings.HasPrefix(rest, "<"):
		op, rest = OpLess, rest[1:]
	case strings.HasPrefix(rest, "~"):
		op, rest = OpTilde, rest[1:]
	case strings.HasPrefix(rest, "^"):
		op, rest = OpCaret, rest[1:]
	case strings.HasPrefix(rest, "="):
		op, rest = OpEqual, rest[1:]
	}
	rest = strings.TrimSpace(rest)

	// A trailing bare hyphen ("1.2-") opts the condition into prerelease
	// matching without naming a prerelease.
	if strings.HasSuffix(rest, "-") {
		includePrerelease = true
		rest = strings.TrimSuffix(rest, "-")
	}

	version, err := Parse(rest, true)
	if err != nil {
		return RangeCondition{}, &InvalidRangeError{Input: token, Reason: err.Error()}
	}
	if version.Prerelease != "" {
		includePrerelease = true
	}

	return RangeCondition{Op: op, Version: version, IncludePrerelease: includePrerelease}, nil
}

// Satisfies reports whether a version fulfills the condition.
//
// Prerelease versions are rejected outright unless the condition opted in
// via IncludePrerelease. Tilde pins major and minor while allowing newer
// patches; caret allows anything at or above the condition version that
// keeps the leftmost non-zero core component unchanged.
//
// Parameters:
//   - v: The version to test
//
// Returns:
//   - bool: true if v fulfills the condition
func (c RangeCondition) Satisfies(v Version) bool {
	if v.Prerelease != "" && !c.IncludePrerelease {
		return false
	}

	cmp := v.Compare(c.Version)
	switch c.Op {
	case OpEqual:
		return cmp == 0
	case OpGreater:
		return cmp > 0
	case OpGreaterEqual:
		return cmp >= 0
	case OpLess:
		return cmp < 0
	case OpLessEqual:
		return cmp <= 0
	case OpTilde:
		return cmp >= 0 && v.Major == c.Version.Major && v.Minor == c.Version.Minor
	case OpCaret:
		if cmp < 0 {
			return false
		}
		switch {
		case c.Version.Major != 0:
			return v.Major == c.Version.Major
		case c.Version.Minor != 0:
			return v.Major == 0 && v.Minor == c.Version.Minor
		case c.Version.Patch != 0:
			return v.Major == 0 && v.Minor == 0 && v.Patch == c.Version.Patch
		default:
			// ^0.0.0 has no non-zero component to pin.
			return true
		}
	default:
		return false
	}
}

// String returns the textual form of the condition.
//
// Returns:
//   - string: Operator followed by the condition version
func (c RangeCondition) String() string {
	return c.Op.String() + c.Version.String()
}

// Range is a version constraint in disjunctive normal form: an OR ("||")
// of condition sets, each set an AND of comparator conditions.
//
// Fields:
//   - Sets: The condition sets; a version matches when every condition of
//     at least one set holds
type Range struct {
	Sets [][]RangeCondition

	raw string
}

const includePrereleaseDirective = "include_prerelease"

// ParseRange parses a range expression.
//
// It performs the following operations:
//   - Splits the expression on "||" into condition sets
//   - Splits each set on "," and consumes "include_prerelease=<bool>"
//     directives, which raise the prerelease default for the rest of the
//     parse
//   - Splits the remaining segments on whitespace into comparator tokens,
//     threading the running prerelease default left to right within a set
//     (a condition can raise but never lower it for later conditions)
//
// An empty expression is equivalent to "*": it matches every non-prerelease
// version at or above 0.0.0.
//
// Parameters:
//   - expr: The range expression, e.g. ">=1.2 <2.0 || ^3.1.0"
//
// Returns:
//   - Range: The parsed range
//   - error: An *InvalidRangeError when any token is malformed
func ParseRange(expr string) (Range, error) {
	trimmed := strings.TrimSpace(expr)
	if trimmed == "" {
		trimmed = "*"
	}

	r := Range{raw: trimmed}
	includePrerelease := false

	for _, setExpr := range strings.Split(trimmed, "||") {
		var tokens []string
		for _, segment := range strings.Split(setExpr, ",") {
			segment = strings.TrimSpace(segment)
			if segment == "" {
				continue
			}
			if enabled, ok, err := parsePrereleaseDirective(segment); ok {
				if err != nil {
					return Range{}, err
				}
				// The directive can raise the default, never lower it.
				includePrerelease = includePrerelease || enabled
				continue
			}
			tokens = append(tokens, strings.Fields(segment)...)
		}

		if len(tokens) == 0 {
			continue
		}

		setDefault := includePrerelease
		conditions := make([]RangeCondition, 0, len(tokens))
		for _, token := range tokens {
			cond, err := ParseCondition(token, setDefault)
			if err != nil {
				return Range{}, err
			}
			if cond.IncludePrerelease {
				setDefault = true
			}
			conditions = append(conditions, cond)
		}
		r.Sets = append(r.Sets, conditions)
	}

	if len(r.Sets) == 0 {
		return Range{}, &InvalidRangeError{Input: expr, Reason: "no conditions"}
	}

	// A trailing directive applies to every set of the expression.
	if includePrerelease {
		for _, set := range r.Sets {
			for i := range set {
				set[i].IncludePrerelease = true
			}
		}
	}

	return r, nil
}

// parsePrereleaseDirective recognizes an "include_prerelease=<bool>" segment.
//
// Returns the parsed value, whether the segment was a directive at all, and
// an error when it was a directive with an unparseable value.
func parsePrereleaseDirective(segment string) (bool, bool, error) {
	name, value, found := strings.Cut(segment, "=")
	if !strings.EqualFold(strings.TrimSpace(name), includePrereleaseDirective) {
		return false, false, nil
	}
	if !found {
		// Bare "include_prerelease" enables the flag.
		return true, true, nil
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1":
		return true, true, nil
	case "false", "0":
		return false, true, nil
	default:
		return false, true, &InvalidRangeError{Input: segment, Reason: "directive value must be a boolean"}
	}
}

// Satisfies reports whether a version fulfills the range.
//
// Parameters:
//   - v: The version to test
//
// Returns:
//   - bool: true if every condition of at least one condition set holds
func (r Range) Satisfies(v Version) bool {
	for _, set := range r.Sets {
		all := true
		for _, cond := range set {
			if !cond.Satisfies(v) {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

// MaxSatisfying returns the highest version that fulfills the range.
//
// Parameters:
//   - versions: Candidate versions, in any order
//
// Returns:
//   - Version: The highest satisfying version
//   - bool: false when no candidate satisfies the range
func (r Range) MaxSatisfying(versions []Version) (Version, bool) {
	sorted := make([]Version, len(versions))
	copy(sorted, versions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[j].Less(sorted[i])
	})

	for _, v := range sorted {
		if r.Satisfies(v) {
			return v, true
		}
	}
	return Version{}, false
}

// String returns the original range expression.
//
// Returns:
//   - string: The expression as given to ParseRange
func (r Range) String() string {
	return r.raw
}
