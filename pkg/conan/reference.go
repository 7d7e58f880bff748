// Package conan models Conan recipe references and wraps the Conan CLI.
// It parses `name/version@user/channel#revision` reference strings, locates
// conanfiles, and shells out to `conan info` and `conan search` to list
// declared requirements and published versions.
package conan

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ajxudir/conancheck/pkg/semver"
)

// VersionKind discriminates the variants of a VersionSpec.
type VersionKind int

const (
	// KindOpaque marks a version string outside semver, e.g. "cci.20211112".
	KindOpaque VersionKind = iota
	// KindSemantic marks a parsed semantic version.
	KindSemantic
	// KindRange marks a bracketed version range, e.g. "[^8.0]".
	KindRange
)

// VersionSpec is the declared version of a recipe reference: a tagged union
// of an opaque string, a semantic version, or a version range.
//
// Opaque versions never participate in ordering and always skip the update
// search; they only surface their raw available-version list. Every consumer
// must switch on Kind exhaustively.
//
// Fields:
//   - Kind: Which variant is populated
//   - Raw: The declared text, preserved verbatim for display and rewriting
//   - Version: The parsed version, valid only for KindSemantic
//   - Range: The parsed range, valid only for KindRange
type VersionSpec struct {
	Kind    VersionKind
	Raw     string
	Version semver.Version
	Range   semver.Range
}

// ParseVersionValue classifies a plain version string as semantic or opaque.
//
// The string is parsed in loose mode; anything the loose grammar rejects
// (date schemes, git hashes) becomes the opaque variant rather than an
// error, matching how Conan itself treats non-semver versions.
//
// Parameters:
//   - value: The version string from a reference or search result
//
// Returns:
//   - VersionSpec: KindSemantic when the string parses, KindOpaque otherwise
func ParseVersionValue(value string) VersionSpec {
	trimmed := strings.TrimSpace(value)
	v, err := semver.Parse(trimmed, true)
	if err != nil {
		return VersionSpec{Kind: KindOpaque, Raw: trimmed}
	}
	return VersionSpec{Kind: KindSemantic, Raw: trimmed, Version: v}
}

// ParseVersionSpec parses a declared version expression.
//
// A bracketed expression ("[>=1.2 <2.0]") is parsed as a version range;
// anything else is classified by ParseVersionValue. A malformed range
// expression is an error rather than an opaque fallback, since brackets
// unambiguously declare range intent.
//
// Parameters:
//   - value: The declared version expression
//
// Returns:
//   - VersionSpec: The parsed spec
//   - error: An *semver.InvalidRangeError for malformed bracketed ranges
func ParseVersionSpec(value string) (VersionSpec, error) {
	trimmed := strings.TrimSpace(value)
	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		r, err := semver.ParseRange(trimmed[1 : len(trimmed)-1])
		if err != nil {
			return VersionSpec{}, err
		}
		return VersionSpec{Kind: KindRange, Raw: trimmed, Range: r}, nil
	}
	return ParseVersionValue(trimmed), nil
}

// String returns the declared text of the version spec.
//
// Returns:
//   - string: The verbatim declared expression
func (s VersionSpec) String() string {
	return s.Raw
}

// IsSemantic reports whether the spec is a parsed semantic version.
//
// Returns:
//   - bool: true for the KindSemantic variant
func (s VersionSpec) IsSemantic() bool {
	return s.Kind == KindSemantic
}

// Conan attribute charset, per the conanfile reference documentation.
const attrPattern = `[a-zA-Z0-9_][a-zA-Z0-9_+.\-]{1,50}`

var referencePattern = regexp.MustCompile(
	`^(?P<package>` + attrPattern + `)/(?P<version>\[[^\]]+\]|` + attrPattern + `)` +
		`(?:@(?P<user>` + attrPattern + `)/(?P<channel>` + attrPattern + `))?` +
		`(?:#(?P<revision>[0-9a-fA-F]+))?$`)

// Reference is a parsed Conan recipe reference.
//
// Fields:
//   - Package: The package name
//   - Version: The declared version: literal, opaque string, or range
//   - User: Optional user qualifier, empty if absent
//   - Channel: Optional channel qualifier, empty if absent
//   - Revision: Optional content-addressed recipe revision, empty if absent
type Reference struct {
	Package  string
	Version  VersionSpec
	User     string
	Channel  string
	Revision string
}

// ParseReference parses a reference of the form
// `name/version[@user/channel][#revision]`.
//
// The version component may be a literal version, an opaque string, or a
// bracketed range expression.
//
// Parameters:
//   - reference: The reference string to parse
//
// Returns:
//   - Reference: The parsed reference
//   - error: When the string does not match the reference grammar or the
//     bracketed range is malformed
func ParseReference(reference string) (Reference, error) {
	m := referencePattern.FindStringSubmatch(strings.TrimSpace(reference))
	if m == nil {
		return Reference{}, fmt.Errorf("invalid Conan reference %q", reference)
	}

	groups := make(map[string]string, 5)
	for i, name := range referencePattern.SubexpNames() {
		if name != "" {
			groups[name] = m[i]
		}
	}

	version, err := ParseVersionSpec(groups["version"])
	if err != nil {
		return Reference{}, fmt.Errorf("invalid Conan reference %q: %w", reference, err)
	}

	return Reference{
		Package:  groups["package"],
		Version:  version,
		User:     groups["user"],
		Channel:  groups["channel"],
		Revision: groups["revision"],
	}, nil
}

// String reconstructs the reference exactly as declared.
//
// Returns:
//   - string: "name/version[@user/channel][#revision]"
func (r Reference) String() string {
	var sb strings.Builder
	sb.WriteString(r.Package)
	sb.WriteByte('/')
	sb.WriteString(r.Version.Raw)
	if r.User != "" {
		sb.WriteByte('@')
		sb.WriteString(r.User)
		if r.Channel != "" {
			sb.WriteByte('/')
			sb.WriteString(r.Channel)
		}
	}
	if r.Revision != "" {
		sb.WriteByte('#')
		sb.WriteString(r.Revision)
	}
	return sb.String()
}

// WithVersion returns a copy of the reference pinned to a new version.
//
// The revision qualifier is dropped: a revision addresses the content of an
// exact recipe version and is invalidated by any version change.
//
// Parameters:
//   - version: The replacement version
//
// Returns:
//   - Reference: The updated reference without revision
func (r Reference) WithVersion(version semver.Version) Reference {
	updated := r
	updated.Version = VersionSpec{Kind: KindSemantic, Raw: version.String(), Version: version}
	updated.Revision = ""
	return updated
}
