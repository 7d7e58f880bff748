// Package checker resolves declared version constraints against the
// versions a remote publishes and finds the best permitted update. It also
// orchestrates the concurrent check of a whole requirement list under a
// single global deadline.
package checker

import (
	"github.com/ajxudir/conancheck/pkg/conan"
	"github.com/ajxudir/conancheck/pkg/semver"
)

// ResolveCurrent computes the effective current version of a declared spec.
//
// A range resolves to the highest published semantic version satisfying it;
// when nothing satisfies, the second return is false, which is distinct from
// "no update found": the declared range matches no version available right
// now. Literal versions and opaque strings resolve to themselves.
//
// Parameters:
//   - declared: The declared version, range, or opaque string
//   - available: Published versions of the package
//
// Returns:
//   - conan.VersionSpec: The effective current version
//   - bool: false when a declared range matches no available version
func ResolveCurrent(declared conan.VersionSpec, available []conan.VersionSpec) (conan.VersionSpec, bool) {
	switch declared.Kind {
	case conan.KindRange:
		max, ok := declared.Range.MaxSatisfying(semanticOnly(available))
		if !ok {
			return conan.VersionSpec{}, false
		}
		return conan.VersionSpec{Kind: conan.KindSemantic, Raw: max.String(), Version: max}, true
	case conan.KindSemantic, conan.KindOpaque:
		return declared, true
	default:
		return declared, true
	}
}

// FindUpdate returns the best permitted update for a current version.
//
// It performs the following operations:
//   - Returns no update for opaque current versions: non-semantic packages
//     never report structured updates
//   - Filters the available versions to semantic versions strictly greater
//     than current
//   - Rejects candidates whose difference from current exceeds the target
//     magnitude (target minor permits minor and patch bumps, not major)
//   - Returns the maximum remaining candidate
//
// Parameters:
//   - current: The effective current version
//   - available: Published versions of the package
//   - target: Maximum change magnitude the update may introduce
//
// Returns:
//   - semver.Version: The best permitted update
//   - bool: false when no candidate qualifies
func FindUpdate(current conan.VersionSpec, available []conan.VersionSpec, target semver.VersionPart) (semver.Version, bool) {
	if !current.IsSemantic() {
		return semver.Version{}, false
	}

	var best semver.Version
	found := false
	for _, candidate := range semanticOnly(available) {
		if !current.Version.Less(candidate) {
			continue
		}
		if semver.Difference(current.Version, candidate) > target {
			continue
		}
		if !found || best.Less(candidate) {
			best = candidate
			found = true
		}
	}
	return best, found
}

// semanticOnly extracts the parsed versions of the semantic specs.
func semanticOnly(specs []conan.VersionSpec) []semver.Version {
	versions := make([]semver.Version, 0, len(specs))
	for _, spec := range specs {
		if spec.IsSemantic() {
			versions = append(versions, spec.Version)
		}
	}
	return versions
}
