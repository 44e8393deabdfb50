package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.trai.ch/zerr"
)

// BumpType selects which component of a version to increment.
type BumpType string

const (
	// BumpPatch increments the patch component.
	BumpPatch BumpType = "patch"
	// BumpMinor increments the minor component and resets patch.
	BumpMinor BumpType = "minor"
	// BumpMajor increments the major component and resets minor and patch.
	BumpMajor BumpType = "major"
	// BumpAuto derives the bump type from commit history at the CLI layer.
	BumpAuto BumpType = "auto"
)

// ParseBumpType validates a user-supplied bump type string.
func ParseBumpType(s string) (BumpType, error) {
	switch BumpType(s) {
	case BumpPatch, BumpMinor, BumpMajor, BumpAuto:
		return BumpType(s), nil
	default:
		return "", zerr.With(ErrUnknownBumpType, "type", s)
	}
}

var semverRe = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(-.+)?$`)

// Version is a semantic-version triple. A pre-release or build suffix is
// accepted on parse but dropped on re-serialization.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersion parses a strict MAJOR.MINOR.PATCH version, tolerating a
// trailing pre-release suffix. Anything else fails with ErrInvalidSemver.
func ParseVersion(s string) (Version, error) {
	m := semverRe.FindStringSubmatch(s)
	if m == nil {
		err := zerr.Wrap(ErrInvalidSemver, fmt.Sprintf("cannot parse version %q", s))
		return Version{}, zerr.With(err, "version", s)
	}

	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

// String serializes the version as a clean MAJOR.MINOR.PATCH.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Bump returns the next version for the given bump type. The receiver is
// unchanged; any pre-release suffix was already discarded at parse time.
func (v Version) Bump(kind BumpType) Version {
	switch kind {
	case BumpMajor:
		return Version{Major: v.Major + 1}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	default:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	}
}

// rangeOperators are the range prefixes carried over onto a bumped version.
// The order matters: ">=" must be tested before "=".
var rangeOperators = []string{"^", "~", ">=", "="}

// PreserveOperator rewrites a dependency range to point at newVersion while
// keeping a leading ^, ~, >= or = operator. Any other form (exact pin,
// wildcard, complex range) is replaced by the bare version.
func PreserveOperator(oldRange, newVersion string) string {
	for _, op := range rangeOperators {
		if strings.HasPrefix(oldRange, op) {
			return op + newVersion
		}
	}
	return newVersion
}
