// Package version parses and bumps the M.m.p versions carried by Maven and
// Webpack projects, with their -SNAPSHOT and .RELEASE qualifiers, and reads
// them back out of release tags.
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Qualifier marks a version as in-progress or shipped.
type Qualifier int

const (
	// QualifierNone is a bare M.m.p version.
	QualifierNone Qualifier = iota
	// QualifierSnapshot marks an unreleased version ("-SNAPSHOT").
	QualifierSnapshot
	// QualifierRelease marks a shipped version (".RELEASE").
	QualifierRelease
)

const (
	snapshotSuffix = "-SNAPSHOT"
	releaseSuffix  = ".RELEASE"
)

// Suffix returns the literal appended to the numeric part of a version.
func (q Qualifier) Suffix() string {
	switch q {
	case QualifierSnapshot:
		return snapshotSuffix
	case QualifierRelease:
		return releaseSuffix
	default:
		return ""
	}
}

func (q Qualifier) String() string {
	switch q {
	case QualifierSnapshot:
		return "snapshot"
	case QualifierRelease:
		return "release"
	default:
		return "none"
	}
}

// Version is a major.minor.patch triple plus an optional qualifier.
// Values are never mutated in place; every bump returns a new Version.
type Version struct {
	Major     uint64
	Minor     uint64
	Patch     uint64
	Qualifier Qualifier
}

var (
	// DefaultFeature is used when a project exposes no version at all.
	DefaultFeature = Version{Major: 1, Qualifier: QualifierSnapshot}

	// DefaultRelease is the first release candidate when no tag exists yet.
	DefaultRelease = Version{Major: 1}
)

// ErrInvalid is matched by every ParseError.
var ErrInvalid = errors.New("invalid version")

// ParseError describes why a raw version string was rejected.
type ParseError struct {
	Raw       string
	Component string
	Reason    string
}

func (e *ParseError) Error() string {
	if e.Component == "" {
		return fmt.Sprintf("invalid version %q: %s", e.Raw, e.Reason)
	}
	return fmt.Sprintf("invalid version %q: component %q %s", e.Raw, e.Component, e.Reason)
}

// Is reports whether target is ErrInvalid.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalid
}

// Parse reads strings such as "v1.2.3-SNAPSHOT", "1.2.3.RELEASE" or "1.2.3".
// A leading "v" is optional and at most one qualifier is accepted.
func Parse(raw string) (Version, error) {
	s := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	q := QualifierNone
	switch {
	case strings.HasSuffix(s, snapshotSuffix):
		s = strings.TrimSuffix(s, snapshotSuffix)
		q = QualifierSnapshot
	case strings.HasSuffix(s, releaseSuffix):
		s = strings.TrimSuffix(s, releaseSuffix)
		q = QualifierRelease
	}

	v, err := parseNumber(raw, s)
	if err != nil {
		return Version{}, err
	}
	v.Qualifier = q
	return v, nil
}

// ParseTag reads a release tag of the form v<M.m.p>.RELEASE[.<YYYYMMDD>].
// The date part, if any, is ignored.
func ParseTag(tag string) (Version, error) {
	s := strings.TrimPrefix(strings.TrimSpace(tag), "v")
	idx := strings.Index(s, releaseSuffix)
	if idx < 0 {
		return Version{}, &ParseError{Raw: tag, Reason: "missing " + releaseSuffix + " qualifier"}
	}

	v, err := parseNumber(tag, s[:idx])
	if err != nil {
		return Version{}, err
	}
	v.Qualifier = QualifierRelease
	return v, nil
}

func parseNumber(raw, s string) (Version, error) {
	if s == "" {
		return Version{}, &ParseError{Raw: raw, Reason: "empty version number"}
	}

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Version{}, &ParseError{
			Raw:    raw,
			Reason: fmt.Sprintf("expected 3 numeric components, found %d", len(parts)),
		}
	}

	var nums [3]uint64
	for i, p := range parts {
		n, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			return Version{}, &ParseError{Raw: raw, Component: p, Reason: "is not a non-negative integer"}
		}
		nums[i] = n
	}

	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// BumpPatch increments the patch number and keeps the qualifier.
func (v Version) BumpPatch() Version {
	v.Patch++
	return v
}

// BumpMinorResetPatch increments the minor number and zeroes the patch.
func (v Version) BumpMinorResetPatch() Version {
	v.Minor++
	v.Patch = 0
	return v
}

// BumpMinor moves to the next feature line after a hotfix release:
// minor+1, patch 0, snapshot qualifier.
func (v Version) BumpMinor() Version {
	v = v.BumpMinorResetPatch()
	v.Qualifier = QualifierSnapshot
	return v
}

// WithQualifier returns v with q as its qualifier.
func (v Version) WithQualifier(q Qualifier) Version {
	v.Qualifier = q
	return v
}

// IsSnapshot reports whether v carries the snapshot qualifier.
func (v Version) IsSnapshot() bool {
	return v.Qualifier == QualifierSnapshot
}

// Number renders the bare M.m.p triple.
func (v Version) Number() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// String renders the triple followed by the qualifier suffix.
func (v Version) String() string {
	return v.Number() + v.Qualifier.Suffix()
}

// ReleaseString renders the triple with the ".RELEASE" suffix regardless of qualifier.
func (v Version) ReleaseString() string {
	return v.Number() + releaseSuffix
}
