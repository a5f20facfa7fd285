// Package naming composes the branch and tag names used by the release flows.
//
// Branch names are "<prefix>/<M.m.p>" for feature, hotfix and test branches and
// the bare literals "develop" and "master" for the long-lived branches. Release
// tags are "v<M.m.p>.RELEASE.<YYYYMMDD>" with the UTC date of tag creation.
package naming

import (
	"errors"
	"fmt"
	"time"

	"github.com/PolarWolf314/gitflow/internal/version"
)

// Role identifies what a branch is used for.
type Role int

const (
	Develop Role = iota
	Master
	Feature
	Hotfix
	Test
)

// TagDateLayout is the time layout of the date suffix on release tags.
const TagDateLayout = "20060102"

// ErrEmptyVersion is returned when a role-scoped branch is requested without a version.
var ErrEmptyVersion = errors.New("branch version number is empty")

// Prefix returns the literal bound to the role.
func (r Role) Prefix() string {
	switch r {
	case Develop:
		return "develop"
	case Master:
		return "master"
	case Feature:
		return "feature"
	case Hotfix:
		return "hotfix"
	case Test:
		return "test"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

func (r Role) String() string {
	return r.Prefix()
}

// Scoped reports whether branches of this role carry a version number.
func (r Role) Scoped() bool {
	return r == Feature || r == Hotfix || r == Test
}

// NameFor returns the branch name for role and version number.
// Develop and master ignore the number.
func NameFor(role Role, number string) (string, error) {
	if !role.Scoped() {
		return role.Prefix(), nil
	}
	if number == "" {
		return "", fmt.Errorf("%s branch: %w", role.Prefix(), ErrEmptyVersion)
	}
	return role.Prefix() + "/" + number, nil
}

// Branch is NameFor for a parsed version. The version is never empty so no error is possible.
func Branch(role Role, v version.Version) string {
	if !role.Scoped() {
		return role.Prefix()
	}
	return role.Prefix() + "/" + v.Number()
}

// TagDate formats t as the UTC day used in tag names.
func TagDate(t time.Time) string {
	return t.UTC().Format(TagDateLayout)
}

// ComposeTag joins a version number and a YYYYMMDD date into a release tag name.
func ComposeTag(number, date string) string {
	return "v" + number + ".RELEASE." + date
}

// TagName returns the release tag for v created at t.
func TagName(v version.Version, t time.Time) string {
	return ComposeTag(v.Number(), TagDate(t))
}
