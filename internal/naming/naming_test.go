package naming

import (
	"errors"
	"testing"
	"time"

	"github.com/PolarWolf314/gitflow/internal/version"
)

func TestNameFor(t *testing.T) {
	tests := []struct {
		name   string
		role   Role
		number string
		want   string
	}{
		{"Feature", Feature, "1.0.0", "feature/1.0.0"},
		{"Hotfix", Hotfix, "2.1.1", "hotfix/2.1.1"},
		{"Test", Test, "1.1.0", "test/1.1.0"},
		{"DevelopIgnoresNumber", Develop, "9.9.9", "develop"},
		{"MasterIgnoresNumber", Master, "", "master"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NameFor(tc.role, tc.number)
			if err != nil {
				t.Fatalf("NameFor returned error: %v", err)
			}
			if got != tc.want {
				t.Errorf("NameFor(%s, %q) = %q, expected %q", tc.role, tc.number, got, tc.want)
			}
		})
	}
}

func TestNameForRequiresNumber(t *testing.T) {
	for _, role := range []Role{Feature, Hotfix, Test} {
		_, err := NameFor(role, "")
		if !errors.Is(err, ErrEmptyVersion) {
			t.Errorf("NameFor(%s, \"\") error = %v, expected ErrEmptyVersion", role, err)
		}
	}
}

func TestBranch(t *testing.T) {
	v := version.Version{Major: 2, Minor: 1, Patch: 1, Qualifier: version.QualifierSnapshot}
	if got := Branch(Hotfix, v); got != "hotfix/2.1.1" {
		t.Errorf("Branch(Hotfix) = %q", got)
	}
	if got := Branch(Master, v); got != "master" {
		t.Errorf("Branch(Master) = %q", got)
	}
}

func TestComposeTag(t *testing.T) {
	if got := ComposeTag("1.3.0", "20240115"); got != "v1.3.0.RELEASE.20240115" {
		t.Errorf("ComposeTag = %q", got)
	}
}

func TestTagNameUsesUTCDate(t *testing.T) {
	// 23:30 on Jan 31 in UTC-5 is already Feb 1 in UTC.
	loc := time.FixedZone("EST", -5*60*60)
	at := time.Date(2024, time.January, 31, 23, 30, 0, 0, loc)

	got := TagName(version.Version{Major: 1, Minor: 1}, at)
	if got != "v1.1.0.RELEASE.20240201" {
		t.Errorf("TagName = %q, expected v1.1.0.RELEASE.20240201", got)
	}
}

func TestRolePrefixes(t *testing.T) {
	want := map[Role]string{
		Develop: "develop",
		Master:  "master",
		Feature: "feature",
		Hotfix:  "hotfix",
		Test:    "test",
	}
	for role, prefix := range want {
		if role.Prefix() != prefix {
			t.Errorf("%d.Prefix() = %q, expected %q", int(role), role.Prefix(), prefix)
		}
	}
}
