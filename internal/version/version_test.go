package version

import (
	"errors"
	"fmt"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Version
	}{
		{"SnapshotWithPrefix", "v1.2.3-SNAPSHOT", Version{1, 2, 3, QualifierSnapshot}},
		{"SnapshotWithoutPrefix", "1.0.0-SNAPSHOT", Version{1, 0, 0, QualifierSnapshot}},
		{"Release", "2.1.0.RELEASE", Version{2, 1, 0, QualifierRelease}},
		{"Bare", "3.4.5", Version{3, 4, 5, QualifierNone}},
		{"SurroundingWhitespace", "  0.9.12-SNAPSHOT\n", Version{0, 9, 12, QualifierSnapshot}},
		{"LargeComponents", "10.200.3000", Version{10, 200, 3000, QualifierNone}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %+v, expected %+v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		component string
	}{
		{"Empty", "", ""},
		{"OnlyPrefix", "v", ""},
		{"TwoComponents", "1.2-SNAPSHOT", ""},
		{"FourComponents", "1.2.3.4", ""},
		{"NonNumeric", "1.x.3", "x"},
		{"Negative", "1.-2.3", "-2"},
		{"PlusSign", "+1.2.3", "+1"},
		{"EmptyComponent", "1..3", ""},
		{"DoubleQualifier", "1.2.3-SNAPSHOT.RELEASE", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected error, got nil", tc.input)
			}
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("Parse(%q) error should match ErrInvalid, got %v", tc.input, err)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("Parse(%q) error should be *ParseError, got %T", tc.input, err)
			}
			if parseErr.Raw != tc.input {
				t.Errorf("ParseError.Raw = %q, expected %q", parseErr.Raw, tc.input)
			}
			if tc.component != "" && parseErr.Component != tc.component {
				t.Errorf("ParseError.Component = %q, expected %q", parseErr.Component, tc.component)
			}
		})
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	for major := uint64(0); major < 4; major++ {
		for minor := uint64(0); minor < 4; minor++ {
			for patch := uint64(0); patch < 4; patch++ {
				raw := fmt.Sprintf("v%d.%d.%d-SNAPSHOT", major, minor, patch)
				v, err := Parse(raw)
				if err != nil {
					t.Fatalf("Parse(%q) returned error: %v", raw, err)
				}
				if got := "v" + v.String(); got != raw {
					t.Errorf("round trip of %q produced %q", raw, got)
				}
				if !v.IsSnapshot() {
					t.Errorf("Parse(%q) lost the snapshot qualifier", raw)
				}
			}
		}
	}
}

func TestParseTag(t *testing.T) {
	t.Run("WithDate", func(t *testing.T) {
		v, err := ParseTag("v2.1.0.RELEASE.20240101")
		if err != nil {
			t.Fatalf("ParseTag returned error: %v", err)
		}
		want := Version{2, 1, 0, QualifierRelease}
		if v != want {
			t.Errorf("ParseTag = %+v, expected %+v", v, want)
		}
	})

	t.Run("WithoutDate", func(t *testing.T) {
		v, err := ParseTag("v1.0.0.RELEASE")
		if err != nil {
			t.Fatalf("ParseTag returned error: %v", err)
		}
		if v.Number() != "1.0.0" {
			t.Errorf("ParseTag number = %q, expected %q", v.Number(), "1.0.0")
		}
	})

	t.Run("MissingReleaseMarker", func(t *testing.T) {
		_, err := ParseTag("v1.0.0")
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("expected ErrInvalid for tag without .RELEASE, got %v", err)
		}
	})

	t.Run("GarbageNumber", func(t *testing.T) {
		_, err := ParseTag("vX.RELEASE.20240101")
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("expected ErrInvalid, got %v", err)
		}
	})
}

func TestBumps(t *testing.T) {
	inputs := []Version{
		{0, 0, 0, QualifierNone},
		{1, 2, 3, QualifierSnapshot},
		{2, 1, 0, QualifierRelease},
		{7, 9, 42, QualifierNone},
	}

	for _, in := range inputs {
		t.Run(in.String(), func(t *testing.T) {
			p := in.BumpPatch()
			if p.Major != in.Major || p.Minor != in.Minor || p.Patch != in.Patch+1 || p.Qualifier != in.Qualifier {
				t.Errorf("BumpPatch(%s) = %s", in, p)
			}

			m := in.BumpMinorResetPatch()
			if m.Major != in.Major || m.Minor != in.Minor+1 || m.Patch != 0 || m.Qualifier != in.Qualifier {
				t.Errorf("BumpMinorResetPatch(%s) = %s", in, m)
			}

			n := in.BumpMinor()
			if n.Major != in.Major || n.Minor != in.Minor+1 || n.Patch != 0 || !n.IsSnapshot() {
				t.Errorf("BumpMinor(%s) = %s", in, n)
			}
		})
	}
}

func TestRendering(t *testing.T) {
	v := Version{Major: 1, Minor: 3, Patch: 0, Qualifier: QualifierSnapshot}

	if got := v.Number(); got != "1.3.0" {
		t.Errorf("Number() = %q", got)
	}
	if got := v.String(); got != "1.3.0-SNAPSHOT" {
		t.Errorf("String() = %q", got)
	}
	if got := v.ReleaseString(); got != "1.3.0.RELEASE" {
		t.Errorf("ReleaseString() = %q", got)
	}
	if got := v.WithQualifier(QualifierNone).String(); got != "1.3.0" {
		t.Errorf("WithQualifier(None).String() = %q", got)
	}
	if got := v.WithQualifier(QualifierRelease).String(); got != "1.3.0.RELEASE" {
		t.Errorf("WithQualifier(Release).String() = %q", got)
	}
}

func TestDefaults(t *testing.T) {
	if DefaultFeature.String() != "1.0.0-SNAPSHOT" {
		t.Errorf("DefaultFeature = %q", DefaultFeature.String())
	}
	if DefaultRelease.String() != "1.0.0" {
		t.Errorf("DefaultRelease = %q", DefaultRelease.String())
	}
}
