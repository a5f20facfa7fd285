package cmd

import "testing"

func TestEnsureNewline(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"done", "done\n"},
		{"done\n", "done\n"},
		{"", "\n"},
	}

	for _, tc := range tests {
		if got := ensureNewline(tc.in); got != tc.want {
			t.Errorf("ensureNewline(%q) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}
