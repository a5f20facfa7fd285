package ui

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func forceColor(t *testing.T) {
	t.Helper()
	original := color.NoColor
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = original })
}

func TestStyleWithColor(t *testing.T) {
	forceColor(t)

	result := Branch.Sprint("feature/1.2.0")
	if strings.Contains(result, "'") {
		t.Errorf("Branch.Sprint should not quote when color is enabled, got: %s", result)
	}
	if !strings.Contains(result, "\x1b[") {
		t.Errorf("Branch.Sprint should contain ANSI escape codes when color is enabled, got: %s", result)
	}
}

func TestStyleWithNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	tests := []struct {
		name  string
		style Style
		input string
		want  string
	}{
		{"Code adds backticks", Code, "gitflow release test", "`gitflow release test`"},
		{"Path has no decoration", Path, "package.json", "package.json"},
		{"Flag has no decoration", Flag, "--push", "--push"},
		{"Success has no decoration", Success, "✓", "✓"},
		{"Error has no decoration", Error, "✗", "✗"},
		{"Warning has no decoration", Warning, "⚠", "⚠"},
		{"Info has no decoration", Info, "→", "→"},
		{"Branch adds quotes", Branch, "hotfix/2.1.1", "'hotfix/2.1.1'"},
		{"Tag adds quotes", Tag, "v2.1.1.RELEASE.20240201", "'v2.1.1.RELEASE.20240201'"},
		{"Version has no decoration", Version, "2.2.0-SNAPSHOT", "2.2.0-SNAPSHOT"},
		{"Highlight adds quotes", Highlight, "dev@example.com", "'dev@example.com'"},
		{"Muted adds parentheses", Muted, "none", "(none)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.style.Sprint(tt.input)
			if got != tt.want {
				t.Errorf("Sprint(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNoColorFunction(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	if !noColor() {
		t.Error("noColor() should return true when NO_COLOR is set")
	}
}
