package utils

import "strings"

// FormatBranches formats branch names as an indented list without colour codes.
func FormatBranches(branches []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, branch := range branches {
		b.WriteString("    - ")
		b.WriteString(branch)
		b.WriteString("\n")
	}
	return b.String()
}

// Truncate shortens s to max runes, marking the cut with an ellipsis.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max <= 0 || len(r) <= max {
		return s
	}
	if max == 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}
