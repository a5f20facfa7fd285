package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

// Style renders one kind of gitflow output: a colour when the terminal has
// one, plain delimiters when it does not.
type Style struct {
	color       *color.Color
	open, close string
}

func newStyle(open, close string, attrs ...color.Attribute) Style {
	return Style{color: color.New(attrs...), open: open, close: close}
}

// Sprint renders its arguments the way fmt.Sprint joins them.
func (s Style) Sprint(a ...any) string {
	text := fmt.Sprint(a...)
	if noColor() {
		return s.open + text + s.close
	}
	return s.color.Sprint(text)
}

// noColor honours NO_COLOR as well as fatih/color's own terminal detection.
func noColor() bool {
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return true
	}
	return color.NoColor
}

var (
	// Code is a gitflow or git command line the user can run.
	Code = newStyle("`", "`", color.FgYellow)

	// Path is a file such as pom.xml or .gitflow.toml.
	Path = newStyle("", "", color.FgYellow)

	// Flag is a command-line flag such as --push.
	Flag = newStyle("", "", color.FgYellow)

	Success = newStyle("", "", color.FgGreen)
	Error   = newStyle("", "", color.FgRed)
	Warning = newStyle("", "", color.FgYellow)
	Info    = newStyle("", "", color.FgCyan)

	// Branch and Tag are quoted when printed without colour.
	Branch = newStyle("'", "'", color.FgMagenta, color.Bold)
	Tag    = newStyle("'", "'", color.FgGreen, color.Bold)

	// Version is a project version like 1.2.0-SNAPSHOT.
	Version = newStyle("", "", color.FgCyan)

	// Highlight marks values the user supplied: emails, project types.
	Highlight = newStyle("'", "'", color.FgCyan)

	// Muted is secondary detail, parenthesised without colour.
	Muted = newStyle("(", ")", color.FgHiBlack)
)
