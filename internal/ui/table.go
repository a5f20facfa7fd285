package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
	colorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// Row is one parameter line of a table.
type Row struct {
	Name  string
	Value string
}

// ParameterTable renders rows as a bordered two-column table. Without color
// support it falls back to plain ASCII borders.
func ParameterTable(rows []Row) string {
	t := table.New().
		Headers("Parameter", "Value").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	if noColor() {
		t = t.Border(lipgloss.ASCIIBorder())
	} else {
		t = t.Border(lipgloss.RoundedBorder()).BorderStyle(borderStyle)
	}

	for _, r := range rows {
		t = t.Row(r.Name, r.Value)
	}
	return t.Render()
}
