// Package render turns analytics results into terminal output.
package render

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#6C63FF")
	colorMuted   = lipgloss.Color("#666666")
	colorSubtle  = lipgloss.Color("#414868")
	colorOff     = lipgloss.Color("#cccccc")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)

	labelStyle = lipgloss.NewStyle().Width(16)

	valueStyle = lipgloss.NewStyle().Bold(true)
)

// TypeDot renders a coloured bullet for a type colour.
func TypeDot(color string) string {
	return shareStyle(color).Render("●")
}

func shareStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
