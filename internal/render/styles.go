package render

import "github.com/charmbracelet/lipgloss"

// Palette shared with the terminal viewer.
var (
	ColorValue  = lipgloss.Color("#58a6ff")
	ColorHole   = lipgloss.Color("#484f58")
	ColorBranch = lipgloss.Color("#8b949e")
)

// DefaultStyles returns the colour scheme used by --color and the
// interactive viewer.
func DefaultStyles() Styles {
	return Styles{
		Value:  lipgloss.NewStyle().Foreground(ColorValue).Bold(true),
		Hole:   lipgloss.NewStyle().Foreground(ColorHole),
		Branch: lipgloss.NewStyle().Foreground(ColorBranch),
	}
}
