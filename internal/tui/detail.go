package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderShape renders the shape metrics pane.
func renderShape(m *Model, width, height int) string {
	titleStyle := panelTitleDimStyle
	if m.activePane == PaneShape {
		titleStyle = panelTitleStyle
	}
	title := titleStyle.Render("Shape")

	s := m.shape
	var lines []string

	lines = append(lines, title)
	lines = append(lines, "")

	lines = append(lines, detailRow("Size", fmt.Sprintf("%d", s.Size)))
	lines = append(lines, detailRow("Height", fmt.Sprintf("%d", s.Height)))
	lines = append(lines, detailRow("Optimal", fmt.Sprintf("%d", s.MinHeight)))
	lines = append(lines, detailRow("Leaves", fmt.Sprintf("%d", s.Leaves)))

	// ── Balance bar ──

	barWidth := width - 16
	if barWidth > 40 {
		barWidth = 40
	}
	if barWidth > 4 {
		lines = append(lines, "")
		lines = append(lines, detailSectionStyle.Render("Balance"))
		color := colorGreen
		if s.Balance < 0.5 {
			color = colorRed
		} else if s.Balance < 0.8 {
			color = colorYellow
		}
		lines = append(lines, renderRatioBar(s.Balance, barWidth, color))
	}

	// ── Warnings ──

	if s.Degenerate {
		lines = append(lines, "")
		lines = append(lines, warnStyle.Render("⚠ degenerate chain"))
	}
	if s.Hidden > 0 {
		lines = append(lines, "")
		lines = append(lines, warnStyle.Render(
			truncate(fmt.Sprintf("⚠ %d nodes below level %d not drawn", s.Hidden, s.Depth), width)))
	}

	// Truncate to available height
	if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

// renderShapePanel wraps the shape pane in a styled panel.
func renderShapePanel(m *Model, width, height int) string {
	content := renderShape(m, width-4, height-2)

	style := panelStyle
	if m.activePane == PaneShape {
		style = panelActiveStyle
	}

	return style.Width(width).Height(height).Render(content)
}

// ── helpers ──

func detailRow(label, value string) string {
	return detailLabelStyle.Render(fmt.Sprintf("%-8s", label)) + "  " + detailValueStyle.Render(value)
}

func renderRatioBar(ratio float64, barWidth int, color lipgloss.Color) string {
	ratio = min(max(ratio, 0), 1)
	filled := int(ratio * float64(barWidth))
	empty := barWidth - filled

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", empty))

	return fmt.Sprintf("%s %d%%", bar, int(ratio*100))
}
