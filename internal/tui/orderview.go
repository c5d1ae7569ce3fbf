package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderOrder lists the sequence in insertion order next to the
// in-order and pre-order walks of the tree.
func renderOrder(m *Model, width, height int) string {
	titleStyle := panelTitleDimStyle
	if m.activePane == PaneOrder {
		titleStyle = panelTitleStyle
	}
	title := titleStyle.Render("Order")

	if len(m.values) == 0 {
		return title + "\n" + dimStyle.Render("No values.")
	}

	var lines []string
	section := func(label string, style lipgloss.Style, values []int) {
		lines = append(lines, detailSectionStyle.Render(label))
		for _, l := range wrapWords(joinInts(values), width) {
			lines = append(lines, style.Render(l))
		}
		lines = append(lines, "")
	}

	section("Inserted", orderInsertStyle, m.values)
	section("In-order", orderSortedStyle, m.tree.InOrder())
	section("Pre-order", orderPreStyle, m.tree.PreOrder())

	// Apply scroll offset
	contentHeight := height - 1
	scroll := clamp(m.orderScroll, 0, max(len(lines)-1, 0))
	lines = lines[scroll:]
	if len(lines) > contentHeight {
		lines = lines[:contentHeight]
	}

	return title + "\n" + strings.Join(lines, "\n")
}

// renderOrderPanel wraps the order view in a styled panel.
func renderOrderPanel(m *Model, width, height int) string {
	content := renderOrder(m, width-4, height-2)

	style := panelStyle
	if m.activePane == PaneOrder {
		style = panelActiveStyle
	}

	return style.Width(width).Height(height).Render(content)
}
