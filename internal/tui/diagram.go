package tui

import (
	"fmt"
	"strings"

	"github.com/Mr-Dark-debug/bintree/internal/render"
	"github.com/charmbracelet/lipgloss"
)

// renderDiagram renders the tree diagram, clipped to the pane.
func renderDiagram(m *Model, width, height int) string {
	titleStyle := panelTitleDimStyle
	if m.activePane == PaneDiagram {
		titleStyle = panelTitleStyle
	}

	title := titleStyle.Render("Tree")
	title += dimStyle.Render(fmt.Sprintf("  %d levels", m.cfg.Depth))

	if m.tree.Empty() {
		return title + "\n\n" +
			emptyStateStyle.Render("Empty tree. Press r to generate values.")
	}

	diagram := render.String(m.tree,
		render.WithLayout(m.cfg.Layout(m.values)),
		render.WithStyles(render.DefaultStyles()),
	)
	lines := strings.Split(strings.Trim(diagram, "\n"), "\n")

	contentHeight := height - 2
	if contentHeight < 1 {
		contentHeight = 1
	}
	if len(lines) > contentHeight {
		lines = lines[:contentHeight]
	}

	body := lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(lines, "\n"))
	return title + "\n\n" + body
}

// renderDiagramPanel wraps the diagram in a styled panel.
func renderDiagramPanel(m *Model, width, height int) string {
	content := renderDiagram(m, width-4, height-2)

	style := panelStyle
	if m.activePane == PaneDiagram {
		style = panelActiveStyle
	}

	return style.Width(width).Height(height).Render(content)
}
