package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader produces the top bar:
//
//	BINTREE  |  #12  |  10 values  |  height 5
func renderHeader(m *Model) string {
	brand := headerBrandStyle.Render("BINTREE")
	sep := headerSepStyle.Render(" │ ")

	var parts []string
	parts = append(parts, brand)

	if m.showHistory {
		parts = append(parts, sep, headerMetaStyle.Render("History"))
		if m.stats != nil {
			parts = append(parts, sep, headerMetaStyle.Render(
				fmt.Sprintf("%d saved  max height %d", m.stats.Sequences, m.stats.MaxHeight)))
		}
	} else {
		if m.current != nil {
			parts = append(parts, sep, headerMetaStyle.Render(
				fmt.Sprintf("#%d", m.current.SequenceID)))
		} else {
			parts = append(parts, sep, headerMetaStyle.Render("unsaved"))
		}
		parts = append(parts, sep, headerMetaStyle.Render(
			fmt.Sprintf("%d values", m.shape.Size)))
		parts = append(parts, sep, headerMetaStyle.Render(
			fmt.Sprintf("height %d", m.shape.Height)))
	}

	content := strings.Join(parts, "")

	return headerBarStyle.Width(m.width).Render(content)
}

// renderFooter produces the bottom status bar with keyboard hints.
func renderFooter(m *Model) string {
	var left, right string

	if m.statusMsg != "" {
		if m.err != nil {
			left = statusErrorStyle.Render(m.statusMsg)
		} else {
			left = statusStyle.Render(m.statusMsg)
		}
	}

	if m.showHistory {
		right = renderHints([]hint{
			{"↑↓", "navigate"},
			{"enter", "load"},
			{"d", "delete"},
			{"esc", "back"},
			{"q", "quit"},
		})
	} else {
		right = renderHints([]hint{
			{"r", "random"},
			{"s", "save"},
			{"h", "history"},
			{"tab", "pane"},
			{"q", "quit"},
		})
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().
		Background(colorBgSurface).
		Width(m.width).
		Render(bar)
}

type hint struct {
	key  string
	desc string
}

func renderHints(hints []hint) string {
	var parts []string
	for _, h := range hints {
		parts = append(parts,
			hintKeyStyle.Render(h.key)+" "+hintDescStyle.Render(h.desc))
	}
	return strings.Join(parts, hintDescStyle.Render("  "))
}
