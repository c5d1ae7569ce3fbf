package tui

import (
	"fmt"
	"strings"

	"github.com/Mr-Dark-debug/bintree/internal/sequence"
	"github.com/Mr-Dark-debug/bintree/pkg/timeutil"
	"github.com/charmbracelet/lipgloss"
)

// renderHistory renders the saved sequence selection screen.
func renderHistory(m *Model, height int) string {
	if len(m.history) == 0 {
		empty := emptyStateStyle.Render(
			"No saved sequences.\n\n" +
				"Press esc to go back, then s to save the current tree.")
		return lipgloss.Place(
			m.width,
			height,
			lipgloss.Center,
			lipgloss.Center,
			empty,
		)
	}

	title := panelTitleStyle.Render("History")
	count := dimStyle.Render(fmt.Sprintf("  %d saved", len(m.history)))

	var lines []string
	lines = append(lines, title+count)
	lines = append(lines, "")

	// Visible range for scrolling
	maxVisible := height - 3
	if maxVisible < 5 {
		maxVisible = 5
	}

	startIdx := 0
	if m.selectedHistory >= maxVisible {
		startIdx = m.selectedHistory - maxVisible + 1
	}
	endIdx := min(startIdx+maxVisible, len(m.history))

	for i := startIdx; i < endIdx; i++ {
		seq := m.history[i]

		id := fmt.Sprintf("#%-4d", seq.SequenceID)
		shape := dimStyle.Render(fmt.Sprintf("n=%-3d h=%-3d", seq.Size, seq.Height))
		when := dimStyle.Render(timeutil.RelativeTime(seq.CreatedAt))
		values := truncate(sequence.Format(seq.Values), max(m.width-50, 10))

		content := fmt.Sprintf("%s  %s  %-8s  %s", id, shape, when, values)
		if seq.Label != "" {
			content += "  " + dimStyle.Render(seq.Label)
		}

		if i == m.selectedHistory {
			lines = append(lines, historySelectedStyle.Width(m.width-4).Render(content))
		} else {
			lines = append(lines, historyItemStyle.Width(m.width-4).Render(content))
		}
	}

	return strings.Join(lines, "\n")
}
