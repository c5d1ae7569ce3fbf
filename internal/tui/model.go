package tui

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/Mr-Dark-debug/bintree/internal/analysis"
	"github.com/Mr-Dark-debug/bintree/internal/bst"
	"github.com/Mr-Dark-debug/bintree/internal/config"
	"github.com/Mr-Dark-debug/bintree/internal/database"
	"github.com/Mr-Dark-debug/bintree/internal/sequence"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// errNoStore is reported when a history action runs without a store.
var errNoStore = errors.New("history is disabled")

// ────────────────────────────────────────────────────────────
// Pane focuses
// ────────────────────────────────────────────────────────────

// Pane represents which UI pane currently has keyboard focus.
type Pane int

const (
	PaneDiagram Pane = iota
	PaneShape
	PaneOrder
)

const paneCount = 3

// ────────────────────────────────────────────────────────────
// Model
// ────────────────────────────────────────────────────────────

// Model is the root BubbleTea model for the viewer. The tree is
// rebuilt from scratch whenever the sequence changes.
type Model struct {
	store database.Store
	cfg   config.Config
	rng   *rand.Rand

	// Data
	values  []int
	tree    *bst.Tree[int]
	shape   analysis.ShapeReport
	current *database.Sequence
	history []*database.Sequence
	stats   *database.HistoryStats

	// UI state
	activePane      Pane
	selectedHistory int
	orderScroll     int
	width           int
	height          int
	showHistory     bool

	// Status
	statusMsg string
	err       error
}

// NewModel creates a viewer for values. store may be nil, which
// disables saving and the history list.
func NewModel(store database.Store, cfg config.Config, values []int) Model {
	m := Model{
		store: store,
		cfg:   cfg,
		rng:   sequence.NewRand(cfg.Seed),
	}
	m.setValues(values)
	m.statusMsg = fmt.Sprintf("%d values", len(values))
	return m
}

// setValues replaces the sequence and rebuilds the tree.
func (m *Model) setValues(values []int) {
	m.values = values
	m.tree = bst.FromSlice(values)
	m.shape = analysis.Shape(m.tree, m.cfg.Depth)
	m.current = nil
	m.orderScroll = 0
}

// ────────────────────────────────────────────────────────────
// Messages
// ────────────────────────────────────────────────────────────

type historyLoadedMsg struct {
	sequences []*database.Sequence
	stats     *database.HistoryStats
}
type sequenceSavedMsg struct{ seq *database.Sequence }
type sequenceDeletedMsg struct{ id int64 }
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

// ────────────────────────────────────────────────────────────
// Init
// ────────────────────────────────────────────────────────────

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) loadHistory() tea.Cmd {
	return func() tea.Msg {
		if m.store == nil {
			return errMsg{errNoStore}
		}
		seqs, err := m.store.QuerySequences(database.SequenceFilter{Limit: 100})
		if err != nil {
			return errMsg{err}
		}
		stats, err := m.store.GetHistoryStats()
		if err != nil {
			return errMsg{err}
		}
		return historyLoadedMsg{sequences: seqs, stats: stats}
	}
}

func (m Model) saveSequence() tea.Cmd {
	values := m.values
	return func() tea.Msg {
		if m.store == nil {
			return errMsg{errNoStore}
		}
		seq := &database.Sequence{Values: values}
		if _, err := m.store.InsertSequence(seq); err != nil {
			return errMsg{err}
		}
		return sequenceSavedMsg{seq: seq}
	}
}

func (m Model) deleteSequence(id int64) tea.Cmd {
	return func() tea.Msg {
		if m.store == nil {
			return errMsg{errNoStore}
		}
		if err := m.store.DeleteSequence(id); err != nil {
			return errMsg{err}
		}
		return sequenceDeletedMsg{id: id}
	}
}

// ────────────────────────────────────────────────────────────
// Update
// ────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case historyLoadedMsg:
		m.history = msg.sequences
		m.stats = msg.stats
		m.selectedHistory = clamp(m.selectedHistory, 0, max(len(m.history)-1, 0))
		m.showHistory = true
		m.statusMsg = fmt.Sprintf("%d saved sequences", len(m.history))
		return m, nil

	case sequenceSavedMsg:
		m.current = msg.seq
		m.err = nil
		m.statusMsg = fmt.Sprintf("Saved as #%d", msg.seq.SequenceID)
		return m, nil

	case sequenceDeletedMsg:
		if m.current != nil && m.current.SequenceID == msg.id {
			m.current = nil
		}
		m.statusMsg = fmt.Sprintf("Deleted #%d", msg.id)
		return m, m.loadHistory()

	case errMsg:
		m.err = msg.err
		m.statusMsg = fmt.Sprintf("Error: %v", msg.err)
		return m, nil
	}

	return m, nil
}

// handleKey routes keyboard input based on current mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// ── Global ──

	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.showHistory {
			m.showHistory = false
		}
		return m, nil

	case "h":
		if m.showHistory {
			m.showHistory = false
			return m, nil
		}
		return m, m.loadHistory()
	}

	// ── History list mode ──

	if m.showHistory {
		switch key {
		case "j", "down":
			if m.selectedHistory < len(m.history)-1 {
				m.selectedHistory++
			}
		case "k", "up":
			if m.selectedHistory > 0 {
				m.selectedHistory--
			}
		case "enter":
			if m.selectedHistory < len(m.history) {
				seq := m.history[m.selectedHistory]
				m.setValues(seq.Values)
				m.current = seq
				m.showHistory = false
				m.statusMsg = fmt.Sprintf("Loaded #%d", seq.SequenceID)
			}
		case "d":
			if m.selectedHistory < len(m.history) {
				return m, m.deleteSequence(m.history[m.selectedHistory].SequenceID)
			}
		}
		return m, nil
	}

	// ── Tree view ──

	switch key {
	case "tab":
		m.activePane = (m.activePane + 1) % paneCount
		return m, nil

	case "shift+tab":
		m.activePane = (m.activePane + paneCount - 1) % paneCount
		return m, nil

	case "r":
		m.setValues(sequence.Random(m.rng, m.cfg.Count, m.cfg.MaxValue))
		m.err = nil
		m.statusMsg = fmt.Sprintf("Generated %d values", len(m.values))
		return m, nil

	case "s":
		if m.current != nil {
			m.statusMsg = fmt.Sprintf("Already saved as #%d", m.current.SequenceID)
			return m, nil
		}
		return m, m.saveSequence()
	}

	if m.activePane == PaneOrder {
		switch key {
		case "j", "down":
			m.orderScroll++
		case "k", "up":
			if m.orderScroll > 0 {
				m.orderScroll--
			}
		}
	}

	return m, nil
}

// ────────────────────────────────────────────────────────────
// View
// ────────────────────────────────────────────────────────────

func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	header := renderHeader(&m)
	footer := renderFooter(&m)

	bodyHeight := m.height - 2 // header + footer

	var body string
	if m.showHistory {
		body = renderHistory(&m, bodyHeight)
	} else {
		body = m.renderMainLayout(bodyHeight)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderMainLayout puts the diagram on top and the shape and order
// panes side by side below it.
func (m Model) renderMainLayout(totalHeight int) string {
	// Responsive: collapse to single pane on narrow terminals
	if m.width < 60 {
		return m.renderCompactLayout(totalHeight)
	}

	leftWidth := m.width * 45 / 100
	rightWidth := m.width - leftWidth
	topHeight := totalHeight * 65 / 100
	bottomHeight := totalHeight - topHeight

	diagram := renderDiagramPanel(&m, m.width, topHeight)
	shape := renderShapePanel(&m, leftWidth, bottomHeight)
	order := renderOrderPanel(&m, rightWidth, bottomHeight)

	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top, shape, order)
	return lipgloss.JoinVertical(lipgloss.Left, diagram, bottomRow)
}

// renderCompactLayout is used when the terminal is narrow (< 60 cols).
// Only the focused pane is shown.
func (m Model) renderCompactLayout(totalHeight int) string {
	switch m.activePane {
	case PaneShape:
		return renderShapePanel(&m, m.width, totalHeight)
	case PaneOrder:
		return renderOrderPanel(&m, m.width, totalHeight)
	default:
		return renderDiagramPanel(&m, m.width, totalHeight)
	}
}
