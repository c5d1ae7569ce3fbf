package tui

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/Mr-Dark-debug/bintree/internal/config"
	"github.com/Mr-Dark-debug/bintree/internal/database"

	tea "github.com/charmbracelet/bubbletea"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// send feeds msg to m and runs any returned command to completion,
// feeding its message back in.
func send(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(Model)
	for cmd != nil {
		out := cmd()
		if out == nil {
			break
		}
		next, cmd = m.Update(out)
		m = next.(Model)
	}
	return m
}

func testConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Seed = 99
	return cfg
}

func newStore(t *testing.T) *database.DBService {
	t.Helper()
	store, err := database.NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewModelBuildsTree(t *testing.T) {
	m := NewModel(nil, testConfig(), []int{5, 3, 8, 3})
	if !slices.Equal(m.tree.InOrder(), []int{3, 3, 5, 8}) {
		t.Errorf("unexpected in-order %v", m.tree.InOrder())
	}
	if m.shape.Height != 3 {
		t.Errorf("expected height 3, got %d", m.shape.Height)
	}
}

func TestRegenerate(t *testing.T) {
	cfg := testConfig()
	cfg.Count = 25
	m := NewModel(nil, cfg, nil)

	m = send(t, m, key("r"))
	if len(m.values) != 25 || m.tree.Len() != 25 {
		t.Fatalf("expected 25 values, got %d/%d", len(m.values), m.tree.Len())
	}
	for _, v := range m.values {
		if v < 0 || v > cfg.MaxValue {
			t.Fatalf("value out of range: %d", v)
		}
	}
}

func TestPaneCycling(t *testing.T) {
	m := NewModel(nil, testConfig(), []int{1})
	for _, want := range []Pane{PaneShape, PaneOrder, PaneDiagram} {
		m = send(t, m, key("tab"))
		if m.activePane != want {
			t.Fatalf("expected pane %d, got %d", want, m.activePane)
		}
	}
}

func TestSaveAndLoadHistory(t *testing.T) {
	store := newStore(t)
	m := NewModel(store, testConfig(), []int{5, 3, 8, 3})

	m = send(t, m, key("s"))
	if m.current == nil || m.current.SequenceID == 0 {
		t.Fatalf("expected saved sequence, status=%q err=%v", m.statusMsg, m.err)
	}
	savedID := m.current.SequenceID

	// Saving twice is a no-op.
	m = send(t, m, key("s"))
	if stats, _ := store.GetHistoryStats(); stats.Sequences != 1 {
		t.Errorf("expected 1 stored sequence, got %d", stats.Sequences)
	}

	m = send(t, m, key("r"))
	if m.current != nil {
		t.Error("regenerating should clear the saved marker")
	}

	m = send(t, m, key("h"))
	if !m.showHistory || len(m.history) != 1 {
		t.Fatalf("expected history with 1 entry, got show=%v n=%d", m.showHistory, len(m.history))
	}

	m = send(t, m, key("enter"))
	if m.showHistory {
		t.Error("expected history to close after loading")
	}
	if !slices.Equal(m.values, []int{5, 3, 8, 3}) {
		t.Errorf("expected loaded values, got %v", m.values)
	}
	if m.current == nil || m.current.SequenceID != savedID {
		t.Errorf("expected current #%d", savedID)
	}
}

func TestDeleteFromHistory(t *testing.T) {
	store := newStore(t)
	store.InsertSequence(&database.Sequence{Values: []int{1, 2}})
	store.InsertSequence(&database.Sequence{Values: []int{3}})

	m := NewModel(store, testConfig(), nil)
	m = send(t, m, key("h"))
	if len(m.history) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(m.history))
	}

	m = send(t, m, key("d"))
	if len(m.history) != 1 {
		t.Errorf("expected 1 entry after delete, got %d", len(m.history))
	}
}

func TestHistoryWithoutStore(t *testing.T) {
	m := NewModel(nil, testConfig(), []int{1})
	m = send(t, m, key("h"))
	if !errors.Is(m.err, errNoStore) {
		t.Errorf("expected errNoStore, got %v", m.err)
	}
	if m.showHistory {
		t.Error("history should stay closed without a store")
	}
}

func TestView(t *testing.T) {
	m := NewModel(nil, testConfig(), []int{5, 3, 8, 3})
	if m.View() != "Initializing..." {
		t.Errorf("expected placeholder before first resize")
	}

	m = send(t, m, tea.WindowSizeMsg{Width: 160, Height: 50})
	view := m.View()
	for _, want := range []string{"BINTREE", "Tree", "Shape", "Order", "005", "3 3 5 8"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 30})
	if view := m.View(); !strings.Contains(view, "Tree") {
		t.Error("compact view should show the focused diagram pane")
	}
}

func TestViewEmptyTree(t *testing.T) {
	m := NewModel(nil, testConfig(), nil)
	m = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if !strings.Contains(m.View(), "Empty tree") {
		t.Error("expected empty state")
	}
}

func TestQuit(t *testing.T) {
	m := NewModel(nil, testConfig(), nil)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestWrapWords(t *testing.T) {
	got := wrapWords("10 200 3 4000 5", 6)
	want := []string{"10 200", "3 4000", "5"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if wrapWords("1 2", 0) != nil {
		t.Error("expected nil for zero width")
	}
}
