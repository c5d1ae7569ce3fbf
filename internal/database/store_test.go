package database

import (
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"
)

// TestNewDBService verifies that the database initializes correctly
// with the embedded schema using an in-memory SQLite instance.
func TestNewDBService(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService(:memory:) failed: %v", err)
	}
	defer svc.Close()
}

// TestInsertAndGetSequence verifies the full lifecycle:
// insert → get → verify fields and derived shape.
func TestInsertAndGetSequence(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	seq := &Sequence{Label: "dup-three", Values: []int{5, 3, 8, 3}}
	id, err := svc.InsertSequence(seq)
	if err != nil {
		t.Fatalf("InsertSequence failed: %v", err)
	}
	if id == 0 || seq.SequenceID != id {
		t.Fatalf("expected assigned id, got %d / %d", id, seq.SequenceID)
	}

	got, err := svc.GetSequence(id)
	if err != nil {
		t.Fatalf("GetSequence failed: %v", err)
	}
	if got.Label != "dup-three" {
		t.Errorf("expected label=dup-three, got %s", got.Label)
	}
	if !slices.Equal(got.Values, []int{5, 3, 8, 3}) {
		t.Errorf("expected values [5 3 8 3], got %v", got.Values)
	}
	if got.Size != 4 {
		t.Errorf("expected size=4, got %d", got.Size)
	}
	if got.Height != 3 {
		t.Errorf("expected height=3, got %d", got.Height)
	}
	if got.CreatedAt == 0 {
		t.Error("expected created_at to be set")
	}
}

func TestInsertEmptySequence(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	id, err := svc.InsertSequence(&Sequence{})
	if err != nil {
		t.Fatalf("InsertSequence failed: %v", err)
	}
	got, err := svc.GetSequence(id)
	if err != nil {
		t.Fatalf("GetSequence failed: %v", err)
	}
	if got.Values == nil || len(got.Values) != 0 || got.Height != 0 {
		t.Errorf("expected empty sequence, got %+v", got)
	}
}

func TestGetSequenceNotFound(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	if _, err := svc.GetSequence(404); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := svc.DeleteSequence(404); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on delete, got %v", err)
	}
}

// TestQuerySequencesFilter verifies ordering, limits and filters.
func TestQuerySequencesFilter(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	now := time.Now().UnixNano()
	for i := 0; i < 5; i++ {
		values := make([]int, i+1)
		for j := range values {
			values[j] = j // sorted input, height == size
		}
		_, err := svc.InsertSequence(&Sequence{
			Label:     fmt.Sprintf("chain-%d", i),
			Values:    values,
			CreatedAt: now + int64(i*1000),
		})
		if err != nil {
			t.Fatalf("InsertSequence(%d) failed: %v", i, err)
		}
	}

	all, err := svc.QuerySequences(SequenceFilter{})
	if err != nil {
		t.Fatalf("QuerySequences failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("expected 5 sequences, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt > all[i-1].CreatedAt {
			t.Errorf("sequences not ordered newest first at %d", i)
		}
	}

	minHeight := 4
	tall, err := svc.QuerySequences(SequenceFilter{MinHeight: &minHeight})
	if err != nil {
		t.Fatalf("QuerySequences(min height) failed: %v", err)
	}
	if len(tall) != 2 {
		t.Errorf("expected 2 sequences with height >= 4, got %d", len(tall))
	}

	label := "chain-2"
	one, err := svc.QuerySequences(SequenceFilter{Label: &label})
	if err != nil {
		t.Fatalf("QuerySequences(label) failed: %v", err)
	}
	if len(one) != 1 || one[0].Size != 3 {
		t.Errorf("expected chain-2 with size 3, got %+v", one)
	}

	page, err := svc.QuerySequences(SequenceFilter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("QuerySequences(page) failed: %v", err)
	}
	if len(page) != 2 || page[0].Label != "chain-3" {
		t.Errorf("unexpected page %+v", page)
	}
}

func TestSearchLabelAndDelete(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	labels := []string{"random bytes", "sorted run", "random walk"}
	ids := make([]int64, len(labels))
	for i, l := range labels {
		ids[i], err = svc.InsertSequence(&Sequence{Label: l, Values: []int{i}})
		if err != nil {
			t.Fatalf("InsertSequence(%s) failed: %v", l, err)
		}
	}

	found, err := svc.SearchLabel("random", 10)
	if err != nil {
		t.Fatalf("SearchLabel failed: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(found))
	}

	if err := svc.DeleteSequence(ids[0]); err != nil {
		t.Fatalf("DeleteSequence failed: %v", err)
	}
	found, err = svc.SearchLabel("random", 10)
	if err != nil {
		t.Fatalf("SearchLabel after delete failed: %v", err)
	}
	if len(found) != 1 || found[0].Label != "random walk" {
		t.Errorf("unexpected matches after delete: %+v", found)
	}
}

func TestHistoryStats(t *testing.T) {
	svc, err := NewDBService(":memory:")
	if err != nil {
		t.Fatalf("NewDBService failed: %v", err)
	}
	defer svc.Close()

	stats, err := svc.GetHistoryStats()
	if err != nil {
		t.Fatalf("GetHistoryStats on empty db failed: %v", err)
	}
	if stats.Sequences != 0 || stats.MaxHeight != 0 {
		t.Errorf("expected zero stats, got %+v", stats)
	}

	svc.InsertSequence(&Sequence{Values: []int{1, 2, 3, 4}}) // height 4
	svc.InsertSequence(&Sequence{Values: []int{2, 1, 3}})    // height 2

	stats, err = svc.GetHistoryStats()
	if err != nil {
		t.Fatalf("GetHistoryStats failed: %v", err)
	}
	if stats.Sequences != 2 || stats.TotalValues != 7 || stats.MaxHeight != 4 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if stats.AvgHeight != 3 {
		t.Errorf("expected avg height 3, got %.2f", stats.AvgHeight)
	}
}
