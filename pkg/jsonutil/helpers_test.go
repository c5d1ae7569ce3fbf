package jsonutil

import (
	"slices"
	"strings"
	"testing"
)

func TestValuesRoundTrip(t *testing.T) {
	s, err := MarshalValues([]int{5, 3, 8, 3})
	if err != nil {
		t.Fatalf("MarshalValues failed: %v", err)
	}
	if s != "[5,3,8,3]" {
		t.Errorf("unexpected encoding %s", s)
	}

	back, err := UnmarshalValues(s)
	if err != nil {
		t.Fatalf("UnmarshalValues failed: %v", err)
	}
	if !slices.Equal(back, []int{5, 3, 8, 3}) {
		t.Errorf("round trip mismatch: %v", back)
	}
}

func TestMarshalNilValues(t *testing.T) {
	s, err := MarshalValues(nil)
	if err != nil || s != "[]" {
		t.Errorf("expected [], got %q (%v)", s, err)
	}
	values, err := UnmarshalValues("")
	if err != nil || values == nil || len(values) != 0 {
		t.Errorf("expected empty non-nil slice, got %v (%v)", values, err)
	}
}

func TestUnmarshalValuesInvalid(t *testing.T) {
	if _, err := UnmarshalValues(`{"a":1}`); err == nil {
		t.Error("expected error for object input")
	}
	if _, err := UnmarshalValues(`[1, "x"]`); err == nil {
		t.Error("expected error for string element")
	}
}

func TestPrettyJSON(t *testing.T) {
	got := PrettyJSON(`{"size":4,"values":[1,2]}`)
	if !strings.Contains(got, "\n  \"size\": 4") {
		t.Errorf("expected indented output, got %s", got)
	}
	if PrettyJSON("not json") != "not json" {
		t.Error("invalid JSON should be returned unchanged")
	}
}

func TestMustMarshal(t *testing.T) {
	if got := MustMarshal(map[string]int{"height": 3}); got != `{"height":3}` {
		t.Errorf("unexpected %s", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for channel value")
		}
	}()
	MustMarshal(make(chan int))
}
