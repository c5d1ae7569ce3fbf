package sequence

import (
	"errors"
	"slices"
	"strconv"
	"testing"
)

func TestRandomRange(t *testing.T) {
	r := NewRand(7)
	values := Random(r, 500, 255)
	if len(values) != 500 {
		t.Fatalf("expected 500 values, got %d", len(values))
	}
	for i, v := range values {
		if v < 0 || v > 255 {
			t.Fatalf("value %d out of range: %d", i, v)
		}
	}
}

func TestRandomSeeded(t *testing.T) {
	a := Random(NewRand(42), 10, 255)
	b := Random(NewRand(42), 10, 255)
	if !slices.Equal(a, b) {
		t.Errorf("same seed produced %v and %v", a, b)
	}
	if got := Random(NewRand(42), 0, 255); len(got) != 0 {
		t.Errorf("expected empty sequence, got %v", got)
	}
}

func TestParse(t *testing.T) {
	cases := map[string][]int{
		"5,3,8,3":      {5, 3, 8, 3},
		" 5, 3 ,8 ":    {5, 3, 8},
		"[5, 3, 8, 3]": {5, 3, 8, 3},
		"1 2 3":        {1, 2, 3},
		"-4":           {-4},
		"":             {},
		"[]":           {},
	}
	for in, want := range cases {
		got, err := Parse(in)
		if err != nil {
			t.Errorf("Parse(%q) failed: %v", in, err)
			continue
		}
		if !slices.Equal(got, want) {
			t.Errorf("Parse(%q): expected %v, got %v", in, want, got)
		}
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("1,,2"); !errors.Is(err, ErrEmptyValue) {
		t.Errorf("expected ErrEmptyValue, got %v", err)
	}
	_, err := Parse("1,x")
	var numErr *strconv.NumError
	if !errors.As(err, &numErr) {
		t.Errorf("expected *strconv.NumError, got %v", err)
	}
}

func TestFormatRoundTrip(t *testing.T) {
	values := []int{5, 3, 8, 3}
	s := Format(values)
	if s != "[5, 3, 8, 3]" {
		t.Errorf("unexpected format %q", s)
	}
	back, err := Parse(s)
	if err != nil || !slices.Equal(back, values) {
		t.Errorf("round trip failed: %v %v", back, err)
	}
	if Format(nil) != "[]" {
		t.Errorf("expected [], got %q", Format(nil))
	}
}
