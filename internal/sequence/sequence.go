// Package sequence produces and parses the integer sequences that
// trees are built from.
package sequence

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
)

// ErrEmptyValue is returned by Parse for inputs like "1,,2".
var ErrEmptyValue = errors.New("empty value in list")

// Random returns n values drawn uniformly from [0, maxValue].
func Random(r *rand.Rand, n, maxValue int) []int {
	if n <= 0 {
		return []int{}
	}
	out := make([]int, n)
	for i := range out {
		out[i] = r.IntN(maxValue + 1)
	}
	return out
}

// NewRand returns a generator seeded with seed, or from the runtime's
// entropy source when seed is zero.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// Parse reads a comma or whitespace separated list of integers.
// A blank string yields an empty sequence.
func Parse(s string) ([]int, error) {
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "[]"))
	if s == "" {
		return []int{}, nil
	}

	fields := strings.Split(s, ",")
	if len(fields) == 1 {
		fields = strings.Fields(s)
	}

	out := make([]int, 0, len(fields))
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, fmt.Errorf("position %d: %w", i, ErrEmptyValue)
		}
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("position %d: parsing %q: %w", i, f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Format prints values as a bracketed, comma separated list.
func Format(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
