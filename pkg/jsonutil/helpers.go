// Package jsonutil provides the JSON helpers used for stored value
// lists and machine-readable CLI output.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MarshalValues encodes a value list as a compact JSON array. A nil
// slice encodes as [] so stored rows never hold null.
func MarshalValues(values []int) (string, error) {
	if values == nil {
		values = []int{}
	}
	b, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("marshaling values: %w", err)
	}
	return string(b), nil
}

// UnmarshalValues decodes a JSON array of integers. An empty string
// decodes to an empty list.
func UnmarshalValues(s string) ([]int, error) {
	values := []int{}
	if s == "" {
		return values, nil
	}
	if err := json.Unmarshal([]byte(s), &values); err != nil {
		return nil, fmt.Errorf("parsing values %q: %w", s, err)
	}
	return values, nil
}

// PrettyJSON formats a JSON string with indentation for display.
// Returns the original string if it's not valid JSON.
func PrettyJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return s
	}
	return buf.String()
}

// MustMarshal marshals a value to JSON, panicking on error.
// Use only for values known to be marshalable (structs, slices).
func MustMarshal(v interface{}) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("jsonutil.MustMarshal: %v", err))
	}
	return string(b)
}
