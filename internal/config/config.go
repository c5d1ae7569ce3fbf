// Package config holds the settings shared by the bintree binaries.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Mr-Dark-debug/bintree/internal/bst"
	"github.com/Mr-Dark-debug/bintree/internal/render"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// MaxDepth bounds the diagram depth; the bottom row of a depth 10
// diagram is already 2048 columns wide.
const MaxDepth = 10

// Config holds configuration for tree generation and rendering.
type Config struct {
	// DBPath is the path to the SQLite history database.
	DBPath string `json:"db_path"`

	// Count is the number of random values to generate.
	Count int `json:"count"`

	// MaxValue is the largest random value (inclusive).
	MaxValue int `json:"max_value"`

	// Seed seeds the random generator. Zero picks a random seed.
	Seed uint64 `json:"seed"`

	// Depth is the number of levels drawn.
	Depth int `json:"depth"`

	// Width is the cell width. Zero sizes cells to the widest value.
	Width int `json:"width"`

	// Color enables styled output.
	Color bool `json:"color"`
}

// DefaultConfig returns ten byte-sized values drawn as a six level
// diagram, stored under ~/.bintree.
func DefaultConfig() Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".bintree", "bintree.db")

	return Config{
		DBPath:   dbPath,
		Count:    10,
		MaxValue: 255,
		Depth:    bst.DefaultDepth,
		Width:    render.DefaultWidth,
	}
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.Count < 0:
		return fmt.Errorf("%w: count %d is negative", ErrInvalid, c.Count)
	case c.MaxValue < 0:
		return fmt.Errorf("%w: max value %d is negative", ErrInvalid, c.MaxValue)
	case c.Depth < 1 || c.Depth > MaxDepth:
		return fmt.Errorf("%w: depth %d outside [1, %d]", ErrInvalid, c.Depth, MaxDepth)
	case c.Width < 0:
		return fmt.Errorf("%w: width %d is negative", ErrInvalid, c.Width)
	}
	return nil
}

// Layout returns the render layout for values. A zero Width is
// resolved against the widest of values.
func (c Config) Layout(values []int) render.Layout {
	l := render.DefaultLayout()
	l.Depth = c.Depth
	l.Width = c.Width
	if l.Width == 0 {
		l.Width = render.FieldWidth(values)
	}
	return l
}

// RenderOptions returns the renderer options for values.
func (c Config) RenderOptions(values []int) []render.Option {
	opts := []render.Option{render.WithLayout(c.Layout(values))}
	if c.Color {
		opts = append(opts, render.WithStyles(render.DefaultStyles()))
	}
	return opts
}
