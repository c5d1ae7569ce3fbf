// Package render draws a level-order tree snapshot as a console
// diagram.
//
// Each tree level becomes one row of fixed-width cells. Cells are
// spread over a diagram whose width is set by the bottom level, so a
// parent sits roughly centred above its two children, and a row of
// branch glyphs connects consecutive levels:
//
//	                             005
//	                           /   \
//	              003                             008
//
// Alignment is tuned for the configured field width; wider values
// than the width will push the rest of their row to the right.
package render

import (
	"bufio"
	"cmp"
	"fmt"
	"io"
	"strings"

	"github.com/Mr-Dark-debug/bintree/internal/bst"
	"github.com/charmbracelet/lipgloss"
)

// DefaultWidth fits any uint8 value.
const DefaultWidth = 3

// Layout holds the geometry and glyphs of a diagram.
type Layout struct {
	// Depth is the number of tree levels drawn.
	Depth int
	// Width is the field width of every cell.
	Width int

	Fill        string
	Hole        string
	LeftBranch  string
	RightBranch string
}

// DefaultLayout returns a six level, three column layout.
func DefaultLayout() Layout {
	return Layout{
		Depth:       bst.DefaultDepth,
		Width:       DefaultWidth,
		Fill:        " ",
		Hole:        "_",
		LeftBranch:  "/",
		RightBranch: "\\",
	}
}

// maxWidth is the width of the bottom level: one cell plus one
// separator per slot.
func (l Layout) maxWidth() int {
	if l.Depth <= 0 {
		return 0
	}
	return (1 << (l.Depth - 1)) * (l.Width + 1)
}

// Cell is a formatted snapshot slot.
type Cell struct {
	Text    string
	Present bool
}

// Cells formats a snapshot with every present value zero padded to
// width and every hole drawn as width copies of hole.
func Cells[T cmp.Ordered](slots []bst.Slot[T], width int, hole string) []Cell {
	cells := make([]Cell, len(slots))
	for i, s := range slots {
		if s.Present {
			cells[i] = Cell{Text: fmt.Sprintf("%0*v", width, s.Value), Present: true}
		} else {
			cells[i] = Cell{Text: strings.Repeat(hole, width)}
		}
	}
	return cells
}

// FieldWidth returns the printed width of the widest value, and
// never less than DefaultWidth.
func FieldWidth[T cmp.Ordered](values []T) int {
	w := DefaultWidth
	for _, v := range values {
		w = max(w, len(fmt.Sprint(v)))
	}
	return w
}

// Styles colours the parts of a diagram. Fill characters are never
// styled, so column positions do not change.
type Styles struct {
	Value  lipgloss.Style
	Hole   lipgloss.Style
	Branch lipgloss.Style
}

// Renderer writes diagrams for one layout.
type Renderer struct {
	layout Layout
	styles *Styles
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLayout replaces the default layout.
func WithLayout(l Layout) Option {
	return func(r *Renderer) { r.layout = l }
}

// WithStyles enables coloured output.
func WithStyles(s Styles) Option {
	return func(r *Renderer) { r.styles = &s }
}

// NewRenderer returns a renderer using DefaultLayout unless
// overridden by opts. Output is unstyled by default.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{layout: DefaultLayout()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Layout returns the renderer's layout.
func (r *Renderer) Layout() Layout {
	return r.layout
}

// Render writes cells as a diagram, level k taking the next 2^k
// cells. Every level is preceded by an empty line and followed by a
// line of branches, which stays empty under the deepest level. The
// only error returned is one from w.
func (r *Renderer) Render(w io.Writer, cells []Cell) error {
	l := r.layout
	maxWidth := l.maxWidth()
	bw := bufio.NewWriter(w)

	row := 1
	for depth, i := 0, 0; i < len(cells); depth++ {
		end := min(i+row, len(cells))
		amount := 1 << depth

		spacing := maxWidth/amount - l.Width
		bw.WriteString("\n")
		for j, c := range cells[i:end] {
			pad := spacing
			if j == 0 {
				pad = spacing / 2
			}
			bw.WriteString(repeat(l.Fill, pad))
			bw.WriteString(r.cell(c))
		}
		bw.WriteString("\n")

		if depth != l.Depth-1 {
			spacing := maxWidth/amount - (l.Width + 2)
			for j := 0; j < row; j++ {
				pad := spacing
				if j == 0 {
					pad = spacing / 2
				}
				bw.WriteString(repeat(l.Fill, pad))
				bw.WriteString(r.branch(l.LeftBranch))
				bw.WriteString(repeat(l.Fill, l.Width))
				bw.WriteString(r.branch(l.RightBranch))
			}
		}
		bw.WriteString("\n")

		i += row
		row *= 2
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing diagram: %w", err)
	}
	return nil
}

func (r *Renderer) cell(c Cell) string {
	if r.styles == nil {
		return c.Text
	}
	if c.Present {
		return r.styles.Value.Render(c.Text)
	}
	return r.styles.Hole.Render(c.Text)
}

func (r *Renderer) branch(glyph string) string {
	if r.styles == nil {
		return glyph
	}
	return r.styles.Branch.Render(glyph)
}

// repeat is strings.Repeat with negative counts clamped to zero.
func repeat(s string, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(s, n)
}

// Tree snapshots t at the renderer's depth and writes the diagram.
func Tree[T cmp.Ordered](w io.Writer, t *bst.Tree[T], opts ...Option) error {
	r := NewRenderer(opts...)
	l := r.Layout()
	return r.Render(w, Cells(t.Snapshot(l.Depth), l.Width, l.Hole))
}

// String returns the diagram of t.
func String[T cmp.Ordered](t *bst.Tree[T], opts ...Option) string {
	var b strings.Builder
	// strings.Builder never fails.
	_ = Tree(&b, t, opts...)
	return b.String()
}
