// Package analysis measures the shape of unbalanced trees.
//
// Because the tree is never rebalanced, its height can range from
// the optimal ceil(log2(n+1)) up to n for sorted input. The report
// quantifies where a tree falls on that range and how much of it
// the fixed-depth diagram leaves out.
package analysis

import (
	"cmp"
	"fmt"
	"math"
	"math/bits"
	"strings"
	"time"

	"github.com/Mr-Dark-debug/bintree/internal/bst"
	"github.com/Mr-Dark-debug/bintree/internal/database"
	"github.com/Mr-Dark-debug/bintree/internal/sequence"
)

// ShapeReport describes one tree.
type ShapeReport struct {
	Size      int `json:"size"`
	Height    int `json:"height"`
	MinHeight int `json:"min_height"`
	Leaves    int `json:"leaves"`

	// Depth is the diagram depth the report was computed for and
	// Hidden the number of nodes below it.
	Depth  int `json:"depth"`
	Hidden int `json:"hidden"`

	// Balance is MinHeight/Height: 1 for an optimally shaped tree,
	// approaching 0 as the tree degenerates. An empty tree scores 1.
	Balance float64 `json:"balance"`

	// Degenerate is set when every node has at most one child and
	// the tree holds more than two values.
	Degenerate bool `json:"degenerate"`
}

// MinHeight returns the height of a perfectly balanced tree of n
// nodes, ceil(log2(n+1)).
func MinHeight(n int) int {
	if n <= 0 {
		return 0
	}
	return bits.Len(uint(n))
}

// Shape computes the report for t against a diagram of depth levels.
func Shape[T cmp.Ordered](t *bst.Tree[T], depth int) ShapeReport {
	r := ShapeReport{
		Size:      t.Len(),
		Height:    t.Height(),
		MinHeight: MinHeight(t.Len()),
		Leaves:    t.Leaves(),
		Depth:     depth,
		Hidden:    t.CountBelow(depth),
		Balance:   1,
	}
	if r.Height > 0 {
		r.Balance = math.Round(float64(r.MinHeight)/float64(r.Height)*1000) / 1000
	}
	r.Degenerate = r.Size > 2 && r.Height == r.Size
	return r
}

// ============================================================
// Stored sequence analysis
// ============================================================

// Analyzer runs shape analysis over sequences from the history store.
type Analyzer struct {
	store database.Store
	depth int
}

// NewAnalyzer creates an analyzer that reports hidden nodes against
// a diagram of depth levels.
func NewAnalyzer(store database.Store, depth int) *Analyzer {
	return &Analyzer{store: store, depth: depth}
}

// Report is the full analysis of one stored sequence.
type Report struct {
	SequenceID  int64       `json:"sequence_id"`
	Label       string      `json:"label,omitempty"`
	Values      []int       `json:"values"`
	InOrder     []int       `json:"in_order"`
	Shape       ShapeReport `json:"shape"`
	GeneratedAt string      `json:"generated_at"`
	Warnings    []string    `json:"warnings,omitempty"`
}

// AnalyzeSequence loads sequence id, rebuilds its tree and reports
// on the shape.
func (a *Analyzer) AnalyzeSequence(id int64) (*Report, error) {
	seq, err := a.store.GetSequence(id)
	if err != nil {
		return nil, fmt.Errorf("loading sequence for analysis: %w", err)
	}
	report := Analyze(seq.Values, a.depth)
	report.SequenceID = seq.SequenceID
	report.Label = seq.Label
	return report, nil
}

// Analyze builds a tree from values and reports on it.
func Analyze(values []int, depth int) *Report {
	tree := bst.FromSlice(values)
	shape := Shape(tree, depth)

	report := &Report{
		Values:      values,
		InOrder:     tree.InOrder(),
		Shape:       shape,
		GeneratedAt: time.Now().Format(time.RFC3339),
	}

	if shape.Degenerate {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("DEGENERATE: %d values form a single chain. "+
				"Sorted or reverse-sorted input produces this shape.", shape.Size))
	}
	if shape.Hidden > 0 {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("TRUNCATED: %d of %d nodes lie below the %d-level diagram.",
				shape.Hidden, shape.Size, shape.Depth))
	}

	return report
}

// FormatReport generates a human-readable markdown report.
func FormatReport(report *Report) string {
	var b strings.Builder

	b.WriteString("# Tree Shape Report\n\n")
	if report.SequenceID != 0 {
		b.WriteString(fmt.Sprintf("**Sequence:** `%d`", report.SequenceID))
		if report.Label != "" {
			b.WriteString(fmt.Sprintf(" (%s)", report.Label))
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("**Generated:** %s\n\n", report.GeneratedAt))

	b.WriteString(fmt.Sprintf("- **Input:** %s\n", sequence.Format(report.Values)))
	b.WriteString(fmt.Sprintf("- **In-order:** %s\n\n", sequence.Format(report.InOrder)))

	s := report.Shape
	b.WriteString("## Shape\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	b.WriteString(fmt.Sprintf("| Size | %d |\n", s.Size))
	b.WriteString(fmt.Sprintf("| Height | %d |\n", s.Height))
	b.WriteString(fmt.Sprintf("| Optimal Height | %d |\n", s.MinHeight))
	b.WriteString(fmt.Sprintf("| Leaves | %d |\n", s.Leaves))
	b.WriteString(fmt.Sprintf("| Balance | %.3f |\n", s.Balance))
	b.WriteString(fmt.Sprintf("| Hidden Below Depth %d | %d |\n\n", s.Depth, s.Hidden))

	if len(report.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range report.Warnings {
			b.WriteString(fmt.Sprintf("- %s\n", w))
		}
	}

	return b.String()
}
