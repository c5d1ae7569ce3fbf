// Package bst implements an unbalanced binary search tree.
//
// The tree is built once from a sequence of values and is never
// rebalanced, so its shape is a pure function of insertion order.
// Nodes are owned exclusively by their parent and never leave the
// package: every query returns a copy of the values, not a handle
// into the node graph.
package bst

import "cmp"

// node is a single tree vertex. A node owns its children; there is
// no parent link, all walks are top-down.
type node[T cmp.Ordered] struct {
	value T
	left  *node[T]
	right *node[T]
}

// Tree is an unbalanced binary search tree. The zero value is an
// empty tree ready to use.
type Tree[T cmp.Ordered] struct {
	root *node[T]
	size int
}

// New returns an empty tree.
func New[T cmp.Ordered]() *Tree[T] {
	return &Tree[T]{}
}

// FromSlice builds a tree by inserting each value in order into an
// empty tree. An empty or nil slice yields an empty tree.
func FromSlice[T cmp.Ordered](values []T) *Tree[T] {
	t := New[T]()
	for _, v := range values {
		t.insert(v)
	}
	return t
}

func (t *Tree[T]) insert(v T) {
	insert(&t.root, v)
	t.size++
}

// insert descends from slot until it finds a free position. A value
// goes left only when the current node's value is strictly greater,
// so ties always descend right.
func insert[T cmp.Ordered](slot **node[T], v T) {
	if *slot == nil {
		*slot = &node[T]{value: v}
		return
	}
	n := *slot
	if n.value > v {
		insert(&n.left, v)
	} else {
		insert(&n.right, v)
	}
}

// Len returns the number of values in the tree.
func (t *Tree[T]) Len() int {
	return t.size
}

// Empty reports whether the tree holds no values.
func (t *Tree[T]) Empty() bool {
	return t.root == nil
}

// Height returns the number of levels in the tree: 0 when empty,
// 1 for a single node, Len() for a fully degenerate chain.
func (t *Tree[T]) Height() int {
	return height(t.root)
}

func height[T cmp.Ordered](n *node[T]) int {
	if n == nil {
		return 0
	}
	return 1 + max(height(n.left), height(n.right))
}

// Leaves returns the number of nodes with no children.
func (t *Tree[T]) Leaves() int {
	return leaves(t.root)
}

func leaves[T cmp.Ordered](n *node[T]) int {
	switch {
	case n == nil:
		return 0
	case n.left == nil && n.right == nil:
		return 1
	default:
		return leaves(n.left) + leaves(n.right)
	}
}

// CountBelow returns how many nodes sit deeper than depth levels,
// i.e. the nodes a snapshot of that depth leaves out.
func (t *Tree[T]) CountBelow(depth int) int {
	return countBelow(t.root, depth)
}

func countBelow[T cmp.Ordered](n *node[T], depth int) int {
	if n == nil {
		return 0
	}
	if depth <= 0 {
		return 1 + countBelow(n.left, 0) + countBelow(n.right, 0)
	}
	return countBelow(n.left, depth-1) + countBelow(n.right, depth-1)
}
