package bst

import (
	"cmp"
	"iter"
)

// DefaultDepth is the number of levels captured by a rendering
// snapshot unless the caller asks for another depth.
const DefaultDepth = 6

// Slot is one position of a level-order snapshot. Present is false
// for holes, whether the subtree is missing or lies below an
// already missing parent.
type Slot[T cmp.Ordered] struct {
	Value   T
	Present bool
}

// InOrder returns every value in ascending order. Equal values keep
// their insertion order because ties always descend right.
func (t *Tree[T]) InOrder() []T {
	out := make([]T, 0, t.size)
	for v := range t.All() {
		out = append(out, v)
	}
	return out
}

// All returns an in-order iterator over the tree. Each call to the
// returned sequence starts a fresh walk.
func (t *Tree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		inorder(t.root, yield)
	}
}

func inorder[T cmp.Ordered](n *node[T], yield func(T) bool) bool {
	if n == nil {
		return true
	}
	return inorder(n.left, yield) && yield(n.value) && inorder(n.right, yield)
}

// PreOrder returns the values in node, left, right order. Feeding
// the result back into FromSlice reproduces the same shape.
func (t *Tree[T]) PreOrder() []T {
	out := make([]T, 0, t.size)
	var walk func(n *node[T])
	walk = func(n *node[T]) {
		if n == nil {
			return
		}
		out = append(out, n.value)
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
	return out
}

// Snapshot flattens the top depth levels of the tree in level order,
// padding every missing position so the result always describes a
// complete binary tree of 2^depth - 1 slots. Nodes below depth are
// dropped. It is meant for rendering only.
func (t *Tree[T]) Snapshot(depth int) []Slot[T] {
	if depth <= 0 {
		return nil
	}

	// The walk stops one short of 2^depth, which is exactly the
	// slot count of a complete tree with depth levels.
	limit := 1<<depth - 1
	out := make([]Slot[T], 0, limit)

	queue := []*node[T]{t.root}
	for len(queue) > 0 && len(out) < limit {
		n := queue[0]
		queue = queue[1:]

		if n == nil {
			queue = append(queue, nil, nil)
			out = append(out, Slot[T]{})
			continue
		}
		queue = append(queue, n.left, n.right)
		out = append(out, Slot[T]{Value: n.value, Present: true})
	}
	return out
}
