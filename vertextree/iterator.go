package vertextree

import (
	"iter"

	"leveled/core"
)

// InOrderIterator walks the tree in in-order. It follows parent links to find
// each successor, so it holds no stack of its own.
//
// Iterators are forward-only and are invalidated by any Insert or Remove.
type InOrderIterator struct {
	t   *Tree
	idx int
}

// Begin returns an in-order iterator positioned on the leftmost vertex.
func (t *Tree) Begin() *InOrderIterator {
	it := &InOrderIterator{t: t}
	if t.root != 0 {
		it.idx = t.leftmost(t.root)
	}
	return it
}

func (t *Tree) leftmost(idx int) int {
	for t.node(idx).left != 0 {
		idx = t.node(idx).left
	}
	return idx
}

// Valid reports whether the iterator is positioned on a vertex.
func (it *InOrderIterator) Valid() bool {
	return it.idx != 0
}

// Vertex returns the current vertex, or nil past the end.
func (it *InOrderIterator) Vertex() *core.Vertex {
	if it.idx == 0 {
		return nil
	}
	return it.t.node(it.idx).vertex
}

// Next advances to the in-order successor.
func (it *InOrderIterator) Next() {
	if it.idx == 0 {
		return
	}
	t := it.t
	if r := t.node(it.idx).right; r != 0 {
		it.idx = t.leftmost(r)
		return
	}

	// Climb until we arrive from a left child; that parent is next.
	child := it.idx
	parent := t.node(child).parent
	for parent != 0 && t.node(parent).right == child {
		child = parent
		parent = t.node(parent).parent
	}
	it.idx = parent
}

// PreOrderIterator walks the tree in pre-order using an explicit stack.
type PreOrderIterator struct {
	t     *Tree
	stack []int
}

// PreOrderBegin returns a pre-order iterator positioned on the root.
func (t *Tree) PreOrderBegin() *PreOrderIterator {
	it := &PreOrderIterator{t: t}
	if t.root != 0 {
		it.stack = append(it.stack, t.root)
	}
	return it
}

// Valid reports whether the iterator is positioned on a vertex.
func (it *PreOrderIterator) Valid() bool {
	return len(it.stack) > 0
}

// Vertex returns the current vertex, or nil past the end.
func (it *PreOrderIterator) Vertex() *core.Vertex {
	if len(it.stack) == 0 {
		return nil
	}
	return it.t.node(it.stack[len(it.stack)-1]).vertex
}

// Next pops the current node and pushes its right child then its left child,
// so the left subtree is visited first.
func (it *PreOrderIterator) Next() {
	n := len(it.stack)
	if n == 0 {
		return
	}
	cur := it.t.node(it.stack[n-1])
	it.stack = it.stack[:n-1]
	if cur.right != 0 {
		it.stack = append(it.stack, cur.right)
	}
	if cur.left != 0 {
		it.stack = append(it.stack, cur.left)
	}
}

// All returns an iterator over the vertices in in-order.
//
//	for v := range tree.All() {
//	    fmt.Println(v)
//	}
func (t *Tree) All() iter.Seq[*core.Vertex] {
	return func(yield func(*core.Vertex) bool) {
		for it := t.Begin(); it.Valid(); it.Next() {
			if !yield(it.Vertex()) {
				return
			}
		}
	}
}

// PreOrder returns an iterator over the vertices in pre-order.
func (t *Tree) PreOrder() iter.Seq[*core.Vertex] {
	return func(yield func(*core.Vertex) bool) {
		for it := t.PreOrderBegin(); it.Valid(); it.Next() {
			if !yield(it.Vertex()) {
				return
			}
		}
	}
}
