package walltree

import (
	"iter"

	"leveled/core"
)

// InOrderIterator visits walls in ascending id order. Iterators are
// forward-only and are invalidated by any Insert or Remove.
type InOrderIterator struct {
	stack []*node
}

// Begin returns an in-order iterator positioned on the smallest id.
func (t *Tree) Begin() *InOrderIterator {
	it := &InOrderIterator{}
	it.pushLeft(t.root)
	return it
}

func (it *InOrderIterator) pushLeft(n *node) {
	for ; n != nil; n = n.left {
		it.stack = append(it.stack, n)
	}
}

// Valid reports whether the iterator is positioned on a wall.
func (it *InOrderIterator) Valid() bool {
	return len(it.stack) > 0
}

// Wall returns the current wall, or nil past the end.
func (it *InOrderIterator) Wall() *core.Wall {
	if len(it.stack) == 0 {
		return nil
	}
	return it.stack[len(it.stack)-1].wall
}

// Next advances to the next larger id.
func (it *InOrderIterator) Next() {
	n := len(it.stack)
	if n == 0 {
		return
	}
	cur := it.stack[n-1]
	it.stack = it.stack[:n-1]
	it.pushLeft(cur.right)
}

// PreOrderIterator visits each node before its children, left subtree first.
type PreOrderIterator struct {
	stack []*node
}

// PreOrderBegin returns a pre-order iterator positioned on the root.
func (t *Tree) PreOrderBegin() *PreOrderIterator {
	it := &PreOrderIterator{}
	if t.root != nil {
		it.stack = append(it.stack, t.root)
	}
	return it
}

// Valid reports whether the iterator is positioned on a wall.
func (it *PreOrderIterator) Valid() bool {
	return len(it.stack) > 0
}

// Wall returns the current wall, or nil past the end.
func (it *PreOrderIterator) Wall() *core.Wall {
	if len(it.stack) == 0 {
		return nil
	}
	return it.stack[len(it.stack)-1].wall
}

// Next advances in pre-order.
func (it *PreOrderIterator) Next() {
	n := len(it.stack)
	if n == 0 {
		return
	}
	cur := it.stack[n-1]
	it.stack = it.stack[:n-1]
	if cur.right != nil {
		it.stack = append(it.stack, cur.right)
	}
	if cur.left != nil {
		it.stack = append(it.stack, cur.left)
	}
}

// All returns an iterator over the walls in ascending id order.
func (t *Tree) All() iter.Seq[*core.Wall] {
	return func(yield func(*core.Wall) bool) {
		for it := t.Begin(); it.Valid(); it.Next() {
			if !yield(it.Wall()) {
				return
			}
		}
	}
}

// PreOrder returns an iterator over the walls in pre-order.
func (t *Tree) PreOrder() iter.Seq[*core.Wall] {
	return func(yield func(*core.Wall) bool) {
		for it := t.PreOrderBegin(); it.Valid(); it.Next() {
			if !yield(it.Wall()) {
				return
			}
		}
	}
}
