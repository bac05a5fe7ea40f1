// Package walltree stores walls in an AVL tree keyed by wall id.
//
// Walls are few compared to vertices and the tree is height balanced, so
// insert and remove recurse. Iterators use an explicit stack and nodes keep
// no parent link.
package walltree

import (
	"errors"
	"fmt"

	"leveled/core"
)

// ErrUnbalanced is wrapped by CheckBalance when the tree violates an AVL
// invariant.
var ErrUnbalanced = errors.New("walltree: invariant violated")

type node struct {
	wall   *core.Wall
	left   *node
	right  *node
	height int
}

// Tree is an AVL tree of walls ordered by id. Its zero value is an empty tree.
type Tree struct {
	root *node
	size int
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// Len returns the number of walls in the tree.
func (t *Tree) Len() int {
	return t.size
}

// Height returns the height of the tree: 0 when empty, 1 for a single wall.
func (t *Tree) Height() int {
	return height(t.root)
}

func height(n *node) int {
	if n == nil {
		return 0
	}
	return n.height
}

func (n *node) update() {
	n.height = 1 + max(height(n.left), height(n.right))
}

func (n *node) balance() int {
	return height(n.left) - height(n.right)
}

func rotateRight(n *node) *node {
	l := n.left
	n.left = l.right
	l.right = n
	n.update()
	l.update()
	return l
}

func rotateLeft(n *node) *node {
	r := n.right
	n.right = r.left
	r.left = n
	n.update()
	r.update()
	return r
}

// rebalance restores the AVL property at n after one of its subtrees changed
// height by at most one, and returns the new subtree root.
func rebalance(n *node) *node {
	n.update()
	switch b := n.balance(); {
	case b > 1:
		if n.left.balance() < 0 {
			n.left = rotateLeft(n.left) // LR
		}
		return rotateRight(n) // LL

	case b < -1:
		if n.right.balance() > 0 {
			n.right = rotateRight(n.right) // RL
		}
		return rotateLeft(n) // RR
	}
	return n
}

// Insert adds w to the tree. A wall whose id is already present is ignored.
func (t *Tree) Insert(w *core.Wall) {
	if w == nil {
		return
	}
	var added bool
	t.root = insert(t.root, w, &added)
	if added {
		t.size++
	}
}

func insert(n *node, w *core.Wall, added *bool) *node {
	if n == nil {
		*added = true
		return &node{wall: w, height: 1}
	}

	switch {
	case w.ID < n.wall.ID:
		n.left = insert(n.left, w, added)
	case w.ID > n.wall.ID:
		n.right = insert(n.right, w, added)
	default:
		return n
	}
	return rebalance(n)
}

// Remove deletes the wall with the given id. Removing an absent id is a
// no-op.
func (t *Tree) Remove(id core.WallID) {
	var removed bool
	t.root = remove(t.root, id, &removed)
	if removed {
		t.size--
	}
}

func remove(n *node, id core.WallID, removed *bool) *node {
	if n == nil {
		return nil
	}

	switch {
	case id < n.wall.ID:
		n.left = remove(n.left, id, removed)
	case id > n.wall.ID:
		n.right = remove(n.right, id, removed)
	default:
		*removed = true
		switch {
		case n.left == nil:
			return n.right
		case n.right == nil:
			return n.left
		}

		// Two children: take over the in-order successor's wall and remove
		// the successor from the right subtree instead.
		succ := n.right
		for succ.left != nil {
			succ = succ.left
		}
		n.wall = succ.wall
		var ignored bool
		n.right = remove(n.right, succ.wall.ID, &ignored)
	}
	return rebalance(n)
}

// Search returns the wall with the given id.
func (t *Tree) Search(id core.WallID) (*core.Wall, bool) {
	n := t.root
	for n != nil {
		switch {
		case id < n.wall.ID:
			n = n.left
		case id > n.wall.ID:
			n = n.right
		default:
			return n.wall, true
		}
	}
	return nil, false
}

// CheckBalance walks the whole tree and reports the first node whose stored
// height is stale, whose balance factor is outside [-1, 1], or whose id is
// out of order. It returns nil for a consistent tree.
func (t *Tree) CheckBalance() error {
	count := 0
	if _, err := check(t.root, nil, nil, &count); err != nil {
		return err
	}
	if count != t.size {
		return fmt.Errorf("%w: %d nodes but size %d", ErrUnbalanced, count, t.size)
	}
	return nil
}

func check(n *node, lo, hi *core.WallID, count *int) (int, error) {
	if n == nil {
		return 0, nil
	}
	*count++

	id := n.wall.ID
	if (lo != nil && id <= *lo) || (hi != nil && id >= *hi) {
		return 0, fmt.Errorf("%w: wall %d out of order", ErrUnbalanced, id)
	}

	lh, err := check(n.left, lo, &id, count)
	if err != nil {
		return 0, err
	}
	rh, err := check(n.right, &id, hi, count)
	if err != nil {
		return 0, err
	}

	h := 1 + max(lh, rh)
	if n.height != h {
		return 0, fmt.Errorf("%w: wall %d stores height %d, actual %d", ErrUnbalanced, id, n.height, h)
	}
	if b := lh - rh; b < -1 || b > 1 {
		return 0, fmt.Errorf("%w: wall %d has balance %d", ErrUnbalanced, id, b)
	}
	return h, nil
}
