// Package vertextree implements a 2-D k-d tree over shared vertices, keyed by
// their grid coordinates. The split dimension alternates with depth: x at
// even depths, y at odd depths.
//
// The tree never rebalances. An unlucky insertion order degrades it into a
// list, so every walk over it is iterative and never recurses per level.
package vertextree

import (
	"leveled/core"
	"leveled/geometry"
)

// node is a slot in the tree's arena. Child and parent links are 1-based
// arena indices, with 0 standing for "no node". The parent link only serves
// in-order iteration.
type node struct {
	vertex *core.Vertex
	left   int
	right  int
	parent int
}

// Tree is a k-d tree of vertices. Its zero value is an empty tree.
//
// A vertex at depth d splits its subtree on dimension d mod 2: Insert sends
// vertices whose coordinate on that dimension is less than or equal to the
// node's left, greater right. Removal can promote a vertex whose coordinate
// equals others left in the right subtree, so exact lookups that hit a tie on
// the split coordinate check both sides. No two vertices in the tree share
// exact coordinates.
type Tree struct {
	nodes []node // 1-indexed, allowing 0 to represent "nil"
	free  []int
	root  int
	size  int
}

// New returns an empty tree.
func New() *Tree {
	return &Tree{}
}

// node converts a 1-indexed node index into a node pointer. The pointer is
// only valid until the next alloc.
func (t *Tree) node(idx int) *node {
	return &t.nodes[idx-1]
}

func (t *Tree) alloc(v *core.Vertex, parent int) int {
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		*t.node(idx) = node{vertex: v, parent: parent}
		return idx
	}
	t.nodes = append(t.nodes, node{vertex: v, parent: parent})
	return len(t.nodes)
}

func (t *Tree) release(idx int) {
	*t.node(idx) = node{}
	t.free = append(t.free, idx)
}

// Len returns the number of vertices in the tree.
func (t *Tree) Len() int {
	return t.size
}

// goLeft reports whether p belongs in the left subtree of the node at idx,
// which sits at the given depth.
func (t *Tree) goLeft(idx int, p core.Point, depth int) bool {
	dim := depth % 2
	return p.Coord(dim) <= t.node(idx).vertex.Point().Coord(dim)
}

// child returns the child of idx on the side p belongs to.
func (t *Tree) child(idx int, p core.Point, depth int) int {
	if t.goLeft(idx, p, depth) {
		return t.node(idx).left
	}
	return t.node(idx).right
}

// Insert adds v to the tree. If a vertex already occupies v's exact
// coordinates the call is a no-op and the existing vertex is kept.
func (t *Tree) Insert(v *core.Vertex) {
	if v == nil {
		return
	}
	p := v.Point()

	if t.root == 0 {
		t.root = t.alloc(v, 0)
		t.size++
		return
	}
	if _, ok := t.Search(p); ok {
		return
	}

	idx, depth := t.root, 0
	for {
		n := t.node(idx)
		if t.goLeft(idx, p, depth) {
			if n.left == 0 {
				leaf := t.alloc(v, idx)
				t.node(idx).left = leaf
				break
			}
			idx = n.left
		} else {
			if n.right == 0 {
				leaf := t.alloc(v, idx)
				t.node(idx).right = leaf
				break
			}
			idx = n.right
		}
		depth++
	}
	t.size++
}

// Remove deletes the vertex with the given id. The tree is searched by
// coordinates, the way Search does it, so p must be the coordinates
// the vertex had when it was inserted. Removing a vertex that cannot be
// found that way is a no-op.
func (t *Tree) Remove(id core.VertexID, p core.Point) {
	idx, depth := t.locate(p, func(v *core.Vertex) bool { return v.ID == id })
	if idx != 0 {
		t.removeAt(idx, depth)
	}
}

type frame struct {
	idx   int
	depth int
}

// locate walks the path p takes from the root and returns the first node
// whose vertex satisfies match, with its depth. Where p ties a node's split
// coordinate both subtrees are on the path, left first.
func (t *Tree) locate(p core.Point, match func(*core.Vertex) bool) (int, int) {
	if t.root == 0 {
		return 0, 0
	}

	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.node(f.idx)
		if match(n.vertex) {
			return f.idx, f.depth
		}

		dim := f.depth % 2
		c, split := p.Coord(dim), n.vertex.Point().Coord(dim)
		if c >= split && n.right != 0 {
			stack = append(stack, frame{n.right, f.depth + 1})
		}
		if c <= split && n.left != 0 {
			stack = append(stack, frame{n.left, f.depth + 1})
		}
	}
	return 0, 0
}

// removeAt deletes the vertex held by the node at idx. Interior nodes are
// refilled with the minimum of a subtree along the node's own dimension and
// the removal moves on to that minimum's node, until a leaf is detached.
func (t *Tree) removeAt(idx, depth int) {
	for {
		n := t.node(idx)
		dim := depth % 2

		switch {
		case n.right != 0:
			minIdx, minDepth := t.findMin(n.right, dim, depth+1)
			n.vertex = t.node(minIdx).vertex
			idx, depth = minIdx, minDepth

		case n.left != 0:
			// With no right subtree the replacement comes from the left one,
			// and what remains of it moves into the right slot: every vertex
			// left there is at least the new node's value on dim.
			minIdx, minDepth := t.findMin(n.left, dim, depth+1)
			n.vertex = t.node(minIdx).vertex
			n.right, n.left = n.left, 0
			idx, depth = minIdx, minDepth

		default:
			t.detach(idx)
			t.size--
			return
		}
	}
}

// detach unlinks the leaf at idx from its parent and frees its slot.
func (t *Tree) detach(idx int) {
	parent := t.node(idx).parent
	switch {
	case parent == 0:
		t.root = 0
	case t.node(parent).left == idx:
		t.node(parent).left = 0
	default:
		t.node(parent).right = 0
	}
	t.release(idx)
}

// findMin returns the node holding the smallest coordinate on dim within the
// subtree rooted at idx (at the given depth), together with that node's depth.
//
// Where a node splits on dim the minimum cannot be to its right, so only the
// left child is followed, and the node itself wins when it has none. Where it
// splits on the other dimension the node and both children are candidates.
// Candidates are visited in pre-order and ties keep the first one seen.
func (t *Tree) findMin(idx, dim, depth int) (int, int) {
	best, bestDepth := 0, 0
	consider := func(i, d int) {
		if best == 0 || t.node(i).vertex.Point().Coord(dim) < t.node(best).vertex.Point().Coord(dim) {
			best, bestDepth = i, d
		}
	}

	stack := []frame{{idx, depth}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.node(f.idx)

		if f.depth%2 == dim {
			if n.left == 0 {
				consider(f.idx, f.depth)
			} else {
				stack = append(stack, frame{n.left, f.depth + 1})
			}
			continue
		}

		consider(f.idx, f.depth)
		if n.right != 0 {
			stack = append(stack, frame{n.right, f.depth + 1})
		}
		if n.left != 0 {
			stack = append(stack, frame{n.left, f.depth + 1})
		}
	}
	return best, bestDepth
}

// Search returns the vertex at exactly p.
func (t *Tree) Search(p core.Point) (*core.Vertex, bool) {
	idx, _ := t.locate(p, func(v *core.Vertex) bool { return v.At(p) })
	if idx == 0 {
		return nil, false
	}
	return t.node(idx).vertex, true
}

// ProximitySearch returns a vertex within radius of p, or false if the
// search finds none. A negative radius never matches.
//
// The search follows the single branch that Insert would take and returns
// the first vertex on that path that is close enough. It does not look into
// the other side of a split even when the split line is within radius of p,
// so a qualifying vertex there can be missed. Editing only relies on it to
// snap the cursor to a nearby point, where a miss just means no snap.
func (t *Tree) ProximitySearch(p core.Point, radius float64) (*core.Vertex, bool) {
	if radius < 0 {
		return nil, false
	}

	idx, depth := t.root, 0
	for idx != 0 {
		v := t.node(idx).vertex
		if geometry.WithinRadius(v.Point(), p, radius) {
			return v, true
		}
		idx = t.child(idx, p, depth)
		depth++
	}
	return nil, false
}

// Depth returns the number of levels in the tree, 0 when empty.
func (t *Tree) Depth() int {
	if t.root == 0 {
		return 0
	}

	deepest := 0
	stack := []frame{{t.root, 1}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		deepest = max(deepest, f.depth)

		n := t.node(f.idx)
		if n.left != 0 {
			stack = append(stack, frame{n.left, f.depth + 1})
		}
		if n.right != 0 {
			stack = append(stack, frame{n.right, f.depth + 1})
		}
	}
	return deepest
}
