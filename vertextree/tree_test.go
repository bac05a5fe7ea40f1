package vertextree

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"leveled/core"
)

// fixture builds the four-vertex tree
//
//	      v1(5,5)
//	     /       \
//	 v2(1,8)    v3(7,7)
//	   /
//	v4(4,3)
func fixture() (*Tree, []*core.Vertex) {
	var g core.IDGenerator
	vs := []*core.Vertex{
		g.NewVertex(core.Pt(5, 5)),
		g.NewVertex(core.Pt(1, 8)),
		g.NewVertex(core.Pt(7, 7)),
		g.NewVertex(core.Pt(4, 3)),
	}
	tr := New()
	for _, v := range vs {
		tr.Insert(v)
	}
	return tr, vs
}

func collect(seq func(func(*core.Vertex) bool)) []*core.Vertex {
	var out []*core.Vertex
	seq(func(v *core.Vertex) bool {
		out = append(out, v)
		return true
	})
	return out
}

func TestInsertAndSearch(t *testing.T) {
	tr, vs := fixture()
	require.Equal(t, 4, tr.Len())
	require.Equal(t, 3, tr.Depth())

	for _, v := range vs {
		got, ok := tr.Search(v.Point())
		require.True(t, ok, "search %v", v)
		require.Same(t, v, got)
	}

	_, ok := tr.Search(core.Pt(4, 4))
	require.False(t, ok)
}

func TestInsertDuplicateIsNoop(t *testing.T) {
	tr, vs := fixture()
	dup := &core.Vertex{ID: 99, X: 7, Y: 7}
	tr.Insert(dup)

	require.Equal(t, 4, tr.Len())
	got, ok := tr.Search(core.Pt(7, 7))
	require.True(t, ok)
	require.Same(t, vs[2], got)

	tr.Insert(nil)
	require.Equal(t, 4, tr.Len())
}

func TestTraversalOrder(t *testing.T) {
	tr, vs := fixture()
	v1, v2, v3, v4 := vs[0], vs[1], vs[2], vs[3]

	require.Equal(t, []*core.Vertex{v4, v2, v1, v3}, collect(tr.All()))
	require.Equal(t, []*core.Vertex{v1, v2, v4, v3}, collect(tr.PreOrder()))

	var ids []core.VertexID
	for it := tr.Begin(); it.Valid(); it.Next() {
		ids = append(ids, it.Vertex().ID)
	}
	require.Equal(t, []core.VertexID{v4.ID, v2.ID, v1.ID, v3.ID}, ids)
}

func TestEmptyTree(t *testing.T) {
	tr := New()
	require.Equal(t, 0, tr.Len())
	require.Equal(t, 0, tr.Depth())
	require.False(t, tr.Begin().Valid())
	require.Nil(t, tr.Begin().Vertex())
	require.False(t, tr.PreOrderBegin().Valid())
	require.Empty(t, collect(tr.All()))

	_, ok := tr.Search(core.Pt(0, 0))
	require.False(t, ok)
	_, ok = tr.ProximitySearch(core.Pt(0, 0), 10)
	require.False(t, ok)

	tr.Remove(0, core.Pt(0, 0))
	require.Equal(t, 0, tr.Len())
}

func TestAllStopsEarly(t *testing.T) {
	tr, _ := fixture()
	n := 0
	for range tr.All() {
		n++
		if n == 2 {
			break
		}
	}
	require.Equal(t, 2, n)
}

func TestProximitySearch(t *testing.T) {
	t.Run("single", func(t *testing.T) {
		v1 := &core.Vertex{ID: 0, X: 5, Y: 5}
		tr := New()
		tr.Insert(v1)

		got, ok := tr.ProximitySearch(core.Pt(8, 9), 5)
		require.True(t, ok)
		require.Same(t, v1, got)

		_, ok = tr.ProximitySearch(core.Pt(9, 9), 5)
		require.False(t, ok)

		_, ok = tr.ProximitySearch(core.Pt(5, 5), -1)
		require.False(t, ok)
	})

	t.Run("multi", func(t *testing.T) {
		tr, vs := fixture()

		got, ok := tr.ProximitySearch(core.Pt(8, 8), 2)
		require.True(t, ok)
		require.Same(t, vs[2], got)

		_, ok = tr.ProximitySearch(core.Pt(12, 12), 2)
		require.False(t, ok)

		_, ok = tr.ProximitySearch(core.Pt(10, 10), 0)
		require.False(t, ok)

		got, ok = tr.ProximitySearch(core.Pt(4, 3), 0)
		require.True(t, ok)
		require.Same(t, vs[3], got)
	})
}

func TestRemove(t *testing.T) {
	tests := []struct {
		name   string
		remove int
		order  []int
	}{
		{"Root", 0, []int{3, 1, 2}},
		{"Leaf", 3, []int{1, 0, 2}},
		{"InteriorLeftOnly", 1, []int{3, 0, 2}},
		{"RightLeaf", 2, []int{3, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, vs := fixture()
			gone := vs[tt.remove]
			tr.Remove(gone.ID, gone.Point())

			require.Equal(t, 3, tr.Len())
			_, ok := tr.Search(gone.Point())
			require.False(t, ok)

			var want []*core.Vertex
			for _, i := range tt.order {
				want = append(want, vs[i])
			}
			require.ElementsMatch(t, want, collect(tr.All()))
			for _, v := range want {
				got, ok := tr.Search(v.Point())
				require.True(t, ok, "search %v", v)
				require.Same(t, v, got)
			}
			checkInvariants(t, tr)
		})
	}
}

func TestRemoveAbsent(t *testing.T) {
	tr, vs := fixture()

	tr.Remove(42, core.Pt(5, 5))
	tr.Remove(vs[0].ID, core.Pt(100, 100))
	require.Equal(t, 4, tr.Len())
	checkInvariants(t, tr)
}

func TestRemoveLeftOnlyMovesSubtreeRight(t *testing.T) {
	var g core.IDGenerator
	root := g.NewVertex(core.Pt(5, 5))
	mid := g.NewVertex(core.Pt(3, 3))
	low := g.NewVertex(core.Pt(4, 1))

	tr := New()
	for _, v := range []*core.Vertex{root, mid, low} {
		tr.Insert(v)
	}
	require.Equal(t, 3, tr.Depth())

	tr.Remove(root.ID, root.Point())

	require.Equal(t, 2, tr.Len())
	require.Equal(t, []*core.Vertex{mid, low}, collect(tr.PreOrder()))
	require.Zero(t, tr.node(tr.root).left)
	require.NotZero(t, tr.node(tr.root).right)

	got, ok := tr.Search(low.Point())
	require.True(t, ok)
	require.Same(t, low, got)
	checkInvariants(t, tr)
}

func TestRemoveKeepsTiedVerticesFindable(t *testing.T) {
	var g core.IDGenerator
	a := g.NewVertex(core.Pt(5, 5))
	b := g.NewVertex(core.Pt(7, 1))
	c := g.NewVertex(core.Pt(7, 9))

	tr := New()
	for _, v := range []*core.Vertex{a, b, c} {
		tr.Insert(v)
	}

	// b is promoted to the root and c, which shares its x, stays on the right.
	tr.Remove(a.ID, a.Point())

	got, ok := tr.Search(c.Point())
	require.True(t, ok)
	require.Same(t, c, got)

	tr.Insert(&core.Vertex{ID: 50, X: 7, Y: 9})
	require.Equal(t, 2, tr.Len())

	tr.Remove(c.ID, c.Point())
	require.Equal(t, 1, tr.Len())
	checkInvariants(t, tr)
}

func TestDegenerateListShape(t *testing.T) {
	tr := New()
	var g core.IDGenerator
	const n = 5000
	for i := 0; i < n; i++ {
		tr.Insert(g.NewVertex(core.Pt(i, i)))
	}
	require.Equal(t, n, tr.Len())
	require.Equal(t, n, tr.Depth())

	_, ok := tr.Search(core.Pt(n-1, n-1))
	require.True(t, ok)

	tr.Remove(0, core.Pt(0, 0))
	require.Equal(t, n-1, tr.Len())
	require.Len(t, collect(tr.All()), n-1)
}

func TestArenaReusesSlots(t *testing.T) {
	tr, vs := fixture()
	tr.Remove(vs[3].ID, vs[3].Point())
	tr.Insert(&core.Vertex{ID: 10, X: 0, Y: 0})

	require.Len(t, tr.nodes, 4)
	require.Equal(t, 4, tr.Len())
}

func TestRandom(t *testing.T) {
	for _, pop := range []int{1, 2, 5, 30, 200, 1000} {
		t.Run(fmt.Sprintf("pop=%d", pop), func(t *testing.T) {
			rnd := rand.New(rand.NewSource(int64(pop)))
			var g core.IDGenerator
			tr := New()

			// Small coordinate range so ties on the split axis are common.
			span := 4 + pop/10
			live := make(map[core.Point]*core.Vertex)
			for i := 0; i < pop; i++ {
				v := g.NewVertex(core.Pt(rnd.Intn(span), rnd.Intn(span)))
				tr.Insert(v)
				if _, dup := live[v.Point()]; !dup {
					live[v.Point()] = v
				}
				require.Equal(t, len(live), tr.Len())
			}
			checkInvariants(t, tr)
			checkSearch(t, tr, live)

			order := make([]*core.Vertex, 0, len(live))
			for v := range tr.PreOrder() {
				order = append(order, v)
			}
			rnd.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

			for _, v := range order {
				tr.Remove(v.ID, v.Point())
				delete(live, v.Point())

				_, ok := tr.Search(v.Point())
				require.False(t, ok, "removed %v still found", v)
				require.Equal(t, len(live), tr.Len())
				checkInvariants(t, tr)
				checkSearch(t, tr, live)
			}
			require.Equal(t, 0, tr.Len())
		})
	}
}

func checkSearch(t *testing.T, tr *Tree, live map[core.Point]*core.Vertex) {
	t.Helper()
	for p, v := range live {
		got, ok := tr.Search(p)
		require.True(t, ok, "search %v", p)
		require.Same(t, v, got)
	}
	require.Len(t, collect(tr.All()), len(live))
}

// checkInvariants verifies parent links and the split order at every node:
// everything left of a node is <= it on the node's dimension and everything
// right of it is >= it.
func checkInvariants(t *testing.T, tr *Tree) {
	t.Helper()
	if tr.root == 0 {
		require.Equal(t, 0, tr.size)
		return
	}
	require.Zero(t, tr.node(tr.root).parent)

	count := 0
	var walk func(idx, depth int) []core.Point
	walk = func(idx, depth int) []core.Point {
		if idx == 0 {
			return nil
		}
		count++
		n := tr.node(idx)
		for _, c := range []int{n.left, n.right} {
			if c != 0 {
				require.Equal(t, idx, tr.node(c).parent, "parent of %d", c)
			}
		}
		dim := depth % 2
		split := n.vertex.Point().Coord(dim)
		left := walk(n.left, depth+1)
		right := walk(n.right, depth+1)
		for _, p := range left {
			require.LessOrEqual(t, p.Coord(dim), split, "left of %v", n.vertex)
		}
		for _, p := range right {
			require.GreaterOrEqual(t, p.Coord(dim), split, "right of %v", n.vertex)
		}
		out := append(left, right...)
		return append(out, n.vertex.Point())
	}
	walk(tr.root, 0)
	require.Equal(t, tr.size, count)
}
