// Package vertexgraph tracks which pairs of vertices are joined by a wall.
//
// The graph is undirected and stored as a symmetric adjacency map: whenever
// a maps to b with wall w, b maps to a with w too. A vertex id is present as
// a key exactly while it has at least one wall.
package vertexgraph

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"leveled/core"
)

// ErrAsymmetric is wrapped by CheckSymmetry.
var ErrAsymmetric = errors.New("vertexgraph: adjacency not symmetric")

// Graph maps each vertex id to its neighbours and the wall joining them.
type Graph struct {
	adj map[core.VertexID]map[core.VertexID]core.WallID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{adj: make(map[core.VertexID]map[core.VertexID]core.WallID)}
}

func (g *Graph) link(a, b core.VertexID, w core.WallID) {
	m, ok := g.adj[a]
	if !ok {
		m = make(map[core.VertexID]core.WallID)
		g.adj[a] = m
	}
	m[b] = w
}

func (g *Graph) unlink(a, b core.VertexID) {
	m, ok := g.adj[a]
	if !ok {
		return
	}
	delete(m, b)
	if len(m) == 0 {
		delete(g.adj, a)
	}
}

// InsertMapping records w as joining its two endpoints. Walls without both
// endpoints are ignored.
func (g *Graph) InsertMapping(w *core.Wall) {
	if w == nil || !w.Complete() {
		return
	}
	g.link(w.Start.ID, w.End.ID, w.ID)
	g.link(w.End.ID, w.Start.ID, w.ID)
}

// RemoveMapping forgets the edge recorded for w. It only removes the entry
// when the endpoints are still mapped to w's id, so a stale wall cannot drop
// an edge that now belongs to another wall.
func (g *Graph) RemoveMapping(w *core.Wall) {
	if w == nil || !w.Complete() {
		return
	}
	a, b := w.Start.ID, w.End.ID
	if id, ok := g.WallBetween(a, b); !ok || id != w.ID {
		return
	}
	g.unlink(a, b)
	g.unlink(b, a)
}

// Contains reports whether v has at least one wall.
func (g *Graph) Contains(v core.VertexID) bool {
	_, ok := g.adj[v]
	return ok
}

// ContainsEdge reports whether a wall joins v1 and v2, in either direction.
func (g *Graph) ContainsEdge(v1, v2 core.VertexID) bool {
	_, ok := g.WallBetween(v1, v2)
	return ok
}

// WallBetween returns the id of the wall joining v1 and v2.
func (g *Graph) WallBetween(v1, v2 core.VertexID) (core.WallID, bool) {
	w, ok := g.adj[v1][v2]
	return w, ok
}

// Neighbors returns the vertices joined to v, in ascending id order.
func (g *Graph) Neighbors(v core.VertexID) []core.VertexID {
	return slices.Sorted(maps.Keys(g.adj[v]))
}

// Len returns the number of vertices that have at least one wall.
func (g *Graph) Len() int {
	return len(g.adj)
}

// EdgeCount returns the number of undirected edges.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, m := range g.adj {
		n += len(m)
	}
	return n / 2
}

// ModifyMapping merges vertex v1 into v2: every wall ending at v1 is moved to
// end at v2 instead. It returns the walls the caller must retarget from v1 to
// v2 and the walls that no longer exist in the graph and must be deleted:
// the wall directly joining v1 and v2, if any, and every wall from v1 to a
// vertex that already had its own wall to v2.
//
// Equal ids, or an id the graph does not contain, make the call a no-op that
// returns two empty lists.
func (g *Graph) ModifyMapping(v1, v2 core.VertexID) (modified, removed []core.WallID) {
	if v1 == v2 || !g.Contains(v1) || !g.Contains(v2) {
		return nil, nil
	}

	if w, ok := g.WallBetween(v1, v2); ok {
		removed = append(removed, w)
		g.unlink(v1, v2)
		g.unlink(v2, v1)
	}

	// v2 may have lost its only wall above; it gets new ones below.
	for _, u := range g.Neighbors(v1) {
		w := g.adj[v1][u]
		g.unlink(u, v1)

		if _, dup := g.WallBetween(u, v2); dup {
			removed = append(removed, w)
			continue
		}
		g.link(u, v2, w)
		g.link(v2, u, w)
		modified = append(modified, w)
	}

	delete(g.adj, v1)
	if len(g.adj[v2]) == 0 {
		delete(g.adj, v2)
	}
	return modified, removed
}

// CheckSymmetry reports the first directed entry without its reverse twin, or
// any empty adjacency set left behind.
func (g *Graph) CheckSymmetry() error {
	for _, a := range slices.Sorted(maps.Keys(g.adj)) {
		m := g.adj[a]
		if len(m) == 0 {
			return fmt.Errorf("%w: vertex %d has an empty neighbour set", ErrAsymmetric, a)
		}
		for b, w := range m {
			if a == b {
				return fmt.Errorf("%w: vertex %d maps to itself", ErrAsymmetric, a)
			}
			if back, ok := g.WallBetween(b, a); !ok || back != w {
				return fmt.Errorf("%w: %d->%d is wall %d, reverse missing or different", ErrAsymmetric, a, b, w)
			}
		}
	}
	return nil
}
