// Package mapdata keeps the vertex tree, the wall tree and the vertex graph of
// one map consistent with each other. Every edit the editor makes goes
// through a MapData method so the three structures change together.
package mapdata

import (
	"leveled/core"
	"leveled/vertexgraph"
	"leveled/vertextree"
	"leveled/walltree"
)

// MapData is the geometry of one map. It is not safe for concurrent use.
type MapData struct {
	ids      core.IDGenerator
	vertices *vertextree.Tree
	walls    *walltree.Tree
	graph    *vertexgraph.Graph
}

// New returns an empty map with its own id sequences.
func New() *MapData {
	return &MapData{
		vertices: vertextree.New(),
		walls:    walltree.New(),
		graph:    vertexgraph.New(),
	}
}

// Vertices returns the vertex tree. Callers may read it freely; edits
// should go through MapData.
func (m *MapData) Vertices() *vertextree.Tree { return m.vertices }

// Walls returns the wall tree.
func (m *MapData) Walls() *walltree.Tree { return m.walls }

// Graph returns the vertex graph.
func (m *MapData) Graph() *vertexgraph.Graph { return m.graph }

// NewVertex creates a vertex at p with a fresh id. The vertex is not added
// to the map.
func (m *MapData) NewVertex(p core.Point) *core.Vertex {
	return m.ids.NewVertex(p)
}

// NewWall creates a wall with a fresh id. The wall is not added to the map.
func (m *MapData) NewWall(start, end *core.Vertex) *core.Wall {
	return m.ids.NewWall(start, end)
}

// CommitWall adds w to the map. An endpoint whose coordinates are already
// taken by another vertex is replaced by that vertex. It returns false, and
// changes nothing, when w is missing an endpoint, when both endpoints end up
// at the same coordinates, or when the two endpoints are already joined.
func (m *MapData) CommitWall(w *core.Wall) bool {
	if w == nil || !w.Complete() {
		return false
	}
	start, end := m.resolve(w.Start), m.resolve(w.End)
	if start.At(end.Point()) || m.graph.ContainsEdge(start.ID, end.ID) {
		return false
	}
	w.Start, w.End = start, end

	m.vertices.Insert(start)
	m.vertices.Insert(end)
	m.walls.Insert(w)
	m.graph.InsertMapping(w)

	Logger().Debug("commit wall", "wall", w.ID, "start", start, "end", end)
	return true
}

// resolve returns the vertex already stored at v's coordinates, or v itself.
func (m *MapData) resolve(v *core.Vertex) *core.Vertex {
	if existing, ok := m.vertices.Search(v.Point()); ok {
		return existing
	}
	return v
}

// SnapVertex looks for a vertex within radius of v and, if there is one,
// merges v into it. v must not be in the vertex tree, which is the case for
// a vertex taken out with PickVertex or one that was never committed.
//
// The returned vertex is the one left standing at the snapped position; it
// is in the vertex tree. Usually that is the neighbour: walls that ended at
// v now end there, and walls the merge made redundant are deleted. When the
// neighbour has no walls but v does, v moves onto the neighbour's
// coordinates and takes its place instead.
func (m *MapData) SnapVertex(v *core.Vertex, radius float64) (*core.Vertex, bool) {
	n, ok := m.vertices.ProximitySearch(v.Point(), radius)
	if !ok || n == v {
		return nil, false
	}
	return m.merge(v, n), true
}

func (m *MapData) merge(v, n *core.Vertex) *core.Vertex {
	log := Logger()

	if m.graph.Contains(v.ID) && !m.graph.Contains(n.ID) {
		m.vertices.Remove(n.ID, n.Point())
		v.MoveTo(n.Point())
		m.vertices.Insert(v)
		log.Debug("snap onto isolated vertex", "vertex", v, "dropped", n.ID)
		return v
	}

	modified, removed := m.graph.ModifyMapping(v.ID, n.ID)
	for _, id := range modified {
		if w, ok := m.walls.Search(id); ok {
			w.Retarget(v.ID, n)
		}
	}
	for _, id := range removed {
		m.walls.Remove(id)
	}
	m.vertices.Remove(v.ID, v.Point())

	log.Debug("merge vertex", "from", v.ID, "into", n, "modified", modified, "removed", removed)
	return n
}

// PickVertex takes the vertex nearest p, within radius, out of the vertex
// tree so it can be moved. Its walls keep referring to it. Every vertex
// picked must be given back with PlaceVertex or merged with SnapVertex.
func (m *MapData) PickVertex(p core.Point, radius float64) (*core.Vertex, bool) {
	v, ok := m.vertices.ProximitySearch(p, radius)
	if !ok {
		return nil, false
	}
	m.vertices.Remove(v.ID, v.Point())
	return v, true
}

// PlaceVertex puts a picked vertex back at its current coordinates and
// returns the vertex standing there afterwards. If another vertex already
// occupies them the two are merged, as SnapVertex would.
func (m *MapData) PlaceVertex(v *core.Vertex) *core.Vertex {
	if existing, ok := m.vertices.Search(v.Point()); ok && existing != v {
		return m.merge(v, existing)
	}
	m.vertices.Insert(v)
	return v
}

// RemoveWall deletes the wall with the given id. Endpoints left without any
// wall are removed from the vertex tree as well. It reports whether the wall
// existed.
func (m *MapData) RemoveWall(id core.WallID) bool {
	w, ok := m.walls.Search(id)
	if !ok {
		return false
	}
	m.walls.Remove(id)
	m.graph.RemoveMapping(w)
	Logger().Debug("remove wall", "wall", id)

	m.DropVertexIfIsolated(w.Start)
	m.DropVertexIfIsolated(w.End)
	return true
}

// RemoveVertex deletes v and every wall ending at it.
func (m *MapData) RemoveVertex(v *core.Vertex) {
	for _, u := range m.graph.Neighbors(v.ID) {
		if id, ok := m.graph.WallBetween(v.ID, u); ok {
			m.RemoveWall(id)
		}
	}
	m.vertices.Remove(v.ID, v.Point())
}

// DropVertexIfIsolated removes v from the vertex tree when no wall ends at
// it, and reports whether it did.
func (m *MapData) DropVertexIfIsolated(v *core.Vertex) bool {
	if v == nil || m.graph.Contains(v.ID) {
		return false
	}
	if got, ok := m.vertices.Search(v.Point()); !ok || got != v {
		return false
	}
	m.vertices.Remove(v.ID, v.Point())
	Logger().Debug("drop isolated vertex", "vertex", v)
	return true
}

// VertexCount returns the number of vertices in the tree.
func (m *MapData) VertexCount() int { return m.vertices.Len() }

// WallCount returns the number of committed walls.
func (m *MapData) WallCount() int { return m.walls.Len() }
