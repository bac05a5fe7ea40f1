// Package core contains the fundamental types shared by the level editor's
// geometry index, editing logic and renderers.
package core

import "fmt"

// Point represents a 2D integer grid coordinate.
type Point struct {
	X, Y int
}

// Pt is a convenience function to create a Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns the component-wise sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the component-wise difference of two points.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Coord returns the coordinate along dimension dim (0 for X, 1 for Y).
func (p Point) Coord(dim int) int {
	if dim == 0 {
		return p.X
	}
	return p.Y
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Bounds represents a rectangular area.
type Bounds struct {
	Min, Max Point
}

// Width returns the width of the bounds.
func (b Bounds) Width() int {
	return b.Max.X - b.Min.X
}

// Height returns the height of the bounds.
func (b Bounds) Height() int {
	return b.Max.Y - b.Min.Y
}

// Contains checks if a point is within the bounds.
func (b Bounds) Contains(p Point) bool {
	return p.X >= b.Min.X && p.X < b.Max.X &&
		p.Y >= b.Min.Y && p.Y < b.Max.Y
}

// VertexID identifies a vertex. IDs come from an IDGenerator and are never reused.
type VertexID int

// WallID identifies a wall. Wall ids are a separate sequence from vertex ids.
type WallID int

// Vertex is a point placed on the grid. Vertices are shared by pointer:
// the vertex tree, wall endpoints and the editor's selection may all hold
// the same *Vertex at once.
type Vertex struct {
	ID VertexID `json:"id"`
	X  int      `json:"x"`
	Y  int      `json:"y"`
}

// Point returns the vertex coordinates.
func (v *Vertex) Point() Point {
	return Point{X: v.X, Y: v.Y}
}

// MoveTo updates the vertex coordinates in place.
func (v *Vertex) MoveTo(p Point) {
	v.X, v.Y = p.X, p.Y
}

// At reports whether the vertex sits exactly at p.
func (v *Vertex) At(p Point) bool {
	return v.X == p.X && v.Y == p.Y
}

func (v *Vertex) String() string {
	return fmt.Sprintf("v%d(%d,%d)", v.ID, v.X, v.Y)
}

// Wall is a segment between two vertices.
type Wall struct {
	ID    WallID  `json:"id"`
	Start *Vertex `json:"start"`
	End   *Vertex `json:"end"`
}

// Complete reports whether both endpoints are set.
func (w *Wall) Complete() bool {
	return w.Start != nil && w.End != nil
}

// Degenerate reports whether both endpoints sit at the same coordinates.
func (w *Wall) Degenerate() bool {
	return w.Complete() && w.Start.At(w.End.Point())
}

// ResetVertices drops both endpoint references.
func (w *Wall) ResetVertices() {
	w.Start = nil
	w.End = nil
}

// Retarget replaces every endpoint with id old by v. It reports whether an
// endpoint was changed.
func (w *Wall) Retarget(old VertexID, v *Vertex) bool {
	changed := false
	if w.Start != nil && w.Start.ID == old {
		w.Start = v
		changed = true
	}
	if w.End != nil && w.End.ID == old {
		w.End = v
		changed = true
	}
	return changed
}

func (w *Wall) String() string {
	return fmt.Sprintf("w%d[%v -> %v]", w.ID, w.Start, w.End)
}

// IDGenerator hands out vertex and wall ids for one map. Each map owns its
// own generator so independent maps never share a sequence.
type IDGenerator struct {
	nextVertex VertexID
	nextWall   WallID
}

// NextVertexID returns the next unused vertex id.
func (g *IDGenerator) NextVertexID() VertexID {
	id := g.nextVertex
	g.nextVertex++
	return id
}

// NextWallID returns the next unused wall id.
func (g *IDGenerator) NextWallID() WallID {
	id := g.nextWall
	g.nextWall++
	return id
}

// NewVertex creates a vertex at p with a fresh id.
func (g *IDGenerator) NewVertex(p Point) *Vertex {
	return &Vertex{ID: g.NextVertexID(), X: p.X, Y: p.Y}
}

// NewWall creates a wall between start and end with a fresh id. Either
// endpoint may be nil for a wall that is still being drawn.
func (g *IDGenerator) NewWall(start, end *Vertex) *Wall {
	return &Wall{ID: g.NextWallID(), Start: start, End: end}
}
