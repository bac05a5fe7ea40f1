// Package editor turns mouse gestures on a grid into edits of a map: drawing
// walls between vertices, dragging vertices around and merging them when
// they are dropped onto each other.
package editor

import (
	"log/slog"

	"leveled/core"
	"leveled/geometry"
	"leveled/mapdata"
)

// Grid is the editing state for one map. It is driven by Press, Drag and
// Release calls in window coordinates and keeps the map consistent through
// mapdata. It is not safe for concurrent use.
type Grid struct {
	cfg  Config
	data *mapdata.MapData
	log  *slog.Logger

	mode     Mode
	pending  *core.Wall   // Wall being drawn in wall mode, nil otherwise
	selected *core.Vertex // Selected vertex in select mode
	dragging bool         // selected has been picked out of the vertex tree
	cursor   core.Point   // Last pointer position, grid coordinates
}

// New creates a grid that edits data with the given settings. A nil data
// starts an empty map.
func New(cfg Config, data *mapdata.MapData) (*Grid, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if data == nil {
		data = mapdata.New()
	}
	return &Grid{
		cfg:  cfg,
		data: data,
		log:  mapdata.Logger().With("component", "editor"),
		mode: ModeIdle,
	}, nil
}

// Config returns the grid settings
func (g *Grid) Config() Config { return g.cfg }

// Data returns the map being edited
func (g *Grid) Data() *mapdata.MapData { return g.data }

// Mode returns the current mode
func (g *Grid) Mode() Mode { return g.mode }

// Selected returns the selected vertex, or nil
func (g *Grid) Selected() *core.Vertex { return g.selected }

// Pending returns the wall being drawn, or nil
func (g *Grid) Pending() *core.Wall { return g.pending }

// Dragging reports whether a press-drag gesture is in progress
func (g *Grid) Dragging() bool { return g.dragging || g.pending != nil }

// Cursor returns the last pointer position in grid coordinates
func (g *Grid) Cursor() core.Point { return g.cursor }

func (g *Grid) origin() core.Point {
	return core.Pt(g.cfg.GridWidth/2, g.cfg.GridHeight/2)
}

// WindowToGrid converts window coordinates to grid coordinates, whose origin
// is the centre of the grid
func (g *Grid) WindowToGrid(p core.Point) core.Point {
	return p.Sub(g.origin())
}

// GridToWindow converts grid coordinates back to window coordinates
func (g *Grid) GridToWindow(p core.Point) core.Point {
	return p.Add(g.origin())
}

// InGrid reports whether a window position lies on the grid, edges included
func (g *Grid) InGrid(p core.Point) bool {
	return p.X >= 0 && p.X <= g.cfg.GridWidth && p.Y >= 0 && p.Y <= g.cfg.GridHeight
}

// clamp converts a window position to grid coordinates, forcing it onto the
// grid
func (g *Grid) clamp(p core.Point) core.Point {
	p = geometry.Clamp(p, core.Pt(0, 0), core.Pt(g.cfg.GridWidth, g.cfg.GridHeight))
	return g.WindowToGrid(p)
}

// Press handles a button press at window position p. Presses outside the
// grid are ignored.
func (g *Grid) Press(p core.Point) {
	if !g.InGrid(p) {
		return
	}
	gp := g.WindowToGrid(p)
	g.cursor = gp

	switch g.mode {
	case ModeWall:
		g.cancelGesture()
		start, ok := g.data.Vertices().ProximitySearch(gp, g.cfg.SnapDistance)
		if !ok {
			start = g.data.NewVertex(gp)
		}
		// The end starts on top of the start and follows the pointer.
		g.pending = g.data.NewWall(start, g.data.NewVertex(start.Point()))

	case ModeSelect:
		g.cancelGesture()
		g.selected = nil
		if v, ok := g.data.PickVertex(gp, g.cfg.SnapDistance); ok {
			g.selected = v
			g.dragging = true
			g.log.Debug("pick", "vertex", v)
		}
	}
}

// Drag handles pointer motion with the button held. Positions off the grid
// are clamped to its edge.
func (g *Grid) Drag(p core.Point) {
	gp := g.clamp(p)
	g.cursor = gp

	switch {
	case g.mode == ModeWall && g.pending != nil:
		g.pending.End.MoveTo(gp)
	case g.mode == ModeSelect && g.dragging:
		g.selected.MoveTo(gp)
	}
}

// Hover tracks pointer motion with no button held
func (g *Grid) Hover(p core.Point) {
	if g.InGrid(p) {
		g.cursor = g.WindowToGrid(p)
	}
}

// Release ends the gesture started by Press. In wall mode the pending wall
// is committed if it is not degenerate and does not duplicate an existing
// one. In select mode the dragged vertex is merged into a vertex it was
// dropped near, or put back into the map.
func (g *Grid) Release(p core.Point) {
	g.Drag(p)

	switch {
	case g.mode == ModeWall && g.pending != nil:
		g.releaseWall()
	case g.mode == ModeSelect && g.dragging:
		g.releaseVertex()
	}
}

func (g *Grid) releaseWall() {
	w := g.pending
	g.pending = nil

	if n, ok := g.data.SnapVertex(w.End, g.cfg.SnapDistance); ok {
		w.End = n
	}
	if g.data.CommitWall(w) {
		g.log.Debug("wall drawn", "wall", w)
	}
}

func (g *Grid) releaseVertex() {
	g.dragging = false
	g.selected = g.settle(g.selected)
}

// settle gives a dragged vertex back to the map. It is merged into a vertex
// within snapping distance or put back where it is, and the vertex left
// standing is returned. That vertex is dropped, and nil returned, when the
// merge left it without walls.
func (g *Grid) settle(v *core.Vertex) *core.Vertex {
	survivor, ok := g.data.SnapVertex(v, g.cfg.SnapDistance)
	if !ok {
		survivor = g.data.PlaceVertex(v)
	}
	if g.data.DropVertexIfIsolated(survivor) {
		return nil
	}
	return survivor
}

// RightClick clears the selection when p is on the grid
func (g *Grid) RightClick(p core.Point) {
	if !g.InGrid(p) {
		return
	}
	g.cancelGesture()
	g.selected = nil
}

// DeleteSelected removes the selected vertex together with its walls. It
// reports whether anything was deleted.
func (g *Grid) DeleteSelected() bool {
	if g.mode != ModeSelect || g.selected == nil {
		return false
	}
	g.cancelGesture()
	v := g.selected
	if v == nil {
		// The drag being cancelled collapsed the vertex away.
		return true
	}
	g.selected = nil
	g.data.RemoveVertex(v)
	g.log.Debug("delete", "vertex", v)
	return true
}
