package editor

import "leveled/core"

// Draw renders the grid background, the map and the gesture in progress.
// Walls come first so vertices are drawn on top of them, and the selection
// and the pending wall come last. The selected vertex is labelled with its
// grid coordinates.
func (g *Grid) Draw(r Renderer) {
	g.drawBackground(r)

	for w := range g.data.Walls().All() {
		style := StyleWall
		if g.touchesSelected(w) {
			style = StyleSelected
		}
		g.line(r, w.Start.Point(), w.End.Point(), style)
	}
	for v := range g.data.Vertices().All() {
		g.point(r, v.Point(), StyleVertex)
	}

	if w := g.pending; w != nil {
		g.line(r, w.Start.Point(), w.End.Point(), StylePending)
		g.point(r, w.Start.Point(), StylePending)
		g.point(r, w.End.Point(), StylePending)
	}
	if v := g.selected; v != nil {
		g.point(r, v.Point(), StyleSelected)
		r.DrawText(g.GridToWindow(v.Point()).Add(core.Pt(2, -2)), v.Point().String(), StyleText)
	}
}

func (g *Grid) touchesSelected(w *core.Wall) bool {
	return g.selected != nil && (w.Start == g.selected || w.End == g.selected)
}

// drawBackground draws GridLines evenly spaced lines across each axis, plus
// the two axes through the origin
func (g *Grid) drawBackground(r Renderer) {
	w, h := g.cfg.GridWidth, g.cfg.GridHeight
	if n := g.cfg.GridLines; n > 0 {
		for i := 0; i <= n; i++ {
			x := i * w / n
			y := i * h / n
			r.DrawLine(core.Pt(x, 0), core.Pt(x, h), StyleGrid)
			r.DrawLine(core.Pt(0, y), core.Pt(w, y), StyleGrid)
		}
	}

	o := g.origin()
	r.DrawLine(core.Pt(o.X, 0), core.Pt(o.X, h), StyleAxis)
	r.DrawLine(core.Pt(0, o.Y), core.Pt(w, o.Y), StyleAxis)
}

// line draws a segment given in grid coordinates
func (g *Grid) line(r Renderer, a, b core.Point, style Style) {
	r.DrawLine(g.GridToWindow(a), g.GridToWindow(b), style)
}

// point draws a vertex given in grid coordinates, skipping it when it falls
// outside the renderer
func (g *Grid) point(r Renderer, p core.Point, style Style) {
	wp := g.GridToWindow(p)
	b := r.Bounds()
	if wp.X < b.Min.X || wp.X > b.Max.X || wp.Y < b.Min.Y || wp.Y > b.Max.Y {
		return
	}
	r.DrawPoint(wp, style)
}
