package editor

import (
	"testing"

	"leveled/core"
)

type drawCall struct {
	kind  string
	a, b  core.Point
	style Style
}

// recorder is a Renderer that remembers every call
type recorder struct {
	bounds core.Bounds
	calls  []drawCall
}

func newRecorder() *recorder {
	return &recorder{bounds: core.Bounds{Max: core.Pt(200, 200)}}
}

func (r *recorder) Bounds() core.Bounds { return r.bounds }

func (r *recorder) DrawLine(a, b core.Point, style Style) {
	r.calls = append(r.calls, drawCall{"line", a, b, style})
}

func (r *recorder) DrawPoint(p core.Point, style Style) {
	r.calls = append(r.calls, drawCall{"point", p, p, style})
}

func (r *recorder) DrawText(p core.Point, _ string, style Style) {
	r.calls = append(r.calls, drawCall{"text", p, p, style})
}

func (r *recorder) count(kind string, style Style) int {
	n := 0
	for _, c := range r.calls {
		if c.kind == kind && c.style == style {
			n++
		}
	}
	return n
}

func TestDrawEmptyGrid(t *testing.T) {
	g := newTestGrid(t)
	r := newRecorder()
	g.Draw(r)

	if got := r.count("line", StyleGrid); got != 22 {
		t.Errorf("grid lines = %d, want 22", got)
	}
	if got := r.count("line", StyleAxis); got != 2 {
		t.Errorf("axis lines = %d, want 2", got)
	}
	if len(r.calls) != 24 {
		t.Errorf("calls = %d, want only the background", len(r.calls))
	}
}

func TestDrawMap(t *testing.T) {
	g := triangle(t)
	r := newRecorder()
	g.Draw(r)

	if got := r.count("line", StyleWall); got != 3 {
		t.Errorf("walls drawn = %d, want 3", got)
	}
	if got := r.count("point", StyleVertex); got != 3 {
		t.Errorf("vertices drawn = %d, want 3", got)
	}

	// Walls are drawn in window coordinates: A at the centre.
	found := false
	for _, c := range r.calls {
		if c.kind == "line" && c.style == StyleWall && c.a == core.Pt(100, 100) && c.b == core.Pt(140, 100) {
			found = true
		}
	}
	if !found {
		t.Error("wall A-B not drawn from (100,100) to (140,100)")
	}
}

func TestDrawSelectionAndPending(t *testing.T) {
	g := triangle(t)
	g.SetMode(ModeSelect)
	gesture(g, core.Pt(140, 100), core.Pt(140, 100))

	r := newRecorder()
	g.Draw(r)
	if got := r.count("line", StyleSelected); got != 2 {
		t.Errorf("selected walls = %d, want 2", got)
	}
	if got := r.count("point", StyleSelected); got != 1 {
		t.Errorf("selected points = %d, want 1", got)
	}
	if got := r.count("text", StyleText); got != 1 {
		t.Errorf("labels = %d, want 1", got)
	}

	g.SetMode(ModeWall)
	g.Press(core.Pt(10, 10))
	g.Drag(core.Pt(30, 10))

	r = newRecorder()
	g.Draw(r)
	if got := r.count("line", StylePending); got != 1 {
		t.Errorf("pending lines = %d, want 1", got)
	}
	if got := r.count("point", StylePending); got != 2 {
		t.Errorf("pending points = %d, want 2", got)
	}
}

func TestDrawSkipsPointsOutsideBounds(t *testing.T) {
	g := triangle(t)
	r := newRecorder()
	r.bounds = core.Bounds{Max: core.Pt(120, 120)}
	g.Draw(r)

	// Only A at (100,100) is inside.
	if got := r.count("point", StyleVertex); got != 1 {
		t.Errorf("vertices drawn = %d, want 1", got)
	}
}
