package render

import (
	"fmt"

	"leveled/canvas"
	"leveled/core"
	"leveled/editor"
)

// Text draws onto a MatrixCanvas, one cell per Scale window units. It is
// used for -text output and as the back buffer of the terminal renderer.
type Text struct {
	canvas *canvas.MatrixCanvas
	bounds core.Bounds
	scale  int
	glyphs Glyphs
}

// NewText creates a text renderer covering a width x height window, edges
// included. scale must be positive.
func NewText(width, height, scale int, glyphs Glyphs) (*Text, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("text renderer: scale %d: %w", scale, canvas.ErrInvalidSize)
	}
	c, err := canvas.NewMatrixCanvas(width/scale+1, height/scale+1)
	if err != nil {
		return nil, fmt.Errorf("text renderer: %w", err)
	}
	return &Text{
		canvas: c,
		bounds: core.Bounds{Max: core.Pt(width, height)},
		scale:  scale,
		glyphs: glyphs,
	}, nil
}

// Canvas returns the underlying canvas.
func (t *Text) Canvas() *canvas.MatrixCanvas { return t.canvas }

// Clear blanks the canvas before a new frame.
func (t *Text) Clear() { t.canvas.Clear() }

// Cell converts a window position to the canvas cell that shows it.
func (t *Text) Cell(p core.Point) core.Point {
	return core.Pt(floorDiv(p.X-t.bounds.Min.X, t.scale), floorDiv(p.Y-t.bounds.Min.Y, t.scale))
}

func (t *Text) Bounds() core.Bounds { return t.bounds }

func (t *Text) DrawLine(a, b core.Point, style editor.Style) {
	t.canvas.DrawLine(t.Cell(a), t.Cell(b), t.glyphs.Rune(style))
}

func (t *Text) DrawPoint(p core.Point, style editor.Style) {
	_ = t.canvas.Set(t.Cell(p), t.glyphs.Rune(style))
}

func (t *Text) DrawText(p core.Point, text string, _ editor.Style) {
	c := t.Cell(p)
	_ = t.canvas.DrawText(c.X, c.Y, text)
}

func (t *Text) String() string {
	return t.canvas.String()
}

// floorDiv divides rounding toward negative infinity so positions just left
// of the window land outside the canvas instead of in column 0
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
