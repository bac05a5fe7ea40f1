package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"leveled/canvas"
	"leveled/core"
	"leveled/editor"
)

// Screen draws on a tcell screen, one cell per Scale window units, with the
// window origin at cell Offset.
type Screen struct {
	screen tcell.Screen
	bounds core.Bounds
	scale  int
	offset core.Point
	glyphs Glyphs
	styles map[editor.Style]tcell.Style
}

// NewScreen creates a screen renderer for a width x height window. Colors
// come from the palette when the terminal supports them.
func NewScreen(s tcell.Screen, width, height, scale int, offset core.Point, caps Capabilities, palette Palette) *Screen {
	if scale <= 0 {
		scale = 1
	}
	sc := &Screen{
		screen: s,
		bounds: core.Bounds{Max: core.Pt(width, height)},
		scale:  scale,
		offset: offset,
		glyphs: GlyphsFor(caps),
		styles: make(map[editor.Style]tcell.Style),
	}
	for style := editor.StyleGrid; style <= editor.StyleText; style++ {
		st := tcell.StyleDefault
		if caps.Color {
			c := palette.Color(style)
			st = st.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
		}
		if style == editor.StyleSelected {
			st = st.Bold(true)
		}
		sc.styles[style] = st
	}
	return sc
}

// Cell converts a window position to a screen cell.
func (s *Screen) Cell(p core.Point) core.Point {
	return core.Pt(floorDiv(p.X, s.scale), floorDiv(p.Y, s.scale)).Add(s.offset)
}

// Window converts a screen cell back to the window position it shows.
func (s *Screen) Window(x, y int) core.Point {
	return core.Pt((x-s.offset.X)*s.scale, (y-s.offset.Y)*s.scale)
}

func (s *Screen) Bounds() core.Bounds { return s.bounds }

func (s *Screen) DrawLine(a, b core.Point, style editor.Style) {
	r, st := s.glyphs.Rune(style), s.styles[style]
	canvas.Line(s.Cell(a), s.Cell(b), func(p core.Point) {
		s.screen.SetContent(p.X, p.Y, r, nil, st)
	})
}

func (s *Screen) DrawPoint(p core.Point, style editor.Style) {
	c := s.Cell(p)
	s.screen.SetContent(c.X, c.Y, s.glyphs.Rune(style), nil, s.styles[style])
}

func (s *Screen) DrawText(p core.Point, text string, style editor.Style) {
	c := s.Cell(p)
	PutString(s.screen, c.X, c.Y, text, s.styles[style])
}

// PutString writes text from cell (x, y), advancing by each rune's display
// width. It returns the column after the last rune.
func PutString(s tcell.Screen, x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetContent(x, y, r, nil, style)
		x += w
	}
	return x
}
