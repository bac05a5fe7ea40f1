package render

import "leveled/editor"

// Glyphs maps each draw style to the rune a text renderer uses for it.
type Glyphs struct {
	Grid     rune
	Axis     rune
	Wall     rune
	Vertex   rune
	Pending  rune
	Selected rune
}

// Predefined glyph sets
var (
	// UnicodeGlyphs uses light shades and bullets
	UnicodeGlyphs = Glyphs{
		Grid:     '·',
		Axis:     '░',
		Wall:     '█',
		Vertex:   '●',
		Pending:  '▒',
		Selected: '◉',
	}

	// ASCIIGlyphs uses only 7-bit characters
	ASCIIGlyphs = Glyphs{
		Grid:     '.',
		Axis:     ':',
		Wall:     '#',
		Vertex:   'o',
		Pending:  '=',
		Selected: '@',
	}
)

// GlyphsFor picks the glyph set the terminal can display.
func GlyphsFor(caps Capabilities) Glyphs {
	if caps.Unicode {
		return UnicodeGlyphs
	}
	return ASCIIGlyphs
}

// Rune returns the glyph for style, or a space for styles without one.
func (g Glyphs) Rune(style editor.Style) rune {
	switch style {
	case editor.StyleGrid:
		return g.Grid
	case editor.StyleAxis:
		return g.Axis
	case editor.StyleWall:
		return g.Wall
	case editor.StyleVertex:
		return g.Vertex
	case editor.StylePending:
		return g.Pending
	case editor.StyleSelected:
		return g.Selected
	}
	return ' '
}
