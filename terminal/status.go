package terminal

import (
	"fmt"

	"github.com/mattn/go-runewidth"

	"leveled/editor"
)

// StatusLine describes the editor state in exactly width cells.
func StatusLine(g *editor.Grid, width int, unicode bool) string {
	if width <= 0 {
		return ""
	}
	sep, tail := " | ", "..."
	if unicode {
		sep, tail = " │ ", "…"
	}

	d := g.Data()
	line := fmt.Sprintf("[ %s ]%svertices: %d%swalls: %d%scursor: %v",
		g.Mode(), sep, d.VertexCount(), sep, d.WallCount(), sep, g.Cursor())
	if v := g.Selected(); v != nil {
		line += fmt.Sprintf("%sselected: %v", sep, v)
	}
	line += sep + "w wall  s select  esc idle  x delete  q quit"

	line = runewidth.Truncate(line, width, tail)
	return runewidth.FillRight(line, width)
}
