package editor

import "leveled/core"

// Style tells a Renderer what kind of element it is drawing
type Style int

const (
	StyleGrid     Style = iota // Background grid lines
	StyleAxis                  // The two lines through the grid origin
	StyleWall                  // Committed walls
	StyleVertex                // Vertices in the vertex tree
	StylePending               // The wall being drawn
	StyleSelected              // The selected vertex and its walls
	StyleText                  // Labels
)

// Renderer is what Grid.Draw needs from an output surface. Coordinates are
// window coordinates: (0,0) is the top-left corner of the grid area and
// (GridWidth, GridHeight) the bottom-right one.
type Renderer interface {
	Bounds() core.Bounds
	DrawLine(a, b core.Point, style Style)
	DrawPoint(p core.Point, style Style)
	DrawText(p core.Point, text string, style Style)
}
