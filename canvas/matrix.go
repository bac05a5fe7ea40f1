// Package canvas provides a 2D character grid for text rendering.
package canvas

import (
	"errors"
	"strings"

	"github.com/mattn/go-runewidth"

	"leveled/core"
	"leveled/geometry"
)

// Common errors
var (
	ErrOutOfBounds = errors.New("position out of bounds")
	ErrInvalidSize = errors.New("invalid canvas size")
)

// continuation marks the second cell of a wide character
const continuation = '\x00'

// MatrixCanvas implements a rune matrix-based canvas with line and text
// primitives.
//
// MatrixCanvas is NOT thread-safe. All writes must be synchronized
// externally if it is shared between goroutines.
//
// Coordinate System:
//   - Origin (0,0) is top-left
//   - X increases rightward
//   - Y increases downward
//   - All coordinates are in character cells
type MatrixCanvas struct {
	matrix [][]rune
	width  int
	height int
}

// NewMatrixCanvas creates a new canvas with the specified dimensions.
func NewMatrixCanvas(width, height int) (*MatrixCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidSize
	}

	matrix := make([][]rune, height)
	for y := range matrix {
		matrix[y] = make([]rune, width)
	}
	c := &MatrixCanvas{matrix: matrix, width: width, height: height}
	c.Clear()
	return c, nil
}

// Size returns the width and height of the canvas.
func (c *MatrixCanvas) Size() (width, height int) {
	return c.width, c.height
}

// Get returns the character at the given position.
// Returns ' ' (space) if position is out of bounds.
func (c *MatrixCanvas) Get(p core.Point) rune {
	if !c.inside(p.X, p.Y) {
		return ' '
	}
	return c.matrix[p.Y][p.X]
}

// Set places a character at the given position.
// Returns error if position is out of bounds.
func (c *MatrixCanvas) Set(p core.Point, char rune) error {
	if !c.inside(p.X, p.Y) {
		return ErrOutOfBounds
	}
	c.matrix[p.Y][p.X] = char
	return nil
}

// Clear resets the canvas to all spaces.
func (c *MatrixCanvas) Clear() {
	for y := range c.matrix {
		for x := range c.matrix[y] {
			c.matrix[y][x] = ' '
		}
	}
}

// String returns the canvas as a string with newlines.
func (c *MatrixCanvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			if r := c.matrix[y][x]; r != continuation {
				sb.WriteRune(r)
			}
		}
		if y < c.height-1 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}

// DrawLine draws a line between two points. Cells outside the canvas are
// skipped.
func (c *MatrixCanvas) DrawLine(p1, p2 core.Point, char rune) {
	Line(p1, p2, func(p core.Point) {
		c.setClipped(p.X, p.Y, char)
	})
}

// Line calls plot for every cell of the line from p1 to p2 using
// Bresenham's algorithm, endpoints included.
func Line(p1, p2 core.Point, plot func(core.Point)) {
	dx := geometry.Abs(p2.X - p1.X)
	dy := geometry.Abs(p2.Y - p1.Y)

	x, y := p1.X, p1.Y

	xInc := 1
	if p1.X > p2.X {
		xInc = -1
	}

	yInc := 1
	if p1.Y > p2.Y {
		yInc = -1
	}

	if dx > dy {
		err := dx / 2
		for x != p2.X {
			plot(core.Pt(x, y))
			err -= dy
			if err < 0 {
				y += yInc
				err += dx
			}
			x += xInc
		}
	} else {
		err := dy / 2
		for y != p2.Y {
			plot(core.Pt(x, y))
			err -= dx
			if err < 0 {
				x += xInc
				err += dy
			}
			y += yInc
		}
	}

	plot(p2)
}

// DrawText renders text starting at (x, y). Wide characters take two cells;
// a wide character that would straddle the right edge is dropped along with
// the rest of the text.
func (c *MatrixCanvas) DrawText(x, y int, text string) error {
	if y < 0 || y >= c.height {
		return ErrOutOfBounds
	}

	cur := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if w == 2 && cur >= 0 && cur+1 >= c.width {
			break
		}

		if cur >= 0 && cur < c.width {
			c.matrix[y][cur] = r
			if w == 2 {
				c.matrix[y][cur+1] = continuation
			}
		}

		cur += w
		if cur >= c.width {
			break
		}
	}
	return nil
}

func (c *MatrixCanvas) inside(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// setClipped sets a character with bounds checking (no error).
func (c *MatrixCanvas) setClipped(x, y int, char rune) {
	if c.inside(x, y) {
		c.matrix[y][x] = char
	}
}
