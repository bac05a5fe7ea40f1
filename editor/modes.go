package editor

import "strings"

// Mode represents the current editing mode
type Mode int

const (
	ModeIdle   Mode = iota // Nothing happens on mouse input
	ModeSelect             // Pick and drag vertices
	ModeWall               // Draw walls between vertices
)

// String returns the mode name for display
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "IDLE"
	case ModeSelect:
		return "SELECT"
	case ModeWall:
		return "WALL"
	default:
		return "UNKNOWN"
	}
}

// ParseMode converts a mode name, in any case, to a Mode
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(s) {
	case "idle":
		return ModeIdle, true
	case "select":
		return ModeSelect, true
	case "wall":
		return ModeWall, true
	}
	return ModeIdle, false
}

// SetMode changes the editor mode. A wall being drawn is discarded and a
// vertex being dragged is dropped where it is, as if the button had been
// released there. Leaving select mode clears the selection.
func (g *Grid) SetMode(mode Mode) {
	if mode == g.mode {
		return
	}
	g.cancelGesture()
	if mode != ModeSelect {
		g.selected = nil
	}
	g.mode = mode
	g.log.Debug("mode", "mode", mode)
}

// cancelGesture ends any press-drag-release sequence in progress. A dragged
// vertex is settled the way Release settles it, so the selection may end up
// on the vertex it merged into, or nil.
func (g *Grid) cancelGesture() {
	g.pending = nil
	if g.dragging && g.selected != nil {
		g.selected = g.settle(g.selected)
	}
	g.dragging = false
}
