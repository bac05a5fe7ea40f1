// Package terminal runs the editor interactively on a tcell screen.
package terminal

import (
	"context"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"leveled/core"
	"leveled/editor"
	"leveled/mapdata"
	"leveled/render"
)

// Session connects a grid to a terminal screen. The loop in Run is the only
// goroutine that touches the grid.
type Session struct {
	screen  tcell.Screen
	grid    *editor.Grid
	caps    render.Capabilities
	palette render.Palette
	view    *render.Screen
	log     *slog.Logger

	buttonDown bool

	// OnChange, if set, is called after every event that may have edited
	// the map.
	OnChange func(*editor.Grid)
}

// NewSession creates a session on an initialized screen. The caller owns
// the screen and calls Fini on it.
func NewSession(s tcell.Screen, g *editor.Grid, caps render.Capabilities, palette render.Palette) *Session {
	sess := &Session{
		screen:  s,
		grid:    g,
		caps:    caps,
		palette: palette,
		log:     mapdata.Logger().With("component", "terminal"),
	}
	sess.layout()
	return sess
}

// fitScale returns the smallest cell size, in window units, at which a
// width x height window fits in cols x rows cells
func fitScale(width, height, cols, rows int) int {
	if cols <= 0 || rows <= 0 {
		return 1
	}
	scale := max((width+cols)/cols, (height+rows)/rows)
	return max(scale, 1)
}

// layout recomputes the view for the current screen size. The bottom row
// is kept for the status line.
func (s *Session) layout() {
	cols, rows := s.screen.Size()
	cfg := s.grid.Config()
	scale := fitScale(cfg.GridWidth, cfg.GridHeight, cols, rows-1)
	s.log.Debug("layout", "cols", cols, "rows", rows, "scale", scale)
	s.view = render.NewScreen(s.screen, cfg.GridWidth, cfg.GridHeight, scale, core.Pt(0, 0), s.caps, s.palette)
}

// Run processes events until the user quits, the screen is finalized or ctx
// is cancelled, in which case ctx's error is returned.
func (s *Session) Run(ctx context.Context) error {
	s.screen.EnableMouse()
	defer s.screen.DisableMouse()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = s.screen.PostEvent(tcell.NewEventInterrupt(nil))
		case <-done:
		}
	}()

	s.draw()
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return nil
		}

		switch ev := ev.(type) {
		case *tcell.EventResize:
			s.screen.Sync()
			s.layout()
		case *tcell.EventInterrupt:
			if err := ctx.Err(); err != nil {
				return err
			}
		case *tcell.EventKey:
			if s.handleKey(ev) {
				return nil
			}
			s.changed()
		case *tcell.EventMouse:
			if s.handleMouse(ev) {
				s.changed()
			}
		}
		s.draw()
	}
}

// handleKey applies a key binding and reports whether the user quit
func (s *Session) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		s.grid.SetMode(editor.ModeIdle)
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		s.grid.DeleteSelected()
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'w':
			s.grid.SetMode(editor.ModeWall)
		case 's':
			s.grid.SetMode(editor.ModeSelect)
		case 'x':
			s.grid.DeleteSelected()
		}
	}
	return false
}

// handleMouse turns button state changes into press, drag and release. It
// reports false for plain pointer motion, which never edits the map.
func (s *Session) handleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	p := s.view.Window(x, y)
	buttons := ev.Buttons()

	switch {
	case buttons&tcell.Button1 != 0:
		if s.buttonDown {
			s.grid.Drag(p)
		} else {
			s.buttonDown = true
			s.grid.Press(p)
		}
	case s.buttonDown:
		s.buttonDown = false
		s.grid.Release(p)
	case buttons&tcell.Button2 != 0:
		s.grid.RightClick(p)
	default:
		s.grid.Hover(p)
		return false
	}
	return true
}

func (s *Session) changed() {
	if s.OnChange != nil {
		s.OnChange(s.grid)
	}
}

func (s *Session) draw() {
	s.screen.Clear()
	s.grid.Draw(s.view)

	cols, rows := s.screen.Size()
	line := StatusLine(s.grid, cols, s.caps.Unicode)
	render.PutString(s.screen, 0, rows-1, line, tcell.StyleDefault.Reverse(true))
	s.screen.Show()
}
