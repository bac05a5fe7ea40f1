package script

import (
	"context"
	"time"

	"leveled/editor"
)

// Player applies script commands to a grid.
type Player struct {
	// Delay is the pause after each command. Zero plays back as fast as
	// possible.
	Delay time.Duration

	// OnStep, if set, is called after each command is applied.
	OnStep func(Command)
}

// Play applies every command of s to g in order.
func Play(g *editor.Grid, s *Script) {
	// Never fails without a delay or a cancellable context
	_ = (&Player{}).Play(context.Background(), g, s)
}

// Play applies the commands of s to g in order, stopping early when ctx is
// done.
func (p *Player) Play(ctx context.Context, g *editor.Grid, s *Script) error {
	var timer *time.Timer
	if p.Delay > 0 {
		timer = time.NewTimer(p.Delay)
		defer timer.Stop()
	}

	for _, cmd := range s.Commands {
		if err := ctx.Err(); err != nil {
			return err
		}
		Apply(g, cmd)
		if p.OnStep != nil {
			p.OnStep(cmd)
		}

		if timer == nil {
			continue
		}
		timer.Reset(p.Delay)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}

// Apply runs a single command against g.
func Apply(g *editor.Grid, cmd Command) {
	switch cmd.Op {
	case OpMode:
		g.SetMode(cmd.Mode)
	case OpPress:
		g.Press(cmd.Points[0])
	case OpDrag:
		g.Drag(cmd.Points[0])
	case OpRelease:
		g.Release(cmd.Points[0])
	case OpRClick:
		g.RightClick(cmd.Points[0])
	case OpWall:
		g.SetMode(editor.ModeWall)
		gesture(g, cmd)
	case OpMove:
		g.SetMode(editor.ModeSelect)
		gesture(g, cmd)
	case OpDelete:
		g.DeleteSelected()
	}
}

func gesture(g *editor.Grid, cmd Command) {
	from, to := cmd.Points[0], cmd.Points[1]
	g.Press(from)
	g.Drag(to)
	g.Release(to)
}
