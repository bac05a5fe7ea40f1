package script

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"leveled/core"
	"leveled/editor"
)

const triangle = `# A triangle with A at the grid origin
wall 100 100 140 100
wall 141 101 100 140

wall 100 141 101 99   # closes on A
`

func newGrid(t *testing.T) *editor.Grid {
	t.Helper()
	g, err := editor.New(editor.DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("editor.New() error = %v", err)
	}
	return g
}

func checkMap(t *testing.T, g *editor.Grid, vertices, walls int) {
	t.Helper()
	if err := g.Data().CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants() = %v", err)
	}
	if got := g.Data().VertexCount(); got != vertices {
		t.Errorf("vertex count = %d, want %d", got, vertices)
	}
	if got := g.Data().WallCount(); got != walls {
		t.Errorf("wall count = %d, want %d", got, walls)
	}
}

func TestParse(t *testing.T) {
	s, err := Parse(triangle + "MODE Select\npress 1 2\ndelete\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	want := []struct {
		line int
		text string
	}{
		{2, "wall 100 100 140 100"},
		{3, "wall 141 101 100 140"},
		{5, "wall 100 141 101 99"},
		{6, "mode select"},
		{7, "press 1 2"},
		{8, "delete"},
	}
	if len(s.Commands) != len(want) {
		t.Fatalf("got %d commands, want %d", len(s.Commands), len(want))
	}
	for i, w := range want {
		cmd := s.Commands[i]
		if cmd.Line != w.line || cmd.String() != w.text {
			t.Errorf("command %d = line %d %q, want line %d %q", i, cmd.Line, cmd, w.line, w.text)
		}
	}
	if s.Commands[3].Mode != editor.ModeSelect {
		t.Errorf("mode = %v, want SELECT", s.Commands[3].Mode)
	}
	if got := s.Commands[0].Points; len(got) != 2 || got[1] != core.Pt(140, 100) {
		t.Errorf("wall points = %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
		line string
	}{
		{"Unknown", "jump 1 2", ErrUnknownCommand, "line 1"},
		{"TooFew", "press 1", ErrArgCount, "line 1"},
		{"TooMany", "delete 1 2", ErrArgCount, "line 1"},
		{"NotANumber", "press a 2", ErrBadNumber, "line 1"},
		{"BadY", "wall 1 2 3 y", ErrBadNumber, "line 1"},
		{"BadMode", "mode erase", ErrBadMode, "line 1"},
		{"ModeArgs", "mode", ErrArgCount, "line 1"},
		{"LaterLine", "# ok\n\nrclick 1 2\nfly\n", ErrUnknownCommand, "line 4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.want)
			}
			if !strings.HasPrefix(err.Error(), tt.line+":") {
				t.Errorf("error %q does not start with %q", err, tt.line)
			}
		})
	}
}

func TestPlay(t *testing.T) {
	s, err := Parse(triangle)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	g := newGrid(t)
	Play(g, s)
	checkMap(t, g, 3, 3)
	if g.Mode() != editor.ModeWall {
		t.Errorf("mode = %v, want WALL", g.Mode())
	}

	// Dropping B onto A removes A-B and makes B-C a duplicate of C-A.
	s, err = Parse("move 140 100 101 101\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	Play(g, s)
	checkMap(t, g, 2, 1)
	if v := g.Selected(); v == nil || v.Point() != core.Pt(0, 0) {
		t.Errorf("selected = %v, want the vertex at the origin", v)
	}

	s, err = Parse("mode select\npress 100 140\nrelease 100 140\ndelete\n")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	Play(g, s)
	if err := g.Data().CheckInvariants(); err != nil {
		t.Fatalf("CheckInvariants() = %v", err)
	}
	if got := g.Data().WallCount(); got != 0 {
		t.Errorf("wall count = %d, want 0", got)
	}
}

func TestPlayerSteps(t *testing.T) {
	s, err := Parse(triangle)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var steps []int
	p := &Player{Delay: time.Millisecond, OnStep: func(c Command) { steps = append(steps, c.Line) }}
	if err := p.Play(t.Context(), newGrid(t), s); err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if len(steps) != 3 || steps[0] != 2 || steps[2] != 5 {
		t.Errorf("steps = %v, want lines [2 3 5]", steps)
	}
}

func TestPlayerStopsOnCancel(t *testing.T) {
	s, err := Parse(triangle)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	steps := 0
	p := &Player{Delay: time.Hour, OnStep: func(Command) {
		steps++
		cancel()
	}}

	g := newGrid(t)
	if err := p.Play(ctx, g, s); !errors.Is(err, context.Canceled) {
		t.Fatalf("Play() error = %v, want context.Canceled", err)
	}
	if steps != 1 {
		t.Errorf("steps = %d, want 1", steps)
	}
	checkMap(t, g, 2, 1)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "triangle.txt")
	if err := os.WriteFile(path, []byte(triangle), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Name != path || len(s.Commands) != 3 {
		t.Errorf("Load() = %q with %d commands", s.Name, len(s.Commands))
	}

	if _, err := Load(filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.txt")
	if err := os.WriteFile(bad, []byte("press 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); !errors.Is(err, ErrArgCount) || !strings.Contains(err.Error(), "bad.txt") {
		t.Errorf("Load(bad) error = %v", err)
	}
}
