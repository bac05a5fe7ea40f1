// Package script parses and plays back gesture scripts: plain-text lists of
// mouse gestures and mode switches that drive an editor.Grid without a
// terminal.
//
// One command per line, coordinates in window units:
//
//	mode wall|select|idle
//	press X Y
//	drag X Y
//	release X Y
//	rclick X Y
//	wall X1 Y1 X2 Y2   # press, drag and release in wall mode
//	move X1 Y1 X2 Y2   # the same in select mode
//	delete
//
// Blank lines and text after '#' are ignored.
package script

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"deedles.dev/xiter"

	"leveled/core"
	"leveled/editor"
)

// Parse errors
var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArgCount       = errors.New("wrong number of arguments")
	ErrBadNumber      = errors.New("bad coordinate")
	ErrBadMode        = errors.New("unknown mode")
)

// Op is a script command name.
type Op string

const (
	OpMode    Op = "mode"
	OpPress   Op = "press"
	OpDrag    Op = "drag"
	OpRelease Op = "release"
	OpRClick  Op = "rclick"
	OpWall    Op = "wall"
	OpMove    Op = "move"
	OpDelete  Op = "delete"
)

// argCounts is the number of coordinates each op takes
var argCounts = map[Op]int{
	OpPress:   2,
	OpDrag:    2,
	OpRelease: 2,
	OpRClick:  2,
	OpWall:    4,
	OpMove:    4,
	OpDelete:  0,
}

// Command is one parsed line.
type Command struct {
	Line   int // 1-based source line
	Op     Op
	Mode   editor.Mode // for OpMode
	Points []core.Point
}

func (c Command) String() string {
	switch {
	case c.Op == OpMode:
		return fmt.Sprintf("%s %s", c.Op, strings.ToLower(c.Mode.String()))
	case len(c.Points) == 0:
		return string(c.Op)
	}
	parts := []string{string(c.Op)}
	for _, p := range c.Points {
		parts = append(parts, strconv.Itoa(p.X), strconv.Itoa(p.Y))
	}
	return strings.Join(parts, " ")
}

// Script is a parsed list of commands.
type Script struct {
	Name     string
	Commands []Command
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	s, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.Name = path
	return s, nil
}

// Parse parses script source. The first bad line stops parsing; its error
// carries the line number.
func Parse(src string) (*Script, error) {
	s := &Script{}
	for i, line := range xiter.Enumerate(strings.Lines(src)) {
		if before, _, ok := strings.Cut(line, "#"); ok {
			line = before
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		cmd, err := parseCommand(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		cmd.Line = i + 1
		s.Commands = append(s.Commands, cmd)
	}
	return s, nil
}

func parseCommand(fields []string) (Command, error) {
	op := Op(strings.ToLower(fields[0]))
	args := fields[1:]

	if op == OpMode {
		if len(args) != 1 {
			return Command{}, fmt.Errorf("%w: %s takes 1, got %d", ErrArgCount, op, len(args))
		}
		mode, ok := editor.ParseMode(args[0])
		if !ok {
			return Command{}, fmt.Errorf("%w: %q", ErrBadMode, args[0])
		}
		return Command{Op: op, Mode: mode}, nil
	}

	n, ok := argCounts[op]
	if !ok {
		return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, fields[0])
	}
	if len(args) != n {
		return Command{}, fmt.Errorf("%w: %s takes %d, got %d", ErrArgCount, op, n, len(args))
	}

	cmd := Command{Op: op}
	for j := 0; j < n; j += 2 {
		x, err := strconv.Atoi(args[j])
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q", ErrBadNumber, args[j])
		}
		y, err := strconv.Atoi(args[j+1])
		if err != nil {
			return Command{}, fmt.Errorf("%w: %q", ErrBadNumber, args[j+1])
		}
		cmd.Points = append(cmd.Points, core.Pt(x, y))
	}
	return cmd, nil
}
