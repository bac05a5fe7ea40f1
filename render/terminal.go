// Package render provides the editor.Renderer implementations: a text
// canvas, a PNG raster image and a tcell screen.
package render

import (
	"os"
	"strings"
)

// Capabilities describes what the current terminal can display.
type Capabilities struct {
	Name       string
	Unicode    bool // box-drawing and bullet glyphs render correctly
	Color      bool
	ColorDepth int // 0, 8, 256 or 24
}

// DetectCapabilities inspects the environment. LEVELED_TERMINAL_MODE=ascii
// or =unicode overrides detection, and NO_COLOR always disables color.
func DetectCapabilities() Capabilities {
	var caps Capabilities
	switch os.Getenv("LEVELED_TERMINAL_MODE") {
	case "ascii":
		caps = ForceASCII()
	case "unicode":
		caps = ForceUnicode()
	default:
		caps = detect()
	}

	// https://no-color.org/
	if os.Getenv("NO_COLOR") != "" {
		caps.Color = false
		caps.ColorDepth = 0
	}
	return caps
}

func detect() Capabilities {
	term := os.Getenv("TERM")
	caps := Capabilities{Name: term}
	if caps.Name == "" {
		caps.Name = "unknown"
	}

	switch {
	case os.Getenv("WT_SESSION") != "":
		caps.Name, caps.Color, caps.ColorDepth = "windows-terminal", true, 24
	case os.Getenv("TERM_PROGRAM") == "iTerm.app":
		caps.Name, caps.Color, caps.ColorDepth = "iterm2", true, 24
	case os.Getenv("TMUX") != "":
		caps.Name, caps.Color, caps.ColorDepth = "tmux", true, 256
	case term == "" || strings.Contains(term, "dumb"):
		// no color
	case strings.Contains(term, "256color"):
		caps.Color, caps.ColorDepth = true, 256
	case strings.Contains(term, "color"), strings.HasPrefix(term, "xterm"), strings.HasPrefix(term, "screen"):
		caps.Color, caps.ColorDepth = true, 8
	}

	if ct := os.Getenv("COLORTERM"); caps.Color && (ct == "truecolor" || ct == "24bit") {
		caps.ColorDepth = 24
	}

	// The Linux console has no box-drawing glyphs in most fonts
	caps.Unicode = utf8Locale() && term != "linux" && term != "dumb"
	return caps
}

// utf8Locale reports whether the first set locale variable names a UTF-8
// charset, e.g. en_US.UTF-8 or C.utf8@euro
func utf8Locale() bool {
	for _, env := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		value := os.Getenv(env)
		if value == "" {
			continue
		}
		_, charset, ok := strings.Cut(value, ".")
		if !ok {
			return false
		}
		charset, _, _ = strings.Cut(charset, "@")
		return strings.EqualFold(charset, "UTF-8") || strings.EqualFold(charset, "UTF8")
	}
	return false
}

// ForceASCII returns capabilities for plain ASCII output.
func ForceASCII() Capabilities {
	return Capabilities{Name: "ascii"}
}

// ForceUnicode returns capabilities for a full Unicode, true-color terminal.
func ForceUnicode() Capabilities {
	return Capabilities{Name: "unicode", Unicode: true, Color: true, ColorDepth: 24}
}
