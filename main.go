package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"leveled/editor"
	"leveled/liveview"
	"leveled/mapdata"
	"leveled/render"
	"leveled/script"
	"leveled/terminal"
)

type options struct {
	interactive bool
	scriptFile  string
	delay       time.Duration
	pngFile     string
	pngScale    float64
	text        bool
	textScale   int
	serve       string
	grid        int
	snap        float64
	background  string
	wallColor   string
	verbose     bool
}

func main() {
	var opts options
	flag.BoolVar(&opts.interactive, "i", false, "Interactive terminal editor (default when nothing else is asked for)")
	flag.StringVar(&opts.scriptFile, "script", "", "Play a gesture script before anything else")
	flag.DurationVar(&opts.delay, "delay", 0, "Pause between script commands, e.g. 200ms")
	flag.StringVar(&opts.pngFile, "png", "", "Write the map as a PNG image to this file")
	flag.Float64Var(&opts.pngScale, "png-scale", 3, "PNG pixels per grid unit")
	flag.BoolVar(&opts.text, "text", false, "Print the map as text to stdout")
	flag.IntVar(&opts.textScale, "text-scale", 4, "Grid units per character for -text")
	flag.StringVar(&opts.serve, "serve", "", "Serve live map snapshots over websockets on this address, e.g. :8080")
	flag.IntVar(&opts.grid, "grid", 0, "Grid width and height (default 200)")
	flag.Float64Var(&opts.snap, "snap", -1, "Snap distance (default 3)")
	flag.StringVar(&opts.background, "bg", "", "PNG background color, #rrggbb")
	flag.StringVar(&opts.wallColor, "wall-color", "", "PNG wall color, #rrggbb")
	flag.BoolVar(&opts.verbose, "v", false, "Log edits to stderr")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "A grid level editor: draw walls between vertices, drag vertices to merge them.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                  # Start the terminal editor\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -script level.txt -text          # Play a script, print the result\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -script level.txt -png level.png # Play a script, save an image\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -i -serve :8080                  # Edit while others watch /stream\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nTerminal keys:\n")
		fmt.Fprintf(os.Stderr, "  w wall mode   s select mode   esc idle   x/del delete selected   q quit\n")
	}
	flag.Parse()

	if err := run(opts); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if opts.verbose {
		mapdata.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := editor.DefaultConfig()
	if opts.grid > 0 {
		cfg.GridWidth, cfg.GridHeight = opts.grid, opts.grid
	}
	if opts.snap >= 0 {
		cfg.SnapDistance = opts.snap
	}
	g, err := editor.New(cfg, nil)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	publish := func(*editor.Grid) {}
	serveErr := make(chan error, 1)
	if opts.serve != "" {
		hub := liveview.NewHub()
		publish = func(g *editor.Grid) {
			if err := hub.Publish(liveview.NewSnapshot(g.Data())); err != nil {
				mapdata.Logger().Warn("publish snapshot", "err", err)
			}
		}
		publish(g)
		go func() { serveErr <- liveview.Serve(ctx, opts.serve, hub) }()
	}

	if opts.scriptFile != "" {
		s, err := script.Load(opts.scriptFile)
		if err != nil {
			return err
		}
		p := &script.Player{Delay: opts.delay, OnStep: func(script.Command) { publish(g) }}
		if err := p.Play(ctx, g, s); err != nil {
			return err
		}
	}

	if err := writeOutputs(g, opts); err != nil {
		return err
	}

	batch := opts.scriptFile != "" || opts.pngFile != "" || opts.text
	if opts.interactive || !batch {
		if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("interactive mode needs a terminal; use -script with -text or -png")
		}
		return runInteractive(ctx, g, publish)
	}

	if opts.serve != "" {
		// Keep serving the final map until interrupted
		return <-serveErr
	}
	return nil
}

func writeOutputs(g *editor.Grid, opts options) error {
	cfg := g.Config()

	if opts.text {
		tr, err := render.NewText(cfg.GridWidth, cfg.GridHeight, opts.textScale, render.GlyphsFor(render.DetectCapabilities()))
		if err != nil {
			return err
		}
		g.Draw(tr)
		fmt.Println(tr.String())
	}

	if opts.pngFile != "" {
		palette, err := parsePalette(opts)
		if err != nil {
			return err
		}
		im, err := render.NewImage(cfg.GridWidth, cfg.GridHeight, opts.pngScale, palette)
		if err != nil {
			return err
		}
		defer im.Close()
		g.Draw(im)

		f, err := os.Create(opts.pngFile)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", opts.pngFile, err)
		}
		if err := im.EncodePNG(f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("failed to write %s: %w", opts.pngFile, err)
		}
	}
	return nil
}

// parsePalette applies the color flags on top of the default palette
func parsePalette(opts options) (render.Palette, error) {
	palette := render.DefaultPalette()
	if opts.background == "" && opts.wallColor == "" {
		return palette, nil
	}

	bg := opts.background
	if bg == "" {
		bg = palette.Background.Hex()
	}
	styles := make(map[editor.Style]string, len(palette.Styles))
	for style, c := range palette.Styles {
		if style != editor.StyleGrid {
			styles[style] = c.Hex()
		}
	}
	if opts.wallColor != "" {
		styles[editor.StyleWall] = opts.wallColor
	}
	return render.ParsePalette(bg, styles)
}

func runInteractive(ctx context.Context, g *editor.Grid, publish func(*editor.Grid)) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}
	defer s.Fini()

	g.SetMode(editor.ModeWall)
	sess := terminal.NewSession(s, g, render.DetectCapabilities(), render.DefaultPalette())
	sess.OnChange = publish
	return sess.Run(ctx)
}
