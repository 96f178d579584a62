package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"gridworld/config"
	"gridworld/grid"
	"gridworld/render"
	"gridworld/terminal"
)

// options holds the command line flags.
type options struct {
	configPath  string
	width       int
	height      int
	pattern     string
	symbols     string
	seed        uint64
	empty       string
	cellWidth   int
	interactive bool
	verbose     bool
	help        bool
}

func newFlagSet(o *options) *flag.FlagSet {
	fs := flag.NewFlagSet("gridview", flag.ContinueOnError)
	fs.StringVar(&o.configPath, "config", "", "YAML grid description")
	fs.IntVar(&o.width, "w", 0, "Grid width")
	fs.IntVar(&o.height, "h", 0, "Grid height")
	fs.StringVar(&o.pattern, "pattern", "", "Pattern: cycle, random, text, empty")
	fs.StringVar(&o.symbols, "symbols", "", "Symbols the cycle and random patterns draw from")
	fs.Uint64Var(&o.seed, "seed", 0, "Seed for the random pattern")
	fs.StringVar(&o.empty, "empty", "", "Character drawn for empty cells")
	fs.IntVar(&o.cellWidth, "cell-width", 0, "Pad every cell to this many columns")
	fs.BoolVar(&o.interactive, "i", false, "Interactive terminal view")
	fs.BoolVar(&o.verbose, "v", false, "Log build details to stderr")
	fs.BoolVar(&o.help, "help", false, "Show help")

	fs.Usage = func() {
		out := fs.Output()
		fmt.Fprintf(out, "Usage: %s [options]\n\n", fs.Name())
		fmt.Fprintf(out, "Builds a grid of symbols and prints it.\n\n")
		fmt.Fprintf(out, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(out, "\nExamples:\n")
		fmt.Fprintf(out, "  %s -w 20 -h 10 -pattern random -seed 3\n", fs.Name())
		fmt.Fprintf(out, "  %s -config maze.yaml -i\n", fs.Name())
	}
	return fs
}

// loadConfig reads the config file named by -config, if any, and lets the
// flags set on the command line override it.
func loadConfig(fs *flag.FlagSet, o *options) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		log.Printf("Configuration loaded from %s", o.configPath)
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "w":
			cfg.Width = o.width
		case "h":
			cfg.Height = o.height
		case "pattern":
			cfg.Pattern = o.pattern
		case "symbols":
			cfg.Symbols = o.symbols
		case "seed":
			cfg.Seed = o.seed
		case "empty":
			cfg.Empty = o.empty
		}
	})
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	var o options
	fs := newFlagSet(&o)
	if err := fs.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if o.help {
		fs.Usage()
		os.Exit(0)
	}

	log.SetFlags(0)
	log.SetPrefix("gridview: ")
	if !o.verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := loadConfig(fs, &o)
	if err != nil {
		fatal(err)
	}

	g, err := cfg.Build()
	if err != nil {
		fatal(err)
	}
	log.Printf("Built %v with pattern %s", g, cfg.Pattern)

	opts := render.Options{Empty: cfg.EmptyRune(), CellWidth: o.cellWidth}
	opts = render.DetectCapabilities().Apply(opts)

	if o.interactive {
		if err := runInteractive(g, opts); err != nil {
			fatal(err)
		}
		return
	}

	fmt.Println(render.String(g, opts))
}

func runInteractive(g grid.Grid[rune], opts render.Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	view := &terminal.View{Screen: screen, Grid: g, Options: opts, Status: true}
	if err := view.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	log.Println("Viewer closed")
	return nil
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
