// Package main is the entry point for the pixstorm script runner. It
// replays a recorded gesture script against an image and writes the
// result.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"os"

	"github.com/dshills/pixstorm/internal/config"
	"github.com/dshills/pixstorm/internal/editor"
	"github.com/dshills/pixstorm/internal/logging"
	"github.com/dshills/pixstorm/internal/raster"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the parsed command line.
type options struct {
	in, script, out string
	configPath      string
	logLevel        string
	width, height   int
	showVersion     bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return 2
	}
	if opts.showVersion {
		fmt.Fprintf(stdout, "pixstorm %s\n", version)
		fmt.Fprintf(stdout, "Commit: %s\n", commit)
		fmt.Fprintf(stdout, "Built: %s\n", date)
		return 0
	}

	settings, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if opts.logLevel != "" {
		settings.Logging.Level = opts.logLevel
	}
	if !logging.Valid(settings.Logging.Level) {
		fmt.Fprintf(stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", settings.Logging.Level)
		return 1
	}
	cfg := logging.DefaultConfig()
	cfg.Level = settings.LogLevel()
	cfg.Output = stderr
	log := logging.Setup(cfg)

	bmp, err := loadImage(opts, settings)
	if err != nil {
		log.Error("load image", "error", err)
		return 1
	}
	sess := editor.New(bmp, editor.WithSettings(settings))

	if opts.script != "" {
		f, err := os.Open(opts.script)
		if err != nil {
			log.Error("open script", "error", err)
			return 1
		}
		script, err := ParseScript(f)
		f.Close()
		if err != nil {
			log.Error("parse script", "path", opts.script, "error", err)
			return 1
		}
		if err := script.Run(sess); err != nil {
			log.Error("run script", "path", opts.script, "error", err)
			return 1
		}
		log.Info("script done", "steps", len(script.Steps), "undo_entries", sess.History().UndoCount())
	}

	sess.Flatten()
	if err := sess.FlattenObjects(); err != nil {
		log.Error("flatten objects", "error", err)
		return 1
	}

	if opts.out != "" {
		if err := writePNG(opts.out, sess.Bitmap()); err != nil {
			log.Error("write image", "error", err)
			return 1
		}
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("pixstorm", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.in, "in", "", "Input PNG (a blank canvas is used when empty)")
	fs.StringVar(&opts.script, "script", "", "Gesture script (TOML)")
	fs.StringVar(&opts.out, "out", "", "Output PNG")
	fs.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.IntVar(&opts.width, "width", 64, "Blank canvas width")
	fs.IntVar(&opts.height, "height", 64, "Blank canvas height")
	fs.BoolVar(&opts.showVersion, "version", false, "Show version information")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "pixstorm - replay editing gestures against an image\n\n")
		fmt.Fprintf(stderr, "Usage: pixstorm [options]\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  pixstorm -in a.png -script moves.toml -out b.png\n")
		fmt.Fprintf(stderr, "  pixstorm -width 32 -height 32 -script draw.toml -out c.png\n")
	}

	err := fs.Parse(args)
	return opts, err
}

func loadImage(opts options, settings config.Settings) (*raster.Bitmap, error) {
	if opts.in == "" {
		if opts.width <= 0 || opts.height <= 0 {
			return nil, fmt.Errorf("canvas %dx%d: %w", opts.width, opts.height, editor.ErrInvalidSize)
		}
		return raster.NewBitmap(opts.width, opts.height, settings.SelectionOptions().Bg), nil
	}

	f, err := os.Open(opts.in)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", opts.in, err)
	}
	return raster.FromImage(img), nil
}

func writePNG(path string, bmp *raster.Bitmap) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, bmp.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return f.Close()
}
