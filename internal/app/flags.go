// internal/app/flags.go
package app

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/waozixyz/kryon-sdui/internal/config"
)

// ErrUsage is returned by ParseFlags when no document was named.
var ErrUsage = errors.New("usage: missing document")

// ParseFlags parses the flags shared by the commands. Flags override the
// config file, which overrides the defaults.
func ParseFlags(name string, args []string) (Options, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	filePath := fs.String("file", "", "Path or URL of the JSON/YAML document to render")
	configPath := fs.String("config", config.DefaultPath, "Path to the TOML config file")
	backend := fs.String("backend", "", "Render backend: raylib or term")
	width := fs.Int("width", 0, "Window width")
	height := fs.Int("height", 0, "Window height")
	title := fs.String("title", "", "Window title")
	blockDisabled := fs.Bool("block-disabled", false, "Disabled cards swallow input")
	noCache := fs.Bool("no-cache", false, "Bypass the document cache")
	logPath := fs.String("log", "", "Append logs to this file")

	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	if *filePath == "" && fs.NArg() > 0 {
		*filePath = fs.Arg(0)
	}
	if *filePath == "" {
		fs.Usage()
		return Options{}, ErrUsage
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return Options{}, err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Render.Backend = *backend
		case "width":
			cfg.Window.Width = *width
		case "height":
			cfg.Window.Height = *height
		case "title":
			cfg.Window.Title = *title
		case "block-disabled":
			cfg.Render.DisabledCardsBlockInput = *blockDisabled
		case "no-cache":
			cfg.Cache.Enabled = cfg.Cache.Enabled && !*noCache
		}
	})
	if err := cfg.Validate(); err != nil {
		return Options{}, fmt.Errorf("flags: %w", err)
	}
	return Options{Location: *filePath, Config: cfg, LogPath: *logPath}, nil
}

// SetupLogging sets the log format the commands use. A non-empty path sends
// logs to that file; quiet discards them otherwise, for backends that own
// the terminal.
func SetupLogging(path string, quiet bool) (io.Closer, error) {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log %s: %w", path, err)
		}
		log.SetOutput(f)
		return f, nil
	case quiet:
		log.SetOutput(io.Discard)
	}
	return io.NopCloser(nil), nil
}
