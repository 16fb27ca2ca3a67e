// internal/config/config.go

// Package config loads the TOML settings shared by the commands.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/waozixyz/kryon-sdui/render"
)

// Config represents the sdui.toml configuration file.
type Config struct {
	Window WindowConfig `toml:"window"`
	Render RenderConfig `toml:"render"`
	Cache  CacheConfig  `toml:"cache"`
	Source SourceConfig `toml:"source"`
}

type WindowConfig struct {
	Width     int     `toml:"width"`
	Height    int     `toml:"height"`
	Title     string  `toml:"title"`
	Resizable bool    `toml:"resizable"`
	Scale     float32 `toml:"scale"`
}

type RenderConfig struct {
	// Backend is "raylib" or "term".
	Backend string `toml:"backend"`
	// Disabled cards always dim; with this set they also swallow input.
	DisabledCardsBlockInput bool `toml:"disabled_cards_block_input"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
	// TTL is a Go duration string such as "10m". Empty or "0" never expires.
	TTL string `toml:"ttl"`
}

type SourceConfig struct {
	// Timeout is a Go duration string bounding each HTTP fetch.
	Timeout   string `toml:"timeout"`
	UserAgent string `toml:"user_agent"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Width:     390,
			Height:    844,
			Title:     "sdui",
			Resizable: true,
			Scale:     1.0,
		},
		Render: RenderConfig{
			Backend: "raylib",
		},
		Cache: CacheConfig{
			Enabled: false,
			Path:    "sdui-cache.db",
			TTL:     "10m",
		},
		Source: SourceConfig{
			Timeout:   "15s",
			UserAgent: "kryon-sdui",
		},
	}
}

// DefaultPath is where commands look for a config file.
const DefaultPath = "sdui.toml"

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("invalid %s: %w", path, err)
	}
	return config, nil
}

// Validate checks values the types cannot.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	switch c.Render.Backend {
	case "raylib", "term":
	default:
		return fmt.Errorf("unknown render backend %q", c.Render.Backend)
	}
	if _, err := c.CacheTTL(); err != nil {
		return err
	}
	if _, err := c.SourceTimeout(); err != nil {
		return err
	}
	return nil
}

// CacheTTL parses the cache TTL.
func (c Config) CacheTTL() (time.Duration, error) {
	return parseDuration("cache.ttl", c.Cache.TTL)
}

// SourceTimeout parses the fetch timeout.
func (c Config) SourceTimeout() (time.Duration, error) {
	return parseDuration("source.timeout", c.Source.Timeout)
}

func parseDuration(field, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: negative duration %s", field, s)
	}
	return d, nil
}

// RenderWindow converts the window section for a renderer.
func (c Config) RenderWindow() render.WindowConfig {
	wc := render.DefaultWindowConfig()
	wc.Width = c.Window.Width
	wc.Height = c.Window.Height
	wc.Title = c.Window.Title
	wc.Resizable = c.Window.Resizable
	if c.Window.Scale > 0 {
		wc.ScaleFactor = c.Window.Scale
	}
	return wc
}

// MapperOptions returns the mapper options implied by the render section.
func (c Config) MapperOptions() []render.Option {
	return []render.Option{
		render.WithDisabledCardsBlockInput(c.Render.DisabledCardsBlockInput),
	}
}
