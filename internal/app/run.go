// internal/app/run.go
package app

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/waozixyz/kryon-sdui/action"
	"github.com/waozixyz/kryon-sdui/internal/cache"
	"github.com/waozixyz/kryon-sdui/internal/config"
	"github.com/waozixyz/kryon-sdui/internal/source"
	"github.com/waozixyz/kryon-sdui/render"
	"github.com/waozixyz/kryon-sdui/schema"
)

// Options describe what Run shows and how.
type Options struct {
	// Location is a document path or URL. Ignored when Document is set.
	Location string
	Document *schema.Node
	Config   config.Config
	// Setup runs once the session exists, before the first render. Commands
	// register action routes and handlers here.
	Setup func(s *Session) error
	// LogPath, when set, is where the command sends its log.
	LogPath string
}

// Session owns the screen currently on display and everything needed to
// replace it.
type Session struct {
	Mapper     *render.Mapper
	Dispatcher *action.Dispatcher
	Loader     *source.Loader

	ctx     context.Context
	cancel  context.CancelFunc
	cache   *cache.Cache
	root    *render.Element
	pending *schema.Node
}

// NewSession builds the loader, cache, dispatcher and mapper described by cfg.
// baseDir resolves relative file locations.
func NewSession(cfg config.Config, baseDir string) (*Session, error) {
	timeout, err := cfg.SourceTimeout()
	if err != nil {
		return nil, err
	}
	s := &Session{Dispatcher: action.NewDispatcher()}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	loaderOpts := []source.Option{
		source.WithBaseDir(baseDir),
		source.WithTimeout(timeout),
		source.WithUserAgent(cfg.Source.UserAgent),
	}
	if cfg.Cache.Enabled {
		ttl, err := cfg.CacheTTL()
		if err != nil {
			s.cancel()
			return nil, err
		}
		c, err := cache.Open(cfg.Cache.Path, ttl)
		if err != nil {
			s.cancel()
			return nil, err
		}
		s.cache = c
		loaderOpts = append(loaderOpts, source.WithCache(c))
		log.Printf("INFO NewSession: caching remote content in %s (ttl %s)", cfg.Cache.Path, ttl)
	}
	s.Loader = source.New(loaderOpts...)

	mapperOpts := append(cfg.MapperOptions(),
		render.WithPerformer(s.Dispatcher),
		render.WithImageLoader(s.Loader),
		render.WithContext(s.ctx),
	)
	s.Mapper = render.NewMapper(mapperOpts...)
	return s, nil
}

// Root returns the element tree on display.
func (s *Session) Root() *render.Element { return s.root }

// Show replaces the screen with n before the next frame. Handlers running
// inside the current tree may call it.
func (s *Session) Show(n *schema.Node) {
	s.pending = n
}

// Open loads the document at location and shows it.
func (s *Session) Open(location string) error {
	doc, err := s.Loader.LoadDocument(s.ctx, location)
	if err != nil {
		return err
	}
	log.Printf("INFO Session.Open: %s (%d nodes)", location, schema.Count(doc))
	s.Show(doc)
	return nil
}

// apply swaps in a pending screen.
func (s *Session) apply() {
	if s.pending == nil {
		return
	}
	n := s.pending
	s.pending = nil
	s.root = s.Mapper.Rebuild(s.root, n)
	log.Printf("INFO Session: showing %s with %d elements", n.Tag(), s.root.Count())
}

// Close tears down the screen, cancels outstanding loads and closes the
// cache.
func (s *Session) Close() {
	if s.root != nil {
		s.root.Close()
	}
	s.cancel()
	if s.cache != nil {
		if err := s.cache.Close(); err != nil {
			log.Printf("WARN Session.Close: %v", err)
		}
	}
}

// Run is the core application logic, independent of the specific renderer.
func Run(renderer render.Renderer, opts Options) error {
	baseDir := "."
	if opts.Location != "" && !source.IsRemote(opts.Location) {
		baseDir = filepath.Dir(opts.Location)
	}
	s, err := NewSession(opts.Config, baseDir)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	defer s.Close()

	if opts.Setup != nil {
		if err := opts.Setup(s); err != nil {
			return fmt.Errorf("setup: %w", err)
		}
	}

	switch {
	case opts.Document != nil:
		s.Show(opts.Document)
	case opts.Location != "":
		log.Printf("Loading document: %s", opts.Location)
		location := opts.Location
		if !source.IsRemote(location) {
			// The directory is already the loader's base dir.
			location = filepath.Base(location)
		}
		if err := s.Open(location); err != nil {
			return err
		}
	default:
		return fmt.Errorf("nothing to show: no document or location")
	}
	s.apply()

	if err := renderer.Init(opts.Config.RenderWindow()); err != nil {
		renderer.Cleanup()
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}
	defer renderer.Cleanup()

	log.Println("Entering main loop...")
	Loop(renderer, s)
	log.Println("Exiting.")
	return nil
}

// Loop drives renderer until it asks to close. Screen swaps requested by
// handlers take effect at the start of the following frame.
func Loop(renderer render.Renderer, s *Session) {
	for !renderer.ShouldClose() {
		s.apply()
		renderer.PollEvents(s.root)
		s.apply()

		renderer.BeginFrame()
		renderer.RenderFrame(s.root)
		renderer.EndFrame()
	}
}
