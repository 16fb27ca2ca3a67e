// internal/source/source.go

// Package source fetches documents and images from files or http(s) URLs,
// optionally through the TTL cache.
package source

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/waozixyz/kryon-sdui/internal/cache"
	"github.com/waozixyz/kryon-sdui/schema"
)

// maxBody bounds how much of a response is read.
const maxBody = 16 << 20

// Loader fetches locations. The zero value reads files relative to the working
// directory and fetches URLs with http.DefaultClient and no cache.
type Loader struct {
	Client    *http.Client
	Cache     *cache.Cache
	UserAgent string
	// BaseDir resolves relative file locations. Documents loaded from a file
	// usually set it to that file's directory so image paths work.
	BaseDir string
}

// Option configures a Loader.
type Option func(*Loader)

func WithCache(c *cache.Cache) Option { return func(l *Loader) { l.Cache = c } }

func WithUserAgent(ua string) Option { return func(l *Loader) { l.UserAgent = ua } }

func WithBaseDir(dir string) Option { return func(l *Loader) { l.BaseDir = dir } }

func WithHTTPClient(client *http.Client) Option { return func(l *Loader) { l.Client = client } }

// WithTimeout bounds each HTTP fetch.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.Client = &http.Client{Timeout: d}
		}
	}
}

// New returns a loader with the given options applied.
func New(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Load fetches location and infers its document format from the path.
func (l *Loader) Load(ctx context.Context, location string) ([]byte, schema.Format, error) {
	data, err := l.Fetch(ctx, location)
	if err != nil {
		return nil, schema.FormatJSON, err
	}
	return data, formatOf(location), nil
}

// LoadDocument fetches and decodes the document at location.
func (l *Loader) LoadDocument(ctx context.Context, location string) (*schema.Node, error) {
	data, format, err := l.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	n, err := schema.DecodeBytes(data, format)
	if err != nil {
		return nil, fmt.Errorf("document %s: %w", location, err)
	}
	return n, nil
}

// LoadImage fetches and decodes an image. It satisfies render.ImageLoader.
func (l *Loader) LoadImage(ctx context.Context, src string) (image.Image, error) {
	data, err := l.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("image %s: %w", src, err)
	}
	return img, nil
}

// Fetch returns the raw bytes at location. Remote locations go through the
// cache when one is set: fresh entries skip the network, and a stale entry is
// served when the network fails.
func (l *Loader) Fetch(ctx context.Context, location string) ([]byte, error) {
	if !IsRemote(location) {
		return l.readFile(location)
	}

	var stale []byte
	if l.Cache != nil {
		data, err := l.Cache.Get(location)
		switch {
		case err == nil:
			return data, nil
		case errors.Is(err, cache.ErrExpired):
			stale = data
		case !errors.Is(err, cache.ErrMiss):
			log.Printf("WARN source: cache read %s: %v", location, err)
		}
	}

	data, err := l.get(ctx, location)
	if err != nil {
		if stale != nil && ctx.Err() == nil {
			log.Printf("WARN source: %v; serving stale copy", err)
			return stale, nil
		}
		return nil, err
	}
	if l.Cache != nil {
		if err := l.Cache.Put(location, data); err != nil {
			log.Printf("WARN source: cache write %s: %v", location, err)
		}
	}
	return data, nil
}

func (l *Loader) readFile(location string) ([]byte, error) {
	path := strings.TrimPrefix(location, "file://")
	if !filepath.IsAbs(path) && l.BaseDir != "" {
		path = filepath.Join(l.BaseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func (l *Loader) get(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	if l.UserAgent != "" {
		req.Header.Set("User-Agent", l.UserAgent)
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: %s", location, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	return data, nil
}

func formatOf(location string) schema.Format {
	if IsRemote(location) {
		if u, err := url.Parse(location); err == nil {
			return schema.FormatFromPath(u.Path)
		}
	}
	return schema.FormatFromPath(location)
}
