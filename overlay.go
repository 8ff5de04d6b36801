package overlay

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/aretw0/loam"
	loamAdapter "github.com/aretw0/overlay/pkg/adapters/loam"
	"github.com/aretw0/overlay/pkg/domain"
	"github.com/aretw0/overlay/pkg/observability"
	"github.com/aretw0/overlay/pkg/ports"
	"github.com/aretw0/overlay/pkg/render"
)

// Site is the high-level entry point for the Overlay library.
// It loads pages, renders them in a format and caches the output.
type Site struct {
	loader  ports.PageLoader
	cache   ports.PageCache
	metrics *observability.Metrics
	logger  *slog.Logger
	baseURL string
	Name    string

	mu      sync.Mutex
	formats map[string]*render.Format
	docs    map[string]*render.Document

	// generation is bumped by Invalidate; renders started under an older
	// generation neither keep their document nor write to the cache.
	generation uint64
	// rendered holds the IDs of pages written to the cache since the last
	// full invalidation, so deleted pages are evicted too.
	rendered map[string]struct{}
	// cacheMu orders cache writes (read lock) against Invalidate (write lock).
	cacheMu sync.RWMutex
}

// Option defines a functional option for configuring the Site.
type Option func(*Site)

// WithLoader injects a custom PageLoader, bypassing the default Loam initialization.
func WithLoader(l ports.PageLoader) Option {
	return func(s *Site) {
		s.loader = l
	}
}

// WithLogger sets a custom structured logger for the site.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Site) {
		s.logger = logger
	}
}

// WithCache stores rendered pages in cache.
func WithCache(cache ports.PageCache) Option {
	return func(s *Site) {
		s.cache = cache
	}
}

// WithMetrics records renders and cache lookups.
func WithMetrics(m *observability.Metrics) Option {
	return func(s *Site) {
		s.metrics = m
	}
}

// WithBaseURL prefixes permalinks of the default Loam loader.
func WithBaseURL(baseURL string) Option {
	return func(s *Site) {
		s.baseURL = baseURL
	}
}

// New initializes a new Site.
// By default, it reads pages from a Loam repository at the given path.
// If WithLoader option is provided, dir can be empty and Loam is skipped.
func New(dir string, opts ...Option) (*Site, error) {
	site := &Site{
		formats:  make(map[string]*render.Format),
		docs:     make(map[string]*render.Document),
		rendered: make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(site)
	}

	if site.loader == nil {
		if dir == "" {
			return nil, fmt.Errorf("dir is required when no custom loader is provided")
		}

		absPath, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		site.Name = filepath.Base(absPath)

		// The site never writes content; ReadOnly avoids Loam's dev-mode sandbox.
		repo, err := loam.Init(absPath, loam.WithReadOnly(true))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize loam: %w", err)
		}

		typedRepo := loam.NewTypedRepository[loamAdapter.PageMetadata](repo)
		site.loader = loamAdapter.New(typedRepo, loamAdapter.WithBaseURL(site.baseURL))
	} else if dir != "" {
		site.Name = filepath.Base(dir)
	}

	if site.logger == nil {
		site.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if site.Name != "" {
		site.logger = site.logger.With("site", site.Name)
	}

	return site, nil
}

// Pages lists the pages in sidebar order.
func (s *Site) Pages(ctx context.Context) ([]domain.PageInfo, error) {
	return s.loader.ListPages(ctx)
}

// Page returns a page with its body and neighbour links.
func (s *Site) Page(ctx context.Context, id string) (*domain.Page, error) {
	return s.loader.GetPage(ctx, id)
}

// TOC returns the table of contents of a page.
func (s *Site) TOC(ctx context.Context, id string) ([]domain.TOCEntry, error) {
	page, err := s.loader.GetPage(ctx, id)
	if err != nil {
		return nil, err
	}
	return render.TOC(page), nil
}

// Format returns the site's instance of a built-in format.
// Instances are kept so that their theme map stays the same across renders.
func (s *Site) Format(name string) (*render.Format, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formatLocked(name)
}

func (s *Site) formatLocked(name string) (*render.Format, error) {
	f, err := render.NewFormat(name)
	if err != nil {
		return nil, err
	}
	if existing, ok := s.formats[f.Name]; ok {
		return existing, nil
	}
	s.formats[f.Name] = f
	return f, nil
}

// Render returns the page rendered in the named format, using the cache when configured.
func (s *Site) Render(ctx context.Context, id, formatName string) ([]byte, error) {
	format, err := s.Format(formatName)
	if err != nil {
		return nil, err
	}
	key := cacheKey(format.Name, id)

	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	if s.cache != nil {
		data, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("Cache lookup failed", "key", key, "error", err)
		} else {
			s.metrics.ObserveCache(ok)
			if ok {
				return data, nil
			}
		}
	}

	doc, err := s.document(ctx, id, format, gen)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	start := time.Now()
	stats, err := doc.Render(&buf)
	s.metrics.ObserveRender(format.Name, stats.Resolved, stats.Reused, time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("render %s as %s: %w", id, format.Name, err)
	}
	s.logger.Debug("Page rendered",
		"page", id,
		"format", format.Name,
		"nodes", stats.Nodes,
		"resolved", stats.Resolved,
		"reused", stats.Reused,
	)

	if s.cache != nil {
		s.store(ctx, id, key, gen, buf.Bytes())
	}
	return buf.Bytes(), nil
}

// store writes rendered output unless an invalidation happened since the
// render started.
func (s *Site) store(ctx context.Context, id, key string, gen uint64, data []byte) {
	s.cacheMu.RLock()
	defer s.cacheMu.RUnlock()

	s.mu.Lock()
	current := s.generation == gen
	if current {
		s.rendered[id] = struct{}{}
	}
	s.mu.Unlock()

	if !current {
		s.logger.Debug("Skipping cache store of invalidated render", "key", key)
		return
	}
	if err := s.cache.Set(ctx, key, data); err != nil {
		s.logger.Warn("Cache store failed", "key", key, "error", err)
	}
}

// document returns the compiled page, compiling it on first use.
// A document compiled under an older generation is returned but not kept.
func (s *Site) document(ctx context.Context, id string, format *render.Format, gen uint64) (*render.Document, error) {
	key := cacheKey(format.Name, id)

	s.mu.Lock()
	doc, ok := s.docs[key]
	s.mu.Unlock()
	if ok {
		return doc, nil
	}

	page, err := s.loader.GetPage(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err = render.Compile(page, format)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.generation != gen {
		return doc, nil
	}
	if existing, ok := s.docs[key]; ok {
		return existing, nil
	}
	s.docs[key] = doc
	return doc, nil
}

// Invalidate drops compiled documents and cached output for a page.
// An empty id invalidates every page, including pages that no longer exist.
func (s *Site) Invalidate(ctx context.Context, id string) error {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.mu.Lock()
	s.generation++
	ids := []string{id}
	if id == "" {
		ids = ids[:0]
		for rendered := range s.rendered {
			ids = append(ids, rendered)
		}
		s.docs = make(map[string]*render.Document)
		s.rendered = make(map[string]struct{})
	} else {
		for _, name := range render.FormatNames() {
			delete(s.docs, cacheKey(name, id))
		}
		delete(s.rendered, id)
	}
	s.mu.Unlock()

	if s.cache == nil {
		return nil
	}

	if id == "" {
		if c, ok := s.cache.(ports.Clearable); ok {
			if err := c.Clear(ctx); err != nil {
				return fmt.Errorf("invalidate all: %w", err)
			}
			s.logger.Info("Page cache cleared")
			return nil
		}
		// Pages cached by an earlier process are only known to the loader.
		pages, err := s.loader.ListPages(ctx)
		if err != nil {
			return err
		}
		for _, p := range pages {
			ids = append(ids, p.ID)
		}
	}

	for _, pageID := range ids {
		for _, name := range render.FormatNames() {
			if err := s.cache.Delete(ctx, cacheKey(name, pageID)); err != nil {
				return fmt.Errorf("invalidate %s: %w", pageID, err)
			}
		}
	}
	s.logger.Info("Pages invalidated", "count", len(ids))
	return nil
}

// Watch returns a channel that receives the ID of every changed page.
// Returns error if the loader does not support watching.
func (s *Site) Watch(ctx context.Context) (<-chan string, error) {
	if w, ok := s.loader.(ports.Watchable); ok {
		return w.Watch(ctx)
	}
	return nil, fmt.Errorf("current loader does not support watching")
}

// Loader returns the underlying PageLoader used by the site.
func (s *Site) Loader() ports.PageLoader {
	return s.loader
}

func cacheKey(format, id string) string {
	return format + ":" + id
}
