package overlay_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/aretw0/overlay"
	"github.com/aretw0/overlay/internal/testutils"
	"github.com/aretw0/overlay/pkg/adapters/memory"
	"github.com/aretw0/overlay/pkg/domain"
	"github.com/aretw0/overlay/pkg/observability"
	"github.com/aretw0/overlay/pkg/ports"
	"github.com/aretw0/overlay/pkg/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memorySite(t *testing.T, opts ...overlay.Option) *overlay.Site {
	t.Helper()
	loader, err := memory.NewFromPages("/docs",
		&domain.Page{
			ID:              "hello",
			Title:           "Hello",
			SidebarPosition: 1,
			Body: []*domain.Node{
				{Kind: domain.KindHeading1, Text: "Hello"},
				{Kind: domain.KindParagraph, Text: "World"},
			},
		},
		&domain.Page{
			ID:              "usage",
			Title:           "Usage",
			SidebarPosition: 2,
			Override:        &domain.Override{Components: map[string]string{"p": render.ComponentLead}},
			Body: []*domain.Node{
				{Kind: domain.KindHeading2, Text: "Install"},
				{Kind: domain.KindParagraph, Text: "Run it."},
			},
		},
	)
	require.NoError(t, err)

	site, err := overlay.New("", append([]overlay.Option{overlay.WithLoader(loader)}, opts...)...)
	require.NoError(t, err)
	return site
}

func TestNew_RequiresDirOrLoader(t *testing.T) {
	_, err := overlay.New("")
	assert.Error(t, err)
}

func TestSite_LoamDirectory(t *testing.T) {
	dir := t.TempDir()
	testutils.WriteFiles(t, dir, testutils.CompletorDocs)

	site, err := overlay.New(dir, overlay.WithBaseURL("/completor"))
	require.NoError(t, err)
	ctx := context.Background()

	pages, err := site.Pages(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 3)
	assert.Equal(t, "about/description", pages[0].ID)
	assert.Equal(t, "fmu/general_preparations", pages[1].ID)

	out, err := site.Render(ctx, "fmu/general_preparations", "html")
	require.NoError(t, err)
	assert.Contains(t, string(out), `<p class="lead">The case file describes the completion.</p>`)
	// The isolated scope drops the page-level lead paragraph.
	assert.Contains(t, string(out), `<p>Generated by the simulator.</p>`)

	toc, err := site.TOC(ctx, "fmu/general_preparations")
	require.NoError(t, err)
	require.Len(t, toc, 2)
	assert.Equal(t, "Completor case file", toc[0].Value)
}

func TestSite_Render(t *testing.T) {
	site := memorySite(t)
	ctx := context.Background()

	out, err := site.Render(ctx, "hello", "")
	require.NoError(t, err)
	assert.Equal(t, `<article class="markdown"><h1 id="hello">Hello</h1><p>World</p></article>`, string(out))

	md, err := site.Render(ctx, "usage", "markdown")
	require.NoError(t, err)
	assert.Contains(t, string(md), "## Install")

	_, err = site.Render(ctx, "missing", "html")
	assert.ErrorIs(t, err, domain.ErrPageNotFound)

	_, err = site.Render(ctx, "hello", "pdf")
	assert.ErrorIs(t, err, render.ErrUnknownFormat)
}

func TestSite_FormatIsStable(t *testing.T) {
	site := memorySite(t)

	a, err := site.Format("")
	require.NoError(t, err)
	b, err := site.Format(render.FormatHTML)
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestSite_CacheAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	cache := memory.NewCache()
	site := memorySite(t, overlay.WithCache(cache), overlay.WithMetrics(metrics))
	ctx := context.Background()

	first, err := site.Render(ctx, "usage", "html")
	require.NoError(t, err)
	second, err := site.Render(ctx, "usage", "html")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Renders.WithLabelValues("html", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CacheLookups.WithLabelValues("miss")))

	require.NoError(t, site.Invalidate(ctx, "usage"))
	assert.Equal(t, 0, cache.Len())

	_, err = site.Render(ctx, "usage", "html")
	require.NoError(t, err)
	_, err = site.Render(ctx, "hello", "markdown")
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())

	require.NoError(t, site.Invalidate(ctx, ""))
	assert.Equal(t, 0, cache.Len())
}

func TestSite_WatchUnsupported(t *testing.T) {
	site := memorySite(t)
	_, err := site.Watch(context.Background())
	assert.Error(t, err)
}

// keyOnlyCache exposes a memory cache without its Clear method.
type keyOnlyCache struct {
	c *memory.Cache
}

func (k keyOnlyCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return k.c.Get(ctx, key)
}
func (k keyOnlyCache) Set(ctx context.Context, key string, data []byte) error {
	return k.c.Set(ctx, key, data)
}
func (k keyOnlyCache) Delete(ctx context.Context, key string) error { return k.c.Delete(ctx, key) }

func TestSite_InvalidateAllEvictsDeletedPages(t *testing.T) {
	caches := map[string]func(*memory.Cache) ports.PageCache{
		"clearable": func(c *memory.Cache) ports.PageCache { return c },
		"key only":  func(c *memory.Cache) ports.PageCache { return keyOnlyCache{c} },
	}

	for name, wrap := range caches {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			testutils.WriteFiles(t, dir, testutils.CompletorDocs)

			store := memory.NewCache()
			site, err := overlay.New(dir, overlay.WithCache(wrap(store)))
			require.NoError(t, err)
			ctx := context.Background()

			_, err = site.Render(ctx, "about/description", "html")
			require.NoError(t, err)
			_, err = site.Render(ctx, "about/description", "markdown")
			require.NoError(t, err)
			require.Equal(t, 2, store.Len())

			require.NoError(t, os.Remove(filepath.Join(dir, "description.md")))
			require.NoError(t, site.Invalidate(ctx, ""))

			assert.Equal(t, 0, store.Len())
			_, err = site.Render(ctx, "about/description", "html")
			assert.ErrorIs(t, err, domain.ErrPageNotFound)
		})
	}
}

// gatedLoader blocks GetPage until released, while gate is set.
type gatedLoader struct {
	*memory.Loader
	gate    chan struct{}
	entered chan struct{}
	calls   atomic.Int32
}

func (g *gatedLoader) GetPage(ctx context.Context, id string) (*domain.Page, error) {
	g.calls.Add(1)
	if g.gate != nil {
		g.entered <- struct{}{}
		<-g.gate
	}
	return g.Loader.GetPage(ctx, id)
}

func TestSite_RenderInFlightDuringInvalidate(t *testing.T) {
	inner, err := memory.NewFromPages("", &domain.Page{ID: "hello", Body: []*domain.Node{
		{Kind: domain.KindParagraph, Text: "hi"},
	}})
	require.NoError(t, err)
	loader := &gatedLoader{Loader: inner, gate: make(chan struct{}), entered: make(chan struct{})}

	cache := memory.NewCache()
	site, err := overlay.New("", overlay.WithLoader(loader), overlay.WithCache(cache))
	require.NoError(t, err)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := site.Render(ctx, "hello", "html")
		done <- err
	}()

	<-loader.entered
	require.NoError(t, site.Invalidate(ctx, ""))
	close(loader.gate)
	require.NoError(t, <-done)

	assert.Equal(t, 0, cache.Len(), "a render started before Invalidate must not repopulate the cache")

	loader.gate = nil
	_, err = site.Render(ctx, "hello", "html")
	require.NoError(t, err)
	assert.Equal(t, int32(2), loader.calls.Load(), "the stale document must not be kept")
	assert.Equal(t, 1, cache.Len())
}
