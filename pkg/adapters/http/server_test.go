package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/overlay"
	"github.com/aretw0/overlay/pkg/adapters/memory"
	"github.com/aretw0/overlay/pkg/domain"
	"github.com/aretw0/overlay/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// watchSite adds a Watch implementation to an overlay site.
type watchSite struct {
	*overlay.Site
	events []string
}

func (w *watchSite) Watch(ctx context.Context) (<-chan string, error) {
	ch := make(chan string, len(w.events))
	for _, e := range w.events {
		ch <- e
	}
	close(ch)
	return ch, nil
}

func newTestSite(t *testing.T, opts ...overlay.Option) *overlay.Site {
	t.Helper()
	loader, err := memory.NewFromPages("",
		&domain.Page{
			ID:    "guide/intro",
			Title: "Intro",
			Body: []*domain.Node{
				{Kind: domain.KindHeading2, Text: "Getting started"},
				{Kind: domain.KindParagraph, Text: "Hi"},
			},
		},
	)
	require.NoError(t, err)
	site, err := overlay.New("", append([]overlay.Option{overlay.WithLoader(loader)}, opts...)...)
	require.NoError(t, err)
	return site
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestListPages(t *testing.T) {
	h := NewHandler(newTestSite(t))

	w := get(t, h, "/pages")
	require.Equal(t, http.StatusOK, w.Code)

	var pages []domain.PageInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pages))
	require.Len(t, pages, 1)
	assert.Equal(t, "guide/intro", pages[0].ID)
}

func TestGetPage(t *testing.T) {
	h := NewHandler(newTestSite(t), WithTitle("Completor"))

	t.Run("html shell", func(t *testing.T) {
		w := get(t, h, "/pages/guide/intro")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
		assert.Contains(t, w.Body.String(), "<title>Intro | Completor</title>")
		assert.Contains(t, w.Body.String(), `<h2 id="getting-started">Getting started</h2>`)
	})

	t.Run("html fragment", func(t *testing.T) {
		w := get(t, h, "/pages/guide/intro?fragment=1")
		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "<title>")
	})

	t.Run("markdown", func(t *testing.T) {
		w := get(t, h, "/pages/guide/intro?format=markdown")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "## Getting started")
	})

	t.Run("unknown format", func(t *testing.T) {
		w := get(t, h, "/pages/guide/intro?format=pdf")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown page", func(t *testing.T) {
		w := get(t, h, "/pages/nope")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetTOC(t *testing.T) {
	h := NewHandler(newTestSite(t))

	w := get(t, h, "/toc/guide/intro")
	require.Equal(t, http.StatusOK, w.Code)

	var toc []domain.TOCEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toc))
	require.Len(t, toc, 1)
	assert.Equal(t, domain.TOCEntry{Value: "Getting started", ID: "getting-started", Level: 2}, toc[0])

	assert.Equal(t, http.StatusNotFound, get(t, h, "/toc/nope").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/toc/").Code)
}

func TestGetPage_IDEndingInTOC(t *testing.T) {
	loader, err := memory.NewFromPages("",
		&domain.Page{ID: "guides", Title: "Guides", Body: []*domain.Node{{Kind: domain.KindHeading2, Text: "All guides"}}},
		&domain.Page{ID: "guides/toc", Title: "Contents", Body: []*domain.Node{{Kind: domain.KindParagraph, Text: "Index page"}}},
	)
	require.NoError(t, err)
	site, err := overlay.New("", overlay.WithLoader(loader))
	require.NoError(t, err)
	h := NewHandler(site)

	w := get(t, h, "/pages/guides/toc?fragment=1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "<p>Index page</p>")

	var toc []domain.TOCEntry
	w = get(t, h, "/toc/guides")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &toc))
	require.Len(t, toc, 1)
	assert.Equal(t, "All guides", toc[0].Value)
}

func TestHealthAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	site := newTestSite(t, overlay.WithMetrics(observability.NewMetrics(reg)))
	h := NewHandler(site, WithGatherer(reg))

	assert.JSONEq(t, `{"status":"ok"}`, get(t, h, "/health").Body.String())

	require.Equal(t, http.StatusOK, get(t, h, "/pages/guide/intro").Code)
	w := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `overlay_renders_total{format="html",outcome="ok"} 1`)
}

func TestSubscribeEvents(t *testing.T) {
	h := NewHandler(&watchSite{Site: newTestSite(t), events: []string{"guide/intro"}})

	w := get(t, h, "/events")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "event: ping")
	assert.Contains(t, w.Body.String(), "data: guide/intro")
}

func TestSubscribeEvents_Unsupported(t *testing.T) {
	h := NewHandler(newTestSite(t))
	assert.Equal(t, http.StatusNotImplemented, get(t, h, "/events").Code)
}

func TestGetPage_InvalidID(t *testing.T) {
	h := NewHandler(newTestSite(t))

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/pages/").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, h, "/pages/a/../b").Code)
}
