package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/overlay"
	"github.com/aretw0/overlay/pkg/domain"
	"github.com/aretw0/overlay/pkg/render"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Site defines what the HTTP adapter needs from an overlay site.
type Site interface {
	Pages(ctx context.Context) ([]domain.PageInfo, error)
	Page(ctx context.Context, id string) (*domain.Page, error)
	TOC(ctx context.Context, id string) ([]domain.TOCEntry, error)
	Format(name string) (*render.Format, error)
	Render(ctx context.Context, id, format string) ([]byte, error)
	Watch(ctx context.Context) (<-chan string, error)
}

var _ Site = (*overlay.Site)(nil)

// Server serves pages of a Site.
type Server struct {
	Site     Site
	Title    string
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// Option configures the handler.
type Option func(*Server)

// WithTitle sets the title used in the HTML shell.
func WithTitle(title string) Option {
	return func(s *Server) { s.Title = title }
}

// WithGatherer exposes the given registry on /metrics instead of the default one.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) { s.Gatherer = g }
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.Logger = l }
}

// NewHandler creates a new HTTP handler for the site.
func NewHandler(site Site, opts ...Option) http.Handler {
	server := &Server{
		Site:     site,
		Title:    "Documentation",
		Gatherer: prometheus.DefaultGatherer,
		Logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Get("/pages", server.ListPages)
	// Page IDs contain slashes ("fmu/general_preparations"), so they are
	// always the trailing wildcard of a route.
	r.Get("/pages/*", server.GetPage)
	r.Get("/toc/*", server.GetTOC)
	r.Get("/events", server.SubscribeEvents)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(server.Gatherer, promhttp.HandlerOpts{}))

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, map[string]any{
		"app":     "overlay-http",
		"version": strings.TrimSpace(overlay.Version),
		"formats": render.FormatNames(),
	})
}

// ListPages handles the GET /pages request.
func (s *Server) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := s.Site.Pages(r.Context())
	if err != nil {
		s.fail(w, "ListPages", err)
		return
	}
	writeJSON(w, s.Logger, pages)
}

// GetPage handles GET /pages/{id}.
func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pageID(w, r)
	if !ok {
		return
	}

	format, err := s.Site.Format(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	body, err := s.Site.Render(r.Context(), id, format.Name)
	if err != nil {
		s.fail(w, "GetPage", err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType)
	if format.Name == render.FormatHTML && r.URL.Query().Get("fragment") == "" {
		page, err := s.Site.Page(r.Context(), id)
		if err != nil {
			s.fail(w, "GetPage", err)
			return
		}
		fmt.Fprintf(w, htmlShell, html.EscapeString(page.Title+" | "+s.Title), body)
		return
	}
	w.Write(body)
}

// GetTOC handles GET /toc/{id}.
func (s *Server) GetTOC(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pageID(w, r)
	if !ok {
		return
	}
	toc, err := s.Site.TOC(r.Context(), id)
	if err != nil {
		s.fail(w, "GetTOC", err)
		return
	}
	if toc == nil {
		toc = []domain.TOCEntry{}
	}
	writeJSON(w, s.Logger, toc)
}

// SubscribeEvents handles the GET /events request (SSE).
// Each event carries the ID of a changed page.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.Logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	events, err := s.Site.Watch(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Watch error: %v", err), http.StatusNotImplemented)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.Logger.Debug("SSE Client Disconnected")
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", event)
			flusher.Flush()
		}
	}
}

// pageID reads the page ID captured by a wildcard route, answering 400 when it is invalid.
func (s *Server) pageID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := domain.CleanID(chi.URLParam(r, "*"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		s.Logger.Warn("Invalid page id", "path", r.URL.Path, "error", err)
		return "", false
	}
	return id, true
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrPageNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, render.ErrUnknownFormat):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
		s.Logger.Error(op+" failed", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Response encode failed", "error", err)
	}
}

const htmlShell = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width, initial-scale=1" />
<title>%s</title>
</head>
<body>
%s
</body>
</html>
`
