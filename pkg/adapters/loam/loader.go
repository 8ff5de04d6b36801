package loam

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aretw0/loam"
	"github.com/aretw0/overlay/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// Loader adapts the Loam library to the Overlay PageLoader interface.
type Loader struct {
	Repo    *loam.TypedRepository[PageMetadata]
	baseURL string
}

// Option configures the Loader.
type Option func(*Loader)

// WithBaseURL prefixes every permalink with baseURL.
func WithBaseURL(baseURL string) Option {
	return func(l *Loader) {
		l.baseURL = baseURL
	}
}

// New creates a new Loam adapter.
func New(repo *loam.TypedRepository[PageMetadata], opts ...Option) *Loader {
	l := &Loader{
		Repo: repo,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// entry pairs a page with the Loam document it was read from.
type entry struct {
	docID string
	page  *domain.Page
}

// GetPage retrieves a page and links it to its sidebar neighbours.
func (l *Loader) GetPage(ctx context.Context, id string) (*domain.Page, error) {
	entries, err := l.entries(ctx)
	if err != nil {
		return nil, err
	}

	for _, e := range entries {
		if e.page.ID != id {
			continue
		}

		// List does not guarantee the document text; fetch the document itself.
		doc, err := l.Repo.Get(ctx, e.docID)
		if err != nil {
			return nil, fmt.Errorf("loam get failed for %s: %w", id, err)
		}

		body, err := buildBody(doc.Data.Body, doc.Content)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", id, err)
		}
		e.page.Body = body
		return e.page, nil
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrPageNotFound, id)
}

// isPartial reports whether a document lives under, or is, a name starting
// with "_" ("_category_.json", "_partials/snippet.md"). Those are not pages.
func isPartial(docID string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(docID), "/") {
		if strings.HasPrefix(seg, "_") {
			return true
		}
	}
	return false
}

// ListPages lists all pages in sidebar order.
func (l *Loader) ListPages(ctx context.Context) ([]domain.PageInfo, error) {
	entries, err := l.entries(ctx)
	if err != nil {
		return nil, err
	}
	infos := make([]domain.PageInfo, 0, len(entries))
	for _, e := range entries {
		infos = append(infos, e.page.Info())
	}
	return infos, nil
}

func (l *Loader) entries(ctx context.Context) ([]entry, error) {
	docs, err := l.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("loam list failed: %w", err)
	}

	seen := make(map[string]string)
	byPage := make(map[*domain.Page]entry, len(docs))
	pages := make([]*domain.Page, 0, len(docs))

	for _, doc := range docs {
		if isPartial(doc.ID) {
			continue
		}

		// Use the ID from metadata if available, otherwise filename ID
		rawID := doc.Data.ID
		if rawID == "" {
			rawID = doc.ID
		}
		id := trimExtension(rawID)

		// Collision Detection
		if existingPath, ok := seen[id]; ok {
			return nil, fmt.Errorf("collision detected: ID '%s' is defined in both '%s' and '%s'", id, existingPath, doc.ID)
		}
		seen[id] = doc.ID

		page, err := buildPage(id, doc.Data)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", id, err)
		}
		pages = append(pages, page)
		byPage[page] = entry{docID: doc.ID, page: page}
	}

	pages = domain.Sidebar(l.baseURL, pages)
	entries := make([]entry, 0, len(pages))
	for _, p := range pages {
		entries = append(entries, byPage[p])
	}
	return entries, nil
}

func buildPage(id string, meta PageMetadata) (*domain.Page, error) {
	position, err := toInt(meta.SidebarPosition)
	if err != nil {
		return nil, fmt.Errorf("invalid sidebar_position: %w", err)
	}

	page := &domain.Page{
		ID:              id,
		Title:           meta.Title,
		Description:     meta.Description,
		Slug:            meta.Slug,
		SidebarPosition: position,
	}
	override := &domain.Override{
		Components: meta.Components,
		Transform:  meta.Transform,
		Isolate:    meta.Isolate,
	}
	if !override.IsZero() {
		page.Override = override
	}
	return page, nil
}

// buildBody decodes the structured body, or splits content into paragraphs.
func buildBody(raw []any, content string) ([]*domain.Node, error) {
	if len(raw) == 0 {
		return paragraphs(content), nil
	}

	var specs []NodeSpec
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &specs,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid body: %w", err)
	}
	return convertNodes(specs)
}

func convertNodes(specs []NodeSpec) ([]*domain.Node, error) {
	nodes := make([]*domain.Node, 0, len(specs))
	for i, s := range specs {
		if s.Kind == "" {
			return nil, fmt.Errorf("body node %d: missing kind", i)
		}
		children, err := convertNodes(s.Children)
		if err != nil {
			return nil, err
		}
		n := &domain.Node{
			ID:       s.ID,
			Kind:     s.Kind,
			Text:     s.Text,
			Attrs:    s.Attrs,
			Children: children,
		}
		override := &domain.Override{Components: s.Components, Transform: s.Transform, Isolate: s.Isolate}
		if !override.IsZero() {
			n.Override = override
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

// paragraphs turns blank-line separated blocks of text into p nodes.
// Lines inside a block are joined with a space.
func paragraphs(content string) []*domain.Node {
	var nodes []*domain.Node
	for _, block := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n\n") {
		lines := strings.Fields(strings.ReplaceAll(block, "\n", " "))
		if len(lines) == 0 {
			continue
		}
		nodes = append(nodes, &domain.Node{Kind: domain.KindParagraph, Text: strings.Join(lines, " ")})
	}
	return nodes
}

func toInt(v any) (int, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case uint64:
		return int(n), nil
	case float64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(strings.TrimSpace(n))
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func trimExtension(id string) string {
	ext := filepath.Ext(id)
	if ext != "" {
		return filepath.ToSlash(strings.TrimSuffix(id, ext))
	}
	return filepath.ToSlash(id)
}

// Watch implements ports.Watchable.
func (l *Loader) Watch(ctx context.Context) (<-chan string, error) {
	// Watch for all relevant files (recursive) using doublestar pattern supported by Loam/Doublestar
	events, err := l.Repo.Watch(ctx, "**/*.{md,mdx,json,yaml,yml}")
	if err != nil {
		return nil, fmt.Errorf("failed to start loam watcher: %w", err)
	}

	ch := make(chan string, 1)

	go func() {
		defer close(ch)
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-events:
				if !ok {
					return
				}
				select {
				case ch <- trimExtension(evt.ID):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}
