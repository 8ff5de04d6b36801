package memory

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aretw0/overlay/pkg/domain"
)

// Loader implements ports.PageLoader using an in-memory slice of pages.
type Loader struct {
	pages []*domain.Page
	index map[string]*domain.Page
}

// NewLoader creates a new MemoryLoader from raw JSON page definitions keyed by ID.
func NewLoader(data map[string]string) (*Loader, error) {
	pages := make([]*domain.Page, 0, len(data))
	for id, raw := range data {
		var p domain.Page
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return nil, fmt.Errorf("failed to unmarshal page %s: %w", id, err)
		}
		if p.ID == "" {
			p.ID = id
		}
		pages = append(pages, &p)
	}
	return NewFromPages("", pages...)
}

// NewFromPages creates a new MemoryLoader from domain objects.
// Pages are ordered and linked as a sidebar under baseURL.
func NewFromPages(baseURL string, pages ...*domain.Page) (*Loader, error) {
	index := make(map[string]*domain.Page, len(pages))
	for _, p := range pages {
		if p.ID == "" {
			return nil, fmt.Errorf("page missing ID")
		}
		if _, dup := index[p.ID]; dup {
			return nil, fmt.Errorf("duplicate page ID: %s", p.ID)
		}
		index[p.ID] = p
	}
	return &Loader{
		pages: domain.Sidebar(baseURL, pages),
		index: index,
	}, nil
}

// GetPage returns a copy of the page metadata sharing the (read-only) body.
func (l *Loader) GetPage(ctx context.Context, id string) (*domain.Page, error) {
	p, ok := l.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrPageNotFound, id)
	}
	cp := *p
	return &cp, nil
}

// ListPages returns all pages in sidebar order.
func (l *Loader) ListPages(ctx context.Context) ([]domain.PageInfo, error) {
	infos := make([]domain.PageInfo, 0, len(l.pages))
	for _, p := range l.pages {
		infos = append(infos, p.Info())
	}
	return infos, nil
}
