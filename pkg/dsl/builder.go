package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/overlay/pkg/adapters/memory"
	"github.com/aretw0/overlay/pkg/domain"
)

// Builder manages the site construction.
type Builder struct {
	baseURL string
	order   []string
	pages   map[string]*PageBuilder
}

// New creates a new site builder.
func New() *Builder {
	return &Builder{
		pages: make(map[string]*PageBuilder),
	}
}

// BaseURL sets the prefix of every permalink.
func (b *Builder) BaseURL(url string) *Builder {
	b.baseURL = url
	return b
}

// Add creates a new page.
// If the page already exists, it returns the existing builder.
func (b *Builder) Add(id string) *PageBuilder {
	if pb, ok := b.pages[id]; ok {
		return pb
	}
	pb := &PageBuilder{
		page: domain.Page{ID: id},
	}
	b.pages[id] = pb
	b.order = append(b.order, id)
	return pb
}

// Build compiles the pages into a memory Loader.
func (b *Builder) Build() (*memory.Loader, error) {
	pages := make([]*domain.Page, 0, len(b.order))
	var errs []error
	for _, id := range b.order {
		pb := b.pages[id]
		errs = append(errs, pb.errs...)
		p := pb.page
		pages = append(pages, &p)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	loader, err := memory.NewFromPages(b.baseURL, pages...)
	if err != nil {
		return nil, fmt.Errorf("failed to build memory loader: %w", err)
	}

	return loader, nil
}
