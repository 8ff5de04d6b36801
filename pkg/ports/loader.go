package ports

import (
	"context"

	"github.com/aretw0/overlay/pkg/domain"
)

// PageLoader defines how the site retrieves page definitions.
// This allows the storage layer (Loam, FS, Memory) to be decoupled.
type PageLoader interface {
	// GetPage retrieves a page by ID, including its body and neighbour links.
	// It returns an error wrapping domain.ErrPageNotFound for unknown IDs.
	GetPage(ctx context.Context, id string) (*domain.Page, error)

	// ListPages returns the metadata of every page, in sidebar order.
	ListPages(ctx context.Context) ([]domain.PageInfo, error)
}

// Watchable defines an interface for loaders that can notify about backend changes.
// This is typically used for hot-reload or dev-mode functionality.
type Watchable interface {
	// Watch returns a channel that receives the ID of every changed document.
	Watch(ctx context.Context) (<-chan string, error)
}
