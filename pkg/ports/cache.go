package ports

import "context"

// PageCache stores rendered page output by key.
type PageCache interface {
	// Get returns the cached bytes and whether the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// Clearable is an optional PageCache capability: dropping every entry the
// cache owns, including keys of pages the caller no longer knows about.
type Clearable interface {
	Clear(ctx context.Context) error
}
