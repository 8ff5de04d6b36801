package tests

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/overlay/pkg/domain"
	"github.com/aretw0/overlay/pkg/ports"
)

// PageLoaderContractTest is a reusable test suite that verifies if an adapter complies with ports.PageLoader.
// expected maps page IDs to their titles.
func PageLoaderContractTest(t *testing.T, loader ports.PageLoader, expected map[string]string) {
	t.Helper()
	ctx := context.Background()

	// 1. Test GetPage (Success)
	t.Run("GetPage_Success", func(t *testing.T) {
		for id, title := range expected {
			page, err := loader.GetPage(ctx, id)
			if err != nil {
				t.Fatalf("unexpected error getting page %s: %v", id, err)
			}
			if page.ID != id {
				t.Errorf("id mismatch: got %q, want %q", page.ID, id)
			}
			if page.Title != title {
				t.Errorf("title mismatch for %s. got %q, want %q", id, page.Title, title)
			}
		}
	})

	// 2. Test GetPage (NotFound)
	t.Run("GetPage_NotFound", func(t *testing.T) {
		_, err := loader.GetPage(ctx, "non-existent-page")
		if !errors.Is(err, domain.ErrPageNotFound) {
			t.Errorf("expected ErrPageNotFound for non-existent page, got %v", err)
		}
	})

	// 3. Test ListPages
	t.Run("ListPages", func(t *testing.T) {
		pages, err := loader.ListPages(ctx)
		if err != nil {
			t.Fatalf("unexpected error listing pages: %v", err)
		}

		if len(pages) != len(expected) {
			t.Errorf("expected %d pages, got %d", len(expected), len(pages))
		}

		lookup := make(map[string]bool)
		for _, p := range pages {
			lookup[p.ID] = true
		}
		for id := range expected {
			if !lookup[id] {
				t.Errorf("page %s missing from list", id)
			}
		}

		for i := 1; i < len(pages); i++ {
			if pages[i-1].SidebarPosition > pages[i].SidebarPosition {
				t.Errorf("pages not in sidebar order: %s (%d) before %s (%d)",
					pages[i-1].ID, pages[i-1].SidebarPosition, pages[i].ID, pages[i].SidebarPosition)
			}
		}
	})
}
