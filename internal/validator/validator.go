package validator

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/overlay/pkg/domain"
	"github.com/aretw0/overlay/pkg/ports"
	"github.com/aretw0/overlay/pkg/render"
)

// ValidateSite renders every page in every format and checks the sidebar.
// It reports unknown component or transform names, nodes without a component,
// duplicate permalinks and broken previous/next links, all at once.
func ValidateSite(ctx context.Context, loader ports.PageLoader, formats ...*render.Format) error {
	if len(formats) == 0 {
		formats = []*render.Format{render.HTML(), render.Markdown()}
	}

	pages, err := loader.ListPages(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pages: %w", err)
	}

	var errors []string
	permalinks := make(map[string]string, len(pages))
	for _, info := range pages {
		if other, dup := permalinks[info.Permalink]; dup {
			errors = append(errors, fmt.Sprintf("Duplicate permalink '%s': '%s' and '%s'", info.Permalink, other, info.ID))
		}
		permalinks[info.Permalink] = info.ID
	}

	for _, info := range pages {
		page, err := loader.GetPage(ctx, info.ID)
		if err != nil {
			errors = append(errors, fmt.Sprintf("Missing page or load error: '%s': %v", info.ID, err))
			continue
		}

		for name, link := range map[string]*domain.Link{"previous": page.Previous, "next": page.Next} {
			if link == nil {
				continue
			}
			if _, ok := permalinks[link.Permalink]; !ok {
				errors = append(errors, fmt.Sprintf("Page '%s' links %s to unknown permalink '%s'", page.ID, name, link.Permalink))
			}
		}

		for _, format := range formats {
			if _, err := render.RenderPage(io.Discard, page, format); err != nil {
				errors = append(errors, fmt.Sprintf("Page '%s' (%s): %v", page.ID, format.Name, err))
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}

	return nil
}
