package render

import (
	"strings"

	"github.com/aretw0/overlay/pkg/domain"
)

// TOC lists the h2 and h3 headings of a page in document order.
func TOC(page *domain.Page) []domain.TOCEntry {
	var entries []domain.TOCEntry
	var visit func(nodes []*domain.Node)
	visit = func(nodes []*domain.Node) {
		for _, n := range nodes {
			level := domain.HeadingLevel(n.Kind)
			if level == 2 || level == 3 {
				value := strings.TrimSpace(n.PlainText())
				id := n.Attr(domain.AttrID)
				if id == "" {
					id = Slug(value)
				}
				entries = append(entries, domain.TOCEntry{Value: value, ID: id, Level: level})
				continue
			}
			visit(n.Children)
		}
	}
	visit(page.Body)
	return entries
}
