package domain

import (
	"path"
	"sort"
	"strings"
)

// Permalink joins a site base URL and a page slug.
func Permalink(baseURL, slug string) string {
	return path.Join("/", strings.Trim(baseURL, "/"), strings.TrimPrefix(slug, "/"))
}

// Sidebar sorts pages by sidebar position, then ID, and links each page to its
// neighbours. Slugs and permalinks are filled in when missing.
func Sidebar(baseURL string, pages []*Page) []*Page {
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].SidebarPosition != pages[j].SidebarPosition {
			return pages[i].SidebarPosition < pages[j].SidebarPosition
		}
		return pages[i].ID < pages[j].ID
	})

	for _, p := range pages {
		if p.Slug == "" {
			p.Slug = "/" + p.ID
		}
		if p.Permalink == "" {
			p.Permalink = Permalink(baseURL, p.Slug)
		}
		if p.Title == "" {
			p.Title = p.ID
		}
	}

	for i, p := range pages {
		p.Previous, p.Next = nil, nil
		if i > 0 {
			p.Previous = &Link{Title: pages[i-1].Title, Permalink: pages[i-1].Permalink}
		}
		if i < len(pages)-1 {
			p.Next = &Link{Title: pages[i+1].Title, Permalink: pages[i+1].Permalink}
		}
	}
	return pages
}
