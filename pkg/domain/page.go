package domain

// Link points to a neighbouring page.
type Link struct {
	Title     string `json:"title"`
	Permalink string `json:"permalink"`
}

// TOCEntry is a heading listed in a page's table of contents.
type TOCEntry struct {
	Value string `json:"value"`
	ID    string `json:"id"`
	Level int    `json:"level"`
}

// Page is a single document of the site.
type Page struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Slug            string `json:"slug"`
	Permalink       string `json:"permalink"`
	SidebarPosition int    `json:"sidebar_position"`
	Previous        *Link  `json:"previous,omitempty"`
	Next            *Link  `json:"next,omitempty"`

	// Override is the page-level declaration, applied on top of the theme at the root.
	Override *Override `json:"override,omitempty"`

	Body []*Node `json:"body"`
}

// Info returns the metadata of the page without its body.
func (p *Page) Info() PageInfo {
	return PageInfo{
		ID:              p.ID,
		Title:           p.Title,
		Description:     p.Description,
		Permalink:       p.Permalink,
		SidebarPosition: p.SidebarPosition,
	}
}

// PageInfo is the lightweight listing form of a Page.
type PageInfo struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Permalink       string `json:"permalink"`
	SidebarPosition int    `json:"sidebar_position"`
}
