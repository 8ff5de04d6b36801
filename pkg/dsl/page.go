package dsl

import (
	"fmt"
	"strconv"

	"github.com/aretw0/overlay/pkg/domain"
)

// PageBuilder provides a fluent API for configuring a page.
type PageBuilder struct {
	page domain.Page
	errs []error
}

// Title sets the page title.
func (p *PageBuilder) Title(title string) *PageBuilder {
	p.page.Title = title
	return p
}

// Description sets the page description.
func (p *PageBuilder) Description(desc string) *PageBuilder {
	p.page.Description = desc
	return p
}

// Slug sets the path of the page below the base URL.
func (p *PageBuilder) Slug(slug string) *PageBuilder {
	p.page.Slug = slug
	return p
}

// Position sets the sidebar position.
func (p *PageBuilder) Position(pos int) *PageBuilder {
	p.page.SidebarPosition = pos
	return p
}

// Use binds a component name to a kind at the page root.
func (p *PageBuilder) Use(kind, component string) *PageBuilder {
	o := p.override()
	if o.Components == nil {
		o.Components = make(map[string]string)
	}
	o.Components[kind] = component
	return p
}

// Transform applies a named transform to the theme at the page root.
func (p *PageBuilder) Transform(name string) *PageBuilder {
	p.override().Transform = name
	return p
}

// Isolate makes the page root ignore the theme.
func (p *PageBuilder) Isolate() *PageBuilder {
	p.override().Isolate = true
	return p
}

func (p *PageBuilder) override() *domain.Override {
	if p.page.Override == nil {
		p.page.Override = &domain.Override{}
	}
	return p.page.Override
}

// Body appends content to the page.
func (p *PageBuilder) Body(fill func(c *Content)) *PageBuilder {
	c := &Content{}
	fill(c)
	p.page.Body = append(p.page.Body, c.nodes...)
	for _, err := range c.errs {
		p.errs = append(p.errs, fmt.Errorf("page %s: %w", p.page.ID, err))
	}
	return p
}

// Build returns the underlying domain.Page.
func (p *PageBuilder) Build() domain.Page {
	return p.page
}

// Content appends nodes to a page body or a scope.
type Content struct {
	nodes []*domain.Node
	errs  []error
}

// Node appends an arbitrary node.
func (c *Content) Node(n *domain.Node) *Content {
	c.nodes = append(c.nodes, n)
	return c
}

// Heading appends a heading of the given level (1-6).
func (c *Content) Heading(level int, text string) *Content {
	if level < 1 || level > 6 {
		c.errs = append(c.errs, fmt.Errorf("invalid heading level %d", level))
		return c
	}
	return c.Node(&domain.Node{Kind: "h" + strconv.Itoa(level), Text: text})
}

// Paragraph appends a paragraph.
func (c *Content) Paragraph(text string) *Content {
	return c.Node(&domain.Node{Kind: domain.KindParagraph, Text: text})
}

// Code appends a code block.
func (c *Content) Code(language, code string) *Content {
	n := &domain.Node{Kind: domain.KindPre, Text: code}
	if language != "" {
		n.Attrs = map[string]string{domain.AttrLanguage: language}
	}
	return c.Node(n)
}

// List appends a bullet list with one item per entry.
func (c *Content) List(items ...string) *Content {
	n := &domain.Node{Kind: domain.KindList}
	for _, item := range items {
		n.Children = append(n.Children, &domain.Node{Kind: domain.KindItem, Text: item})
	}
	return c.Node(n)
}

// Scope appends a markup-less node that overrides components for its content.
func (c *Content) Scope(id string, o domain.Override, fill func(c *Content)) *Content {
	inner := &Content{}
	fill(inner)
	c.errs = append(c.errs, inner.errs...)
	return c.Node(&domain.Node{
		ID:       id,
		Kind:     domain.KindScope,
		Override: &o,
		Children: inner.nodes,
	})
}
