package dsl

import (
	"context"
	"testing"

	"github.com/aretw0/overlay/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Site(t *testing.T) {
	b := New().BaseURL("/completor")

	b.Add("about/description").
		Title("Introduction").
		Position(1).
		Body(func(c *Content) {
			c.Heading(1, "Description").
				Paragraph("Completor is a script.")
		})

	b.Add("fmu/general_preparations").
		Title("General Preparation").
		Position(2).
		Use("p", "lead").
		Body(func(c *Content) {
			c.Heading(2, "Completor case file").
				Code("yaml", "key: value").
				List("one", "two").
				Scope("isolated", domain.Override{Isolate: true, Components: map[string]string{"h2": "plain-heading"}}, func(c *Content) {
					c.Heading(2, "Tubing MSW input schedule file")
				})
		})

	loader, err := b.Build()
	require.NoError(t, err)
	ctx := context.Background()

	pages, err := loader.ListPages(ctx)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "/completor/about/description", pages[0].Permalink)

	page, err := loader.GetPage(ctx, "fmu/general_preparations")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"p": "lead"}, page.Override.Components)
	require.NotNil(t, page.Previous)
	assert.Equal(t, "Introduction", page.Previous.Title)

	require.Len(t, page.Body, 4)
	assert.Equal(t, domain.KindHeading2, page.Body[0].Kind)
	assert.Equal(t, "yaml", page.Body[1].Attr(domain.AttrLanguage))
	assert.Len(t, page.Body[2].Children, 2)

	scope := page.Body[3]
	assert.Equal(t, domain.KindScope, scope.Kind)
	assert.Equal(t, "isolated", scope.ID)
	assert.True(t, scope.Override.Isolate)
	require.Len(t, scope.Children, 1)
	assert.Equal(t, "Tubing MSW input schedule file", scope.Children[0].Text)
}

func TestBuilder_AddIsIdempotent(t *testing.T) {
	b := New()
	first := b.Add("a").Title("A")
	assert.Same(t, first, b.Add("a"))

	loader, err := b.Build()
	require.NoError(t, err)
	pages, err := loader.ListPages(context.Background())
	require.NoError(t, err)
	assert.Len(t, pages, 1)
}

func TestBuilder_RootOverride(t *testing.T) {
	p := New().Add("x").Transform("plain").Isolate().Build()
	require.NotNil(t, p.Override)
	assert.Equal(t, "plain", p.Override.Transform)
	assert.True(t, p.Override.Isolate)
}

func TestBuilder_InvalidHeading(t *testing.T) {
	b := New()
	b.Add("bad").Body(func(c *Content) {
		c.Scope("s", domain.Override{}, func(c *Content) {
			c.Heading(7, "too deep")
		})
	})

	_, err := b.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page bad: invalid heading level 7")
}
