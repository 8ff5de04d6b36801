/*
Package dsl provides a Go DSL for programmatically constructing documentation pages.

It allows developers to define pages and their component overrides using a fluent
builder instead of frontmatter files. This is useful for generated pages, unit
testing and embedding.

Example usage:

	package main

	import (
		"github.com/aretw0/overlay"
		"github.com/aretw0/overlay/pkg/domain"
		"github.com/aretw0/overlay/pkg/dsl"
	)

	func main() {
		b := dsl.New().BaseURL("/completor")

		b.Add("fmu/general_preparations").
			Title("General Preparation").
			Position(2).
			Use("p", "lead").
			Body(func(c *dsl.Content) {
				c.Heading(2, "Completor case file").
					Paragraph("The case file describes the completion.").
					Scope("isolated", domain.Override{Isolate: true}, func(c *dsl.Content) {
						c.Heading(2, "Tubing MSW input schedule file")
					})
			})

		// The resulting loader can be used as a ports.PageLoader
		loader, _ := b.Build()
		site, _ := overlay.New("", overlay.WithLoader(loader))
		// ...
	}
*/
package dsl
