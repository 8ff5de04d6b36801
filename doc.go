/*
Package overlay renders documentation pages whose content can override, per
subtree, the components used to render it.

A page is a tree of nodes (headings, paragraphs, lists, code blocks...). Each
node kind is rendered by the component bound to that kind in the effective
component map. The root map is the format's theme; any node may declare an
override that merges named components on top of what it inherits, applies a
named transform to it, or (with isolate) starts again from an empty map.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/overlay"
	)

	func main() {
		// Load every page under ./docs (Markdown, YAML or JSON with frontmatter)
		site, err := overlay.New("./docs", overlay.WithBaseURL("/completor"))
		if err != nil {
			log.Fatal(err)
		}

		html, err := site.Render(context.Background(), "about/description", "html")
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(string(html))
	}

# Content files

Frontmatter carries the page metadata and, optionally, a structured body:

	---
	id: fmu/general_preparations
	title: General Preparation
	sidebar_position: 2
	components:
	  p: lead
	body:
	  - kind: h2
	    text: Completor case file
	  - kind: scope
	    isolate: true
	    components:
	      h2: plain-heading
	    children:
	      - kind: h2
	        text: Tubing MSW input schedule file
	---

Without a body, each blank-line separated block of the document text becomes a
paragraph.

# Explicit context

The effective component map is passed down the traversal as an argument; see
package components for the resolution rules.
*/
package overlay
