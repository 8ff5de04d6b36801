/*
Package domain contains the content model rendered by Overlay.

It defines pages, the content tree inside them, and the override declarations
that nodes use to swap the components rendering their subtree. This package is
kept pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Page: A document with its metadata (title, slug, sidebar position) and body.
  - Node: A point in the content tree, rendered by the component named by its Kind.
  - Override: A declaration, by name, of the components a subtree should use.
*/
package domain
