package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/overlay/pkg/domain"
)

const rootID = "page"

// ScopeMermaid produces a Mermaid flowchart of the override scopes of a page.
// Only nodes declaring an override appear; each is linked to the nearest
// enclosing scope it inherits from. Shapes:
// - Page root: ((Circle))
// - Transform: [[Subroutine]]
// - Isolated: [/Parallelogram/], linked with a dotted arrow
// - Literal: [Rectangle]
// If highlight names a node ID, that scope is styled as current.
func ScopeMermaid(page *domain.Page, highlight string) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	label := page.ID
	if summary := summarize(page.Override); summary != "" {
		label += " <br/> " + summary
	}
	sb.WriteString(fmt.Sprintf("    %s((\"%s\"))\n", rootID, escapeLabel(label)))

	counter := 0
	var walk func(parent string, nodes []*domain.Node)
	walk = func(parent string, nodes []*domain.Node) {
		for _, n := range nodes {
			next := parent
			if n.Override != nil {
				counter++
				id := scopeID(n, counter)
				sb.WriteString(scopeLine(id, n))

				arrow := "-->"
				if n.Override.Isolate {
					arrow = "-. isolate .->"
				}
				sb.WriteString(fmt.Sprintf("    %s %s %s\n", parent, arrow, id))
				next = id
			}
			walk(next, n.Children)
		}
	}
	walk(rootID, page.Body)

	if highlight != "" {
		sb.WriteString("\n    %% Highlight\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(highlight)))
	}

	return sb.String()
}

func scopeID(n *domain.Node, counter int) string {
	if n.ID != "" {
		return sanitizeMermaidID(n.ID)
	}
	return fmt.Sprintf("scope_%d", counter)
}

func scopeLine(id string, n *domain.Node) string {
	opener, closer := "[", "]"
	switch {
	case n.Override.Isolate:
		opener, closer = "[/", "/]"
	case n.Override.Transform != "":
		opener, closer = "[[", "]]"
	}

	label := n.Kind
	if n.ID != "" {
		label = n.ID
	}
	if summary := summarize(n.Override); summary != "" {
		label += " <br/> " + summary
	}
	return fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escapeLabel(label), closer)
}

// summarize describes an override as "h2=plain-heading, p=lead" or "transform: plain".
func summarize(o *domain.Override) string {
	if o == nil {
		return ""
	}
	if o.Transform != "" {
		return "transform: " + o.Transform
	}
	keys := make([]string, 0, len(o.Components))
	for k := range o.Components {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+o.Components[k])
	}
	if len(parts) == 0 && o.Isolate {
		return "reset"
	}
	return strings.Join(parts, ", ")
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	return s
}
