package render

import (
	"errors"
	"fmt"
	"html"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/aretw0/overlay/pkg/components"
	"github.com/aretw0/overlay/pkg/domain"
)

// Registry names shared by the built-in formats.
const (
	ComponentLead            = "lead"
	ComponentPlainHeading    = "plain-heading"
	ComponentAnchoredHeading = "anchored-heading"
	ComponentCodeBlock       = "code-block"

	TransformPlain     = "plain"
	TransformNoAnchors = "no-anchors"
)

// ErrInvalidTag is returned when an element would be written with a tag name
// that is not a valid HTML name.
var ErrInvalidTag = errors.New("invalid tag name")

var (
	tagName  = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)
	attrName = regexp.MustCompile(`^[a-zA-Z_:][-a-zA-Z0-9_:.]*$`)
)

// HTML returns the HTML format.
func HTML() *Format {
	fallback := make(components.Map, len(intrinsicKinds))
	for _, kind := range intrinsicKinds {
		fallback[kind] = Element{}
	}
	fallback[domain.KindText] = Text{}
	fallback[domain.KindScope] = Text{}

	theme := components.Map{
		domain.KindPre:     CodeBlock{},
		domain.KindWrapper: Element{Tag: "article", Class: "markdown"},
	}
	for _, kind := range headingKinds {
		theme[kind] = Heading{}
	}

	reg := components.NewRegistry().
		Register(ComponentLead, Element{Tag: domain.KindParagraph, Class: "lead"}).
		Register(ComponentPlainHeading, Element{}).
		Register(ComponentAnchoredHeading, Heading{}).
		Register(ComponentCodeBlock, CodeBlock{}).
		RegisterTransform(TransformPlain, withoutKeys(append([]string{domain.KindPre}, headingKinds...)...)).
		RegisterTransform(TransformNoAnchors, replaceKeys(Element{}, headingKinds...))

	return &Format{
		Name:        FormatHTML,
		ContentType: "text/html; charset=utf-8",
		Fallback:    fallback,
		Theme:       theme,
		Registry:    reg,
	}
}

// Element renders a node as an HTML element.
// An empty Tag uses the node kind.
type Element struct {
	Tag   string
	Class string
}

func (e Element) Render(w io.Writer, n *domain.Node, children components.Children) error {
	tag := e.Tag
	if tag == "" {
		tag = n.Kind
	}
	if !tagName.MatchString(tag) {
		return fmt.Errorf("%w: %q", ErrInvalidTag, tag)
	}
	attrs := n.Attrs
	if e.Class != "" {
		attrs = withAttr(attrs, domain.AttrClass, e.Class)
	}
	if _, err := fmt.Fprintf(w, "<%s%s>", tag, formatAttrs(attrs)); err != nil {
		return err
	}
	if err := writeEscaped(w, n.Text); err != nil {
		return err
	}
	if err := children(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "</%s>", tag)
	return err
}

// Text renders the node text and children without markup.
type Text struct{}

func (Text) Render(w io.Writer, n *domain.Node, children components.Children) error {
	if err := writeEscaped(w, n.Text); err != nil {
		return err
	}
	return children(w)
}

// Heading renders h1-h6 with an anchor id derived from the heading text.
type Heading struct{}

func (Heading) Render(w io.Writer, n *domain.Node, children components.Children) error {
	id := n.Attr(domain.AttrID)
	if id == "" {
		id = Slug(n.PlainText())
	}
	return Element{}.Render(w, &domain.Node{
		ID:       n.ID,
		Kind:     n.Kind,
		Text:     n.Text,
		Attrs:    withAttr(n.Attrs, domain.AttrID, id),
		Children: n.Children,
	}, children)
}

// CodeBlock renders a pre node as <pre><code class="language-x">.
type CodeBlock struct{}

func (CodeBlock) Render(w io.Writer, n *domain.Node, children components.Children) error {
	class := ""
	if lang := n.Attr(domain.AttrLanguage); lang != "" {
		class = fmt.Sprintf(` class="language-%s"`, html.EscapeString(lang))
	}
	if _, err := fmt.Fprintf(w, "<pre><code%s>", class); err != nil {
		return err
	}
	if err := writeEscaped(w, n.Text); err != nil {
		return err
	}
	if err := children(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, "</code></pre>")
	return err
}

func writeEscaped(w io.Writer, s string) error {
	if s == "" {
		return nil
	}
	_, err := io.WriteString(w, html.EscapeString(s))
	return err
}

// withAttr returns a copy of attrs with key set to value.
func withAttr(attrs map[string]string, key, value string) map[string]string {
	out := make(map[string]string, len(attrs)+1)
	for k, v := range attrs {
		out[k] = v
	}
	out[key] = value
	return out
}

// formatAttrs renders attributes sorted by key. The language attribute is
// consumed by code blocks and never emitted; keys that are not valid
// attribute names are dropped.
func formatAttrs(attrs map[string]string) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		if k == domain.AttrLanguage || !attrName.MatchString(k) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, ` %s="%s"`, k, html.EscapeString(attrs[k]))
	}
	return b.String()
}
