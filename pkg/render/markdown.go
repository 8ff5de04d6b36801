package render

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/overlay/pkg/components"
	"github.com/aretw0/overlay/pkg/domain"
)

// Markdown returns the CommonMark format.
func Markdown() *Format {
	fallback := components.Map{
		domain.KindParagraph: MarkdownBlock{},
		domain.KindList:      MarkdownList{},
		domain.KindOrdered:   MarkdownList{Ordered: true},
		domain.KindItem:      MarkdownItem{},
		domain.KindCode:      MarkdownInline{Delim: "`"},
		domain.KindStrong:    MarkdownInline{Delim: "**"},
		domain.KindEmphasis:  MarkdownInline{Delim: "_"},
		domain.KindLink:      MarkdownLink{},
		domain.KindPre:       MarkdownFence{},
		domain.KindHeader:    MarkdownInline{},
		domain.KindText:      MarkdownInline{},
		domain.KindScope:     MarkdownInline{},
	}
	for _, kind := range headingKinds {
		fallback[kind] = MarkdownHeading{}
	}

	theme := components.Map{}
	for _, kind := range headingKinds {
		theme[kind] = MarkdownHeading{Anchored: true}
	}

	reg := components.NewRegistry().
		Register(ComponentLead, MarkdownBlock{Emphasis: "_"}).
		Register(ComponentPlainHeading, MarkdownHeading{}).
		Register(ComponentAnchoredHeading, MarkdownHeading{Anchored: true}).
		Register(ComponentCodeBlock, MarkdownFence{}).
		RegisterTransform(TransformPlain, withoutKeys(append([]string{domain.KindPre}, headingKinds...)...)).
		RegisterTransform(TransformNoAnchors, replaceKeys(MarkdownHeading{}, headingKinds...))

	return &Format{
		Name:        FormatMarkdown,
		ContentType: "text/markdown; charset=utf-8",
		Fallback:    fallback,
		Theme:       theme,
		Registry:    reg,
	}
}

// MarkdownHeading renders an ATX heading, optionally with an explicit {#id}.
type MarkdownHeading struct {
	Anchored bool
}

func (h MarkdownHeading) Render(w io.Writer, n *domain.Node, children components.Children) error {
	level := domain.HeadingLevel(n.Kind)
	if level == 0 {
		level = 1
	}
	var buf bytes.Buffer
	buf.WriteString(n.Text)
	if err := children(&buf); err != nil {
		return err
	}
	title := strings.TrimSpace(buf.String())

	suffix := ""
	if h.Anchored {
		id := n.Attr(domain.AttrID)
		if id == "" {
			id = Slug(n.PlainText())
		}
		suffix = fmt.Sprintf(" {#%s}", id)
	}
	_, err := fmt.Fprintf(w, "%s %s%s\n\n", strings.Repeat("#", level), title, suffix)
	return err
}

// MarkdownBlock renders a paragraph, optionally wrapped in an emphasis delimiter.
type MarkdownBlock struct {
	Emphasis string
}

func (b MarkdownBlock) Render(w io.Writer, n *domain.Node, children components.Children) error {
	var buf bytes.Buffer
	buf.WriteString(n.Text)
	if err := children(&buf); err != nil {
		return err
	}
	text := strings.TrimSpace(buf.String())
	_, err := fmt.Fprintf(w, "%s%s%s\n\n", b.Emphasis, text, b.Emphasis)
	return err
}

// MarkdownInline surrounds the node text and children with Delim.
type MarkdownInline struct {
	Delim string
}

func (i MarkdownInline) Render(w io.Writer, n *domain.Node, children components.Children) error {
	if _, err := io.WriteString(w, i.Delim+n.Text); err != nil {
		return err
	}
	if err := children(w); err != nil {
		return err
	}
	_, err := io.WriteString(w, i.Delim)
	return err
}

// MarkdownLink renders [text](href).
type MarkdownLink struct{}

func (MarkdownLink) Render(w io.Writer, n *domain.Node, children components.Children) error {
	if _, err := io.WriteString(w, "["+n.Text); err != nil {
		return err
	}
	if err := children(w); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "](%s)", n.Attr(domain.AttrHref))
	return err
}

// MarkdownFence renders a fenced code block.
type MarkdownFence struct{}

func (MarkdownFence) Render(w io.Writer, n *domain.Node, children components.Children) error {
	var buf bytes.Buffer
	buf.WriteString(n.Text)
	if err := children(&buf); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "```%s\n%s\n```\n\n", n.Attr(domain.AttrLanguage), strings.TrimRight(buf.String(), "\n"))
	return err
}

// MarkdownList renders its items followed by a blank line.
// Ordered lists renumber every top-level item marker to "1.".
type MarkdownList struct {
	Ordered bool
}

func (l MarkdownList) Render(w io.Writer, n *domain.Node, children components.Children) error {
	var buf bytes.Buffer
	if err := children(&buf); err != nil {
		return err
	}
	out := buf.String()
	if l.Ordered {
		lines := strings.Split(out, "\n")
		for i, line := range lines {
			if strings.HasPrefix(line, itemMarker) {
				lines[i] = "1. " + strings.TrimPrefix(line, itemMarker)
			}
		}
		out = strings.Join(lines, "\n")
	}
	_, err := io.WriteString(w, out+"\n")
	return err
}

const (
	itemMarker = "- "
	itemIndent = "   "
)

// MarkdownItem renders a list item, indenting nested blocks under the marker.
type MarkdownItem struct{}

func (MarkdownItem) Render(w io.Writer, n *domain.Node, children components.Children) error {
	var nested bytes.Buffer
	if err := children(&nested); err != nil {
		return err
	}
	body := n.Text
	if n.Text != "" && strings.Contains(nested.String(), "\n") && !strings.HasPrefix(nested.String(), "\n") {
		body += "\n"
	}
	body += nested.String()

	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = itemIndent + lines[i]
		}
	}
	_, err := io.WriteString(w, itemMarker+strings.Join(lines, "\n")+"\n")
	return err
}
