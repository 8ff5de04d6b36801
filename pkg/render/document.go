package render

import (
	"fmt"
	"io"
	"sync"

	"github.com/aretw0/overlay/pkg/components"
	"github.com/aretw0/overlay/pkg/domain"
)

// Stats summarises one traversal.
type Stats struct {
	// Nodes is the number of nodes rendered.
	Nodes int
	// Resolved counts scopes whose effective map was computed.
	Resolved int
	// Reused counts scopes whose memoized map was still valid.
	Reused int
}

// Document is a page compiled against a format.
// Frames are built once, so repeated renders reuse the memoized maps.
type Document struct {
	Page   *domain.Page
	Format *Format

	mu   sync.Mutex
	root *scope
}

type scope struct {
	node     *domain.Node
	frame    *components.Frame
	memo     components.Memo
	children []*scope
}

// Compile resolves the override declarations of page against the format registry.
func Compile(page *domain.Page, format *Format) (*Document, error) {
	rootFrame, err := format.Registry.Frame(page.Override)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", page.ID, err)
	}
	children, err := compileNodes(page.Body, format.Registry)
	if err != nil {
		return nil, fmt.Errorf("page %s: %w", page.ID, err)
	}
	return &Document{
		Page:   page,
		Format: format,
		root:   &scope{frame: rootFrame, children: children},
	}, nil
}

func compileNodes(nodes []*domain.Node, reg *components.Registry) ([]*scope, error) {
	scopes := make([]*scope, 0, len(nodes))
	for i, n := range nodes {
		if n == nil {
			continue
		}
		frame, err := reg.Frame(n.Override)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", nodeLabel(n, i), err)
		}
		children, err := compileNodes(n.Children, reg)
		if err != nil {
			return nil, err
		}
		scopes = append(scopes, &scope{node: n, frame: frame, children: children})
	}
	return scopes, nil
}

func nodeLabel(n *domain.Node, index int) string {
	if n.ID != "" {
		return n.ID
	}
	return fmt.Sprintf("%s[%d]", n.Kind, index)
}

// Render writes the page to w. Renders of the same document are serialized.
func (d *Document) Render(w io.Writer) (Stats, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t := &traversal{fallback: d.Format.Fallback}
	rootMap := t.resolve(d.root, d.Format.Theme)

	body := func(w io.Writer) error {
		return t.walk(w, d.root.children, rootMap)
	}

	var err error
	if wrapper, ok := rootMap.Lookup(domain.KindWrapper); ok {
		err = wrapper.Render(w, &domain.Node{ID: d.Page.ID, Kind: domain.KindWrapper}, body)
	} else {
		err = body(w)
	}
	return t.stats, err
}

// Effective returns the component map visible at the node with the given ID.
func (d *Document) Effective(nodeID string) (components.Map, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	t := &traversal{}
	rootMap := t.resolve(d.root, d.Format.Theme)
	return t.find(d.root.children, rootMap, nodeID)
}

type traversal struct {
	fallback components.Map
	stats    Stats
}

func (t *traversal) resolve(s *scope, inherited components.Map) components.Map {
	if s.memo.Stale(inherited, s.frame) {
		t.stats.Resolved++
	} else {
		t.stats.Reused++
	}
	return s.memo.Resolve(inherited, s.frame)
}

func (t *traversal) walk(w io.Writer, scopes []*scope, inherited components.Map) error {
	for _, s := range scopes {
		if err := t.render(w, s, inherited); err != nil {
			return err
		}
	}
	return nil
}

func (t *traversal) render(w io.Writer, s *scope, inherited components.Map) error {
	effective := t.resolve(s, inherited)

	c, ok := effective.Lookup(s.node.Kind)
	if !ok {
		c, ok = t.fallback.Lookup(s.node.Kind)
	}
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrNoComponent, s.node.Kind)
	}

	t.stats.Nodes++
	return c.Render(w, s.node, func(w io.Writer) error {
		return t.walk(w, s.children, effective)
	})
}

func (t *traversal) find(scopes []*scope, inherited components.Map, id string) (components.Map, bool) {
	for _, s := range scopes {
		effective := t.resolve(s, inherited)
		if s.node.ID == id {
			return effective, true
		}
		if m, ok := t.find(s.children, effective, id); ok {
			return m, true
		}
	}
	return nil, false
}

// RenderPage compiles page and renders it once.
func RenderPage(w io.Writer, page *domain.Page, format *Format) (Stats, error) {
	doc, err := Compile(page, format)
	if err != nil {
		return Stats{}, err
	}
	return doc.Render(w)
}
