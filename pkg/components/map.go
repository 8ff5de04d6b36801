package components

import (
	"io"

	"github.com/aretw0/overlay/pkg/domain"
)

// Children renders the subtree of the node being rendered, with the effective
// component map of that node already bound.
type Children func(w io.Writer) error

// Component renders one node of a content tree.
type Component interface {
	Render(w io.Writer, node *domain.Node, children Children) error
}

// ComponentFunc adapts a plain function to the Component interface.
type ComponentFunc func(w io.Writer, node *domain.Node, children Children) error

// Render calls f(w, node, children).
func (f ComponentFunc) Render(w io.Writer, node *domain.Node, children Children) error {
	return f(w, node, children)
}

// Map binds component keys to implementations.
// Maps returned by this package are never mutated afterwards; treat them as read-only.
type Map map[string]Component

// Clone returns a shallow copy of m. The copy is never nil.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Merge returns a new map holding m overlaid with top. Keys of top win.
// Only top-level keys are replaced.
func (m Map) Merge(top Map) Map {
	out := make(Map, len(m)+len(top))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range top {
		out[k] = v
	}
	return out
}

// Lookup returns the component bound to key.
func (m Map) Lookup(key string) (Component, bool) {
	c, ok := m[key]
	return c, ok && c != nil
}

// Keys returns the keys of m in no particular order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
