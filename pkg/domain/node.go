package domain

// Kind constants name the intrinsic elements of a content tree.
// They double as the keys of a component map.
const (
	KindHeading1  = "h1"
	KindHeading2  = "h2"
	KindHeading3  = "h3"
	KindHeading4  = "h4"
	KindHeading5  = "h5"
	KindHeading6  = "h6"
	KindParagraph = "p"
	KindList      = "ul"
	KindOrdered   = "ol"
	KindItem      = "li"
	KindCode      = "code"
	KindPre       = "pre"
	KindLink      = "a"
	KindStrong    = "strong"
	KindEmphasis  = "em"
	KindHeader    = "header"
	KindText      = "text"

	// KindScope renders no markup of its own. It exists to carry an Override.
	KindScope = "scope"

	// KindWrapper is not a node kind but a component key: when present in the
	// root map it wraps the whole page.
	KindWrapper = "wrapper"
)

// Attribute keys understood by the built-in components.
const (
	AttrHref     = "href"
	AttrLanguage = "language"
	AttrID       = "id"
	AttrClass    = "class"
)

// HeadingLevel returns the level (1-6) of a heading kind, or 0.
func HeadingLevel(kind string) int {
	if len(kind) == 2 && kind[0] == 'h' && kind[1] >= '1' && kind[1] <= '6' {
		return int(kind[1] - '0')
	}
	return 0
}

// Node represents one element of a page's content tree.
type Node struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Kind string `json:"kind" yaml:"kind"`

	// Text is the literal text of the node, rendered before its children.
	Text string `json:"text,omitempty" yaml:"text,omitempty"`

	// Attrs holds element attributes (href, language, class...).
	Attrs map[string]string `json:"attrs,omitempty" yaml:"attrs,omitempty"`

	// Override, when set, changes the components visible to this node and its subtree.
	Override *Override `json:"override,omitempty" yaml:"override,omitempty"`

	Children []*Node `json:"children,omitempty" yaml:"children,omitempty"`
}

// Attr returns the attribute value for key, or "".
func (n *Node) Attr(key string) string {
	if n == nil || n.Attrs == nil {
		return ""
	}
	return n.Attrs[key]
}

// PlainText concatenates the text of the node and all its descendants.
func (n *Node) PlainText() string {
	if n == nil {
		return ""
	}
	text := n.Text
	for _, c := range n.Children {
		text += c.PlainText()
	}
	return text
}

// Override declares, by registered name, the components of a subtree.
// A node declares either Components or Transform, never both.
type Override struct {
	// Components maps a component key (e.g. "p") to a registered component name.
	Components map[string]string `json:"components,omitempty" yaml:"components,omitempty"`

	// Transform names a registered function computing the map from the inherited one.
	Transform string `json:"transform,omitempty" yaml:"transform,omitempty"`

	// Isolate ignores every ancestor override: the subtree starts from an empty map.
	Isolate bool `json:"isolate,omitempty" yaml:"isolate,omitempty"`
}

// IsZero reports whether the override declares nothing at all.
func (o *Override) IsZero() bool {
	return o == nil || (len(o.Components) == 0 && o.Transform == "" && !o.Isolate)
}
