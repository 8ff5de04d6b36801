package loam

// PageMetadata represents the frontmatter of an Overlay page.
// It uses "mapstructure" tags to match standard Frontmatter/YAML keys.
type PageMetadata struct {
	ID          string `json:"id" mapstructure:"id"`
	Title       string `json:"title" mapstructure:"title"`
	Description string `json:"description" mapstructure:"description"`
	Slug        string `json:"slug" mapstructure:"slug"`

	// SidebarPosition is kept loose: YAML yields ints, JSON yields floats or json.Number.
	SidebarPosition any `json:"sidebar_position" mapstructure:"sidebar_position"`

	// Page-level override, applied on top of the theme.
	Components map[string]string `json:"components" mapstructure:"components"`
	Transform  string            `json:"transform" mapstructure:"transform"`
	Isolate    bool              `json:"isolate" mapstructure:"isolate"`

	// Body is the structured content tree. When empty, the document text is used.
	Body []any `json:"body" mapstructure:"body"`
}

// NodeSpec is the file representation of a content node.
type NodeSpec struct {
	ID         string            `mapstructure:"id"`
	Kind       string            `mapstructure:"kind"`
	Text       string            `mapstructure:"text"`
	Attrs      map[string]string `mapstructure:"attrs"`
	Components map[string]string `mapstructure:"components"`
	Transform  string            `mapstructure:"transform"`
	Isolate    bool              `mapstructure:"isolate"`
	Children   []NodeSpec        `mapstructure:"children"`
}
