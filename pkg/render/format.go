package render

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/overlay/pkg/components"
	"github.com/aretw0/overlay/pkg/domain"
)

// ErrUnknownFormat is returned when a format name is not supported.
var ErrUnknownFormat = errors.New("unknown format")

// Format names.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
)

// Format bundles the component sets used to render a page.
type Format struct {
	Name        string
	ContentType string

	// Fallback renders kinds missing from the effective map. It is not part of
	// the override chain: an isolated scope still renders intrinsic elements.
	Fallback components.Map

	// Theme is the root component map every page inherits.
	Theme components.Map

	// Registry resolves the names used in content overrides.
	Registry *components.Registry
}

// NewFormat returns the built-in format called name.
func NewFormat(name string) (*Format, error) {
	switch name {
	case FormatHTML, "":
		return HTML(), nil
	case FormatMarkdown, "md":
		return Markdown(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// FormatNames lists the built-in formats.
func FormatNames() []string {
	names := []string{FormatHTML, FormatMarkdown}
	sort.Strings(names)
	return names
}

// intrinsicKinds lists every node kind a format must render.
var intrinsicKinds = append([]string{
	domain.KindParagraph, domain.KindList, domain.KindOrdered, domain.KindItem,
	domain.KindCode, domain.KindPre, domain.KindLink, domain.KindStrong,
	domain.KindEmphasis, domain.KindHeader, domain.KindText, domain.KindScope,
}, headingKinds...)

var headingKinds = []string{
	domain.KindHeading1, domain.KindHeading2, domain.KindHeading3,
	domain.KindHeading4, domain.KindHeading5, domain.KindHeading6,
}

// withoutKeys returns a transform that drops keys, letting the fallback render them.
func withoutKeys(keys ...string) components.Transform {
	return func(in components.Map) components.Map {
		for _, k := range keys {
			delete(in, k)
		}
		return in
	}
}

// replaceKeys returns a transform binding every key in keys to c.
func replaceKeys(c components.Component, keys ...string) components.Transform {
	return func(in components.Map) components.Map {
		for _, k := range keys {
			in[k] = c
		}
		return in
	}
}
