package components

import (
	"errors"
	"fmt"
	"sort"

	"github.com/aretw0/overlay/pkg/domain"
)

var (
	// ErrUnknownComponent is returned when an override names an unregistered component.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrUnknownTransform is returned when an override names an unregistered transform.
	ErrUnknownTransform = errors.New("unknown transform")
	// ErrAmbiguousOverride is returned when an override declares both components and a transform.
	ErrAmbiguousOverride = errors.New("override declares both components and a transform")
)

// Registry resolves the names used by content files into components and transforms.
type Registry struct {
	components map[string]Component
	transforms map[string]Transform
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]Component),
		transforms: make(map[string]Transform),
	}
}

// Register binds name to a component, replacing any previous binding.
func (r *Registry) Register(name string, c Component) *Registry {
	r.components[name] = c
	return r
}

// RegisterTransform binds name to a transform, replacing any previous binding.
func (r *Registry) RegisterTransform(name string, t Transform) *Registry {
	r.transforms[name] = t
	return r
}

// Component returns the component registered under name.
func (r *Registry) Component(name string) (Component, error) {
	c, ok := r.components[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}
	return c, nil
}

// Names returns the registered component and transform names, sorted.
func (r *Registry) Names() (components []string, transforms []string) {
	for name := range r.components {
		components = append(components, name)
	}
	for name := range r.transforms {
		transforms = append(transforms, name)
	}
	sort.Strings(components)
	sort.Strings(transforms)
	return components, transforms
}

// Frame converts a data-level override into a Frame.
// A nil or empty override yields a nil frame (inherit unchanged).
func (r *Registry) Frame(o *domain.Override) (*Frame, error) {
	if o.IsZero() {
		return nil, nil
	}
	if len(o.Components) > 0 && o.Transform != "" {
		return nil, ErrAmbiguousOverride
	}

	if o.Transform != "" {
		t, ok := r.transforms[o.Transform]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownTransform, o.Transform)
		}
		return &Frame{Spec: t, DisableParent: o.Isolate}, nil
	}

	lit := make(Literal, len(o.Components))
	for key, name := range o.Components {
		c, err := r.Component(name)
		if err != nil {
			return nil, fmt.Errorf("override of %q: %w", key, err)
		}
		lit[key] = c
	}
	return &Frame{Spec: lit, DisableParent: o.Isolate}, nil
}
