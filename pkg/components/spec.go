package components

// Spec is an override declaration: either a Literal map or a Transform.
// The set of implementations is closed.
type Spec interface {
	apply(base Map) Map
}

// Literal overrides the inherited map key by key.
type Literal Map

func (l Literal) apply(base Map) Map {
	return base.Merge(Map(l))
}

// Transform computes a new map from the inherited one.
// It receives a private copy and may modify it freely.
// A nil Transform is the identity.
type Transform func(inherited Map) Map

func (t Transform) apply(base Map) Map {
	if t == nil {
		return base.Clone()
	}
	out := t(base.Clone())
	if out == nil {
		return Map{}
	}
	return out
}

// Frame is one scope's override declaration.
type Frame struct {
	Spec Spec

	// DisableParent makes the scope ignore every ancestor override.
	DisableParent bool
}

// Override returns a frame merging or transforming the inherited map.
func Override(spec Spec) *Frame {
	return &Frame{Spec: spec}
}

// Reset returns a frame that starts from an empty map.
func Reset(spec Spec) *Frame {
	return &Frame{Spec: spec, DisableParent: true}
}

// Declare computes the effective map of a scope declaring spec.
//
// With disableParent the result depends on spec alone: a Literal is used
// verbatim and a Transform is applied to an empty map. Otherwise a Literal is
// merged on top of inherited and a Transform is applied to it.
func Declare(inherited Map, spec Spec, disableParent bool) Map {
	if spec == nil {
		if disableParent {
			return Map{}
		}
		return inherited
	}
	base := inherited
	if disableParent {
		base = nil
	}
	return spec.apply(base)
}

// Resolve returns the effective map of a scope. A nil frame leaves inherited untouched.
func Resolve(inherited Map, f *Frame) Map {
	if f == nil {
		return inherited
	}
	return Declare(inherited, f.Spec, f.DisableParent)
}
