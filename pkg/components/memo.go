package components

import "reflect"

// Memo caches the effective map of a single scope across renders.
// It recomputes only when the inherited map instance or the frame instance
// changes. The zero value is ready to use. Memo is not safe for concurrent use.
type Memo struct {
	inherited Map
	frame     *Frame
	result    Map
	valid     bool
}

// Stale reports whether Resolve(inherited, f) would recompute.
func (m *Memo) Stale(inherited Map, f *Frame) bool {
	return !m.valid || m.frame != f || !sameMap(m.inherited, inherited)
}

// Resolve is the memoized form of the package-level Resolve.
func (m *Memo) Resolve(inherited Map, f *Frame) Map {
	if !m.Stale(inherited, f) {
		return m.result
	}
	m.inherited = inherited
	m.frame = f
	m.result = Resolve(inherited, f)
	m.valid = true
	return m.result
}

// Reset drops the cached result.
func (m *Memo) Reset() {
	*m = Memo{}
}

// sameMap compares map identity, not content.
func sameMap(a, b Map) bool {
	return reflect.ValueOf(a).UnsafePointer() == reflect.ValueOf(b).UnsafePointer()
}
