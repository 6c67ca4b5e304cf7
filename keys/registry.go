package keys

import (
	"chordscope/chord"
)

// Registry tracks which sources hold each key.
// It has no subscribers; callers recompute whatever depends on it after
// mutating. Not safe for concurrent use.
type Registry struct {
	held [chord.NumKeys]map[Source]struct{}
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{}
}

// Press marks key as held by src. Pressing twice is a no-op.
func (r *Registry) Press(key chord.Key, src Source) {
	if !key.Valid() {
		return
	}
	if r.held[key] == nil {
		r.held[key] = make(map[Source]struct{})
	}
	r.held[key][src] = struct{}{}
}

// Release drops src from key. Releasing a pair that is not held is a no-op.
func (r *Registry) Release(key chord.Key, src Source) {
	if !key.Valid() {
		return
	}
	delete(r.held[key], src)
}

// ReleaseAllForSource drops src from every key
func (r *Registry) ReleaseAllForSource(src Source) {
	for k := range r.held {
		delete(r.held[k], src)
	}
}

// Clear releases every key from every source
func (r *Registry) Clear() {
	for k := range r.held {
		r.held[k] = nil
	}
}

// IsPressed reports whether any source holds key
func (r *Registry) IsPressed(key chord.Key) bool {
	return key.Valid() && len(r.held[key]) > 0
}

// IsHeldBy reports whether src holds key
func (r *Registry) IsHeldBy(key chord.Key, src Source) bool {
	if !key.Valid() {
		return false
	}
	_, ok := r.held[key][src]
	return ok
}

// Sources returns how many sources hold key, split by hardware and pointer
func (r *Registry) Sources(key chord.Key) (hardware, pointer int) {
	if !key.Valid() {
		return 0, 0
	}
	for src := range r.held[key] {
		if src.IsPointer() {
			pointer++
		} else {
			hardware++
		}
	}
	return hardware, pointer
}

// Snapshot returns the held keys in strictly ascending order
func (r *Registry) Snapshot() []chord.Key {
	var pressed []chord.Key
	for k := range r.held {
		if len(r.held[k]) > 0 {
			pressed = append(pressed, chord.Key(k))
		}
	}
	return pressed
}
