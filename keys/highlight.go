package keys

import "chordscope/chord"

// Highlight is how a key should be coloured on the keyboard
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightHardware
	HighlightConfirmed
	HighlightPreview
)

// HighlightOf picks the colour role for key. Hardware presses win over
// pointer state.
func HighlightOf(r *Registry, key chord.Key) Highlight {
	if !r.IsPressed(key) {
		return HighlightNone
	}
	hardware, _ := r.Sources(key)
	if hardware > 0 {
		return HighlightHardware
	}
	if r.IsHeldBy(key, Confirmed) {
		return HighlightConfirmed
	}
	return HighlightPreview
}
