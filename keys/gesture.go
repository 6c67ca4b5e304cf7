package keys

import (
	"chordscope/chord"
	"chordscope/debug"
)

type gestureMode int

const (
	gestureIdle gestureMode = iota
	gestureAdding
	gestureRemoving
)

// Gesture turns pointer down/move/up/leave on the on-screen keyboard into
// DragPreview and Confirmed presses.
//
// Pressing on a key that is not confirmed starts an adding gesture: a
// DragPreview press follows the pointer and becomes Confirmed on release.
// Pressing on a confirmed key starts a removing gesture: the Confirmed
// press under the pointer is released, and restored if the pointer slides
// to another key. DragPreview is never asserted on a Confirmed key.
type Gesture struct {
	reg  *Registry
	mode gestureMode
	key  chord.Key

	// adding: whether the preview press on key is ours
	previewing bool
	// removing: whether key was confirmed before we released it
	removed bool
}

// NewGesture creates a gesture handler writing to reg
func NewGesture(reg *Registry) *Gesture {
	return &Gesture{reg: reg}
}

// InProgress reports whether the pointer is down on the keyboard
func (g *Gesture) InProgress() bool {
	return g.mode != gestureIdle
}

// Down starts a gesture on key
func (g *Gesture) Down(key chord.Key) {
	if g.mode != gestureIdle {
		g.Up()
	}
	g.key = key
	if g.reg.IsHeldBy(key, Confirmed) {
		g.mode = gestureRemoving
		g.reg.Release(key, Confirmed)
		g.removed = true
		debug.Log("gesture", "remove start key=%d", key)
		return
	}
	g.mode = gestureAdding
	g.preview(key)
	debug.Log("gesture", "add start key=%d", key)
}

// Move follows the pointer onto key
func (g *Gesture) Move(key chord.Key) {
	if g.mode == gestureIdle || key == g.key {
		return
	}

	switch g.mode {
	case gestureAdding:
		if g.previewing {
			g.reg.Release(g.key, DragPreview)
		}
		g.key = key
		g.preview(key)
	case gestureRemoving:
		if g.removed {
			g.reg.Press(g.key, Confirmed)
		}
		g.key = key
		g.removed = g.reg.IsHeldBy(key, Confirmed)
		if g.removed {
			g.reg.Release(key, Confirmed)
		}
	}
}

// Up commits the gesture: an added key becomes Confirmed, a removed key
// stays released
func (g *Gesture) Up() {
	if g.mode == gestureAdding && g.previewing {
		g.reg.Release(g.key, DragPreview)
		g.reg.Press(g.key, Confirmed)
		debug.Log("gesture", "confirmed key=%d", g.key)
	}
	g.reset()
}

// Leave cancels an adding gesture without confirming; a removal is kept
func (g *Gesture) Leave() {
	if g.mode == gestureAdding && g.previewing {
		g.reg.Release(g.key, DragPreview)
		debug.Log("gesture", "cancelled key=%d", g.key)
	}
	g.reset()
}

func (g *Gesture) preview(key chord.Key) {
	g.previewing = !g.reg.IsHeldBy(key, Confirmed)
	if g.previewing {
		g.reg.Press(key, DragPreview)
	}
}

func (g *Gesture) reset() {
	g.mode = gestureIdle
	g.previewing = false
	g.removed = false
}
