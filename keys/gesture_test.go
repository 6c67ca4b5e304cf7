package keys

import (
	"testing"

	"chordscope/chord"

	"github.com/stretchr/testify/assert"
)

func TestGestureAddConfirmsOnUp(t *testing.T) {
	r := NewRegistry()
	g := NewGesture(r)

	g.Down(60)
	assert.True(t, g.InProgress())
	assert.True(t, r.IsHeldBy(60, DragPreview))
	assert.False(t, r.IsHeldBy(60, Confirmed))

	g.Up()
	assert.False(t, g.InProgress())
	assert.False(t, r.IsHeldBy(60, DragPreview))
	assert.True(t, r.IsHeldBy(60, Confirmed))
}

func TestGestureAddFollowsPointer(t *testing.T) {
	r := NewRegistry()
	g := NewGesture(r)

	g.Down(60)
	g.Move(61)
	g.Move(62)
	assert.Equal(t, []chord.Key{62}, r.Snapshot())
	g.Up()
	assert.Equal(t, []chord.Key{62}, r.Snapshot())
	assert.True(t, r.IsHeldBy(62, Confirmed))
}

func TestGestureAddOverConfirmedKey(t *testing.T) {
	r := NewRegistry()
	r.Press(64, Confirmed)
	g := NewGesture(r)

	g.Down(60)
	g.Move(64)
	assert.False(t, r.IsHeldBy(64, DragPreview), "preview never overlaps a confirmed key")
	assert.False(t, r.IsPressed(60))

	g.Move(65)
	assert.True(t, r.IsHeldBy(64, Confirmed), "passing over does not remove")
	assert.True(t, r.IsHeldBy(65, DragPreview))
	g.Up()
	assert.Equal(t, []chord.Key{64, 65}, r.Snapshot())
}

func TestGestureRemove(t *testing.T) {
	r := NewRegistry()
	r.Press(60, Confirmed)
	r.Press(64, Confirmed)
	g := NewGesture(r)

	g.Down(60)
	assert.False(t, r.IsPressed(60))
	assert.True(t, g.InProgress())

	// sliding away restores the key and removes the next confirmed one
	g.Move(64)
	assert.True(t, r.IsHeldBy(60, Confirmed))
	assert.False(t, r.IsPressed(64))

	// sliding to an unconfirmed key removes nothing and adds nothing
	g.Move(67)
	assert.Equal(t, []chord.Key{60, 64}, r.Snapshot())

	g.Move(60)
	g.Up()
	assert.Equal(t, []chord.Key{64}, r.Snapshot())
	assert.False(t, g.InProgress())
}

func TestGestureLeave(t *testing.T) {
	r := NewRegistry()
	g := NewGesture(r)

	g.Down(60)
	g.Leave()
	assert.Empty(t, r.Snapshot(), "leaving cancels the preview")
	assert.False(t, g.InProgress())

	r.Press(62, Confirmed)
	g.Down(62)
	g.Leave()
	assert.Empty(t, r.Snapshot(), "leaving keeps a removal")
}

func TestGestureKeyZero(t *testing.T) {
	r := NewRegistry()
	g := NewGesture(r)

	g.Down(0)
	g.Move(0)
	g.Up()
	assert.True(t, r.IsHeldBy(0, Confirmed))
}

func TestGestureIgnoresMoveWhenIdle(t *testing.T) {
	r := NewRegistry()
	g := NewGesture(r)
	g.Move(60)
	g.Up()
	g.Leave()
	assert.Empty(t, r.Snapshot())
}

func TestGestureLeavesHardwareAlone(t *testing.T) {
	r := NewRegistry()
	r.Press(60, Channel(0))
	g := NewGesture(r)

	g.Down(60)
	g.Leave()
	assert.True(t, r.IsHeldBy(60, Channel(0)))
	assert.False(t, r.IsHeldBy(60, DragPreview))
}
