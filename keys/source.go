package keys

import "fmt"

// SourceKind identifies what is holding a key down
type SourceKind int

const (
	KindChannel     SourceKind = iota // hardware input, one per MIDI channel
	KindDragPreview                   // pointer is down and hovering the key
	KindConfirmed                     // committed by releasing the pointer
)

// Source is a closed tagged union: Channel(n), DragPreview or Confirmed.
// It is comparable and safe to use as a map key.
type Source struct {
	kind    SourceKind
	channel uint8
}

var (
	DragPreview = Source{kind: KindDragPreview}
	Confirmed   = Source{kind: KindConfirmed}
)

// Channel returns the source for a hardware MIDI channel (0-15)
func Channel(n uint8) Source {
	return Source{kind: KindChannel, channel: n & 0x0F}
}

func (s Source) Kind() SourceKind {
	return s.kind
}

// ChannelNumber returns the MIDI channel; ok is false for pointer sources
func (s Source) ChannelNumber() (ch uint8, ok bool) {
	return s.channel, s.kind == KindChannel
}

// IsPointer reports whether the source comes from the on-screen keyboard
func (s Source) IsPointer() bool {
	return s.kind == KindDragPreview || s.kind == KindConfirmed
}

func (s Source) String() string {
	switch s.kind {
	case KindDragPreview:
		return "drag-preview"
	case KindConfirmed:
		return "confirmed"
	default:
		return fmt.Sprintf("ch%d", s.channel+1)
	}
}
