package midi

import (
	"fmt"

	"chordscope/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// MIDI message types
const (
	NoteOn  uint8 = 0x90
	NoteOff uint8 = 0x80
)

// Event is a decoded key press or release
type Event struct {
	Type     uint8 // NoteOn or NoteOff
	Channel  uint8 // 0-15
	Note     uint8
	Velocity uint8 // 0 for NoteOff
}

func (e Event) String() string {
	kind := "on"
	if e.Type == NoteOff {
		kind = "off"
	}
	return fmt.Sprintf("ch%d note %s %d vel %d", e.Channel+1, kind, e.Note, e.Velocity)
}

// Decode reads a raw channel message. Note-on with velocity 0 is a release.
// Anything that is not a note message is logged and reported as !ok.
func Decode(raw []byte) (Event, bool) {
	ev, ok := decode(raw)
	if !ok {
		debug.Log("midi", "ignored message % X", raw)
	}
	return ev, ok
}

func decode(raw []byte) (Event, bool) {
	if len(raw) < 3 {
		return Event{}, false
	}
	msg := gomidi.Message(raw[:3])

	var ch, key, vel uint8
	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		return Event{Type: NoteOn, Channel: ch, Note: key, Velocity: vel}, true
	case msg.GetNoteEnd(&ch, &key):
		return Event{Type: NoteOff, Channel: ch, Note: key}, true
	}
	return Event{}, false
}
