package midi

import (
	"fmt"
	"sync"

	"chordscope/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

const eventBuffer = 64

// KeyboardController reads notes from a MIDI keyboard
type KeyboardController struct {
	id       string
	inPort   drivers.In
	stopFunc func()

	mu     sync.Mutex
	closed bool
	events chan Event
}

// NewKeyboardController starts listening on inPort
func NewKeyboardController(id string, inPort drivers.In) (*KeyboardController, error) {
	kb := &KeyboardController{
		id:     id,
		inPort: inPort,
		events: make(chan Event, eventBuffer),
	}

	if inPort != nil {
		stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
			ev, ok := Decode(msg)
			if !ok {
				return
			}
			kb.send(ev)
		})
		if err != nil {
			return nil, fmt.Errorf("listen to %s: %w", id, err)
		}
		kb.stopFunc = stop
	}

	return kb, nil
}

func (kb *KeyboardController) send(ev Event) {
	kb.mu.Lock()
	defer kb.mu.Unlock()
	if kb.closed {
		return
	}
	select {
	case kb.events <- ev:
	default:
		debug.LogEvery(10, "midi", "%s: event buffer full, dropped %s", kb.id, ev)
	}
}

func (kb *KeyboardController) ID() string {
	return kb.id
}

func (kb *KeyboardController) Events() <-chan Event {
	return kb.events
}

func (kb *KeyboardController) Close() error {
	if kb.stopFunc != nil {
		kb.stopFunc()
	}
	kb.mu.Lock()
	defer kb.mu.Unlock()
	if !kb.closed {
		kb.closed = true
		close(kb.events)
	}
	return nil
}
