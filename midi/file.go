package midi

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"time"

	"gitlab.com/gomidi/midi/v2/smf"
)

// TimedEvent is a note event at an offset from the start of a file
type TimedEvent struct {
	At time.Duration
	Event
}

// ReadFile parses a standard MIDI file
func ReadFile(path string) (s *smf.SMF, err error) {
	// smf can panic on malformed input
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, fmt.Errorf("parse %s: %v", path, r)
		}
	}()

	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read midi file: %w", err)
	}
	s, err = smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

// NoteTimeline flattens every track into time ordered note events.
// At equal offsets releases come before presses so a re-struck note is
// seen as released and pressed again.
func NoteTimeline(s *smf.SMF) []TimedEvent {
	var timeline []TimedEvent
	for _, track := range s.Tracks {
		var absTicks int64
		for _, ev := range track {
			absTicks += int64(ev.Delta)
			note, ok := decode(ev.Message)
			if !ok {
				continue
			}
			at := time.Duration(s.TimeAt(absTicks)) * time.Microsecond
			timeline = append(timeline, TimedEvent{At: at, Event: note})
		}
	}

	slices.SortStableFunc(timeline, func(a, b TimedEvent) int {
		if a.At != b.At {
			if a.At < b.At {
				return -1
			}
			return 1
		}
		return offFirst(a.Type) - offFirst(b.Type)
	})
	return timeline
}

func offFirst(t uint8) int {
	if t == NoteOff {
		return 0
	}
	return 1
}
