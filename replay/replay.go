// Package replay runs a recorded note timeline through an analyzer and
// prints the chords it recognises along the way.
package replay

import (
	"fmt"
	"io"
	"time"

	"chordscope/analyzer"
	"chordscope/midi"
)

// Summary describes a finished replay
type Summary struct {
	Events   int
	Changes  int            // lines written
	Chords   map[string]int // label -> times it appeared
	Duration time.Duration  // offset of the last event
}

// Run applies events in order and writes a line whenever the chord label
// changes, including when it goes back to empty. Lines look like
//
//	[00:01.250] C4, E4, G4 | Cmaj
func Run(w io.Writer, events []midi.TimedEvent, a *analyzer.Analyzer) (Summary, error) {
	sum := Summary{Chords: make(map[string]int)}
	last := a.State().ChordsLabel

	for _, ev := range events {
		a.HandleMIDI(ev.Event)
		sum.Events++
		sum.Duration = ev.At

		st := a.State()
		if st.ChordsLabel == last {
			continue
		}
		last = st.ChordsLabel
		for _, m := range st.Matches {
			sum.Chords[m.Label()]++
		}

		if _, err := fmt.Fprintf(w, "[%s] %s | %s\n", FormatOffset(ev.At), st.NotesLabel, st.ChordsLabel); err != nil {
			return sum, fmt.Errorf("write replay: %w", err)
		}
		sum.Changes++
	}
	return sum, nil
}

// FormatOffset renders d as mm:ss.mmm
func FormatOffset(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d.%03d", ms/60000, ms/1000%60, ms%1000)
}
