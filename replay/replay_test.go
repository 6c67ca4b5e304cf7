package replay

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chordscope/analyzer"
	"chordscope/keyboard"
	"chordscope/midi"
)

func on(at time.Duration, note uint8) midi.TimedEvent {
	return midi.TimedEvent{At: at, Event: midi.Event{Type: midi.NoteOn, Note: note, Velocity: 100}}
}

func off(at time.Duration, note uint8) midi.TimedEvent {
	return midi.TimedEvent{At: at, Event: midi.Event{Type: midi.NoteOff, Note: note}}
}

func newAnalyzer() *analyzer.Analyzer {
	return analyzer.New(keyboard.DefaultLayout(), analyzer.DefaultOptions(), nil, nil)
}

var arpeggio = []midi.TimedEvent{
	on(0, 60),
	on(100*time.Millisecond, 64),
	on(200*time.Millisecond, 67),
	off(time.Second, 60),
	off(1250*time.Millisecond, 64),
	off(1500*time.Millisecond, 67),
}

func TestRunWritesChordChanges(t *testing.T) {
	var out strings.Builder
	sum, err := Run(&out, arpeggio, newAnalyzer())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "[00:00.100] C4, E4 | CM3", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "[00:00.200] C4, E4, G4 | "))
	assert.Contains(t, lines[1], "Cmaj")
	assert.Equal(t, "[00:01.000] E4, G4 | Em3", lines[2])
	assert.Equal(t, "[00:01.250] G4 | ", lines[3])

	assert.Equal(t, 6, sum.Events)
	assert.Equal(t, 4, sum.Changes)
	assert.Equal(t, 1500*time.Millisecond, sum.Duration)
	assert.Equal(t, 1, sum.Chords["Cmaj"])
	assert.Equal(t, 1, sum.Chords["Em3"])
}

func TestRunEmpty(t *testing.T) {
	var out strings.Builder
	sum, err := Run(&out, nil, newAnalyzer())
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Zero(t, sum.Events)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRunWriteError(t *testing.T) {
	sum, err := Run(failWriter{}, arpeggio, newAnalyzer())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Equal(t, 2, sum.Events)
}

func TestFormatOffset(t *testing.T) {
	for d, want := range map[time.Duration]string{
		0:                                   "00:00.000",
		-time.Second:                        "00:00.000",
		1250 * time.Millisecond:             "00:01.250",
		2*time.Minute + 3*time.Second + 7e6: "02:03.007",
	} {
		assert.Equal(t, want, FormatOffset(d), "%v", d)
	}
}
