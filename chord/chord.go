package chord

import (
	"fmt"
	"strings"
)

// Key is a MIDI note number (0-127), independent of how it was struck
type Key uint8

// NumKeys is the size of the MIDI note range
const NumKeys = 128

// TonesPerOctave is the number of semitones in an octave
const TonesPerOctave = 12

var pitchNames = [TonesPerOctave]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Valid reports whether the key is inside the MIDI note range
func (k Key) Valid() bool {
	return int(k) < NumKeys
}

// PitchClass returns the key modulo 12 (C = 0)
func (k Key) PitchClass() int {
	return int(k) % TonesPerOctave
}

// Octave returns the scientific pitch octave (middle C = C4 = 60)
func (k Key) Octave() int {
	return int(k)/TonesPerOctave - 1
}

// PitchName returns the sharp-spelled name of a pitch class.
// Out of range values wrap.
func PitchName(pc int) string {
	pc %= TonesPerOctave
	if pc < 0 {
		pc += TonesPerOctave
	}
	return pitchNames[pc]
}

// NoteName returns "C#" or, with octave, "C#4"
func NoteName(k Key, withOctave bool) string {
	name := PitchName(k.PitchClass())
	if withOctave {
		name += fmt.Sprintf("%d", k.Octave())
	}
	return name
}

// NoteNames joins the names of keys with ", "
func NoteNames(keys []Key, withOctave bool) string {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = NoteName(k, withOctave)
	}
	return strings.Join(names, ", ")
}

// Quality is the tonal family of a template
type Quality int

const (
	QualityMajor Quality = iota
	QualityMinor
	QualityDiminished
	QualityAugmented
	QualityPerfect
	QualitySuspended
)

var qualityNames = map[Quality]string{
	QualityMajor:      "major",
	QualityMinor:      "minor",
	QualityDiminished: "diminished",
	QualityAugmented:  "augmented",
	QualityPerfect:    "perfect",
	QualitySuspended:  "suspended",
}

func (q Quality) String() string {
	if name, ok := qualityNames[q]; ok {
		return name
	}
	return "unknown"
}

// Template is an interval pattern relative to a root
type Template struct {
	Name             string
	Abbrev           string
	Intervals        []int // ascending, first element 0
	Quality          Quality
	SpansOctave      bool // true if any interval >= 12; compared without mod 12
	ChallengeEnabled bool // enabled in practice mode by default
}

// NoteCount returns the number of notes the template describes
func (t *Template) NoteCount() int {
	return len(t.Intervals)
}

// Label names the template on a root pitch class, e.g. "Cmaj"
func (t *Template) Label(rootPitchClass int) string {
	return PitchName(rootPitchClass) + t.Abbrev
}
