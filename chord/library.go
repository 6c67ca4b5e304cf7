package chord

// Interval and chord tables, grouped by note count.
// See https://en.wikipedia.org/wiki/List_of_chords

// MinNotes and MaxNotes bound the note counts the library covers
const (
	MinNotes = 2
	MaxNotes = 5
)

// Dyads are two-note intervals. Compound intervals (an octave and above)
// span the octave and are told apart from their simple counterparts.
var Dyads = []*Template{
	{Name: "Minor 2nd", Abbrev: "m2", Intervals: []int{0, 1}, Quality: QualityMinor},
	{Name: "Major 2nd", Abbrev: "M2", Intervals: []int{0, 2}, Quality: QualityMajor},
	{Name: "Minor 3rd", Abbrev: "m3", Intervals: []int{0, 3}, Quality: QualityMinor},
	{Name: "Major 3rd", Abbrev: "M3", Intervals: []int{0, 4}, Quality: QualityMajor},
	{Name: "Perfect 4th", Abbrev: "P4", Intervals: []int{0, 5}, Quality: QualityPerfect},
	{Name: "Augmented 4th", Abbrev: "A4", Intervals: []int{0, 6}, Quality: QualityAugmented},
	{Name: "Diminished 5th", Abbrev: "d5", Intervals: []int{0, 6}, Quality: QualityDiminished},
	{Name: "Power Chord", Abbrev: "5", Intervals: []int{0, 7}, Quality: QualityPerfect, ChallengeEnabled: true},
	{Name: "Minor 6th", Abbrev: "m6", Intervals: []int{0, 8}, Quality: QualityMinor},
	{Name: "Major 6th", Abbrev: "M6", Intervals: []int{0, 9}, Quality: QualityMajor},
	{Name: "Minor 7th", Abbrev: "m7", Intervals: []int{0, 10}, Quality: QualityMinor},
	{Name: "Major 7th", Abbrev: "M7", Intervals: []int{0, 11}, Quality: QualityMajor},
	{Name: "Octave", Abbrev: "P8", Intervals: []int{0, 12}, Quality: QualityPerfect, SpansOctave: true},
	{Name: "Minor 9th", Abbrev: "m9", Intervals: []int{0, 13}, Quality: QualityMinor, SpansOctave: true},
	{Name: "Major 9th", Abbrev: "M9", Intervals: []int{0, 14}, Quality: QualityMajor, SpansOctave: true},
}

var Triads = []*Template{
	{Name: "Major", Abbrev: "maj", Intervals: []int{0, 4, 7}, Quality: QualityMajor, ChallengeEnabled: true},
	{Name: "Minor", Abbrev: "min", Intervals: []int{0, 3, 7}, Quality: QualityMinor, ChallengeEnabled: true},
	{Name: "Diminished", Abbrev: "dim", Intervals: []int{0, 3, 6}, Quality: QualityDiminished, ChallengeEnabled: true},
	{Name: "Augmented", Abbrev: "aug", Intervals: []int{0, 4, 8}, Quality: QualityAugmented, ChallengeEnabled: true},
	{Name: "Suspended 4th", Abbrev: "sus4", Intervals: []int{0, 5, 7}, Quality: QualitySuspended, ChallengeEnabled: true},
	{Name: "Suspended 2nd", Abbrev: "sus2", Intervals: []int{0, 2, 7}, Quality: QualitySuspended, ChallengeEnabled: true},
}

var Tetrads = []*Template{
	{Name: "Major 7th", Abbrev: "maj7", Intervals: []int{0, 4, 7, 11}, Quality: QualityMajor, ChallengeEnabled: true},
	{Name: "Minor 7th", Abbrev: "min7", Intervals: []int{0, 3, 7, 10}, Quality: QualityMinor, ChallengeEnabled: true},
	{Name: "Major Minor 7th", Abbrev: "majmin7", Intervals: []int{0, 4, 7, 10}, Quality: QualityMajor},
	{Name: "Minor Major 7th", Abbrev: "minmaj7", Intervals: []int{0, 3, 7, 11}, Quality: QualityMinor},
	{Name: "Half Diminished 7th", Abbrev: "m7b5", Intervals: []int{0, 3, 6, 10}, Quality: QualityDiminished},
	{Name: "Diminished 7th", Abbrev: "dim7", Intervals: []int{0, 3, 6, 9}, Quality: QualityDiminished},
	{Name: "Diminished Major 7th", Abbrev: "dimmaj7", Intervals: []int{0, 3, 6, 11}, Quality: QualityDiminished},
	{Name: "Augmented 7th", Abbrev: "aug7", Intervals: []int{0, 4, 8, 10}, Quality: QualityAugmented},
	{Name: "Augmented Major 7th", Abbrev: "augmaj7", Intervals: []int{0, 4, 8, 11}, Quality: QualityAugmented},
	{Name: "Suspended 7th", Abbrev: "7sus4", Intervals: []int{0, 5, 7, 10}, Quality: QualitySuspended},
	{Name: "Major 6th", Abbrev: "maj6", Intervals: []int{0, 4, 7, 9}, Quality: QualityMajor},
	{Name: "Minor 6th", Abbrev: "min6", Intervals: []int{0, 3, 7, 9}, Quality: QualityMinor},
	{Name: "Added 9th", Abbrev: "add9", Intervals: []int{0, 4, 7, 14}, Quality: QualityMajor, SpansOctave: true},
}

var Pentads = []*Template{
	{Name: "Major 9th", Abbrev: "maj9", Intervals: []int{0, 4, 7, 11, 14}, Quality: QualityMajor, SpansOctave: true},
	{Name: "Minor 9th", Abbrev: "min9", Intervals: []int{0, 3, 7, 10, 14}, Quality: QualityMinor, SpansOctave: true},
	{Name: "Dominant 9th", Abbrev: "dom9", Intervals: []int{0, 4, 7, 10, 14}, Quality: QualityMajor, SpansOctave: true},
	{Name: "Dominant 7th Flat 9th", Abbrev: "7b9", Intervals: []int{0, 4, 7, 10, 13}, Quality: QualityMajor, SpansOctave: true},
	{Name: "Dominant 7th Sharp 9th", Abbrev: "7#9", Intervals: []int{0, 4, 7, 10, 15}, Quality: QualityMajor, SpansOctave: true},
	// NOTE: quality kept as diminished to match the historical table; it is
	// usually analysed as an altered dominant.
	{Name: "Dominant 9th Flat 5th", Abbrev: "9b5", Intervals: []int{0, 4, 6, 10, 14}, Quality: QualityDiminished, SpansOctave: true},
}

var byNoteCount = map[int][]*Template{
	2: Dyads,
	3: Triads,
	4: Tetrads,
	5: Pentads,
}

// Templates returns the templates with n notes (nil outside 2..5)
func Templates(n int) []*Template {
	return byNoteCount[n]
}

// All returns every template, dyads first, in table order
func All() []*Template {
	var all []*Template
	for n := MinNotes; n <= MaxNotes; n++ {
		all = append(all, byNoteCount[n]...)
	}
	return all
}

// Lookup finds a template by abbreviation
func Lookup(abbrev string) (*Template, bool) {
	for _, t := range All() {
		if t.Abbrev == abbrev {
			return t, true
		}
	}
	return nil, false
}

// DefaultChallengeTemplates returns the templates enabled in practice mode
// unless the user changes the selection
func DefaultChallengeTemplates() []*Template {
	var enabled []*Template
	for _, t := range All() {
		if t.ChallengeEnabled {
			enabled = append(enabled, t)
		}
	}
	return enabled
}

// DefaultTriad is the fallback template when nothing is enabled
func DefaultTriad() *Template {
	return Triads[0]
}
