package chord

import (
	"slices"
	"strings"
)

// Match is one template found in a set of held keys
type Match struct {
	Template  *Template
	Root      Key // key acting as interval zero
	Inversion int // rotation index; 0 is root position
	Bass      Key // lowest held key, named after the slash for inversions
}

// Label renders the match as "Cmaj" or, inverted, "Cmaj/E"
func (m Match) Label() string {
	label := m.Template.Label(m.Root.PitchClass())
	if m.Inversion > 0 {
		label += "/" + PitchName(m.Bass.PitchClass())
	}
	return label
}

// Labels joins the labels of several matches with ", "
func Labels(matches []Match) string {
	labels := make([]string, len(matches))
	for i, m := range matches {
		labels[i] = m.Label()
	}
	return strings.Join(labels, ", ")
}

// Recognize finds every template matching the ascending, distinct keys.
//
// Each rotation of the keys is tried as a candidate root (dyads only in
// root position). Intervals are reduced mod 12 for ordinary templates so
// inversions and open voicings normalise, and kept raw for templates that
// span the octave. A rotation claimed by an octave-spanning template does
// not also report the mod 12 reduction of the same intervals.
//
// Inputs with fewer than 2 or more than 5 keys give no matches.
func Recognize(keys []Key) []Match {
	candidates := Templates(len(keys))
	if len(candidates) == 0 {
		return nil
	}

	rotations := len(keys)
	if len(keys) == 2 {
		rotations = 1
	}

	var matches []Match
	raw := make([]int, len(keys))
	reduced := make([]int, len(keys))
	for i := 0; i < rotations; i++ {
		root := keys[i]
		for j := range keys {
			diff := int(keys[(i+j)%len(keys)]) - int(root)
			raw[j] = diff
			reduced[j] = ((diff % TonesPerOctave) + TonesPerOctave) % TonesPerOctave
		}

		spanned := false
		for _, t := range candidates {
			if t.SpansOctave && slices.Equal(t.Intervals, raw) {
				spanned = true
				break
			}
		}

		for _, t := range candidates {
			var ok bool
			if t.SpansOctave {
				ok = slices.Equal(t.Intervals, raw)
			} else {
				ok = !spanned && slices.Equal(t.Intervals, reduced)
			}
			if ok {
				matches = append(matches, Match{
					Template:  t,
					Root:      root,
					Inversion: i,
					Bass:      keys[0],
				})
			}
		}
	}
	return matches
}
