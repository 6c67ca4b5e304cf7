// Package keyboard maps between piano keys and positions on a drawn keyboard.
//
// Naturals sit in seven equal slots per octave. Accidentals are centred on
// the boundary between their neighbouring naturals, half as wide and half as
// tall. Coordinates grow rightwards and downwards from the top-left corner
// of the drawing, in whatever unit the caller draws with (pixels, cells).
package keyboard

import (
	"math"

	"chordscope/chord"
)

const (
	naturalsPerOctave = 7

	// MinNaturalWidth is the narrowest natural FitWidth will produce before
	// it starts dropping octaves
	MinNaturalWidth = 2.0
)

// slot index of each natural pitch class; -1 for accidentals
var naturalSlot = [chord.TonesPerOctave]int{0, -1, 1, -1, 2, 3, -1, 4, -1, 5, -1, 6}

// pitch class of each natural slot
var slotPitchClass = [naturalsPerOctave]int{0, 2, 4, 5, 7, 9, 11}

// IsNatural reports whether key is a white key
func IsNatural(key chord.Key) bool {
	return naturalSlot[key.PitchClass()] >= 0
}

// Layout describes a drawn keyboard. Zero values are not useful; use NewLayout.
type Layout struct {
	FirstKey      chord.Key
	KeyCount      int
	NaturalWidth  float64
	NaturalHeight float64
	Margin        float64 // blank space left of the first key and right of the last
}

// DefaultLayout is the 88 key piano range, A0 to C8
func DefaultLayout() Layout {
	return NewLayout(21, 88, 20, 120, 10)
}

// NewLayout builds a layout covering count keys from first. Both ends are
// widened to the nearest natural so the drawing never starts or ends on a
// half key.
func NewLayout(first chord.Key, count int, naturalWidth, naturalHeight, margin float64) Layout {
	if !first.Valid() {
		first = chord.NumKeys - 1
	}
	if count < 1 {
		count = 1
	}
	last := int(first) + count - 1
	if last >= chord.NumKeys {
		last = chord.NumKeys - 1
	}
	for !IsNatural(first) {
		first--
	}
	for !IsNatural(chord.Key(last)) {
		last++
	}
	return Layout{
		FirstKey:      first,
		KeyCount:      last - int(first) + 1,
		NaturalWidth:  naturalWidth,
		NaturalHeight: naturalHeight,
		Margin:        margin,
	}
}

func (l Layout) OctaveWidth() float64 {
	return l.NaturalWidth * naturalsPerOctave
}

func (l Layout) AccidentalWidth() float64 {
	return l.NaturalWidth / 2
}

func (l Layout) AccidentalHeight() float64 {
	return l.NaturalHeight / 2
}

func (l Layout) LastKey() chord.Key {
	return chord.Key(int(l.FirstKey) + l.KeyCount - 1)
}

// Contains reports whether key is drawn
func (l Layout) Contains(key chord.Key) bool {
	return key >= l.FirstKey && key <= l.LastKey()
}

// Naturals counts the white keys drawn
func (l Layout) Naturals() int {
	return naturalIndex(l.LastKey()) - naturalIndex(l.FirstKey) + 1
}

// Width is the full drawing width including both margins
func (l Layout) Width() float64 {
	return float64(l.Naturals())*l.NaturalWidth + 2*l.Margin
}

// origin is the x position where key 0's octave would start
func (l Layout) origin() float64 {
	return l.Margin - float64(naturalIndex(l.FirstKey))*l.NaturalWidth
}

// naturalIndex counts naturals from key 0; an accidental gets the index of
// the natural below it
func naturalIndex(key chord.Key) int {
	pc := key.PitchClass()
	for naturalSlot[pc] < 0 {
		pc--
	}
	return int(key)/chord.TonesPerOctave*naturalsPerOctave + naturalSlot[pc]
}

// FitWidth returns a copy sized to fill cols x rows. When the keyboard would
// need naturals narrower than MinNaturalWidth it keeps only as many whole
// octaves, C to C, around the middle of the range as fit.
func (l Layout) FitWidth(cols, rows int) Layout {
	avail := float64(cols) - 2*l.Margin
	if avail < 1 {
		avail = 1
	}

	if maxNaturals := int(avail / MinNaturalWidth); maxNaturals < l.Naturals() {
		octaves := (maxNaturals - 1) / naturalsPerOctave
		if octaves < 1 {
			octaves = 1
		}
		centre := (int(l.FirstKey) + int(l.LastKey())) / 2
		first := (centre - octaves*chord.TonesPerOctave/2) / chord.TonesPerOctave * chord.TonesPerOctave
		if first < 0 {
			first = 0
		}
		count := octaves*chord.TonesPerOctave + 1
		if first+count > chord.NumKeys {
			first = chord.NumKeys - count
		}
		l = NewLayout(chord.Key(first), count, l.NaturalWidth, l.NaturalHeight, l.Margin)
	}

	l.NaturalWidth = avail / float64(l.Naturals())
	l.NaturalHeight = float64(rows)
	return l
}

// Rect is an axis aligned box
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) CenterX() float64 {
	return r.X + r.W/2
}

func (r Rect) CenterY() float64 {
	return r.Y + r.H/2
}

// Contains reports whether (x, y) is inside r, right and bottom edges excluded
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// KeyRect returns where key is drawn
func (l Layout) KeyRect(key chord.Key) Rect {
	pc := key.PitchClass()
	octaveX := l.origin() + float64(int(key)/chord.TonesPerOctave)*l.OctaveWidth()

	if slot := naturalSlot[pc]; slot >= 0 {
		return Rect{
			X: octaveX + float64(slot)*l.NaturalWidth,
			W: l.NaturalWidth,
			H: l.NaturalHeight,
		}
	}

	centre := octaveX + float64(pc/2+1)*l.NaturalWidth
	return Rect{
		X: centre - l.AccidentalWidth()/2,
		W: l.AccidentalWidth(),
		H: l.AccidentalHeight(),
	}
}

// KeyAt returns the key under (x, y). Points outside the drawing resolve to
// the nearest drawn key, so the result is always in range.
func (l Layout) KeyAt(x, y float64) chord.Key {
	if l.NaturalWidth <= 0 {
		return l.FirstKey
	}

	rel := x - l.origin()
	octave := int(math.Floor(rel / l.OctaveWidth()))
	pos := (rel - float64(octave)*l.OctaveWidth()) / l.NaturalWidth
	slot := int(pos)
	if slot >= naturalsPerOctave {
		slot = naturalsPerOctave - 1
	}
	pc := slotPitchClass[slot]
	natural := octave*chord.TonesPerOctave + pc

	if y > l.AccidentalHeight() {
		return l.clamp(natural)
	}

	threshold := l.AccidentalWidth() / 2 / l.NaturalWidth
	fract := pos - float64(slot)
	if fract > threshold && fract < 1-threshold {
		return l.clamp(natural)
	}

	// neighbour across the nearer edge; C's left is B at -1, B's right is C at 12
	var neighbour int
	if fract >= 0.5 {
		if slot+1 < naturalsPerOctave {
			neighbour = slotPitchClass[slot+1]
		} else {
			neighbour = chord.TonesPerOctave
		}
	} else {
		if slot > 0 {
			neighbour = slotPitchClass[slot-1]
		} else {
			neighbour = -1
		}
	}

	if abs(neighbour-pc) <= 1 {
		return l.clamp(natural)
	}

	accidental := octave*chord.TonesPerOctave + (pc+neighbour)/2
	if accidental < int(l.FirstKey) || accidental > int(l.LastKey()) {
		return l.clamp(natural)
	}
	return chord.Key(accidental)
}

func (l Layout) clamp(key int) chord.Key {
	if key < int(l.FirstKey) {
		return l.FirstKey
	}
	if last := int(l.LastKey()); key > last {
		return chord.Key(last)
	}
	return chord.Key(key)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
