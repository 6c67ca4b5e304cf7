// Package analyzer is the event pipeline between inputs and the display.
//
// Every input (a MIDI note, a pointer event, an option change) is applied
// in full and then the pressed keys, recognised chords and labels are
// recomputed from a fresh registry snapshot. Matches are then offered to
// the challenge. Callers serialise events; nothing here is safe for
// concurrent use.
package analyzer

import (
	"time"

	"chordscope/challenge"
	"chordscope/chord"
	"chordscope/debug"
	"chordscope/keyboard"
	"chordscope/keys"
	"chordscope/midi"
)

// State is what the display shows after the last event
type State struct {
	Pressed     []chord.Key
	Matches     []chord.Match
	NotesLabel  string
	ChordsLabel string
}

type Analyzer struct {
	registry  *keys.Registry
	gesture   *keys.Gesture
	challenge *challenge.Controller
	layout    keyboard.Layout
	opts      Options
	state     State
}

// New creates an analyzer with nothing pressed and the challenge idle.
// rng and clock may be nil (see challenge.New).
func New(layout keyboard.Layout, opts Options, rng challenge.Rand, clock func() time.Time) *Analyzer {
	reg := keys.NewRegistry()
	a := &Analyzer{
		registry:  reg,
		gesture:   keys.NewGesture(reg),
		challenge: challenge.New(reg, rng, clock),
		layout:    layout,
	}
	a.SetOptions(opts)
	return a
}

func (a *Analyzer) Registry() *keys.Registry {
	return a.registry
}

func (a *Analyzer) Challenge() *challenge.Controller {
	return a.challenge
}

func (a *Analyzer) Layout() keyboard.Layout {
	return a.layout
}

func (a *Analyzer) Options() Options {
	return a.opts.clone()
}

// State returns the display state as of the last event
func (a *Analyzer) State() State {
	return a.state
}

// GestureInProgress reports whether the pointer is held on the keyboard
func (a *Analyzer) GestureInProgress() bool {
	return a.gesture.InProgress()
}

// HandleMIDI applies a decoded note event. It reports whether the event
// solved the current challenge target.
func (a *Analyzer) HandleMIDI(ev midi.Event) bool {
	key := chord.Key(ev.Note)
	src := keys.Channel(ev.Channel)
	switch ev.Type {
	case midi.NoteOn:
		a.registry.Press(key, src)
	case midi.NoteOff:
		a.registry.Release(key, src)
	default:
		debug.Log("midi", "analyzer ignored %v", ev)
		return false
	}
	return a.update()
}

// ReleaseHardware drops every press coming from MIDI, used when the input
// device goes away
func (a *Analyzer) ReleaseHardware() {
	for ch := uint8(0); ch < 16; ch++ {
		a.registry.ReleaseAllForSource(keys.Channel(ch))
	}
	a.recompute()
}

// PointerDown starts a gesture on the key under (x, y)
func (a *Analyzer) PointerDown(x, y float64) bool {
	a.gesture.Down(a.layout.KeyAt(x, y))
	return a.update()
}

// PointerMove follows a gesture; moves without a gesture are ignored
func (a *Analyzer) PointerMove(x, y float64) bool {
	if !a.gesture.InProgress() {
		return false
	}
	a.gesture.Move(a.layout.KeyAt(x, y))
	return a.update()
}

// PointerUp commits the gesture
func (a *Analyzer) PointerUp() bool {
	if !a.gesture.InProgress() {
		return false
	}
	a.gesture.Up()
	return a.update()
}

// PointerLeave cancels the gesture as the pointer leaves the keyboard
func (a *Analyzer) PointerLeave() bool {
	if !a.gesture.InProgress() {
		return false
	}
	a.gesture.Leave()
	return a.update()
}

// Clear releases every key from every source
func (a *Analyzer) Clear() {
	a.gesture.Leave()
	a.registry.Clear()
	a.recompute()
}

// SetOptions replaces the display and challenge options. Running targets
// are kept; the new sets apply from the next target.
func (a *Analyzer) SetOptions(opts Options) {
	a.opts = opts.clone()
	a.challenge.SetEnabled(a.opts.EnabledRoots, a.opts.EnabledTemplates)
	a.recompute()
}

// SetLayout changes the keyboard geometry used for pointer events
func (a *Analyzer) SetLayout(l keyboard.Layout) {
	a.layout = l
}

// StartChallenge begins a fresh session with the enabled sets
func (a *Analyzer) StartChallenge() {
	a.challenge.Start(a.opts.EnabledRoots, a.opts.EnabledTemplates)
}

func (a *Analyzer) StopChallenge() {
	a.challenge.Stop()
}

// SkipChallenge moves on to the next target without scoring
func (a *Analyzer) SkipChallenge() {
	a.challenge.Skip()
}

// update recomputes the display, offers the matches to the challenge and,
// when they solve it, recomputes once more for the released keys
func (a *Analyzer) update() bool {
	a.recompute()
	solved := a.challenge.CheckSubmission(a.state.Matches, a.gesture.InProgress())
	if solved {
		a.recompute()
	}
	return solved
}

func (a *Analyzer) recompute() {
	pressed := a.registry.Snapshot()
	matches := chord.Recognize(pressed)
	a.state = State{
		Pressed:     pressed,
		Matches:     matches,
		NotesLabel:  chord.NoteNames(pressed, a.opts.ShowOctaveNames),
		ChordsLabel: chord.Labels(matches),
	}
}
