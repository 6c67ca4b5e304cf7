package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chordscope/analyzer"
	"chordscope/chord"
	"chordscope/keyboard"
	"chordscope/keys"
	"chordscope/midi"
	"chordscope/theme"
)

type zeroRand struct{}

func (zeroRand) Intn(int) int { return 0 }

type fakeInput struct {
	id     string
	events chan midi.Event
}

func (f *fakeInput) ID() string                { return f.id }
func (f *fakeInput) Events() <-chan midi.Event { return f.events }
func (f *fakeInput) Close() error              { return nil }

// one octave from C4 fitted to 30 columns: margin 1, 4 columns per natural
func newTestModel(t *testing.T) Model {
	t.Helper()
	maj, _ := chord.Lookup("maj")
	opts := analyzer.Options{
		ShowOctaveNames:  true,
		EnabledRoots:     []int{0},
		EnabledTemplates: []*chord.Template{maj},
	}
	a := analyzer.New(keyboard.NewLayout(60, 12, 1, 1, 1), opts, zeroRand{}, nil)
	m := NewModel(a, nil, nil, theme.New(theme.Default()))
	return update(t, m, tea.WindowSizeMsg{Width: 30, Height: 40})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm
}

func press(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func release(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

func motion(col, row int) tea.MouseMsg {
	return tea.MouseMsg{X: col, Y: row, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// lower half of the keyboard, where only naturals are hit
const naturalRow = keyboardTop + keyboardRows - 2

var naturalCol = map[chord.Key]int{60: 2, 62: 6, 64: 10, 65: 14, 67: 18}

func click(t *testing.T, m Model, k chord.Key) (Model, tea.Cmd) {
	t.Helper()
	col := naturalCol[k]
	m = update(t, m, press(col, naturalRow))
	next, cmd := m.Update(release(col, naturalRow))
	return next.(Model), cmd
}

func TestResizeFitsKeyboard(t *testing.T) {
	m := newTestModel(t)
	l := m.Analyzer.Layout()
	assert.InDelta(t, 4, l.NaturalWidth, 1e-9)
	assert.InDelta(t, keyboardRows, l.NaturalHeight, 1e-9)
	assert.InDelta(t, 30, l.Width(), 1e-9)
}

func TestClickConfirmsKey(t *testing.T) {
	m := newTestModel(t)
	m, _ = click(t, m, 60)
	assert.True(t, m.Analyzer.Registry().IsHeldBy(60, keys.Confirmed))
	assert.Equal(t, "C4", m.Analyzer.State().NotesLabel)

	m, _ = click(t, m, 60)
	assert.Empty(t, m.Analyzer.State().Pressed, "clicking a confirmed key removes it")
}

func TestDragOffKeyboardCancels(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, press(naturalCol[62], naturalRow))
	assert.Equal(t, []chord.Key{62}, m.Analyzer.State().Pressed)

	m = update(t, m, motion(naturalCol[64], naturalRow))
	assert.Equal(t, []chord.Key{64}, m.Analyzer.State().Pressed)

	m = update(t, m, motion(naturalCol[64], 30))
	assert.Empty(t, m.Analyzer.State().Pressed)
	m = update(t, m, release(naturalCol[64], 30))
	assert.Empty(t, m.Analyzer.State().Pressed)
}

func TestPressOutsideKeyboardIgnored(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, press(5, 0))
	m = update(t, m, release(5, 0))
	assert.Empty(t, m.Analyzer.State().Pressed)
}

func TestChallengeFlow(t *testing.T) {
	m := newTestModel(t)
	assert.Contains(t, m.View(), "Press c to start")

	m = update(t, m, runes("c"))
	require.True(t, m.Analyzer.Challenge().Running())
	assert.Contains(t, m.View(), "Cmaj")

	m, _ = click(t, m, 60)
	m, _ = click(t, m, 64)
	m, cmd := click(t, m, 67)
	assert.NotNil(t, cmd, "a solve schedules the end of the flash")
	assert.True(t, m.flashing)
	assert.Contains(t, m.View(), "Correct!")

	s, _ := m.Analyzer.Challenge().Session()
	assert.Equal(t, 1, s.Score)

	m = update(t, m, flashDoneMsg{seq: m.flashSeq})
	assert.False(t, m.flashing)
	assert.NotContains(t, m.View(), "Correct!")

	m = update(t, m, runes("c"))
	assert.False(t, m.Analyzer.Challenge().Running())
}

func TestStaleFlashIgnored(t *testing.T) {
	m := newTestModel(t)
	m.flashing = true
	m.flashSeq = 2
	m = update(t, m, flashDoneMsg{seq: 1})
	assert.True(t, m.flashing)
}

func TestNotesFromInput(t *testing.T) {
	m := newTestModel(t)
	in := &fakeInput{id: "Test Keys", events: make(chan midi.Event)}

	note := NoteMsg{InputID: in.id, Event: midi.Event{Type: midi.NoteOn, Note: 64, Velocity: 90}}
	m = update(t, m, note)
	assert.Empty(t, m.Analyzer.State().Pressed, "no input connected yet")

	m = update(t, m, DeviceEventMsg{Type: midi.DeviceConnected, Input: in, ID: in.id})
	assert.Contains(t, m.View(), "Test Keys")

	m = update(t, m, note)
	assert.Equal(t, []chord.Key{64}, m.Analyzer.State().Pressed)

	m = update(t, m, DeviceEventMsg{Type: midi.DeviceDisconnected, ID: in.id})
	assert.Empty(t, m.Analyzer.State().Pressed, "hardware notes released with the device")
	assert.Contains(t, m.View(), "no MIDI input")
}

func TestSettingsGuard(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, runes("s"))
	require.True(t, m.settingsOpen)

	// cursor starts on root C, the only enabled root
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Equal(t, "at least one root must stay enabled", m.status)
	assert.True(t, m.Analyzer.Options().RootEnabled(0))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.Empty(t, m.status)
	assert.True(t, m.Analyzer.Options().RootEnabled(1))
	assert.Contains(t, m.View(), "Roots")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.settingsOpen)
}

func TestToggleLabels(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, runes("l"))
	assert.True(t, m.Analyzer.Options().ShowNoteLabels)
	assert.Contains(t, m.View(), "C4")
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)
	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Empty(t, next.(Model).View())
}
