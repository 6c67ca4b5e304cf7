package tui

import (
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"chordscope/analyzer"
	"chordscope/config"
	"chordscope/debug"
	"chordscope/keyboard"
	"chordscope/midi"
	"chordscope/theme"
)

const (
	keyboardTop  = 2 // screen row of the keyboard's first line
	keyboardRows = 8
	flashFor     = time.Second
	saveDelay    = 500 * time.Millisecond
)

type Model struct {
	Analyzer  *analyzer.Analyzer
	DeviceMgr *midi.DeviceManager // nil when MIDI is off
	Config    *config.Config      // nil disables persistence
	Theme     *theme.Theme

	keys     keyMap
	help     help.Model
	save     func(f func())
	settings settings

	base   keyboard.Layout // configured range before fitting to the screen
	input  midi.Input      // current MIDI input (may be nil)
	width  int
	height int

	flashSeq     int
	flashing     bool
	settingsOpen bool
	dirty        bool
	status       string
	quitting     bool
}

// NoteMsg carries a note from the connected input
type NoteMsg struct {
	InputID string
	Event   midi.Event
}

type DeviceEventMsg midi.DeviceEvent

type inputClosedMsg struct{ id string }

type devicesClosedMsg struct{}

type flashDoneMsg struct{ seq int }

func NewModel(a *analyzer.Analyzer, deviceMgr *midi.DeviceManager, cfg *config.Config, th *theme.Theme) Model {
	return Model{
		Analyzer:  a,
		DeviceMgr: deviceMgr,
		Config:    cfg,
		Theme:     th,
		keys:      newKeyMap(),
		help:      help.New(),
		save:      debounce.New(saveDelay),
		settings:  newSettings(),
		base:      a.Layout(),
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return devicesClosedMsg{}
		}
		return DeviceEventMsg(event)
	}
}

func ListenForNotes(in midi.Input) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-in.Events()
		if !ok {
			return inputClosedMsg{id: in.ID()}
		}
		return NoteMsg{InputID: in.ID(), Event: ev}
	}
}

func (m Model) Init() tea.Cmd {
	if m.DeviceMgr == nil {
		return nil
	}
	return ListenForDevices(m.DeviceMgr)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.Analyzer.SetLayout(m.base.FitWidth(msg.Width, keyboardRows))

	case tea.KeyMsg:
		if m.settingsOpen {
			return m.updateSettings(msg)
		}
		return m.updateKeys(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)

	case NoteMsg:
		if m.input == nil || msg.InputID != m.input.ID() {
			return m, nil
		}
		flash := m.flashIf(m.Analyzer.HandleMIDI(msg.Event))
		return m, tea.Batch(ListenForNotes(m.input), flash)

	case inputClosedMsg:
		debug.Log("device", "input %q closed", msg.id)

	case DeviceEventMsg:
		event := midi.DeviceEvent(msg)
		var cmds []tea.Cmd
		switch event.Type {
		case midi.DeviceConnected:
			m.input = event.Input
			m.status = "connected " + event.ID
			cmds = append(cmds, ListenForNotes(event.Input))
		case midi.DeviceDisconnected:
			if m.input != nil && m.input.ID() == event.ID {
				m.input = nil
				m.Analyzer.ReleaseHardware()
			}
			m.status = "disconnected " + event.ID
		}
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
		return m, tea.Batch(cmds...)

	case devicesClosedMsg:
		m.input = nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flashing = false
		}
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if m.dirty && m.Config != nil {
			if err := m.Config.Save(); err != nil {
				debug.Log("config", "save on quit: %v", err)
			}
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Challenge):
		if m.Analyzer.Challenge().Running() {
			m.Analyzer.StopChallenge()
			m.flashing = false
		} else {
			m.Analyzer.StartChallenge()
		}

	case key.Matches(msg, m.keys.Skip):
		m.Analyzer.SkipChallenge()

	case key.Matches(msg, m.keys.Clear):
		m.Analyzer.Clear()

	case key.Matches(msg, m.keys.Octaves):
		opts := m.Analyzer.Options()
		opts.ShowOctaveNames = !opts.ShowOctaveNames
		m.setOptions(opts)

	case key.Matches(msg, m.keys.Labels):
		opts := m.Analyzer.Options()
		opts.ShowNoteLabels = !opts.ShowNoteLabels
		m.setOptions(opts)

	case key.Matches(msg, m.keys.Settings):
		m.settingsOpen = true
		m.status = ""

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.updateKeys(msg)
	case key.Matches(msg, m.keys.Close):
		m.settingsOpen = false
		m.status = ""
	case key.Matches(msg, m.keys.Up):
		m.settings.move(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.settings.move(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.settings.move(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.settings.move(0, 1)
	case key.Matches(msg, m.keys.Toggle):
		opts := m.Analyzer.Options()
		item := m.settings.current()
		if !item.toggle(&opts) {
			m.status = "at least one " + m.settings.rowNoun() + " must stay enabled"
			return m, nil
		}
		m.status = ""
		m.setOptions(opts)
	}
	return m, nil
}

// setOptions applies opts and schedules a config save
func (m *Model) setOptions(opts analyzer.Options) {
	m.Analyzer.SetOptions(opts)
	if m.Config == nil {
		return
	}
	m.Config.SetOptions(opts)
	m.dirty = true
	snapshot := m.Config.Clone()
	m.save(func() {
		if err := snapshot.Save(); err != nil {
			debug.Log("config", "save: %v", err)
		}
	})
}

func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y, inside := m.keyboardPoint(msg.X, msg.Y)

	var solved bool
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && inside {
			solved = m.Analyzer.PointerDown(x, y)
		}
	case tea.MouseActionMotion:
		if inside {
			solved = m.Analyzer.PointerMove(x, y)
		} else {
			solved = m.Analyzer.PointerLeave()
		}
	case tea.MouseActionRelease:
		if inside {
			solved = m.Analyzer.PointerUp()
		} else {
			solved = m.Analyzer.PointerLeave()
		}
	}
	flash := m.flashIf(solved)
	return m, flash
}

// keyboardPoint converts a screen cell to keyboard coordinates at the
// cell's centre, matching how the keyboard is drawn
func (m Model) keyboardPoint(col, row int) (x, y float64, inside bool) {
	l := m.Analyzer.Layout()
	x = float64(col) + 0.5
	y = float64(row-keyboardTop) + 0.5
	inside = y >= 0 && y < keyboardRows && x >= l.Margin && x < l.Width()-l.Margin
	return x, y, inside
}

// flashIf shows "Correct!" for a second after a solved target
func (m *Model) flashIf(solved bool) tea.Cmd {
	if !solved {
		return nil
	}
	m.flashSeq++
	m.flashing = true
	seq := m.flashSeq
	return tea.Tick(flashFor, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}
