package tui

import "github.com/charmbracelet/bubbles/key"

func Key(help string, keyboardKey ...string) key.Binding {
	return key.NewBinding(key.WithKeys(keyboardKey...), key.WithHelp(keyboardKey[0], help))
}

type keyMap struct {
	Challenge key.Binding
	Skip      key.Binding
	Clear     key.Binding
	Octaves   key.Binding
	Labels    key.Binding
	Settings  key.Binding
	Help      key.Binding
	Quit      key.Binding

	// settings pane
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Toggle key.Binding
	Close  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Challenge: Key("start/stop challenge", "c"),
		Skip:      Key("skip target", "n", "tab"),
		Clear:     Key("release all keys", "x", "backspace"),
		Octaves:   Key("octave names", "o"),
		Labels:    Key("key labels", "l"),
		Settings:  Key("challenge settings", "s"),
		Help:      Key("more keys", "?"),
		Quit:      Key("quit", "q", "ctrl+c"),

		Up:     Key("up", "up", "k"),
		Down:   Key("down", "down", "j"),
		Left:   Key("left", "left", "h"),
		Right:  Key("right", "right", "l"),
		Toggle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
		Close:  Key("close", "esc", "s"),
	}
}

// settingsKeys is the key map shown while the settings pane is open
type settingsKeys struct {
	keyMap
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Challenge, k.Skip, k.Clear, k.Settings, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Challenge, k.Skip, k.Settings},
		{k.Clear, k.Octaves, k.Labels},
		{k.Help, k.Quit},
	}
}

func (k settingsKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Toggle, k.Close}
}

func (k settingsKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
