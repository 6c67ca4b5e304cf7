package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"chordscope/analyzer"
	"chordscope/chord"
	"chordscope/debug"
	"chordscope/keyboard"
)

// InputConfig selects the MIDI input
type InputConfig struct {
	PortName    string `json:"portName,omitempty"` // substring match; empty = most recent port
	AutoConnect bool   `json:"autoConnect"`
}

// KeyboardConfig stores the on-screen keyboard range and labels
type KeyboardConfig struct {
	FirstKey        int  `json:"firstKey"`
	KeyCount        int  `json:"keyCount"`
	ShowOctaveNames bool `json:"showOctaveNames"`
	ShowNoteLabels  bool `json:"showNoteLabels"`
}

// ChallengeConfig stores which targets the challenge may pick
type ChallengeConfig struct {
	EnabledRoots     []int    `json:"enabledRoots"`
	EnabledTemplates []string `json:"enabledTemplates"` // template abbreviations
	Seed             int64    `json:"seed,omitempty"`   // 0 = seed from the clock
}

// ServerConfig stores defaults for the HTTP server
type ServerConfig struct {
	Addr           string   `json:"addr,omitempty"`
	AllowedOrigins []string `json:"allowedOrigins,omitempty"` // CORS; empty allows any origin
}

// Config is the main configuration structure
type Config struct {
	Input     InputConfig     `json:"input"`
	Keyboard  KeyboardConfig  `json:"keyboard"`
	Challenge ChallengeConfig `json:"challenge"`
	Server    ServerConfig    `json:"server,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	var templates []string
	for _, t := range chord.DefaultChallengeTemplates() {
		templates = append(templates, t.Abbrev)
	}
	roots := make([]int, chord.TonesPerOctave)
	for i := range roots {
		roots[i] = i
	}
	return &Config{
		Input: InputConfig{
			AutoConnect: true,
		},
		Keyboard: KeyboardConfig{
			FirstKey:        21, // A0
			KeyCount:        88,
			ShowOctaveNames: true,
		},
		Challenge: ChallengeConfig{
			EnabledRoots:     roots,
			EnabledTemplates: templates,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "chordscope"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found.
// Fields missing from the file keep their defaults.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	debug.Log("config", "loaded %s", path)
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	debug.Log("config", "saved %s", path)
	return nil
}

// Layout builds the keyboard layout for the configured range. Sizes are
// placeholders until the front end fits it to the screen.
func (c *Config) Layout() keyboard.Layout {
	def := keyboard.DefaultLayout()
	first := c.Keyboard.FirstKey
	if first < 0 || first >= chord.NumKeys {
		first = int(def.FirstKey)
	}
	count := c.Keyboard.KeyCount
	if count <= 0 {
		count = def.KeyCount
	}
	return keyboard.NewLayout(chord.Key(first), count, def.NaturalWidth, def.NaturalHeight, def.Margin)
}

// Options converts the stored toggles to analyzer options. Unknown
// template abbreviations and out of range roots are dropped.
func (c *Config) Options() analyzer.Options {
	opts := analyzer.Options{
		ShowOctaveNames: c.Keyboard.ShowOctaveNames,
		ShowNoteLabels:  c.Keyboard.ShowNoteLabels,
	}
	for _, r := range c.Challenge.EnabledRoots {
		if r >= 0 && r < chord.TonesPerOctave && !slices.Contains(opts.EnabledRoots, r) {
			opts.EnabledRoots = append(opts.EnabledRoots, r)
		}
	}
	for _, abbrev := range c.Challenge.EnabledTemplates {
		t, ok := chord.Lookup(abbrev)
		if !ok {
			debug.Log("config", "unknown template %q", abbrev)
			continue
		}
		if !slices.Contains(opts.EnabledTemplates, t) {
			opts.EnabledTemplates = append(opts.EnabledTemplates, t)
		}
	}
	return opts
}

// SetOptions stores analyzer options back into the config
func (c *Config) SetOptions(opts analyzer.Options) {
	c.Keyboard.ShowOctaveNames = opts.ShowOctaveNames
	c.Keyboard.ShowNoteLabels = opts.ShowNoteLabels
	c.Challenge.EnabledRoots = slices.Clone(opts.EnabledRoots)
	abbrevs := make([]string, 0, len(opts.EnabledTemplates))
	for _, t := range opts.EnabledTemplates {
		abbrevs = append(abbrevs, t.Abbrev)
	}
	c.Challenge.EnabledTemplates = abbrevs
}

// Clone returns a deep copy, safe to save from another goroutine
func (c *Config) Clone() *Config {
	cp := *c
	cp.Challenge.EnabledRoots = slices.Clone(c.Challenge.EnabledRoots)
	cp.Challenge.EnabledTemplates = slices.Clone(c.Challenge.EnabledTemplates)
	cp.Server.AllowedOrigins = slices.Clone(c.Server.AllowedOrigins)
	return &cp
}
