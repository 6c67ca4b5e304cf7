package tui

import (
	"chordscope/analyzer"
	"chordscope/chord"
)

// settingItem is one checkbox in the settings pane: a root or a template
type settingItem struct {
	root     int
	template *chord.Template
}

func (it settingItem) label() string {
	if it.template != nil {
		return it.template.Abbrev
	}
	return chord.PitchName(it.root)
}

func (it settingItem) enabled(opts analyzer.Options) bool {
	if it.template != nil {
		return opts.TemplateEnabled(it.template)
	}
	return opts.RootEnabled(it.root)
}

// toggle flips the item; false means the change would leave a set empty
func (it settingItem) toggle(opts *analyzer.Options) bool {
	if it.template != nil {
		return opts.ToggleTemplate(it.template)
	}
	return opts.ToggleRoot(it.root)
}

type settingRow struct {
	title string
	items []settingItem
}

// settings is the grid of challenge checkboxes with a cursor
type settings struct {
	rows     []settingRow
	row, col int
}

func newSettings() settings {
	roots := settingRow{title: "Roots"}
	for pc := 0; pc < chord.TonesPerOctave; pc++ {
		roots.items = append(roots.items, settingItem{root: pc})
	}
	rows := []settingRow{roots}
	for _, group := range []struct {
		title     string
		templates []*chord.Template
	}{
		{"Dyads", chord.Dyads},
		{"Triads", chord.Triads},
		{"Tetrads", chord.Tetrads},
		{"Pentads", chord.Pentads},
	} {
		row := settingRow{title: group.title}
		for _, t := range group.templates {
			row.items = append(row.items, settingItem{template: t})
		}
		rows = append(rows, row)
	}
	return settings{rows: rows}
}

func (s *settings) move(dRow, dCol int) {
	s.row = clamp(s.row+dRow, 0, len(s.rows)-1)
	s.col = clamp(s.col+dCol, 0, len(s.rows[s.row].items)-1)
}

func (s settings) current() settingItem {
	return s.rows[s.row].items[s.col]
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rowNoun names what the current row holds, for messages
func (s settings) rowNoun() string {
	if s.row == 0 {
		return "root"
	}
	return "chord type"
}
