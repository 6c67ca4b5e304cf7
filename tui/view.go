package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/hako/durafmt"

	"chordscope/challenge"
	"chordscope/chord"
	"chordscope/keyboard"
	"chordscope/keys"
	"chordscope/widgets"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	fgStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())

	device := dimStyle.Render("no MIDI input")
	if m.input != nil {
		device = fgStyle.Render("● " + m.input.ID())
	}
	header := headerStyle.Render("chordscope") + "  " + device

	state := m.Analyzer.State()
	opts := m.Analyzer.Options()

	var out strings.Builder
	out.WriteString(header)
	out.WriteString("\n\n") // keyboard starts at keyboardTop
	out.WriteString(m.renderKeyboard(opts.ShowNoteLabels, opts.ShowOctaveNames))
	out.WriteString("\n")
	out.WriteString(m.renderLegend())
	out.WriteString("\n\n")

	out.WriteString(dimStyle.Render("Notes   "))
	out.WriteString(fgStyle.Render(state.NotesLabel))
	out.WriteString("\n")
	out.WriteString(dimStyle.Render("Chords  "))
	out.WriteString(m.renderChords(state.Matches))
	out.WriteString("\n\n")

	out.WriteString(m.renderChallenge())
	out.WriteString("\n")

	if m.settingsOpen {
		out.WriteString("\n")
		out.WriteString(m.renderSettings())
		out.WriteString("\n")
	}

	if m.status != "" {
		out.WriteString("\n")
		out.WriteString(lipgloss.NewStyle().Foreground(m.Theme.Warning()).Render(m.status))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	if m.settingsOpen {
		out.WriteString(m.help.View(settingsKeys{m.keys}))
	} else {
		out.WriteString(m.help.View(m.keys))
	}

	return out.String()
}

func (m Model) renderKeyboard(showLabels, withOctave bool) string {
	reg := m.Analyzer.Registry()
	st := widgets.KeyboardStyle{
		Fill: func(k chord.Key) lipgloss.Color {
			return m.Theme.KeyColor(keys.HighlightOf(reg, k), keyboard.IsNatural(k))
		},
		LabelColor: m.Theme.KeyLabel(),
		Edge:       m.Theme.KeyLabel(),
	}
	if showLabels {
		st.Label = func(k chord.Key) string {
			return chord.NoteName(k, withOctave)
		}
	}
	return widgets.RenderKeyboard(m.Analyzer.Layout(), keyboardRows, st)
}

func (m Model) renderLegend() string {
	return widgets.RenderLegendItem(m.Theme.Active(), "MIDI", "held on the keyboard") +
		widgets.RenderLegendItem(m.Theme.Accent(), "Clicked", "added with the mouse") +
		widgets.RenderLegendItem(m.Theme.Cursor(), "Dragging", "released to add")
}

func (m Model) renderChords(matches []chord.Match) string {
	if len(matches) == 0 {
		return ""
	}
	labels := make([]string, len(matches))
	for i, match := range matches {
		style := lipgloss.NewStyle().Foreground(m.Theme.QualityColor(match.Template.Quality))
		labels[i] = style.Render(match.Label())
	}
	return strings.Join(labels, ", ")
}

func (m Model) renderChallenge() string {
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	fgStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())
	targetStyle := lipgloss.NewStyle().Foreground(m.Theme.Success()).Bold(true)

	s, ok := m.Analyzer.Challenge().Session()
	if !ok {
		return dimStyle.Render("Press c to start the chord challenge")
	}

	var line string
	if m.flashing {
		line = targetStyle.Render("Correct!")
	} else {
		line = fmt.Sprintf("%s %s %s",
			fgStyle.Render("Play "+s.Target.Article()),
			targetStyle.Render(string(m.Theme.Symbols.Target)+" "+s.Target.Label),
			dimStyle.Render("next "+s.Next.Label))
	}

	stats := fmt.Sprintf("score %d  avg %s", s.Score, formatAverage(s))
	return line + "   " + dimStyle.Render(stats)
}

func formatAverage(s challenge.Session) string {
	avg := s.Average()
	if avg == 0 {
		return "-"
	}
	return durafmt.Parse(avg.Truncate(10 * time.Millisecond)).LimitFirstN(2).String()
}

func (m Model) renderSettings() string {
	titleStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	onStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())
	offStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	cursorStyle := lipgloss.NewStyle().Foreground(m.Theme.BG()).Background(m.Theme.Cursor())

	opts := m.Analyzer.Options()
	var lines []string
	for r, row := range m.settings.rows {
		var line strings.Builder
		line.WriteString(titleStyle.Render(fmt.Sprintf("%-8s", row.title)))
		for c, item := range row.items {
			box, style := m.Theme.Symbols.Empty, offStyle
			if item.enabled(opts) {
				box, style = m.Theme.Symbols.Solid, onStyle
			}
			if r == m.settings.row && c == m.settings.col {
				style = cursorStyle
			}
			line.WriteString(" ")
			line.WriteString(style.Render(fmt.Sprintf("%c%s", box, item.label())))
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}
