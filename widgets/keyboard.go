package widgets

import (
	"fmt"
	"math"
	"strings"

	"chordscope/chord"
	"chordscope/keyboard"

	"github.com/charmbracelet/lipgloss"
)

// KeyboardStyle tells RenderKeyboard how to paint keys
type KeyboardStyle struct {
	Fill       func(key chord.Key) lipgloss.Color // key background
	Label      func(key chord.Key) string         // optional text on the bottom row of naturals
	LabelColor lipgloss.Color
	Edge       lipgloss.Color // separator between naturals
}

const edgeRune = '▏'

type cell struct {
	r      rune
	fg, bg lipgloss.Color
}

// RenderKeyboard draws l as rows lines of text. Each cell is painted with
// the key under its centre according to l.KeyAt, so what is drawn is what
// a click on that cell hits.
func RenderKeyboard(l keyboard.Layout, rows int, st KeyboardStyle) string {
	cols := int(math.Ceil(l.Width() - 1e-9))
	if cols <= 0 || rows <= 0 {
		return ""
	}

	labels := labelRow(l, cols, st.Label)

	lines := make([]string, rows)
	for row := 0; row < rows; row++ {
		cells := make([]cell, cols)
		for col := 0; col < cols; col++ {
			x := float64(col) + 0.5
			if x < l.Margin || x >= l.Width()-l.Margin {
				cells[col] = cell{r: ' '}
				continue
			}
			key := l.KeyAt(x, float64(row)+0.5)
			c := cell{r: ' ', bg: st.Fill(key)}
			if keyboard.IsNatural(key) {
				if int(math.Floor(l.KeyRect(key).X)) == col {
					c.r, c.fg = edgeRune, st.Edge
				}
				if row == rows-1 && labels[col] != 0 {
					c.r, c.fg = labels[col], st.LabelColor
				}
			}
			cells[col] = c
		}
		lines[row] = renderRuns(cells)
	}
	return strings.Join(lines, "\n")
}

// labelRow places each natural's label centred under it, if it fits
func labelRow(l keyboard.Layout, cols int, label func(chord.Key) string) []rune {
	row := make([]rune, cols)
	if label == nil {
		return row
	}
	for k := l.FirstKey; k <= l.LastKey(); k++ {
		if !keyboard.IsNatural(k) {
			continue
		}
		text := []rune(label(k))
		rect := l.KeyRect(k)
		if len(text) == 0 || len(text) > int(rect.W)-1 {
			continue
		}
		start := int(rect.CenterX()) - len(text)/2
		for i, r := range text {
			if c := start + i; c >= 0 && c < cols {
				row[c] = r
			}
		}
	}
	return row
}

// renderRuns styles consecutive cells sharing colours in one go
func renderRuns(cells []cell) string {
	var out strings.Builder
	for i := 0; i < len(cells); {
		j := i
		var run strings.Builder
		for j < len(cells) && cells[j].fg == cells[i].fg && cells[j].bg == cells[i].bg {
			run.WriteRune(cells[j].r)
			j++
		}
		style := lipgloss.NewStyle()
		if cells[i].bg != "" {
			style = style.Background(cells[i].bg)
		}
		if cells[i].fg != "" {
			style = style.Foreground(cells[i].fg)
		}
		out.WriteString(style.Render(run.String()))
		i = j
	}
	return out.String()
}

// RenderSwatch renders a single colored square
func RenderSwatch(color lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(color).Render("■")
}

// RenderLegendItem renders a single legend item: "■ Name - description"
func RenderLegendItem(color lipgloss.Color, name, desc string) string {
	return fmt.Sprintf("  %s %s - %s", RenderSwatch(color), name, desc)
}
