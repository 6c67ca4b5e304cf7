package theme

import (
	"fmt"

	"chordscope/chord"
	"chordscope/keys"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Settings checkboxes
	Solid rune // ■ enabled
	Empty rune // □ disabled

	Cursor rune // ▶ selected row
	Target rune // ◆ challenge target
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Solid:  '■',
			Empty:  '□',
			Cursor: '▶',
			Target: '◆',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG      = 0.0 // deep purple
	RoleSurface = 0.1 // dark purple
	RoleMuted   = 0.2 // purple-magenta
	RoleFG      = 0.4 // pink-purple (readable)
	RoleAccent  = 0.5 // vivid magenta
	RoleCursor  = 0.6 // rose pink
	RoleActive  = 0.7 // soft red
	RoleWarning = 0.8 // orange
	RoleSuccess = 1.0 // bright yellow
)

// Key faces are fixed greys so the keyboard reads as a piano on any palette
var (
	naturalFace    = lipgloss.Color("#e8e4dc")
	accidentalFace = lipgloss.Color("#1c1a22")
	keyLabel       = lipgloss.Color("#5a5560")
)

// Style helpers

func (t *Theme) BG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleBG))
}

func (t *Theme) FG() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleFG))
}

func (t *Theme) Accent() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleAccent))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Active() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleActive))
}

func (t *Theme) Cursor() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleCursor))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// KeyFace is the unpressed colour of a key
func (t *Theme) KeyFace(natural bool) lipgloss.Color {
	if natural {
		return naturalFace
	}
	return accidentalFace
}

// KeyLabel colours note names printed on naturals
func (t *Theme) KeyLabel() lipgloss.Color {
	return keyLabel
}

// KeyColor picks the fill for a key given how it is held
func (t *Theme) KeyColor(h keys.Highlight, natural bool) lipgloss.Color {
	switch h {
	case keys.HighlightHardware:
		return t.Active()
	case keys.HighlightConfirmed:
		return t.Accent()
	case keys.HighlightPreview:
		return t.Cursor()
	}
	return t.KeyFace(natural)
}

// QualityColor colours chord labels by quality
func (t *Theme) QualityColor(q chord.Quality) lipgloss.Color {
	switch q {
	case chord.QualityMajor:
		return t.Success()
	case chord.QualityMinor:
		return t.Accent()
	case chord.QualityDiminished:
		return t.Warning()
	case chord.QualityAugmented:
		return t.Active()
	case chord.QualitySuspended:
		return t.Cursor()
	}
	return t.FG()
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
