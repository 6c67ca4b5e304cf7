package theme

import (
	"strings"
	"testing"

	"chordscope/chord"
	"chordscope/keys"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoColors = `GIMP Palette
Name: mono
Columns: 2
# comment
  0   0   0	black
200 100  50	rust
`

func TestParseGPL(t *testing.T) {
	p, err := ParseGPL(strings.NewReader(twoColors), "mono.gpl")
	require.NoError(t, err)
	assert.Equal(t, "mono", p.Name)
	assert.Equal(t, []RGB{{0, 0, 0}, {200, 100, 50}}, p.Colors)

	_, err = ParseGPL(strings.NewReader("GIMP Palette\nName: empty\n"), "empty.gpl")
	assert.Error(t, err)
}

func TestLookupInterpolates(t *testing.T) {
	p, err := ParseGPL(strings.NewReader(twoColors), "mono.gpl")
	require.NoError(t, err)

	assert.Equal(t, RGB{0, 0, 0}, p.Lookup(-1))
	assert.Equal(t, RGB{100, 50, 25}, p.Lookup(0.5))
	assert.Equal(t, RGB{200, 100, 50}, p.Lookup(2))
}

func TestBuiltin(t *testing.T) {
	p := Default()
	assert.Equal(t, "plasma", p.Name)
	assert.Len(t, p.Colors, 11)

	_, err := Builtin("nope")
	assert.Error(t, err)
}

func TestKeyColors(t *testing.T) {
	th := New(Default())

	assert.Equal(t, th.KeyFace(true), th.KeyColor(keys.HighlightNone, true))
	assert.Equal(t, th.KeyFace(false), th.KeyColor(keys.HighlightNone, false))
	assert.Equal(t, th.Active(), th.KeyColor(keys.HighlightHardware, false))
	assert.NotEqual(t, th.KeyColor(keys.HighlightConfirmed, true), th.KeyColor(keys.HighlightPreview, true))
	assert.Equal(t, lipgloss.Color("#f0f921"), th.Success())
	assert.Equal(t, th.Success(), th.QualityColor(chord.QualityMajor))
	assert.Equal(t, th.FG(), th.QualityColor(chord.QualityPerfect))
}
