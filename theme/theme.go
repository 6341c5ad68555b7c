package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

// Symbols are the glyphs the canvas renderer draws with.
type Symbols struct {
	Point     rune // ● committed sample
	Selected  rune // ◉ selected sample
	Hovered   rune // ○ sample under the pointer
	Preview   rune // ◎ drag preview / smoothing preview
	Stroke    rune // · free-hand stroke in flight
	Waypoint  rune // ◆ generator control point
	Playhead  rune // │ playhead column
	Segment   rune // ─ connecting line between samples
	EmptyCell rune // space filler
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			Point:     '●',
			Selected:  '◉',
			Hovered:   '○',
			Preview:   '◎',
			Stroke:    '·',
			Waypoint:  '◆',
			Playhead:  '│',
			Segment:   '─',
			EmptyCell: ' ',
		},
	}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleBG       = 0.0
	RoleSurface  = 0.1
	RoleMuted    = 0.2
	RoleFG       = 0.4
	RoleAccent   = 0.5
	RoleCursor   = 0.6
	RoleSelected = 0.7
	RoleWarning  = 0.8
	RolePreview  = 0.9
	RoleSuccess  = 1.0
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

func (t *Theme) Cursor() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleCursor))
}

func (t *Theme) Selected() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSelected))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Preview() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RolePreview))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
