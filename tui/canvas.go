package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"curvelab/curve"
	"curvelab/theme"
)

// Frame is everything the canvas needs for one render. It is a plain
// snapshot so the renderer stays a pure function of its input.
type Frame struct {
	Curve         curve.Curve
	View          curve.Viewport
	Canvas        curve.Canvas
	Selected      func(int) bool
	Hover         int
	Preview       *curve.DragPreview
	Stroke        []curve.Sample
	Rect          *curve.Rect
	Waypoints     []curve.Waypoint
	SmoothPreview curve.Curve
	PlayheadMs    int
}

type cell struct {
	r     rune
	color lipgloss.Color
}

// RenderCanvas draws the visible window of the curve into a block of
// styled text, one terminal cell per canvas unit.
func RenderCanvas(f Frame, th *theme.Theme) string {
	w := int(f.Canvas.Width)
	h := int(f.Canvas.Height)
	if w <= 0 || h <= 0 {
		return ""
	}

	grid := make([][]cell, h)
	for y := range grid {
		grid[y] = make([]cell, w)
		for x := range grid[y] {
			grid[y][x] = cell{r: th.Symbols.EmptyCell}
		}
	}

	set := func(x, y int, r rune, color lipgloss.Color) {
		if x < 0 || x >= w || y < 0 || y >= h {
			return
		}
		grid[y][x] = cell{r: r, color: color}
	}

	// Connecting line, column by column. The smoothing preview replaces
	// the committed curve while it is active.
	plot := f.Curve
	lineColor := th.FG()
	if f.SmoothPreview != nil {
		plot = f.SmoothPreview
		lineColor = th.Preview()
	}
	drawSegments(f, plot, lineColor, th.Symbols.Segment, set)

	// Playhead column under everything but the samples
	px := int(math.Round(f.Canvas.TimeToX(f.PlayheadMs, f.View)))
	if px >= 0 && px < w {
		for y := 0; y < h; y++ {
			if grid[y][px].r == th.Symbols.EmptyCell {
				set(px, y, th.Symbols.Playhead, th.Cursor())
			}
		}
	}

	// Rubber-band rectangle outline
	if f.Rect != nil {
		drawRect(*f.Rect, th.Symbols.Stroke, th.Muted(), set)
	}

	// Free-hand stroke in flight
	for _, p := range f.Stroke {
		x := int(math.Round(f.Canvas.TimeToX(p.At, f.View)))
		y := int(math.Round(f.Canvas.PosToY(float64(p.Pos))))
		set(x, y, th.Symbols.Stroke, th.Accent())
	}

	// Generator waypoints
	for _, wp := range f.Waypoints {
		x := int(math.Round(f.Canvas.TimeToX(wp.At, f.View)))
		y := int(math.Round(f.Canvas.PosToY(float64(wp.Pos))))
		set(x, y, th.Symbols.Waypoint, th.Warning())
	}

	// Samples last so they win over everything
	for i, s := range plot {
		if !f.View.Contains(s.At) {
			continue
		}
		at, pos := s.At, s.Pos
		glyph := th.Symbols.Point
		color := th.FG()
		switch {
		case f.Preview != nil && i == f.Preview.Index:
			at, pos = f.Preview.At, f.Preview.Pos
			glyph = th.Symbols.Preview
			color = th.Preview()
		case f.Selected != nil && f.Selected(i):
			glyph = th.Symbols.Selected
			color = th.Selected()
		case i == f.Hover:
			glyph = th.Symbols.Hovered
			color = th.Accent()
		}
		x := int(math.Round(f.Canvas.TimeToX(at, f.View)))
		y := int(math.Round(f.Canvas.PosToY(float64(pos))))
		set(x, y, glyph, color)
	}

	var out strings.Builder
	for y, row := range grid {
		if y > 0 {
			out.WriteByte('\n')
		}
		for _, c := range row {
			if c.color == "" || c.r == th.Symbols.EmptyCell {
				out.WriteRune(c.r)
				continue
			}
			out.WriteString(lipgloss.NewStyle().Foreground(c.color).Render(string(c.r)))
		}
	}
	return out.String()
}

func drawSegments(f Frame, plot curve.Curve, color lipgloss.Color, glyph rune, set func(int, int, rune, lipgloss.Color)) {
	if len(plot) < 2 {
		return
	}
	w := int(f.Canvas.Width)
	for x := 0; x < w; x++ {
		at := f.Canvas.XToTime(float64(x), f.View)
		pos, ok := interpolate(plot, at)
		if !ok {
			continue
		}
		y := int(math.Round(f.Canvas.PosToY(pos)))
		set(x, y, glyph, color)
	}
}

// interpolate returns the linear position of the curve at a timestamp,
// false outside the curve's time range.
func interpolate(c curve.Curve, at int) (float64, bool) {
	if len(c) == 0 || at < c[0].At || at > c[len(c)-1].At {
		return 0, false
	}
	for i := 1; i < len(c); i++ {
		if at > c[i].At {
			continue
		}
		a, b := c[i-1], c[i]
		if b.At == a.At {
			return float64(b.Pos), true
		}
		t := float64(at-a.At) / float64(b.At-a.At)
		return float64(a.Pos) + t*float64(b.Pos-a.Pos), true
	}
	return float64(c[len(c)-1].Pos), true
}

func drawRect(r curve.Rect, glyph rune, color lipgloss.Color, set func(int, int, rune, lipgloss.Color)) {
	x0 := int(math.Round(math.Min(r.X0, r.X1)))
	x1 := int(math.Round(math.Max(r.X0, r.X1)))
	y0 := int(math.Round(math.Min(r.Y0, r.Y1)))
	y1 := int(math.Round(math.Max(r.Y0, r.Y1)))
	for x := x0; x <= x1; x++ {
		set(x, y0, glyph, color)
		set(x, y1, glyph, color)
	}
	for y := y0; y <= y1; y++ {
		set(x0, y, glyph, color)
		set(x1, y, glyph, color)
	}
}
