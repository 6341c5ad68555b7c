package curve

import "math"

// Default chrome padding reserved above and below the plot area.
const (
	DefaultPadTop    = 20.0
	DefaultPadBottom = 30.0
)

// Canvas describes the pixel area the curve is projected onto. The top and
// bottom pads are reserved for chrome and never hold samples.
type Canvas struct {
	Width     float64
	Height    float64
	PadTop    float64
	PadBottom float64
}

// NewCanvas returns a canvas with the default chrome padding.
func NewCanvas(width, height float64) Canvas {
	return Canvas{Width: width, Height: height, PadTop: DefaultPadTop, PadBottom: DefaultPadBottom}
}

func (cv Canvas) plotHeight() float64 {
	h := cv.Height - cv.PadTop - cv.PadBottom
	if h <= 0 {
		return 1
	}
	return h
}

// TimeToX projects a timestamp into canvas x for the given window.
func (cv Canvas) TimeToX(at int, v Viewport) float64 {
	return float64(at-v.Start) / float64(v.Duration) * cv.Width
}

// XToTime is the inverse of TimeToX, rounded to whole milliseconds and
// clamped to non-negative time.
func (cv Canvas) XToTime(x float64, v Viewport) int {
	at := float64(v.Start) + x/cv.Width*float64(v.Duration)
	return ClampTime(int(math.Round(at)))
}

// PosToY projects a position (0-100) into canvas y. The axis is inverted:
// position 100 sits at the top of the plot area.
func (cv Canvas) PosToY(pos float64) float64 {
	return cv.PadTop + cv.plotHeight()*(1-pos/100)
}

// YToPos is the inverse of PosToY, clamped to the 0-100 range.
func (cv Canvas) YToPos(y float64) float64 {
	pos := (1 - (y-cv.PadTop)/cv.plotHeight()) * 100
	if pos < 0 {
		return 0
	}
	if pos > 100 {
		return 100
	}
	return pos
}
