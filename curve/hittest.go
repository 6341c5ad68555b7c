package curve

import "math"

// DefaultHitRadius is the pick distance for pointer hits, in pixels.
const DefaultHitRadius = 8.0

// Hit identifies the sample nearest to a pointer location.
type Hit struct {
	Index    int
	Distance float64
}

// Rect is a selection rectangle in canvas pixel space. Corners may be given
// in any order.
type Rect struct {
	X0, Y0 float64
	X1, Y1 float64
}

func (r Rect) normalized() (minX, minY, maxX, maxY float64) {
	minX, maxX = r.X0, r.X1
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY = r.Y0, r.Y1
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	return
}

// Width and Height of the normalized rectangle.
func (r Rect) Width() float64  { return math.Abs(r.X1 - r.X0) }
func (r Rect) Height() float64 { return math.Abs(r.Y1 - r.Y0) }

// HitTestPoint finds the closest visible sample within radius pixels of
// (x, y). Samples outside the viewport are invisible and never hit. At
// equal distance the lowest index wins.
func HitTestPoint(x, y float64, c Curve, v Viewport, cv Canvas, radius float64) (Hit, bool) {
	best := Hit{Index: -1, Distance: math.Inf(1)}
	for i, s := range c {
		if !v.Contains(s.At) {
			continue
		}
		dx := cv.TimeToX(s.At, v) - x
		dy := cv.PosToY(float64(s.Pos)) - y
		d := math.Hypot(dx, dy)
		if d <= radius && d < best.Distance {
			best = Hit{Index: i, Distance: d}
		}
	}
	if best.Index < 0 {
		return Hit{}, false
	}
	return best, true
}

// PointsInRect returns the indices of all visible samples whose projection
// falls inside the rectangle, ascending.
func PointsInRect(r Rect, c Curve, v Viewport, cv Canvas) []int {
	minX, minY, maxX, maxY := r.normalized()
	var out []int
	for i, s := range c {
		if !v.Contains(s.At) {
			continue
		}
		x := cv.TimeToX(s.At, v)
		y := cv.PosToY(float64(s.Pos))
		if x >= minX && x <= maxX && y >= minY && y <= maxY {
			out = append(out, i)
		}
	}
	return out
}
