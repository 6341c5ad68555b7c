package curve

// StrokeMinGap is the minimum time between collected stroke points, in ms.
// Subsampling by time bounds point density regardless of how fast the
// terminal reports pointer motion.
const StrokeMinGap = 50

// StrokeCollector captures a free-hand stroke as raw (time, position)
// points. Points are thinned while collecting and thinned again on finish.
type StrokeCollector struct {
	points []Sample
	active bool
}

// Active reports whether a stroke is being collected.
func (sc *StrokeCollector) Active() bool {
	return sc.active
}

// Points returns the points collected so far, for live preview rendering.
func (sc *StrokeCollector) Points() []Sample {
	return sc.points
}

// Begin starts a new stroke at the given point.
func (sc *StrokeCollector) Begin(at, pos int) {
	sc.active = true
	sc.points = []Sample{{At: ClampTime(at), Pos: ClampPos(pos)}}
}

// Extend appends a point if it is at least StrokeMinGap away in time from
// the last collected point.
func (sc *StrokeCollector) Extend(at, pos int) {
	if !sc.active || len(sc.points) == 0 {
		return
	}
	last := sc.points[len(sc.points)-1]
	if abs(at-last.At) < StrokeMinGap {
		return
	}
	sc.points = append(sc.points, Sample{At: ClampTime(at), Pos: ClampPos(pos)})
}

// Finish ends the stroke and returns the thinned points, or nil when the
// stroke is empty or a single point (too short to mean anything). The
// returned points are re-walked with the same minimum gap, always keeping
// the first and last point.
func (sc *StrokeCollector) Finish() []Sample {
	pts := sc.points
	sc.points = nil
	sc.active = false

	if len(pts) < 2 {
		return nil
	}

	kept := []Sample{pts[0]}
	for _, p := range pts[1 : len(pts)-1] {
		if p.At-kept[len(kept)-1].At >= StrokeMinGap {
			kept = append(kept, p)
		}
	}
	kept = append(kept, pts[len(pts)-1])
	return kept
}

// Cancel discards the stroke without producing points.
func (sc *StrokeCollector) Cancel() {
	sc.points = nil
	sc.active = false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
