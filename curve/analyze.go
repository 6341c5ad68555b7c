package curve

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Analysis thresholds.
const (
	pauseMinMs      = 500   // holding one position longer than this is a pause
	speedMinDelta   = 5     // ignore near-flat segments for speed stats
	histogramBucket = 20    // position units per histogram bucket
	fullStrokeMaxMs = 15000 // slower extreme-to-extreme-to-extreme runs don't count
)

// Report summarizes the mechanical character of a curve: pacing, pauses,
// range usage and stroke speed.
type Report struct {
	Actions    int
	DurationMs int

	SegmentMeanMs float64
	SegmentStdMs  float64
	SegmentMinMs  float64
	SegmentMaxMs  float64

	PauseCount  int
	PauseMeanMs float64
	PauseMaxMs  float64

	LowExtremes  int // samples at position 0
	HighExtremes int // samples at position 100

	FullStrokes      int     // complete 0-100-0 (or 100-0-100) cycles
	FullStrokeMeanMs float64 // mean cycle duration

	UpSpeed    float64 // units/second
	DownSpeed  float64
	SpeedRatio float64 // up/down

	Histogram [5]int // position counts per 20-unit bucket
}

// Analyze computes a Report for a normalized curve.
func Analyze(c Curve) Report {
	r := Report{Actions: len(c), DurationMs: c.Duration()}
	if len(c) < 2 {
		for _, s := range c {
			r.bucket(s.Pos)
		}
		return r
	}

	segments := make([]float64, 0, len(c)-1)
	var pauses []float64
	var upSpeeds, downSpeeds []float64

	for i := 0; i < len(c)-1; i++ {
		a, b := c[i], c[i+1]
		dur := float64(b.At - a.At)
		segments = append(segments, dur)

		if a.Pos == b.Pos && dur > pauseMinMs {
			pauses = append(pauses, dur)
		}

		delta := abs(b.Pos - a.Pos)
		if delta > speedMinDelta && dur > 0 {
			speed := float64(delta) / (dur / 1000)
			if b.Pos > a.Pos {
				upSpeeds = append(upSpeeds, speed)
			} else {
				downSpeeds = append(downSpeeds, speed)
			}
		}
	}

	r.SegmentMeanMs = stat.Mean(segments, nil)
	r.SegmentStdMs = stat.StdDev(segments, nil)
	r.SegmentMinMs = floats.Min(segments)
	r.SegmentMaxMs = floats.Max(segments)

	r.PauseCount = len(pauses)
	if len(pauses) > 0 {
		r.PauseMeanMs = stat.Mean(pauses, nil)
		r.PauseMaxMs = floats.Max(pauses)
	}

	var extremes []Sample
	for _, s := range c {
		if s.Pos == 0 {
			r.LowExtremes++
		} else if s.Pos == 100 {
			r.HighExtremes++
		}
		if s.Pos == 0 || s.Pos == 100 {
			extremes = append(extremes, s)
		}
		r.bucket(s.Pos)
	}
	r.countFullStrokes(extremes)

	if len(upSpeeds) > 0 {
		r.UpSpeed = stat.Mean(upSpeeds, nil)
	}
	if len(downSpeeds) > 0 {
		r.DownSpeed = stat.Mean(downSpeeds, nil)
	}
	if r.DownSpeed > 0 {
		r.SpeedRatio = r.UpSpeed / r.DownSpeed
	}

	return r
}

// countFullStrokes scans consecutive extreme visits for complete cycles:
// three alternating extremes within the time budget. A matched cycle
// consumes its middle extreme, so overlapping cycles are not double
// counted.
func (r *Report) countFullStrokes(extremes []Sample) {
	var durations []float64
	for i := 0; i+2 < len(extremes); {
		a, b, c := extremes[i], extremes[i+1], extremes[i+2]
		total := c.At - a.At
		if total < fullStrokeMaxMs && a.Pos != b.Pos && b.Pos != c.Pos {
			durations = append(durations, float64(total))
			i += 2
		} else {
			i++
		}
	}
	r.FullStrokes = len(durations)
	if len(durations) > 0 {
		r.FullStrokeMeanMs = stat.Mean(durations, nil)
	}
}

func (r *Report) bucket(pos int) {
	i := pos / histogramBucket
	if i > 4 {
		i = 4
	}
	r.Histogram[i]++
}

// String renders the report as a plain text block.
func (r Report) String() string {
	var out strings.Builder

	fmt.Fprintf(&out, "Actions: %d  Duration: %.1f min\n", r.Actions, float64(r.DurationMs)/60000)
	fmt.Fprintf(&out, "Segments: mean %.0fms  std %.0fms  min %.0fms  max %.0fms\n",
		r.SegmentMeanMs, r.SegmentStdMs, r.SegmentMinMs, r.SegmentMaxMs)
	fmt.Fprintf(&out, "Pauses (>%dms): %d", pauseMinMs, r.PauseCount)
	if r.PauseCount > 0 {
		fmt.Fprintf(&out, "  mean %.0fms  max %.0fms", r.PauseMeanMs, r.PauseMaxMs)
	}
	out.WriteString("\n")
	fmt.Fprintf(&out, "Extremes: %d at 0, %d at 100\n", r.LowExtremes, r.HighExtremes)
	fmt.Fprintf(&out, "Full strokes: %d", r.FullStrokes)
	if r.FullStrokes > 0 {
		fmt.Fprintf(&out, "  mean %.1fs", r.FullStrokeMeanMs/1000)
	}
	out.WriteString("\n")
	if r.SpeedRatio > 0 {
		fmt.Fprintf(&out, "Speed: up %.1f u/s  down %.1f u/s  ratio %.2fx\n", r.UpSpeed, r.DownSpeed, r.SpeedRatio)
	}

	labels := [5]string{"0-20", "21-40", "41-60", "61-80", "81-100"}
	out.WriteString("Position distribution:\n")
	for i, label := range labels {
		fmt.Fprintf(&out, "  %-6s %d\n", label, r.Histogram[i])
	}

	return out.String()
}
