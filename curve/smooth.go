package curve

import "math"

// Region context: how many samples on each side of the selected range are
// pulled into a region smooth so the splice blends into the untouched rest.
const smoothContext = 2

// SmoothStats reports curve sizes before and after a smoothing pass.
type SmoothStats struct {
	OriginalCount int
	SmoothedCount int
}

func clampIntensity(intensity int) int {
	if intensity < 0 {
		return 0
	}
	if intensity > 100 {
		return 100
	}
	return intensity
}

// smoothParams maps intensity 0-100 to kernel parameters. Both grow
// monotonically and continuously with intensity: a wider window and a
// flatter gaussian trade fidelity for noise reduction.
func smoothParams(intensity int) (radius int, sigma float64) {
	f := float64(clampIntensity(intensity)) / 100
	radius = 1 + int(math.Round(f*6)) // 1..7 samples each side
	sigma = 0.6 + f*2.4               // 0.6..3.0
	return
}

// gaussianSmooth replaces each position with a gaussian-weighted average of
// its neighborhood. Timestamps are untouched and the sample count is
// preserved. Windows shrink at the ends of the slice, with weights
// renormalized over the samples that exist.
func gaussianSmooth(c Curve, radius int, sigma float64) Curve {
	if len(c) < 3 {
		return c.Clone()
	}

	weights := make([]float64, radius+1)
	for d := 0; d <= radius; d++ {
		weights[d] = math.Exp(-float64(d*d) / (2 * sigma * sigma))
	}

	out := make(Curve, len(c))
	for i, s := range c {
		var sum, wsum float64
		for d := -radius; d <= radius; d++ {
			j := i + d
			if j < 0 || j >= len(c) {
				continue
			}
			w := weights[abs(d)]
			sum += w * float64(c[j].Pos)
			wsum += w
		}
		out[i] = Sample{At: s.At, Pos: ClampPos(int(math.Round(sum / wsum)))}
	}
	return out
}

// SmoothCurve produces a smoothed candidate for the whole curve, or for the
// selected region when the selection is one contiguous index run. A
// non-contiguous selection falls back to whole-curve smoothing by policy.
func SmoothCurve(c Curve, intensity int, sel Selection) (Curve, SmoothStats) {
	radius, sigma := smoothParams(intensity)

	lo, hi, contiguous := sel.ContiguousRange()
	if !contiguous || lo < 0 || hi >= len(c) {
		out := gaussianSmooth(c, radius, sigma)
		return out, SmoothStats{OriginalCount: len(c), SmoothedCount: len(out)}
	}

	// Widen the region by a small context buffer so the smoothed run
	// blends into the untouched head and tail.
	lo -= smoothContext
	if lo < 0 {
		lo = 0
	}
	hi += smoothContext
	if hi >= len(c) {
		hi = len(c) - 1
	}

	region := gaussianSmooth(c[lo:hi+1].Clone(), radius, sigma)

	out := make(Curve, 0, len(c))
	out = append(out, c[:lo]...)
	out = append(out, region...)
	out = append(out, c[hi+1:]...)
	return out, SmoothStats{OriginalCount: len(c), SmoothedCount: len(out)}
}

// Smoother holds an uncommitted smoothing preview. The live curve is never
// touched until the preview is explicitly committed.
type Smoother struct {
	preview   Curve
	stats     SmoothStats
	intensity int
	active    bool
}

// Active reports whether a preview exists.
func (sm *Smoother) Active() bool { return sm.active }

// Preview returns the current preview curve (nil when inactive).
func (sm *Smoother) Preview() Curve {
	if !sm.active {
		return nil
	}
	return sm.preview
}

// Stats returns the counts for the current preview.
func (sm *Smoother) Stats() SmoothStats { return sm.stats }

// Intensity returns the intensity of the current preview.
func (sm *Smoother) Intensity() int { return sm.intensity }

// Regenerate recomputes the preview from the live curve at the given
// intensity.
func (sm *Smoother) Regenerate(c Curve, intensity int, sel Selection) {
	sm.preview, sm.stats = SmoothCurve(c, intensity, sel)
	sm.intensity = intensity
	sm.active = true
}

// Take returns the preview for committing and clears the smoother.
func (sm *Smoother) Take() (Curve, bool) {
	if !sm.active {
		return nil, false
	}
	p := sm.preview
	sm.Cancel()
	return p, true
}

// Cancel drops the preview without touching the live curve.
func (sm *Smoother) Cancel() {
	sm.preview = nil
	sm.stats = SmoothStats{}
	sm.active = false
}
