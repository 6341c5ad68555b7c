package curve

import "time"

// Viewport limits and behavior tuning.
const (
	MinViewDuration     = 2000  // ms, hard zoom-in limit
	DefaultViewDuration = 10000 // ms, window after loading new media

	zoomStep = 1.3

	// Auto-scroll keeps the playhead inside this fraction band.
	followLow  = 0.2
	followHigh = 0.8

	// How long after the last viewport interaction auto-scroll resumes.
	followResumeDelay = 3 * time.Second
)

// Viewport is the visible time window of the curve.
type Viewport struct {
	Start    int // ms
	Duration int // ms
	Total    int // ms, 0 when no media is loaded
}

// NewViewport returns a viewport showing the head of the media.
func NewViewport(total int) Viewport {
	v := Viewport{Start: 0, Duration: DefaultViewDuration, Total: total}
	v.clamp()
	return v
}

// End returns the end of the window in ms. The boundary is inclusive: a
// sample exactly at End is still visible (and hit-testable).
func (v Viewport) End() int {
	return v.Start + v.Duration
}

// Contains reports whether a timestamp is visible.
func (v Viewport) Contains(at int) bool {
	return at >= v.Start && at <= v.End()
}

func (v *Viewport) clamp() {
	if v.Duration < MinViewDuration {
		v.Duration = MinViewDuration
	}
	if v.Total > 0 && v.Duration > v.Total {
		v.Duration = v.Total
		if v.Duration < MinViewDuration {
			v.Duration = MinViewDuration
		}
	}
	if v.Total > 0 && v.Start+v.Duration > v.Total {
		v.Start = v.Total - v.Duration
	}
	if v.Start < 0 {
		v.Start = 0
	}
}

// ViewportController owns the visible window plus the interaction state that
// gates auto-scroll. All mutations clamp to the valid range.
type ViewportController struct {
	View Viewport

	panning       bool
	lastUserInput time.Time

	now func() time.Time // swapped out in tests
}

// NewViewportController creates a controller for the given media length.
func NewViewportController(total int) *ViewportController {
	return &ViewportController{
		View: NewViewport(total),
		now:  time.Now,
	}
}

// SetTotal updates the media length. A changed total means new media was
// loaded, so the window resets to the head.
func (vc *ViewportController) SetTotal(total int) {
	if total == vc.View.Total {
		return
	}
	vc.View = NewViewport(total)
}

// Zoom resizes the window by one step, anchored so the time under the
// cursor stays under the cursor. cursorRatio is the cursor's horizontal
// position as a fraction of the canvas.
func (vc *ViewportController) Zoom(cursorRatio float64, in bool) {
	if cursorRatio < 0 {
		cursorRatio = 0
	} else if cursorRatio > 1 {
		cursorRatio = 1
	}

	v := &vc.View
	cursorTime := float64(v.Start) + cursorRatio*float64(v.Duration)

	if in {
		v.Duration = int(float64(v.Duration) / zoomStep)
	} else {
		v.Duration = int(float64(v.Duration) * zoomStep)
	}
	if v.Duration < MinViewDuration {
		v.Duration = MinViewDuration
	}
	if v.Total > 0 && v.Duration > v.Total {
		v.Duration = v.Total
	}

	v.Start = int(cursorTime - cursorRatio*float64(v.Duration))
	v.clamp()

	vc.touch()
}

// PanStart begins a drag-pan and suppresses auto-scroll.
func (vc *ViewportController) PanStart() {
	vc.panning = true
	vc.touch()
}

// PanMove shifts the window by a fraction of its own width, so panning
// speed scales with zoom level.
func (vc *ViewportController) PanMove(ratio float64) {
	v := &vc.View
	v.Start += int(ratio * float64(v.Duration))
	v.clamp()
	vc.touch()
}

// PanEnd finishes a drag-pan. Auto-scroll resumes after the inactivity
// delay, not immediately.
func (vc *ViewportController) PanEnd() {
	vc.panning = false
	vc.touch()
}

// Suppressed reports whether auto-scroll is currently held off by user
// interaction.
func (vc *ViewportController) Suppressed() bool {
	if vc.panning {
		return true
	}
	return vc.now().Sub(vc.lastUserInput) < followResumeDelay
}

// FollowPlayhead recenters the window on the playhead when it drifts
// outside the middle band. Only active while playing and not suppressed.
// Returns true when the window moved.
func (vc *ViewportController) FollowPlayhead(playheadMs int, playing bool) bool {
	if !playing || vc.Suppressed() {
		return false
	}
	v := &vc.View
	frac := float64(playheadMs-v.Start) / float64(v.Duration)
	if frac >= followLow && frac <= followHigh {
		return false
	}
	v.Start = playheadMs - v.Duration/2
	v.clamp()
	return true
}

func (vc *ViewportController) touch() {
	vc.lastUserInput = vc.now()
}
