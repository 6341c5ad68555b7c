package curve

import (
	"testing"
	"time"
)

func newTestController(total int) (*ViewportController, *time.Time) {
	vc := NewViewportController(total)
	now := time.Unix(1000, 0)
	vc.now = func() time.Time { return now }
	return vc, &now
}

func TestZoomAnchorsCursorTime(t *testing.T) {
	vc, _ := newTestController(60000)
	vc.View = Viewport{Start: 10000, Duration: 10000, Total: 60000}

	ratio := 0.25
	before := float64(vc.View.Start) + ratio*float64(vc.View.Duration)

	vc.Zoom(ratio, true)

	after := float64(vc.View.Start) + ratio*float64(vc.View.Duration)
	if diff := before - after; diff > 2 || diff < -2 {
		t.Errorf("cursor time drifted on zoom: before %v after %v", before, after)
	}
	if vc.View.Duration >= 10000 {
		t.Errorf("zoom in did not shrink window: %d", vc.View.Duration)
	}
}

func TestZoomClampsToMinDuration(t *testing.T) {
	vc, _ := newTestController(60000)
	for i := 0; i < 50; i++ {
		vc.Zoom(0.5, true)
	}
	if vc.View.Duration != MinViewDuration {
		t.Errorf("duration = %d, want min %d", vc.View.Duration, MinViewDuration)
	}
}

func TestZoomClampsToTotal(t *testing.T) {
	vc, _ := newTestController(60000)
	for i := 0; i < 50; i++ {
		vc.Zoom(0.5, false)
	}
	if vc.View.Duration != 60000 {
		t.Errorf("duration = %d, want total 60000", vc.View.Duration)
	}
	if vc.View.Start != 0 {
		t.Errorf("start = %d, want 0", vc.View.Start)
	}
}

func TestPanClampsToRange(t *testing.T) {
	vc, _ := newTestController(60000)
	vc.PanStart()
	vc.PanMove(-10) // way past the left edge
	if vc.View.Start != 0 {
		t.Errorf("start = %d, want 0", vc.View.Start)
	}
	vc.PanMove(1000) // way past the right edge
	if vc.View.Start != 60000-vc.View.Duration {
		t.Errorf("start = %d, want %d", vc.View.Start, 60000-vc.View.Duration)
	}
	vc.PanEnd()
}

func TestPanScalesWithZoom(t *testing.T) {
	vc, _ := newTestController(600000)
	vc.View = Viewport{Start: 100000, Duration: 10000, Total: 600000}
	vc.PanMove(0.5)
	if vc.View.Start != 105000 {
		t.Errorf("start = %d, want 105000", vc.View.Start)
	}
}

func TestFollowPlayheadRecenters(t *testing.T) {
	vc, now := newTestController(600000)
	vc.View = Viewport{Start: 0, Duration: 10000, Total: 600000}
	*now = now.Add(time.Hour) // no recent interaction

	// Inside the comfort band: no movement.
	if vc.FollowPlayhead(5000, true) {
		t.Error("followed playhead inside the band")
	}

	// Past 80% of the window: recenter.
	if !vc.FollowPlayhead(9000, true) {
		t.Fatal("did not follow playhead outside the band")
	}
	if vc.View.Start != 9000-vc.View.Duration/2 {
		t.Errorf("start = %d, want centered at playhead", vc.View.Start)
	}
}

func TestFollowPlayheadOnlyWhilePlaying(t *testing.T) {
	vc, now := newTestController(600000)
	*now = now.Add(time.Hour)
	if vc.FollowPlayhead(9999999, false) {
		t.Error("followed playhead while paused")
	}
}

func TestFollowSuppressedDuringAndAfterPan(t *testing.T) {
	vc, now := newTestController(600000)
	vc.View = Viewport{Start: 0, Duration: 10000, Total: 600000}
	*now = now.Add(time.Hour)

	vc.PanStart()
	if vc.FollowPlayhead(9000, true) {
		t.Error("followed playhead mid-pan")
	}
	vc.PanEnd()

	// Still inside the resume delay.
	*now = now.Add(time.Second)
	if vc.FollowPlayhead(9000, true) {
		t.Error("followed playhead before the resume delay elapsed")
	}

	// After the delay it resumes.
	*now = now.Add(5 * time.Second)
	if !vc.FollowPlayhead(9000, true) {
		t.Error("auto-scroll did not resume after inactivity")
	}
}

func TestSetTotalResetsOnChange(t *testing.T) {
	vc, _ := newTestController(60000)
	vc.View.Start = 30000

	vc.SetTotal(60000) // unchanged: keep window
	if vc.View.Start != 30000 {
		t.Errorf("start = %d, want 30000 when total unchanged", vc.View.Start)
	}

	vc.SetTotal(120000) // new media: reset
	if vc.View.Start != 0 || vc.View.Duration != DefaultViewDuration {
		t.Errorf("viewport = %+v, want reset window", vc.View)
	}
}

func TestContainsBoundariesInclusive(t *testing.T) {
	v := Viewport{Start: 1000, Duration: 5000, Total: 60000}

	for _, at := range []int{1000, 3000, 6000} {
		if !v.Contains(at) {
			t.Errorf("Contains(%d) = false, want true", at)
		}
	}
	for _, at := range []int{999, 6001} {
		if v.Contains(at) {
			t.Errorf("Contains(%d) = true, want false", at)
		}
	}
}

func TestNewViewportShortMedia(t *testing.T) {
	v := NewViewport(5000)
	if v.Duration != 5000 {
		t.Errorf("duration = %d, want clamped to 5000", v.Duration)
	}
}
