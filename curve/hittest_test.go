package curve

import "testing"

func hitFixture() (Curve, Viewport, Canvas) {
	c := Curve{{0, 0}, {1000, 50}, {2000, 100}, {50000, 50}}
	v := Viewport{Start: 0, Duration: 10000, Total: 60000}
	return c, v, testCanvas()
}

func TestHitTestPointExact(t *testing.T) {
	c, v, cv := hitFixture()

	x := cv.TimeToX(1000, v)
	y := cv.PosToY(50)

	hit, ok := HitTestPoint(x, y, c, v, cv, DefaultHitRadius)
	if !ok {
		t.Fatal("expected a hit at the projected sample pixel")
	}
	if hit.Index != 1 {
		t.Errorf("hit index = %d, want 1", hit.Index)
	}
	if hit.Distance > 0.001 {
		t.Errorf("hit distance = %v, want ~0", hit.Distance)
	}
}

func TestHitTestPointMiss(t *testing.T) {
	c, v, cv := hitFixture()

	x := cv.TimeToX(1000, v) + DefaultHitRadius*3
	y := cv.PosToY(50)
	if _, ok := HitTestPoint(x, y, c, v, cv, DefaultHitRadius); ok {
		t.Error("expected no hit far from every sample")
	}
}

func TestHitTestIgnoresOffscreenSamples(t *testing.T) {
	c, v, cv := hitFixture()

	// Sample 3 sits at 50000ms, outside the 0-10000 window. Projecting it
	// anyway would land offscreen; probing there must not hit.
	x := cv.TimeToX(50000, v)
	y := cv.PosToY(50)
	if _, ok := HitTestPoint(x, y, c, v, cv, DefaultHitRadius); ok {
		t.Error("hit an invisible sample")
	}
}

func TestHitTestTieBreakLowestIndex(t *testing.T) {
	// Two samples projecting to the same pixel distance from the probe.
	c := Curve{{1000, 40}, {1000, 60}}
	v := Viewport{Start: 0, Duration: 10000, Total: 10000}
	cv := testCanvas()

	x := cv.TimeToX(1000, v)
	y := (cv.PosToY(40) + cv.PosToY(60)) / 2

	hit, ok := HitTestPoint(x, y, c, v, cv, DefaultHitRadius)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Index != 0 {
		t.Errorf("tie break index = %d, want 0", hit.Index)
	}
}

func TestPointsInRect(t *testing.T) {
	c, v, cv := hitFixture()

	// Rectangle covering the whole visible canvas, corners reversed on
	// purpose: normalization must handle any corner order.
	r := Rect{X0: 800, Y0: 400, X1: 0, Y1: 0}
	got := PointsInRect(r, c, v, cv)

	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("PointsInRect = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("PointsInRect = %v, want %v", got, want)
		}
	}
}

func TestPointsInRectPartial(t *testing.T) {
	c, v, cv := hitFixture()

	// A tight box around sample 1 only.
	x := cv.TimeToX(1000, v)
	y := cv.PosToY(50)
	r := Rect{X0: x - 2, Y0: y - 2, X1: x + 2, Y1: y + 2}

	got := PointsInRect(r, c, v, cv)
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("PointsInRect = %v, want [1]", got)
	}
}
