package curve

import (
	"encoding/json"
	"testing"
)

func TestGenerateWaypointsEmpty(t *testing.T) {
	if got := GenerateWaypoints(nil); len(got) != 0 {
		t.Errorf("empty input produced %v", got)
	}
}

func TestGenerateWaypointsSingle(t *testing.T) {
	got := GenerateWaypoints([]Waypoint{{Pos: 50, At: 1000}})
	want := Curve{{1000, 50}}
	if !got.Equal(want) {
		t.Errorf("single waypoint = %v, want %v", got, want)
	}
}

func TestGenerateWaypointsLinear(t *testing.T) {
	got := GenerateWaypoints([]Waypoint{
		{Pos: 0, At: 0, Interp: InterpLinear},
		{Pos: 100, At: 1000, Interp: InterpLinear},
	})

	if got[0] != (Sample{0, 0}) {
		t.Errorf("first sample = %v, want {0 0}", got[0])
	}
	if got[len(got)-1] != (Sample{1000, 100}) {
		t.Errorf("last sample = %v, want {1000 100}", got[len(got)-1])
	}
	for i := 1; i < len(got); i++ {
		if got[i].At <= got[i-1].At {
			t.Fatalf("timestamps not strictly increasing: %v", got)
		}
	}
	// 100 units of travel: one sample per 10 units.
	if len(got) < 10 {
		t.Errorf("got %d samples, want adaptive density >= 10", len(got))
	}
}

func TestGenerateWaypointsStepSegment(t *testing.T) {
	got := GenerateWaypoints([]Waypoint{
		{Pos: 0, At: 0, Interp: InterpStep},
		{Pos: 100, At: 1000, Interp: InterpStep},
	})

	// A step segment holds the start value: nothing between the start
	// sample and the jump at the next waypoint.
	want := Curve{{0, 0}, {1000, 100}}
	if !got.Equal(want) {
		t.Errorf("step segment = %v, want %v", got, want)
	}
}

func TestGenerateWaypointsNearFlatSegment(t *testing.T) {
	got := GenerateWaypoints([]Waypoint{
		{Pos: 50, At: 0, Interp: InterpLinear},
		{Pos: 52, At: 5000, Interp: InterpLinear},
	})
	// Two units of travel: just the endpoints.
	if len(got) != 2 {
		t.Errorf("near-flat segment got %d samples, want 2: %v", len(got), got)
	}
}

func TestEasingShapes(t *testing.T) {
	modes := []Interp{InterpLinear, InterpEaseIn, InterpEaseOut, InterpEaseInOut}
	for _, m := range modes {
		if f := Ease(0, m); f != 0 {
			t.Errorf("%v: f(0) = %v, want 0", m, f)
		}
		if f := Ease(1, m); f != 1 {
			t.Errorf("%v: f(1) = %v, want 1", m, f)
		}
	}

	// easeIn starts slower than linear, easeOut faster.
	if f := Ease(0.5, InterpEaseIn); f >= 0.5 {
		t.Errorf("easeIn(0.5) = %v, want < 0.5", f)
	}
	if f := Ease(0.5, InterpEaseOut); f <= 0.5 {
		t.Errorf("easeOut(0.5) = %v, want > 0.5", f)
	}
	// easeInOut is symmetric about the midpoint.
	if f := Ease(0.5, InterpEaseInOut); f != 0.5 {
		t.Errorf("easeInOut(0.5) = %v, want 0.5", f)
	}
}

func TestEaseMidpointPositions(t *testing.T) {
	// Midpoint position of an eased 0->100 segment proves the easing
	// direction end to end, not just the raw function.
	easeIn := GenerateWaypoints([]Waypoint{
		{Pos: 0, At: 0, Interp: InterpEaseIn},
		{Pos: 100, At: 1000, Interp: InterpEaseIn},
	})
	easeOut := GenerateWaypoints([]Waypoint{
		{Pos: 0, At: 0, Interp: InterpEaseOut},
		{Pos: 100, At: 1000, Interp: InterpEaseOut},
	})

	if p := posNear(easeIn, 500); p >= 50 {
		t.Errorf("easeIn midpoint pos = %d, want < 50", p)
	}
	if p := posNear(easeOut, 500); p <= 50 {
		t.Errorf("easeOut midpoint pos = %d, want > 50", p)
	}
}

func posNear(c Curve, at int) int {
	best := c[0]
	for _, s := range c {
		if abs(s.At-at) < abs(best.At-at) {
			best = s
		}
	}
	return best.Pos
}

func TestInterpJSONRoundTrip(t *testing.T) {
	in := Waypoint{Pos: 30, At: 1500, Interp: InterpEaseInOut}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out Waypoint
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out != in {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
	if _, err := ParseInterp("bounce"); err == nil {
		t.Error("ParseInterp accepted an unknown mode")
	}
}
