package curve

import (
	"encoding/json"
	"fmt"
	"math"
)

// Interp selects how the segment starting at a waypoint is eased.
type Interp int

const (
	InterpLinear Interp = iota
	InterpEaseIn
	InterpEaseOut
	InterpEaseInOut
	InterpStep
)

var interpNames = map[Interp]string{
	InterpLinear:    "linear",
	InterpEaseIn:    "easeIn",
	InterpEaseOut:   "easeOut",
	InterpEaseInOut: "easeInOut",
	InterpStep:      "step",
}

func (m Interp) String() string {
	if name, ok := interpNames[m]; ok {
		return name
	}
	return "linear"
}

// ParseInterp converts a mode name to an Interp.
func ParseInterp(name string) (Interp, error) {
	for m, n := range interpNames {
		if n == name {
			return m, nil
		}
	}
	return InterpLinear, fmt.Errorf("unknown interpolation %q", name)
}

// MarshalJSON encodes the mode by name.
func (m Interp) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes the mode from its name.
func (m *Interp) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	parsed, err := ParseInterp(name)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Waypoint is a sparse control point. It is never persisted as such; the
// generator expands waypoints into samples.
type Waypoint struct {
	Pos    int    `json:"pos"`
	At     int    `json:"at"`
	Interp Interp `json:"interp"`
}

// Ease maps normalized progress through an easing function. Domain and
// range are both [0,1] with f(0)=0 and f(1)=1. Step is handled
// structurally by the generator, not here.
func Ease(t float64, m Interp) float64 {
	switch m {
	case InterpEaseIn:
		return t * t * t
	case InterpEaseOut:
		u := 1 - t
		return 1 - u*u*u
	case InterpEaseInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		u := -2*t + 2
		return 1 - u*u*u/2
	default:
		return t
	}
}

// GenerateWaypoints expands an ordered waypoint list into a dense sample
// sequence. Sampling density adapts to the position swing of each segment:
// near-flat segments get the two endpoints, steep ones one sample per ten
// position units. Time advances linearly within a segment; only position
// is eased.
func GenerateWaypoints(wps []Waypoint) Curve {
	if len(wps) == 0 {
		return Curve{}
	}

	var out Curve
	for i := 0; i < len(wps)-1; i++ {
		start, end := wps[i], wps[i+1]

		if start.Interp == InterpStep {
			// Hold until the next waypoint: no signal in between.
			out = append(out, Sample{At: start.At, Pos: start.Pos})
			continue
		}

		distance := abs(end.Pos - start.Pos)
		count := int(math.Ceil(float64(distance) / 10))
		if count < 2 {
			count = 2
		}

		for j := 0; j < count; j++ {
			t := float64(j) / float64(count-1)
			eased := Ease(t, start.Interp)
			pos := float64(start.Pos) + (float64(end.Pos)-float64(start.Pos))*eased
			at := float64(start.At) + (float64(end.At)-float64(start.At))*t
			out = append(out, Sample{
				At:  int(math.Round(at)),
				Pos: int(math.Round(pos)),
			})
		}
	}

	// Always emit the final waypoint explicitly so rounding can never
	// drop the endpoint.
	last := wps[len(wps)-1]
	out = append(out, Sample{At: last.At, Pos: last.Pos})

	return Normalize(out)
}
