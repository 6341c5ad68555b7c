package curve

import (
	"fmt"
	"sort"
)

// Sample is a single control value of the edited signal.
type Sample struct {
	At  int `json:"at"`  // milliseconds from media start
	Pos int `json:"pos"` // actuator position 0-100
}

// Curve is a list of samples ordered by time.
type Curve []Sample

// ClampPos clamps a position to the 0-100 range.
func ClampPos(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > 100 {
		return 100
	}
	return pos
}

// ClampTime clamps a timestamp to be non-negative.
func ClampTime(at int) int {
	if at < 0 {
		return 0
	}
	return at
}

// Clone returns an independent copy of the curve.
func (c Curve) Clone() Curve {
	if c == nil {
		return nil
	}
	out := make(Curve, len(c))
	copy(out, c)
	return out
}

// Equal reports whether two curves hold the same samples.
func (c Curve) Equal(other Curve) bool {
	if len(c) != len(other) {
		return false
	}
	for i := range c {
		if c[i] != other[i] {
			return false
		}
	}
	return true
}

// Normalize clamps every sample, sorts ascending by time and collapses
// duplicate timestamps (last write wins). Internal mutation paths route
// every candidate curve through here before it reaches history.
func Normalize(c Curve) Curve {
	if len(c) == 0 {
		return Curve{}
	}

	out := make(Curve, len(c))
	for i, s := range c {
		out[i] = Sample{At: ClampTime(s.At), Pos: ClampPos(s.Pos)}
	}

	// Stable sort keeps insertion order among equal timestamps, so the
	// later-written sample survives deduplication below.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].At < out[j].At
	})

	dedup := out[:0]
	for _, s := range out {
		if n := len(dedup); n > 0 && dedup[n-1].At == s.At {
			dedup[n-1] = s
			continue
		}
		dedup = append(dedup, s)
	}
	return dedup
}

// Validate checks a curve at the load boundary. Unlike Normalize it rejects
// bad data instead of repairing it: imported files are untrusted input.
func Validate(c Curve) error {
	for i, s := range c {
		if s.At < 0 {
			return fmt.Errorf("sample %d: negative timestamp %dms", i, s.At)
		}
		if s.Pos < 0 || s.Pos > 100 {
			return fmt.Errorf("sample %d: position %d outside 0-100", i, s.Pos)
		}
		if i > 0 && s.At < c[i-1].At {
			return fmt.Errorf("sample %d: timestamp %dms before previous %dms", i, s.At, c[i-1].At)
		}
		if i > 0 && s.At == c[i-1].At {
			return fmt.Errorf("sample %d: duplicate timestamp %dms", i, s.At)
		}
	}
	return nil
}

// Duration returns the timestamp of the last sample, or 0 for an empty curve.
func (c Curve) Duration() int {
	if len(c) == 0 {
		return 0
	}
	return c[len(c)-1].At
}
