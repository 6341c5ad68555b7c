package curve

import "sort"

// Selection is a set of sample indices.
type Selection map[int]struct{}

// NewSelection returns an empty selection.
func NewSelection() Selection {
	return make(Selection)
}

// Has reports whether an index is selected.
func (s Selection) Has(i int) bool {
	_, ok := s[i]
	return ok
}

// Add selects an index.
func (s Selection) Add(i int) {
	s[i] = struct{}{}
}

// Toggle flips the selection state of an index.
func (s Selection) Toggle(i int) {
	if s.Has(i) {
		delete(s, i)
	} else {
		s.Add(i)
	}
}

// Clear deselects everything.
func (s Selection) Clear() {
	for i := range s {
		delete(s, i)
	}
}

// Indices returns the selected indices in ascending order.
func (s Selection) Indices() []int {
	out := make([]int, 0, len(s))
	for i := range s {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// ContiguousRange returns the [lo, hi] bounds when the selection is a
// single unbroken run of indices. ok is false for empty or gapped
// selections.
func (s Selection) ContiguousRange() (lo, hi int, ok bool) {
	idx := s.Indices()
	if len(idx) == 0 {
		return 0, 0, false
	}
	lo, hi = idx[0], idx[len(idx)-1]
	if hi-lo+1 != len(idx) {
		return 0, 0, false
	}
	return lo, hi, true
}
