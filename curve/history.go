package curve

// MaxHistory bounds the undo stack; the oldest snapshot is dropped silently.
const MaxHistory = 50

// History owns the editable curve and provides linear undo/redo over full
// snapshots. The present curve is only ever replaced wholesale, never
// mutated in place, so retained snapshots are safe against aliasing.
type History struct {
	past    []Curve
	present Curve
	future  []Curve
}

// NewHistory creates a history rooted at the given curve.
func NewHistory(c Curve) *History {
	return &History{present: c}
}

// Present returns the live curve. Callers must treat it as read-only.
func (h *History) Present() Curve {
	return h.present
}

// Commit replaces the present curve, pushing the old one onto the undo
// stack and discarding any redo entries.
func (h *History) Commit(c Curve) {
	h.past = append(h.past, h.present)
	if len(h.past) > MaxHistory {
		h.past = h.past[len(h.past)-MaxHistory:]
	}
	h.present = c
	h.future = nil
}

// Undo steps back one commit. Underflow is a no-op.
func (h *History) Undo() bool {
	if len(h.past) == 0 {
		return false
	}
	h.future = append([]Curve{h.present}, h.future...)
	h.present = h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	return true
}

// Redo steps forward one undone commit. Underflow is a no-op.
func (h *History) Redo() bool {
	if len(h.future) == 0 {
		return false
	}
	h.past = append(h.past, h.present)
	h.present = h.future[0]
	h.future = h.future[1:]
	return true
}

// CanUndo reports whether an undo step exists.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether a redo step exists.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// Depth returns the current undo stack size.
func (h *History) Depth() int { return len(h.past) }

// Reset replaces the present curve and clears both stacks. Used at the
// load boundary: a new document must not be undoable into the old one.
func (h *History) Reset(c Curve) {
	h.past = nil
	h.future = nil
	h.present = c
}
