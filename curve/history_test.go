package curve

import (
	"fmt"
	"testing"
)

func curveOfLen(n int) Curve {
	c := make(Curve, n)
	for i := range c {
		c[i] = Sample{At: i * 100, Pos: i % 101}
	}
	return c
}

func TestHistoryCommitUndoRedo(t *testing.T) {
	initial := Curve{{0, 0}}
	h := NewHistory(initial)

	if h.CanUndo() || h.CanRedo() {
		t.Fatal("fresh history should have empty stacks")
	}

	a := Curve{{0, 10}}
	b := Curve{{0, 20}}
	h.Commit(a)
	h.Commit(b)

	if !h.Present().Equal(b) {
		t.Fatalf("present = %v, want %v", h.Present(), b)
	}
	if !h.Undo() || !h.Present().Equal(a) {
		t.Fatalf("after undo present = %v, want %v", h.Present(), a)
	}
	if !h.Redo() || !h.Present().Equal(b) {
		t.Fatalf("after redo present = %v, want %v", h.Present(), b)
	}
}

func TestHistoryNCommitsNUndos(t *testing.T) {
	initial := curveOfLen(3)
	h := NewHistory(initial)

	const n = 20
	for i := 0; i < n; i++ {
		h.Commit(curveOfLen(i + 4))
	}
	for i := 0; i < n; i++ {
		if !h.Undo() {
			t.Fatalf("undo %d failed", i)
		}
	}
	if !h.Present().Equal(initial) {
		t.Error("N commits then N undos did not restore the initial curve")
	}
	if h.CanUndo() {
		t.Error("CanUndo after full unwind")
	}
	if !h.CanRedo() {
		t.Error("CanRedo should hold after undos")
	}
}

func TestHistoryUnderflowIsNoOp(t *testing.T) {
	h := NewHistory(Curve{{0, 50}})
	if h.Undo() {
		t.Error("undo on empty past should be a no-op")
	}
	if h.Redo() {
		t.Error("redo on empty future should be a no-op")
	}
	if !h.Present().Equal(Curve{{0, 50}}) {
		t.Error("present changed by underflow")
	}
}

func TestHistoryCommitClearsFuture(t *testing.T) {
	h := NewHistory(Curve{{0, 0}})
	h.Commit(Curve{{0, 1}})
	h.Undo()
	h.Commit(Curve{{0, 2}})
	if h.CanRedo() {
		t.Error("commit must clear the redo stack")
	}
}

func TestHistoryCapEvictsOldest(t *testing.T) {
	h := NewHistory(curveOfLen(1))

	for i := 0; i < MaxHistory+5; i++ {
		h.Commit(curveOfLen(i + 2))
	}
	if h.Depth() != MaxHistory {
		t.Fatalf("depth = %d, want %d", h.Depth(), MaxHistory)
	}

	undos := 0
	for h.Undo() {
		undos++
	}
	if undos != MaxHistory {
		t.Fatalf("unwound %d steps, want %d", undos, MaxHistory)
	}
	// The oldest snapshots were evicted: the floor is not the initial
	// curve but the state MaxHistory commits back.
	want := curveOfLen(6)
	if !h.Present().Equal(want) {
		t.Errorf("floor has %d samples, want %d", len(h.Present()), len(want))
	}
}

func TestHistoryReset(t *testing.T) {
	h := NewHistory(Curve{{0, 0}})
	for i := 1; i <= 3; i++ {
		h.Commit(Curve{{0, i}})
	}
	loaded := Curve{{0, 99}}
	h.Reset(loaded)
	if h.CanUndo() || h.CanRedo() {
		t.Error("reset must clear both stacks")
	}
	if !h.Present().Equal(loaded) {
		t.Errorf("present = %v, want %v", h.Present(), loaded)
	}
}

func ExampleHistory() {
	h := NewHistory(Curve{{0, 0}})
	h.Commit(Curve{{0, 50}})
	h.Undo()
	fmt.Println(h.Present()[0].Pos, h.CanRedo())
	// Output: 0 true
}
