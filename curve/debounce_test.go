package curve

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerTrailing(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var runs atomic.Int32

	for i := 0; i < 5; i++ {
		d.Trigger(func() { runs.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(60 * time.Millisecond)
	if got := runs.Load(); got != 1 {
		t.Errorf("runs = %d, want 1 (trailing edge only)", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	var runs atomic.Int32

	d.Trigger(func() { runs.Add(1) })
	d.Cancel()

	time.Sleep(40 * time.Millisecond)
	if got := runs.Load(); got != 0 {
		t.Errorf("runs = %d, want 0 after cancel", got)
	}
}

func TestDebouncerRetriggersAfterRun(t *testing.T) {
	d := NewDebouncer(5 * time.Millisecond)
	var runs atomic.Int32

	d.Trigger(func() { runs.Add(1) })
	time.Sleep(30 * time.Millisecond)
	d.Trigger(func() { runs.Add(1) })
	time.Sleep(30 * time.Millisecond)

	if got := runs.Load(); got != 2 {
		t.Errorf("runs = %d, want 2", got)
	}
}
