package midi

import (
	"context"

	"curvelab/curve"
	"curvelab/debug"
)

// jogScrubMs is how far a full encoder tick scrubs the playhead.
const jogScrubMs = 500

// Bind routes surface gestures into the editor. It consumes the
// manager's device events, so call it once and run it in a goroutine.
func Bind(ctx context.Context, dm *DeviceManager, ed *curve.Editor) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-dm.Events():
			if !ok {
				return
			}
			switch ev.Type {
			case DeviceConnected:
				debug.Log("midi", "surface connected: %s", ev.ID)
				go pump(ctx, ev.Surface, ed)
			case DeviceDisconnected:
				debug.Log("midi", "surface disconnected: %s", ev.ID)
			}
		}
	}
}

func pump(ctx context.Context, s *Surface, ed *curve.Editor) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-s.Events():
			if !ok {
				return
			}
			apply(ed, ev)
		}
	}
}

func apply(ed *curve.Editor, ev Event) {
	switch ev.Action {
	case ActionPlayToggle:
		ms, playing := ed.Playback()
		ed.SetPlayback(ms, !playing)
	case ActionUndo:
		ed.Undo()
	case ActionRedo:
		ed.Redo()
	case ActionJog:
		ms, playing := ed.Playback()
		ms += int(ev.Value * jogScrubMs)
		if ms < 0 {
			ms = 0
		}
		ed.SetPlayback(ms, playing)
	case ActionIntensity:
		// SetSmoothIntensity is already debounced inside the editor
		ed.SetSmoothIntensity(int(ev.Value * 100))
	}
}
