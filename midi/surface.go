package midi

import (
	"fmt"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"curvelab/config"
)

// Action is an editor operation triggered from a control surface.
type Action int

const (
	ActionNone Action = iota
	ActionPlayToggle
	ActionUndo
	ActionRedo
	ActionJog       // Value is a signed scrub delta in [-1, 1]
	ActionIntensity // Value is a smoothing intensity in [0, 1]
)

// Event is a decoded control-surface gesture.
type Event struct {
	Action Action
	Value  float64
}

// Surface is a connected MIDI controller mapped onto editor actions.
type Surface struct {
	id       string
	mapping  config.ControllerConfig
	stopFunc func()
	events   chan Event
}

// NewSurface opens the input port and starts decoding messages
// according to the mapping.
func NewSurface(id string, inPort drivers.In, mapping config.ControllerConfig) (*Surface, error) {
	s := &Surface{
		id:      id,
		mapping: mapping,
		events:  make(chan Event, 32),
	}

	stop, err := gomidi.ListenTo(inPort, func(msg gomidi.Message, timestampms int32) {
		var channel, key, value uint8
		switch {
		case msg.GetControlChange(&channel, &key, &value):
			s.control(key, value)
		case msg.GetNoteOn(&channel, &key, &value):
			if value > 0 {
				s.note(key)
			}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	s.stopFunc = stop

	return s, nil
}

// control decodes a CC message. A zero mapping value means unmapped, so
// CC 0 (bank select) can never trigger anything.
func (s *Surface) control(cc, value uint8) {
	switch {
	case int(cc) == s.mapping.JogCC && s.mapping.JogCC != 0:
		// Relative encoders send 1..63 for clockwise, 65..127 for
		// counter-clockwise (two's complement style).
		delta := float64(value) / 63.0
		if value >= 64 {
			delta = -float64(128-int(value)) / 63.0
		}
		s.emit(Event{Action: ActionJog, Value: delta})
	case int(cc) == s.mapping.IntensityCC && s.mapping.IntensityCC != 0:
		s.emit(Event{Action: ActionIntensity, Value: float64(value) / 127.0})
	}
}

func (s *Surface) note(note uint8) {
	switch {
	case int(note) == s.mapping.PlayNote && s.mapping.PlayNote != 0:
		s.emit(Event{Action: ActionPlayToggle})
	case int(note) == s.mapping.UndoNote && s.mapping.UndoNote != 0:
		s.emit(Event{Action: ActionUndo})
	case int(note) == s.mapping.RedoNote && s.mapping.RedoNote != 0:
		s.emit(Event{Action: ActionRedo})
	}
}

func (s *Surface) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
		// Drop rather than block the driver callback
	}
}

func (s *Surface) ID() string {
	return s.id
}

// Events returns decoded gestures from this surface.
func (s *Surface) Events() <-chan Event {
	return s.events
}

func (s *Surface) Close() error {
	if s.stopFunc != nil {
		s.stopFunc()
	}
	close(s.events)
	return nil
}
