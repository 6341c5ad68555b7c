package midi

import (
	"context"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"

	"curvelab/config"
)

// DeviceEvent is emitted when surfaces connect/disconnect
type DeviceEvent struct {
	Type    DeviceEventType
	Surface *Surface
	ID      string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// DeviceManager handles hot-plug detection of configured control surfaces
type DeviceManager struct {
	mappings []config.ControllerConfig

	surfaces map[string]*Surface
	mu       sync.RWMutex
	events   chan DeviceEvent
	pollRate time.Duration
}

// NewDeviceManager creates a manager that watches for the given port mappings
func NewDeviceManager(mappings []config.ControllerConfig) *DeviceManager {
	return &DeviceManager{
		mappings: mappings,
		surfaces: make(map[string]*Surface),
		events:   make(chan DeviceEvent, 16),
		pollRate: time.Second,
	}
}

// Events returns a channel of device connect/disconnect events
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Surfaces returns a snapshot of connected surfaces
func (dm *DeviceManager) Surfaces() map[string]*Surface {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	copy := make(map[string]*Surface, len(dm.surfaces))
	for k, v := range dm.surfaces {
		copy[k] = v
	}
	return copy
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan()

	for {
		select {
		case <-ctx.Done():
			dm.closeAll()
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan()
		}
	}
}

func (dm *DeviceManager) scan() {
	// Get current MIDI ports with timeout (CoreMIDI can hang)
	ch := make(chan []drivers.In, 1)
	go func() {
		ch <- gomidi.GetInPorts()
	}()

	var inPorts []drivers.In
	select {
	case inPorts = <-ch:
	case <-time.After(3 * time.Second):
		// MIDI backend is hung - skip this scan
		return
	}

	seenIDs := make(map[string]bool)

	for i, inPort := range inPorts {
		mapping := dm.match(inPort.String())
		if mapping == nil {
			continue
		}
		id := inPort.String()
		seenIDs[id] = true

		dm.mu.RLock()
		_, exists := dm.surfaces[id]
		dm.mu.RUnlock()

		if !exists {
			s, err := NewSurface(id, inPorts[i], *mapping)
			if err != nil {
				continue
			}

			dm.mu.Lock()
			dm.surfaces[id] = s
			dm.mu.Unlock()

			dm.events <- DeviceEvent{
				Type:    DeviceConnected,
				Surface: s,
				ID:      id,
			}
		}
	}

	// Check for disconnects
	dm.mu.Lock()
	var toRemove []string
	for id := range dm.surfaces {
		if !seenIDs[id] {
			toRemove = append(toRemove, id)
		}
	}
	for _, id := range toRemove {
		s := dm.surfaces[id]
		s.Close()
		delete(dm.surfaces, id)
		dm.events <- DeviceEvent{
			Type: DeviceDisconnected,
			ID:   id,
		}
	}
	dm.mu.Unlock()
}

// match returns the mapping for a port name, or nil if no configured
// controller wants it. Callers hand the manager pre-filtered mappings
// (config.AutoConnectControllers), so every entry is a candidate.
func (dm *DeviceManager) match(portName string) *config.ControllerConfig {
	name := strings.ToLower(portName)
	for i := range dm.mappings {
		m := &dm.mappings[i]
		if strings.Contains(name, strings.ToLower(m.PortName)) {
			return m
		}
	}
	return nil
}

func (dm *DeviceManager) closeAll() {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	for _, s := range dm.surfaces {
		s.Close()
	}
	dm.surfaces = make(map[string]*Surface)
}
