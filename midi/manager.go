package midi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"chordscope/debug"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
)

// ErrPortsTimeout is returned when the MIDI backend does not answer.
// On macOS this usually means CoreMIDI is hung:
// sudo killall coreaudiod midiserver
var ErrPortsTimeout = errors.New("midi: timed out listing ports")

const portsTimeout = 3 * time.Second

// DeviceEvent is emitted when the input connects or disconnects
type DeviceEvent struct {
	Type  DeviceEventType
	Input Input // set for DeviceConnected
	ID    string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// DeviceManager keeps one MIDI input connected, following hot-plugs.
// A driver must be registered by the program (see cmd).
type DeviceManager struct {
	preferred string
	current   Input
	mu        sync.RWMutex
	events    chan DeviceEvent
	pollRate  time.Duration
}

// NewDeviceManager creates a device manager. preferred picks the port whose
// name contains it (case-insensitive); empty means the most recently listed
// port.
func NewDeviceManager(preferred string) *DeviceManager {
	return &DeviceManager{
		preferred: preferred,
		events:    make(chan DeviceEvent, 16),
		pollRate:  time.Second,
	}
}

// Events returns a channel of device connect/disconnect events.
// It is closed when Run returns.
func (dm *DeviceManager) Events() <-chan DeviceEvent {
	return dm.events
}

// Current returns the connected input, or nil
func (dm *DeviceManager) Current() Input {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	return dm.current
}

// SetPreferred changes which port to follow; applied on the next scan
func (dm *DeviceManager) SetPreferred(name string) {
	dm.mu.Lock()
	dm.preferred = name
	dm.mu.Unlock()
}

// Run starts the polling loop (blocking - run in goroutine)
func (dm *DeviceManager) Run(ctx context.Context) {
	ticker := time.NewTicker(dm.pollRate)
	defer ticker.Stop()

	// Initial scan
	dm.scan(ctx)

	for {
		select {
		case <-ctx.Done():
			dm.disconnect(ctx)
			close(dm.events)
			return
		case <-ticker.C:
			dm.scan(ctx)
		}
	}
}

func (dm *DeviceManager) scan(ctx context.Context) {
	ports, err := inPorts()
	if err != nil {
		debug.LogEvery(10, "device", "scan skipped: %v", err)
		return
	}
	names := portNames(ports)

	dm.mu.RLock()
	preferred := dm.preferred
	current := dm.current
	dm.mu.RUnlock()

	idx, found := choosePort(names, preferred)
	if current != nil {
		if found && names[idx] == current.ID() {
			return
		}
		dm.disconnect(ctx)
	}
	if !found {
		return
	}

	kb, err := NewKeyboardController(names[idx], ports[idx])
	if err != nil {
		debug.Log("device", "connect %q failed: %v", names[idx], err)
		return
	}
	debug.Log("device", "connected %q", names[idx])

	dm.mu.Lock()
	dm.current = kb
	dm.mu.Unlock()

	dm.emit(ctx, DeviceEvent{Type: DeviceConnected, Input: kb, ID: kb.ID()})
}

func (dm *DeviceManager) disconnect(ctx context.Context) {
	dm.mu.Lock()
	current := dm.current
	dm.current = nil
	dm.mu.Unlock()

	if current == nil {
		return
	}
	current.Close()
	debug.Log("device", "disconnected %q", current.ID())
	dm.emit(ctx, DeviceEvent{Type: DeviceDisconnected, ID: current.ID()})
}

func (dm *DeviceManager) emit(ctx context.Context, ev DeviceEvent) {
	select {
	case dm.events <- ev:
	case <-ctx.Done():
	}
}

// choosePort picks the preferred port if listed, else the last one
func choosePort(names []string, preferred string) (int, bool) {
	if len(names) == 0 {
		return 0, false
	}
	if preferred == "" {
		return len(names) - 1, true
	}
	want := strings.ToLower(preferred)
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), want) {
			return i, true
		}
	}
	return 0, false
}

// inPorts lists input ports with a timeout (CoreMIDI can hang)
func inPorts() ([]drivers.In, error) {
	ch := make(chan []drivers.In, 1)
	go func() {
		ch <- gomidi.GetInPorts()
	}()

	select {
	case ports := <-ch:
		return ports, nil
	case <-time.After(portsTimeout):
		return nil, ErrPortsTimeout
	}
}

func portNames(ports []drivers.In) []string {
	names := make([]string, len(ports))
	for i, p := range ports {
		names[i] = p.String()
	}
	return names
}

// InputPorts returns the names of the available input ports
func InputPorts() ([]string, error) {
	ports, err := inPorts()
	if err != nil {
		return nil, err
	}
	return portNames(ports), nil
}

// OpenInput connects to the first port whose name contains name
// (case-insensitive); empty name means the most recently listed port.
func OpenInput(name string) (*KeyboardController, error) {
	ports, err := inPorts()
	if err != nil {
		return nil, err
	}
	names := portNames(ports)
	idx, ok := choosePort(names, name)
	if !ok {
		if name == "" {
			return nil, errors.New("midi: no input ports")
		}
		return nil, fmt.Errorf("midi: no input port matching %q", name)
	}
	return NewKeyboardController(names[idx], ports[idx])
}

// CloseDriver releases the MIDI backend; call once on exit
func CloseDriver() {
	gomidi.CloseDriver()
}
