package midi

// Input is a connected MIDI input device
type Input interface {
	ID() string

	// Events delivers decoded note events; closed by Close
	Events() <-chan Event

	Close() error
}
