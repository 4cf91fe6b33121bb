// Package input holds window-system independent input events. Window drivers
// push events in; the frame loop reads them once per frame.
package input

// EventType identifies the kind of an event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Key is a driver independent key code. Only keys the application reacts
// to are mapped; everything else is KeyUnknown.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyUp
	KeyDown
	KeyR
	KeyP
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    Key
	Width  int
	Height int
}

// Input collects the events of one frame.
type Input struct {
	events []Event
	quit   bool
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Reset drops the events of the previous frame.
func (i *Input) Reset() {
	i.events = i.events[:0]
}

// Push records an event. A quit event is sticky.
func (i *Input) Push(e Event) {
	if e.Type == EventQuit {
		i.quit = true
	}
	i.events = append(i.events, e)
}

// Events returns the events pushed since the last Reset.
func (i *Input) Events() []Event {
	return i.events
}

// QuitRequested reports whether a quit event was ever pushed.
func (i *Input) QuitRequested() bool {
	return i.quit
}

// KeyReleased reports whether k was released this frame.
func (i *Input) KeyReleased(k Key) bool {
	for _, e := range i.events {
		if e.Type == EventKeyUp && e.Key == k {
			return true
		}
	}
	return false
}
