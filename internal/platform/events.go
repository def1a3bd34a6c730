package platform

import "github.com/vovakirdan/pixelhost/internal/input"

// EventKind discriminates the events a window backend can deliver.
type EventKind int

const (
	EventKey EventKind = iota
	EventMouseMove
	EventMouseButton
	EventResize
	EventClose
)

// Event is one OS-level occurrence surfaced by a Window's non-blocking
// poll. Fields are valid per kind: Key/Down for EventKey, X/Y for
// EventMouseMove, Button/Down for EventMouseButton, Width/Height for
// EventResize.
type Event struct {
	Kind   EventKind
	Key    input.Key
	Button input.MouseButton
	Down   bool
	X, Y   int
	Width  int
	Height int
}

// KeyEvent builds a key press or release event.
func KeyEvent(k input.Key, down bool) Event {
	return Event{Kind: EventKey, Key: k, Down: down}
}

// MouseMoveEvent builds a pointer motion event.
func MouseMoveEvent(x, y int) Event {
	return Event{Kind: EventMouseMove, X: x, Y: y}
}

// MouseButtonEvent builds a mouse button event.
func MouseButtonEvent(b input.MouseButton, down bool) Event {
	return Event{Kind: EventMouseButton, Button: b, Down: down}
}

// ResizeEvent builds a window client-area resize event.
func ResizeEvent(width, height int) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}

// CloseEvent builds a quit request.
func CloseEvent() Event {
	return Event{Kind: EventClose}
}
