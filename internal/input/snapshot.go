// Package input provides per-frame keyboard and mouse state, computed as
// transitions from the previous frame's snapshot. It contains no backend
// dependencies to keep simulation input pure and testable.
package input

// ButtonState holds the state of one key or mouse button for one frame.
type ButtonState struct {
	// Down is the instantaneous state at the end of the poll.
	Down bool
	// WasDown is the instantaneous state at the end of the previous frame.
	WasDown bool
	// HalfTransitions counts down/up edges observed this frame. A press
	// that releases within a single polling interval still shows up here
	// even though Down == WasDown == false.
	HalfTransitions int
}

// Pressed reports whether the button went down at least once this frame.
func (b ButtonState) Pressed() bool {
	return (b.Down && !b.WasDown) || b.HalfTransitions >= 2
}

// Released reports whether the button went up at least once this frame.
func (b ButtonState) Released() bool {
	return (!b.Down && b.WasDown) || b.HalfTransitions >= 2
}

// Mouse holds pointer position and button state for one frame.
type Mouse struct {
	X, Y    int
	Buttons [MouseButtonCount]ButtonState
}

// Snapshot is the complete input state for one frame. Simulations receive
// it read-only during their update call and must not retain it beyond
// that call.
type Snapshot struct {
	Keys      [KeyCount]ButtonState
	Mouse     Mouse
	Timestamp float64 // Seconds since the loop started
}

// IsDown reports whether the key is currently held.
func (s *Snapshot) IsDown(k Key) bool {
	return s.Keys[k].Down
}

// IsPressed reports whether the key went down this frame. True for exactly
// one frame per down transition regardless of how long the key stays held.
func (s *Snapshot) IsPressed(k Key) bool {
	return s.Keys[k].Pressed()
}

// IsReleased reports whether the key went up this frame.
func (s *Snapshot) IsReleased(k Key) bool {
	return s.Keys[k].Released()
}

// State owns the double-buffered current/previous snapshot pair. It is
// mutated exclusively by the platform loop.
type State struct {
	current  Snapshot
	previous Snapshot
}

// NewState creates an input state with all keys up.
func NewState() *State {
	return &State{}
}

// Current returns the snapshot for the frame in progress.
func (s *State) Current() *Snapshot {
	return &s.current
}

// Previous returns the snapshot from the last completed frame.
func (s *State) Previous() *Snapshot {
	return &s.previous
}

// BeginFrame rolls the current snapshot into previous and prepares the
// current one for this frame's events: Down carries over, WasDown is set
// from the carried Down, and transition counts reset.
func (s *State) BeginFrame(timestamp float64) {
	s.previous = s.current
	s.current.Timestamp = timestamp
	for i := range s.current.Keys {
		k := &s.current.Keys[i]
		k.WasDown = k.Down
		k.HalfTransitions = 0
	}
	for i := range s.current.Mouse.Buttons {
		b := &s.current.Mouse.Buttons[i]
		b.WasDown = b.Down
		b.HalfTransitions = 0
	}
}

// ApplyKey folds a key event into the current snapshot. Repeated events
// with no state change (OS auto-repeat) do not count as transitions.
func (s *State) ApplyKey(k Key, down bool) {
	if k < 0 || k >= KeyCount {
		return
	}
	b := &s.current.Keys[k]
	if b.Down == down {
		return
	}
	b.Down = down
	b.HalfTransitions++
}

// ApplyMouseMove updates the pointer position.
func (s *State) ApplyMouseMove(x, y int) {
	s.current.Mouse.X = x
	s.current.Mouse.Y = y
}

// ApplyMouseButton folds a mouse button event into the current snapshot.
func (s *State) ApplyMouseButton(btn MouseButton, down bool) {
	if btn < 0 || btn >= MouseButtonCount {
		return
	}
	b := &s.current.Mouse.Buttons[btn]
	if b.Down == down {
		return
	}
	b.Down = down
	b.HalfTransitions++
}
