package input

// Key is a logical key code, abstracted from physical scancodes so the
// same simulation input works across window backends.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyActionA // Space - primary action
	KeyActionB // Left Shift - secondary action
	KeyPause
	KeyReload // R - request a simulation hot-reload
	KeyQuit   // Q, Escape
	KeyCount  // Number of logical keys; not a real key
)

// String returns a human-readable name for the key.
func (k Key) String() string {
	switch k {
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	case KeyActionA:
		return "ActionA"
	case KeyActionB:
		return "ActionB"
	case KeyPause:
		return "Pause"
	case KeyReload:
		return "Reload"
	case KeyQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
	MouseButtonCount // Not a real button
)
