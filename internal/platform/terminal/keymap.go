package terminal

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pixelhost/internal/input"
)

// KeyMapper translates Bubble Tea key messages to logical keys.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a key mapper with the default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a logical key. The second return is
// false for keys without a binding.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (input.Key, bool) {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return input.KeyQuit, true
	case "up", "w", "k":
		return input.KeyUp, true
	case "down", "s", "j":
		return input.KeyDown, true
	case "left", "a", "h":
		return input.KeyLeft, true
	case "right", "d", "l":
		return input.KeyRight, true
	case " ", "enter":
		return input.KeyActionA, true
	case "shift+tab", "b":
		return input.KeyActionB, true
	case "p":
		return input.KeyPause, true
	case "r":
		return input.KeyReload, true
	}
	return 0, false
}

// MapMouseButton translates a Bubble Tea mouse button. The second return
// is false for wheel and unknown buttons.
func (km *KeyMapper) MapMouseButton(b tea.MouseButton) (input.MouseButton, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return input.MouseLeft, true
	case tea.MouseButtonRight:
		return input.MouseRight, true
	case tea.MouseButtonMiddle:
		return input.MouseMiddle, true
	}
	return 0, false
}
