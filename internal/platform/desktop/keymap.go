package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/pixelhost/internal/input"
)

// keyBinding ties a physical key to a logical one. Several physical keys
// can share a logical key; the snapshot folds them together.
type keyBinding struct {
	physical ebiten.Key
	logical  input.Key
}

// keyBindings is the desktop key layout.
var keyBindings = []keyBinding{
	{ebiten.KeyArrowUp, input.KeyUp},
	{ebiten.KeyW, input.KeyUp},
	{ebiten.KeyArrowDown, input.KeyDown},
	{ebiten.KeyS, input.KeyDown},
	{ebiten.KeyArrowLeft, input.KeyLeft},
	{ebiten.KeyA, input.KeyLeft},
	{ebiten.KeyArrowRight, input.KeyRight},
	{ebiten.KeyD, input.KeyRight},
	{ebiten.KeySpace, input.KeyActionA},
	{ebiten.KeyShiftLeft, input.KeyActionB},
	{ebiten.KeyP, input.KeyPause},
	{ebiten.KeyR, input.KeyReload},
	{ebiten.KeyQ, input.KeyQuit},
	{ebiten.KeyEscape, input.KeyQuit},
}

// mouseBindings is the desktop mouse button layout.
var mouseBindings = []struct {
	physical ebiten.MouseButton
	logical  input.MouseButton
}{
	{ebiten.MouseButtonLeft, input.MouseLeft},
	{ebiten.MouseButtonRight, input.MouseRight},
	{ebiten.MouseButtonMiddle, input.MouseMiddle},
}
