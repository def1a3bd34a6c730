// Package desktop hosts the simulation in an OS window through Ebiten.
// Ebiten owns the cadence: its Update callback drives one loop iteration
// per tick, and the loop's own pacing sleep is bypassed.
package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/pixelhost/internal/platform"
	"github.com/vovakirdan/pixelhost/internal/video"
)

// Window adapts Ebiten's polled input model to the loop's event contract.
// PollEvents diffs key and button state via inpututil and synthesizes the
// transitions; Blit snapshots the back-buffer pixels for the next Draw.
// Everything runs on Ebiten's game goroutine, so no locking is needed.
type Window struct {
	frame  []byte // latest blit, tightly packed RGBA
	frameW int
	frameH int

	lastCursorX int
	lastCursorY int
	lastWinW    int
	lastWinH    int
	cursorInit  bool
}

// NewWindow creates the window adapter. The OS window itself is created
// by ebiten.RunGame.
func NewWindow() *Window {
	return &Window{}
}

// PollEvents synthesizes events from Ebiten's polled input state.
func (w *Window) PollEvents() []platform.Event {
	var evs []platform.Event

	for _, b := range keyBindings {
		if inpututil.IsKeyJustPressed(b.physical) {
			evs = append(evs, platform.KeyEvent(b.logical, true))
		}
		if inpututil.IsKeyJustReleased(b.physical) {
			evs = append(evs, platform.KeyEvent(b.logical, false))
		}
	}

	x, y := ebiten.CursorPosition()
	if !w.cursorInit || x != w.lastCursorX || y != w.lastCursorY {
		w.cursorInit = true
		w.lastCursorX, w.lastCursorY = x, y
		evs = append(evs, platform.MouseMoveEvent(x, y))
	}
	for _, b := range mouseBindings {
		if inpututil.IsMouseButtonJustPressed(b.physical) {
			evs = append(evs, platform.MouseButtonEvent(b.logical, true))
		}
		if inpututil.IsMouseButtonJustReleased(b.physical) {
			evs = append(evs, platform.MouseButtonEvent(b.logical, false))
		}
	}

	if ww, wh := ebiten.WindowSize(); ww > 0 && wh > 0 && (ww != w.lastWinW || wh != w.lastWinH) {
		w.lastWinW, w.lastWinH = ww, wh
		evs = append(evs, platform.ResizeEvent(ww, wh))
	}

	if ebiten.IsWindowBeingClosed() {
		evs = append(evs, platform.CloseEvent())
	}

	return evs
}

// Blit snapshots the back-buffer for the next Draw. Ebiten may call Draw
// more or less often than Update, so the copy keeps the displayed frame
// stable regardless.
func (w *Window) Blit(fb *video.Backbuffer) error {
	need := fb.Width() * fb.Height() * video.BytesPerPixel
	if len(w.frame) != need {
		w.frame = make([]byte, need)
	}
	w.frameW, w.frameH = fb.Width(), fb.Height()
	return fb.CopyTo(w.frame, fb.Width()*video.BytesPerPixel)
}

// Close releases nothing; Ebiten tears the OS window down when RunGame
// returns.
func (w *Window) Close() error { return nil }

// draw writes the latest frame to the screen.
func (w *Window) draw(screen *ebiten.Image) {
	if w.frame == nil {
		return
	}
	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	if sw != w.frameW || sh != w.frameH {
		// Layout has not caught up with a resize yet; skip the frame
		// rather than hand WritePixels a mismatched buffer.
		return
	}
	screen.WritePixels(w.frame)
}
