// Package terminal presents the back-buffer in a terminal through Bubble
// Tea, two pixels per character cell. The frame loop runs in its own
// goroutine and talks to the Bubble Tea program only through Send and a
// buffered event channel, so neither side ever blocks the other.
package terminal

import (
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pixelhost/internal/platform"
	"github.com/vovakirdan/pixelhost/internal/video"
)

// frameMsg carries one rendered frame string into the Bubble Tea model.
type frameMsg string

// Window adapts a Bubble Tea program to the loop's window contract.
// Events flow model -> channel -> PollEvents; frames flow Blit ->
// Program.Send -> View.
type Window struct {
	keymap *KeyMapper
	events chan platform.Event

	mu      sync.Mutex
	program *tea.Program
	cols    int
	rows    int
	fbW     int
	fbH     int

	closed atomic.Bool
}

// NewWindow creates a window that renders into a terminal of the given
// initial size. The Bubble Tea program is attached later with SetProgram
// because the model needs the window first.
func NewWindow(cols, rows int) *Window {
	return &Window{
		keymap: NewKeyMapper(),
		events: make(chan platform.Event, 256),
		cols:   cols,
		rows:   rows,
	}
}

// SetProgram attaches the running Bubble Tea program so Blit can deliver
// frames to it.
func (w *Window) SetProgram(p *tea.Program) {
	w.mu.Lock()
	w.program = p
	w.mu.Unlock()
}

// PollEvents drains the pending event queue without blocking.
func (w *Window) PollEvents() []platform.Event {
	var evs []platform.Event
	for {
		select {
		case ev := <-w.events:
			evs = append(evs, ev)
		default:
			return evs
		}
	}
}

// Blit renders the back-buffer to a styled string and sends it to the
// Bubble Tea program for display.
func (w *Window) Blit(fb *video.Backbuffer) error {
	w.mu.Lock()
	p := w.program
	cols, rows := w.cols, w.rows
	w.fbW, w.fbH = fb.Width(), fb.Height()
	w.mu.Unlock()

	if p == nil || w.closed.Load() {
		return nil
	}
	p.Send(frameMsg(RenderFrame(fb, cols, rows)))
	return nil
}

// Close stops frame delivery and quits the Bubble Tea program.
func (w *Window) Close() error {
	if w.closed.Swap(true) {
		return nil
	}
	w.mu.Lock()
	p := w.program
	w.mu.Unlock()
	if p != nil {
		p.Quit()
	}
	return nil
}

// push queues an event for the next poll, dropping it if the loop has
// fallen impossibly far behind.
func (w *Window) push(ev platform.Event) {
	select {
	case w.events <- ev:
	default:
	}
}

// handleKey translates a key message into a synthesized press plus
// release. Terminals report taps, not key state, so the snapshot's
// half-transition counting is what turns the pair into a visible press.
func (w *Window) handleKey(msg tea.KeyMsg) {
	k, ok := w.keymap.MapKey(msg)
	if !ok {
		return
	}
	w.push(platform.KeyEvent(k, true))
	w.push(platform.KeyEvent(k, false))
}

// handleMouse maps terminal cell coordinates onto back-buffer pixels.
func (w *Window) handleMouse(msg tea.MouseMsg) {
	w.mu.Lock()
	cols, rows := w.cols, w.rows
	fbW, fbH := w.fbW, w.fbH
	w.mu.Unlock()
	if cols <= 0 || rows <= 0 || fbW <= 0 || fbH <= 0 {
		return
	}

	x := msg.X * fbW / cols
	y := msg.Y * fbH / rows

	switch msg.Action {
	case tea.MouseActionMotion:
		w.push(platform.MouseMoveEvent(x, y))
	case tea.MouseActionPress, tea.MouseActionRelease:
		if b, ok := w.keymap.MapMouseButton(msg.Button); ok {
			w.push(platform.MouseMoveEvent(x, y))
			w.push(platform.MouseButtonEvent(b, msg.Action == tea.MouseActionPress))
		}
	}
}

// setSize records the new terminal size for future renders. The
// back-buffer keeps its own resolution; the renderer resamples.
func (w *Window) setSize(cols, rows int) {
	w.mu.Lock()
	w.cols, w.rows = cols, rows
	w.mu.Unlock()
}
