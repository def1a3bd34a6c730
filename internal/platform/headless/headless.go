// Package headless provides display-less and speaker-less collaborators:
// a scripted window and a simulated audio sink. Used by tests, benchmark
// runs, and `pixelhost run --display none`.
package headless

import (
	"github.com/vovakirdan/pixelhost/internal/audio"
	"github.com/vovakirdan/pixelhost/internal/platform"
	"github.com/vovakirdan/pixelhost/internal/video"
)

// Window is a platform.Window that replays a scripted event queue and
// records every blit.
type Window struct {
	queue  []platform.Event
	blits  int
	last   []byte // copy of the most recently blitted pixels
	lastW  int
	lastH  int
	closed bool
}

// NewWindow creates an empty scripted window.
func NewWindow() *Window {
	return &Window{}
}

// Push appends events to be delivered by the next PollEvents call.
func (w *Window) Push(events ...platform.Event) {
	w.queue = append(w.queue, events...)
}

// PollEvents drains the scripted queue. Never blocks.
func (w *Window) PollEvents() []platform.Event {
	evs := w.queue
	w.queue = nil
	return evs
}

// Blit records a copy of the back-buffer as the displayed frame.
func (w *Window) Blit(fb *video.Backbuffer) error {
	if len(w.last) != len(fb.Pix()) {
		w.last = make([]byte, len(fb.Pix()))
	}
	copy(w.last, fb.Pix())
	w.lastW = fb.Width()
	w.lastH = fb.Height()
	w.blits++
	return nil
}

// Blits returns how many frames were displayed.
func (w *Window) Blits() int { return w.blits }

// LastFrame returns the pixels of the most recent blit and its size.
func (w *Window) LastFrame() (pix []byte, width, height int) {
	return w.last, w.lastW, w.lastH
}

// Closed reports whether Close was called.
func (w *Window) Closed() bool { return w.closed }

// Close marks the window closed.
func (w *Window) Close() error {
	w.closed = true
	return nil
}

// Sink is a platform.AudioSink whose play cursor is advanced explicitly,
// standing in for hardware consumption. Tests use it as the play-cursor
// oracle.
type Sink struct {
	rate     int
	channels int
	ring     *audio.Ring
	cursor   uint32
	consumed int
	closed   bool
}

// NewSink creates a simulated sink with the given stream format.
func NewSink(sampleRate, channels int) *Sink {
	return &Sink{rate: sampleRate, channels: channels}
}

// SampleRate returns the negotiated rate.
func (s *Sink) SampleRate() int { return s.rate }

// Channels returns the negotiated channel count.
func (s *Sink) Channels() int { return s.channels }

// Start attaches the ring buffer.
func (s *Sink) Start(ring *audio.Ring) error {
	s.ring = ring
	return nil
}

// PlayCursor returns the simulated hardware read position.
func (s *Sink) PlayCursor() uint32 { return s.cursor }

// Consumed returns total samples drained so far.
func (s *Sink) Consumed() int { return s.consumed }

// Advance simulates the hardware consuming n samples, clamped to what has
// actually been written so the cursor never overtakes the writer.
func (s *Sink) Advance(n int) {
	if s.ring == nil || n <= 0 {
		return
	}
	if unplayed := s.ring.Unplayed(s.cursor); n > unplayed {
		n = unplayed
	}
	s.cursor = uint32((int(s.cursor) + n) % s.ring.Capacity())
	s.consumed += n
}

// AdvanceSeconds simulates dt seconds of hardware consumption.
func (s *Sink) AdvanceSeconds(dt float64) {
	s.Advance(int(dt*float64(s.rate)) * s.channels)
}

// Closed reports whether Close was called.
func (s *Sink) Closed() bool { return s.closed }

// Close marks the stream closed.
func (s *Sink) Close() error {
	s.closed = true
	return nil
}
