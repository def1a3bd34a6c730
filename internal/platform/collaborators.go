package platform

import (
	"github.com/vovakirdan/pixelhost/internal/audio"
	"github.com/vovakirdan/pixelhost/internal/video"
)

// Window is the window-system collaborator: it owns the OS connection and
// surfaces events and a blit primitive. Connection setup and teardown live
// entirely behind this interface.
type Window interface {
	// PollEvents returns all events delivered since the last poll. It
	// must never block; an empty slice means a quiet frame.
	PollEvents() []Event

	// Blit copies the back-buffer to the display surface. The only
	// operation in a frame with a side effect visible outside the
	// process. Implementations handle any pitch mismatch against the OS
	// surface via Backbuffer.CopyTo.
	Blit(fb *video.Backbuffer) error

	// Close releases the window-system connection.
	Close() error
}

// AudioSink is the audio-hardware collaborator. The stream format is
// negotiated when the sink is created; Start hands it the ring buffer to
// drain on its own schedule. The sink and the loop never block each
// other: the loop only queries PlayCursor and writes strictly ahead of it.
type AudioSink interface {
	// SampleRate returns the negotiated samples per second per channel.
	SampleRate() int

	// Channels returns the negotiated interleaved channel count.
	Channels() int

	// Start begins consuming from the ring buffer.
	Start(ring *audio.Ring) error

	// PlayCursor returns the hardware's current read position modulo the
	// ring capacity. Read-only external state.
	PlayCursor() uint32

	// Close tears the stream down.
	Close() error
}
