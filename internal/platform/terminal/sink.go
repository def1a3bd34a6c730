package terminal

import (
	"errors"
	"time"

	"github.com/vovakirdan/pixelhost/internal/audio"
)

// Sink is the terminal's audio sink. A terminal has no PCM output, so the
// sink discards samples, but it still advances a wall-clock play cursor at
// the stream rate: the loop's provisioning, margin accounting, and the
// simulations' audio callbacks behave exactly as they do on hardware.
type Sink struct {
	sampleRate int
	channels   int
	ring       *audio.Ring
	started    time.Time
	played     int64 // samples consumed, absolute
	now        func() time.Time
}

// NewSink creates a mute sink with the given stream format.
func NewSink(sampleRate, channels int) *Sink {
	return &Sink{
		sampleRate: sampleRate,
		channels:   channels,
		now:        time.Now,
	}
}

// SampleRate returns samples per second per channel.
func (s *Sink) SampleRate() int { return s.sampleRate }

// Channels returns the interleaved channel count.
func (s *Sink) Channels() int { return s.channels }

// Start attaches the ring buffer and starts the wall clock.
func (s *Sink) Start(ring *audio.Ring) error {
	if ring == nil {
		return errors.New("terminal: nil ring buffer")
	}
	s.ring = ring
	s.started = s.now()
	s.played = 0
	return nil
}

// PlayCursor advances the cursor to where real hardware would be by now,
// never past the write cursor, and returns it modulo ring capacity.
func (s *Sink) PlayCursor() uint32 {
	if s.ring == nil {
		return 0
	}
	capacity := s.ring.Capacity()
	elapsed := s.now().Sub(s.started).Seconds()
	target := int64(elapsed*float64(s.sampleRate)) * int64(s.channels)

	delta := target - s.played
	if avail := int64(s.ring.Unplayed(uint32(s.played % int64(capacity)))); delta > avail {
		delta = avail
	}
	if delta > 0 {
		s.played += delta
	}
	return uint32(s.played % int64(capacity))
}

// Close releases nothing; the sink holds no OS resources.
func (s *Sink) Close() error {
	s.ring = nil
	return nil
}
