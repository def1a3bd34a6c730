package desktop

import (
	"encoding/binary"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	eaudio "github.com/hajimehoshi/ebiten/v2/audio"

	"github.com/vovakirdan/pixelhost/internal/audio"
)

// Ebiten allows one audio context per process.
var (
	audioContextOnce sync.Once
	audioContext     *eaudio.Context
)

// Sink plays the ring buffer through Ebiten's audio stack. The player
// pulls samples on its own goroutine via ringReader; the loop only ever
// observes the consumed-sample counter.
type Sink struct {
	sampleRate int
	channels   int
	player     *eaudio.Player
	reader     *ringReader
}

// NewSink creates a desktop sink. Ebiten's mixer is stereo 16-bit, so the
// channel count is fixed at two.
func NewSink(sampleRate int) *Sink {
	return &Sink{sampleRate: sampleRate, channels: 2}
}

// SampleRate returns samples per second per channel.
func (s *Sink) SampleRate() int { return s.sampleRate }

// Channels returns the interleaved channel count.
func (s *Sink) Channels() int { return s.channels }

// Start attaches the ring and begins playback.
func (s *Sink) Start(ring *audio.Ring) error {
	if ring == nil {
		return errors.New("desktop: nil ring buffer")
	}

	audioContextOnce.Do(func() {
		audioContext = eaudio.NewContext(s.sampleRate)
	})
	if audioContext.SampleRate() != s.sampleRate {
		return errors.New("desktop: audio context already open at a different sample rate")
	}

	s.reader = &ringReader{ring: ring}
	player, err := audioContext.NewPlayer(s.reader)
	if err != nil {
		return err
	}
	// A small pull buffer keeps the play cursor close to what is actually
	// audible.
	player.SetBufferSize(50 * time.Millisecond)
	s.player = player
	player.Play()
	return nil
}

// PlayCursor returns the consumed-sample position modulo ring capacity.
func (s *Sink) PlayCursor() uint32 {
	if s.reader == nil {
		return 0
	}
	return s.reader.cursor()
}

// Close stops playback.
func (s *Sink) Close() error {
	if s.player == nil {
		return nil
	}
	return s.player.Close()
}

// ringReader adapts the ring buffer to the io.Reader Ebiten's player
// pulls from: 16-bit little-endian interleaved stereo. On underrun it
// substitutes silence without advancing the consumed counter, so the
// writer's margin accounting sees the starvation.
type ringReader struct {
	ring     *audio.Ring
	consumed atomic.Int64
	scratch  []int16
}

func (r *ringReader) cursor() uint32 {
	return uint32(r.consumed.Load() % int64(r.ring.Capacity()))
}

func (r *ringReader) Read(p []byte) (int, error) {
	want := len(p) / 2
	if want == 0 {
		return 0, nil
	}

	avail := r.ring.Unplayed(r.cursor())
	n := min(want, avail)
	if n > 0 {
		if len(r.scratch) < n {
			r.scratch = make([]int16, n)
		}
		buf := r.scratch[:n]
		r.ring.CopyFrom(r.cursor(), buf)
		for i, sample := range buf {
			binary.LittleEndian.PutUint16(p[i*2:], uint16(sample))
		}
		r.consumed.Add(int64(n))
	}
	for i := n * 2; i < want*2; i++ {
		p[i] = 0
	}
	return want * 2, nil
}
