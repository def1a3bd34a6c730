// Package audio provides the circular sample buffer the platform loop
// fills each frame and the hardware sink drains on its own schedule.
//
// Only signed 16-bit interleaved PCM is supported. All counts are in
// samples, where one sample is a single int16 value for one channel; a
// stereo frame is two samples. The write cursor is owned by the loop; the
// play cursor is external read-only state owned by the sink. The two sides
// never block each other, they only compare cursor positions.
package audio

import (
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrUnderrunRisk is a warning, not a failure: the caller could not
	// keep the configured safety margin ahead of the play cursor. The
	// returned region is still valid and must be written (silence if
	// nothing better) and committed, to keep the hardware stream
	// continuous.
	ErrUnderrunRisk = errors.New("audio: underrun risk")

	// ErrPendingWrite indicates a reserve while a previous reservation has
	// not been committed.
	ErrPendingWrite = errors.New("audio: reservation already pending")

	// ErrCommitMismatch indicates a commit without a matching reserve or
	// with a different sample count.
	ErrCommitMismatch = errors.New("audio: commit does not match reservation")
)

// Region is a scoped writable window into the ring. It spans at most one
// wrap, exposed as two contiguous slices; Second is empty when the region
// does not wrap.
type Region struct {
	First  []int16
	Second []int16
}

// Len returns the region size in samples.
func (r Region) Len() int {
	return len(r.First) + len(r.Second)
}

// Silence zero-fills the region.
func (r Region) Silence() {
	clear(r.First)
	clear(r.Second)
}

// Ring is the circular sample buffer.
//
// The sample slice is shared with the sink's consumer goroutine the same
// way a hardware DMA buffer is shared with the DAC: the consumer only
// reads behind the write cursor, which is advanced atomically on commit.
type Ring struct {
	sampleRate   int
	channels     int
	capacity     int // samples
	safetyMargin int // samples the writer should stay ahead of the play cursor
	samples      []int16
	writeCursor  atomic.Uint32
	pending      int // samples reserved and not yet committed, -1 when none
}

// NewRing creates a ring buffer holding capacitySamples interleaved
// samples. safetyMarginSamples is the minimum number of unplayed samples
// the writer tries to keep queued; shortfalls are reported as
// ErrUnderrunRisk.
func NewRing(sampleRate, channels, capacitySamples, safetyMarginSamples int) (*Ring, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: invalid sample rate %d", sampleRate)
	}
	if channels <= 0 {
		return nil, fmt.Errorf("audio: invalid channel count %d", channels)
	}
	if capacitySamples <= 0 || capacitySamples%channels != 0 {
		return nil, fmt.Errorf("audio: capacity %d must be a positive multiple of %d channels", capacitySamples, channels)
	}
	if safetyMarginSamples < 0 || safetyMarginSamples >= capacitySamples {
		return nil, fmt.Errorf("audio: safety margin %d out of range", safetyMarginSamples)
	}
	return &Ring{
		sampleRate:   sampleRate,
		channels:     channels,
		capacity:     capacitySamples,
		safetyMargin: safetyMarginSamples,
		samples:      make([]int16, capacitySamples),
		pending:      -1,
	}, nil
}

// SampleRate returns samples per second per channel.
func (r *Ring) SampleRate() int { return r.sampleRate }

// Channels returns the interleaved channel count.
func (r *Ring) Channels() int { return r.channels }

// Capacity returns the buffer size in samples.
func (r *Ring) Capacity() int { return r.capacity }

// WriteCursor returns the current write position modulo capacity. Safe to
// call from the sink's consumer goroutine.
func (r *Ring) WriteCursor() uint32 {
	return r.writeCursor.Load()
}

// Unplayed returns how many written samples the sink has not consumed yet,
// given the sink's play cursor.
func (r *Ring) Unplayed(playCursor uint32) int {
	w := int(r.writeCursor.Load())
	p := int(playCursor) % r.capacity
	return (w - p + r.capacity) % r.capacity
}

// FrameBudget returns how many samples to provision for one frame: the
// samples the hardware will consume before the next frame boundary times
// the safety factor. Below 1.0 the stream will starve; above ~2.0 latency
// grows with no benefit. The result is aligned to whole frames and capped
// so a reservation can never overrun the buffer.
func (r *Ring) FrameBudget(targetFrameSeconds, safetyFactor float64) int {
	frames := int(float64(r.sampleRate) * targetFrameSeconds * safetyFactor)
	if frames < 1 {
		frames = 1
	}
	n := frames * r.channels
	limit := r.capacity - r.safetyMargin - r.channels
	if limit < r.channels {
		limit = r.channels
	}
	if n > limit {
		n = limit
	}
	return n - n%r.channels
}

// ReserveWriteRegion returns a writable window of up to n samples starting
// at the write cursor. The region never overlaps the unconsumed interval
// [playCursor, writeCursor): if the buffer is too full the region is
// clamped. A non-nil error always wraps ErrUnderrunRisk and is advisory;
// the region must still be written and committed.
func (r *Ring) ReserveWriteRegion(n int, playCursor uint32) (Region, error) {
	if r.pending >= 0 {
		return Region{}, ErrPendingWrite
	}
	if n < 0 {
		n = 0
	}
	n -= n % r.channels

	unplayed := r.Unplayed(playCursor)
	// Leave one frame unwritten so the write cursor can never catch the
	// play cursor from behind, which would be indistinguishable from an
	// empty buffer.
	free := r.capacity - unplayed - r.channels
	free -= free % r.channels
	if free < 0 {
		free = 0
	}

	var err error
	if n > free {
		n = free
		err = fmt.Errorf("%w: buffer full, clamped to %d samples", ErrUnderrunRisk, n)
	} else if unplayed+n < r.safetyMargin {
		err = fmt.Errorf("%w: %d unplayed samples after write, margin is %d", ErrUnderrunRisk, unplayed+n, r.safetyMargin)
	}

	w := int(r.writeCursor.Load())
	region := Region{}
	first := min(n, r.capacity-w)
	region.First = r.samples[w : w+first]
	if n > first {
		region.Second = r.samples[:n-first]
	}
	r.pending = n
	return region, err
}

// CommitWrite advances the write cursor by n samples modulo capacity. It
// must be called exactly once per ReserveWriteRegion with the reserved
// region's length, on every exit path including failures in the
// simulation's audio callback.
func (r *Ring) CommitWrite(n int) error {
	if r.pending < 0 || n != r.pending {
		return fmt.Errorf("%w: committed %d, reserved %d", ErrCommitMismatch, n, r.pending)
	}
	w := (int(r.writeCursor.Load()) + n) % r.capacity
	r.writeCursor.Store(uint32(w))
	r.pending = -1
	return nil
}

// CopyFrom copies len(dst) samples starting at cursor into dst, wrapping
// at capacity. Used by sinks to drain the buffer; it does not move any
// cursor. Safe to call from the consumer goroutine for regions behind the
// write cursor.
func (r *Ring) CopyFrom(cursor uint32, dst []int16) {
	c := int(cursor) % r.capacity
	for len(dst) > 0 {
		n := copy(dst, r.samples[c:])
		dst = dst[n:]
		c = (c + n) % r.capacity
	}
}
