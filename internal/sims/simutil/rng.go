package simutil

import "math/bits"

// RNG is a RomuDuo generator: two words of state, one multiply and one
// rotate per draw. Not cryptographic; fast and deterministic for
// simulation use.
type RNG struct {
	xstate uint64
	ystate uint64
}

// NewRNG creates a generator whose state is derived from seed through a
// Lehmer64 stream, then cycled to spread the seed bits.
func NewRNG(seed uint64) *RNG {
	l := lehmer64{lo: seed | 1}
	r := &RNG{xstate: l.next(), ystate: l.next()}
	for i := 0; i < 100; i++ {
		r.Next()
	}
	return r
}

// Next returns the next 64-bit draw.
func (r *RNG) Next() uint64 {
	xp := r.xstate
	r.xstate = 15241094284759029579 * r.ystate
	r.ystate = bits.RotateLeft64(r.ystate-xp, 27)
	return xp
}

// Float64 returns a draw in [0, 1).
func (r *RNG) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// lehmer64 is a 128-bit multiplicative congruential generator used only
// to expand the seed.
type lehmer64 struct {
	hi, lo uint64
}

func (l *lehmer64) next() uint64 {
	const mul = 0xda942042e4dd58b5
	hi, lo := bits.Mul64(l.lo, mul)
	l.hi = l.hi*mul + hi
	l.lo = lo
	return l.hi
}
