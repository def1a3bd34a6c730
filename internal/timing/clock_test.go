package timing

import (
	"testing"
	"time"
)

// fakeTime drives a Clock with a controllable wall clock whose Sleep
// advances time exactly as requested.
type fakeTime struct {
	now time.Time
}

func newFakeTime() *fakeTime {
	return &fakeTime{now: time.Unix(1000, 0)}
}

func (f *fakeTime) Now() time.Time          { return f.now }
func (f *fakeTime) Sleep(d time.Duration)   { f.now = f.now.Add(d) }
func (f *fakeTime) Advance(d time.Duration) { f.now = f.now.Add(d) }

func newTestClock(target, maxDelta float64, spin time.Duration) (*Clock, *fakeTime) {
	ft := newFakeTime()
	c := NewClock(target, maxDelta, spin)
	c.SetSource(ft.Now, ft.Sleep, func() { ft.Advance(50 * time.Microsecond) })
	return c, ft
}

func TestTickReturnsElapsed(t *testing.T) {
	c, ft := newTestClock(1.0/60.0, 0, 0)

	ft.Advance(16 * time.Millisecond)
	delta := c.Tick()

	if delta < 0.0159 || delta > 0.0161 {
		t.Errorf("Tick() = %v, expected ~0.016", delta)
	}
	if acc := c.Accumulated(); acc != delta {
		t.Errorf("Accumulated() = %v, expected %v", acc, delta)
	}
}

func TestTickClampsStall(t *testing.T) {
	c, ft := newTestClock(1.0/60.0, 0.25, 0)

	// Simulated 5 second debugger pause.
	ft.Advance(5 * time.Second)
	delta := c.Tick()

	if delta != 0.25 {
		t.Errorf("Tick() after 5s stall = %v, expected clamp ceiling 0.25", delta)
	}
	if c.Accumulated() != 0.25 {
		t.Errorf("Accumulated() = %v, expected 0.25", c.Accumulated())
	}

	// The next normal frame is unaffected by the stall.
	ft.Advance(16 * time.Millisecond)
	if delta := c.Tick(); delta > 0.020 {
		t.Errorf("Tick() after stall recovery = %v, expected a normal delta", delta)
	}
}

func TestSleepUntilNextFrameHitsDeadline(t *testing.T) {
	c, ft := newTestClock(0.010, 0, 2*time.Millisecond)

	c.Tick()
	frameStart := ft.Now()

	// The frame's work took 3ms.
	ft.Advance(3 * time.Millisecond)
	c.SleepUntilNextFrame()

	elapsed := ft.Now().Sub(frameStart)
	if elapsed < 10*time.Millisecond {
		t.Errorf("woke up after %v, expected at least the 10ms budget", elapsed)
	}
	if elapsed > 11*time.Millisecond {
		t.Errorf("woke up after %v, expected close to the 10ms budget", elapsed)
	}
}

func TestSleepSkippedWhenOverBudget(t *testing.T) {
	c, ft := newTestClock(0.010, 0, 2*time.Millisecond)

	c.Tick()
	// The frame overran its budget.
	ft.Advance(25 * time.Millisecond)
	before := ft.Now()
	c.SleepUntilNextFrame()

	if !ft.Now().Equal(before) {
		t.Error("SleepUntilNextFrame() slept on an overrun frame")
	}
}

func TestAccumulatedTracksWallTime(t *testing.T) {
	c, ft := newTestClock(1.0/60.0, 0, time.Millisecond)

	// 120 frames with +-2ms jitter around the 60Hz budget.
	for i := 0; i < 120; i++ {
		jitter := time.Duration((i%5)-2) * time.Millisecond
		ft.Advance(16*time.Millisecond + 667*time.Microsecond + jitter)
		c.Tick()
	}

	if acc := c.Accumulated(); acc < 1.9 || acc > 2.1 {
		t.Errorf("Accumulated() after 120 jittered frames = %v, expected within [1.9, 2.1]", acc)
	}
}

func TestNegativeDeltaClampedToZero(t *testing.T) {
	c, ft := newTestClock(1.0/60.0, 0, 0)

	// Wall clock stepped backwards.
	ft.now = ft.now.Add(-time.Second)
	if delta := c.Tick(); delta != 0 {
		t.Errorf("Tick() with a backwards clock = %v, expected 0", delta)
	}
}
