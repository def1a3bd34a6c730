// Package timing paces the frame loop: it measures wall-clock deltas,
// clamps them against stalls, and sleeps the remainder of each frame
// budget with sub-millisecond precision.
package timing

import (
	"runtime"
	"time"
)

// DefaultMaxDeltaSeconds caps the delta reported after a stall (debugger
// pause, OS hitch) so simulation time cannot spiral.
const DefaultMaxDeltaSeconds = 0.25

// DefaultSpinWindow is how much of the remaining frame budget is
// busy-waited instead of slept. Coarse OS sleeps routinely overshoot by a
// millisecond or two; spinning the tail trades a little CPU for hitting
// the frame boundary precisely. Tunable via config.
const DefaultSpinWindow = 2 * time.Millisecond

// Clock tracks frame pacing state. Created once at startup and mutated
// once per loop iteration; never shared across goroutines.
type Clock struct {
	target      float64 // seconds per frame
	maxDelta    float64
	spinWindow  time.Duration
	lastStart   time.Time
	accumulated float64

	// Injectable for tests.
	now   func() time.Time
	sleep func(time.Duration)
	spin  func()
}

// NewClock creates a clock targeting targetFrameSeconds per frame.
// maxDeltaSeconds <= 0 and spinWindow < 0 select the defaults.
func NewClock(targetFrameSeconds, maxDeltaSeconds float64, spinWindow time.Duration) *Clock {
	if maxDeltaSeconds <= 0 {
		maxDeltaSeconds = DefaultMaxDeltaSeconds
	}
	if spinWindow < 0 {
		spinWindow = DefaultSpinWindow
	}
	c := &Clock{
		target:     targetFrameSeconds,
		maxDelta:   maxDeltaSeconds,
		spinWindow: spinWindow,
		now:        time.Now,
		sleep:      time.Sleep,
		spin:       runtime.Gosched,
	}
	c.lastStart = c.now()
	return c
}

// SetSource replaces the wall clock, sleep, and busy-wait step, for tests
// and simulated runs. spin must advance the fake clock or
// SleepUntilNextFrame will never reach its deadline; nil keeps the
// default yield.
func (c *Clock) SetSource(now func() time.Time, sleep func(time.Duration), spin func()) {
	c.now = now
	c.sleep = sleep
	if spin != nil {
		c.spin = spin
	}
	c.lastStart = now()
}

// TargetFrameSeconds returns the configured frame budget.
func (c *Clock) TargetFrameSeconds() float64 { return c.target }

// Accumulated returns total simulation time advanced so far, in seconds.
func (c *Clock) Accumulated() float64 { return c.accumulated }

// Tick records the start of a new frame and returns the elapsed time since
// the previous one, clamped to the configured maximum. The clamp is a
// deliberate anti-spiral policy: a 5 second debugger pause comes back as
// maxDelta, not as 5 seconds of simulation to catch up on. The overrun of
// a slow frame is observable as an oversized (but clamped) delta here.
func (c *Clock) Tick() float64 {
	now := c.now()
	delta := now.Sub(c.lastStart).Seconds()
	c.lastStart = now
	if delta < 0 {
		delta = 0
	}
	if delta > c.maxDelta {
		delta = c.maxDelta
	}
	c.accumulated += delta
	return delta
}

// Skip records a new frame start without advancing simulation time. Used
// while the loop is paused, so pacing keeps working but accumulated
// simulation time stands still.
func (c *Clock) Skip() {
	c.lastStart = c.now()
}

// SleepUntilNextFrame blocks until the current frame's budget elapses:
// a coarse sleep for the bulk of the remainder, then a busy-wait for the
// final spin window. Returns immediately when the frame already overran.
func (c *Clock) SleepUntilNextFrame() {
	deadline := c.lastStart.Add(time.Duration(c.target * float64(time.Second)))
	remaining := deadline.Sub(c.now())
	if remaining <= 0 {
		return
	}
	if coarse := remaining - c.spinWindow; coarse > 0 {
		c.sleep(coarse)
	}
	for c.now().Before(deadline) {
		c.spin()
	}
}
