// Package platform owns the real-time frame loop: it pumps OS events into
// the input snapshot, paces frames, drives the simulation, flushes the
// back-buffer to the window, and keeps the audio ring buffer fed.
package platform

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixelhost/internal/audio"
	"github.com/vovakirdan/pixelhost/internal/input"
	"github.com/vovakirdan/pixelhost/internal/sim"
	"github.com/vovakirdan/pixelhost/internal/timing"
	"github.com/vovakirdan/pixelhost/internal/video"
)

// ErrWindowSystem indicates the window-system connection failed. Fatal:
// it triggers the shutdown sequence.
var ErrWindowSystem = errors.New("platform: window system failure")

// RunState is the loop's lifecycle state.
type RunState int

const (
	StateInitializing RunState = iota
	StateRunning
	StatePaused
	StateShuttingDown
)

// String returns a human-readable state name.
func (s RunState) String() string {
	switch s {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateShuttingDown:
		return "shutting down"
	default:
		return "unknown"
	}
}

// Options configures a Loop. Zero values select documented defaults.
type Options struct {
	// Width and Height size the initial back-buffer.
	Width, Height int

	// TargetFPS is the frame cadence (default 60).
	TargetFPS int

	// MaxDeltaSeconds caps the per-frame delta after a stall
	// (default timing.DefaultMaxDeltaSeconds).
	MaxDeltaSeconds float64

	// SpinWindow is the busy-wait tail of the frame sleep
	// (default timing.DefaultSpinWindow). Negative selects the default;
	// zero disables spinning.
	SpinWindow time.Duration

	// AudioSafetyFactor scales the per-frame audio provisioning. Values
	// near 1.0 minimize latency but risk audible glitches on jitter;
	// values near 2.0 are glitch-proof but add a frame of latency.
	// Default 1.5.
	AudioSafetyFactor float64

	// AudioCapacitySeconds sizes the ring buffer (default 0.5).
	AudioCapacitySeconds float64

	// AudioMarginSeconds is the minimum queued audio the loop tries to
	// keep ahead of the play cursor (default 1.5 frames).
	AudioMarginSeconds float64

	// Logger receives the loop's structured logs (default log.Default()).
	Logger *log.Logger
}

func (o *Options) fill() {
	if o.Width <= 0 {
		o.Width = 640
	}
	if o.Height <= 0 {
		o.Height = 480
	}
	if o.TargetFPS <= 0 {
		o.TargetFPS = 60
	}
	if o.AudioSafetyFactor <= 0 {
		o.AudioSafetyFactor = 1.5
	}
	if o.AudioCapacitySeconds <= 0 {
		o.AudioCapacitySeconds = 0.5
	}
	if o.AudioMarginSeconds <= 0 {
		o.AudioMarginSeconds = 1.5 / float64(o.TargetFPS)
	}
	if o.SpinWindow < 0 {
		o.SpinWindow = timing.DefaultSpinWindow
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
}

// Stats summarizes a run for logging and telemetry.
type Stats struct {
	Frames           int
	SimSeconds       float64
	MaxFrameSeconds  float64
	UnderrunWarnings int
	Reloads          int
}

// Loop is the orchestrator. It exclusively owns the back-buffer, the
// input state, and the ring buffer's write side; the simulation receives
// temporary access during its update call only. Single-threaded: nothing
// in an iteration runs concurrently with anything else; the only
// suspension point is the clock's deliberate pacing sleep.
type Loop struct {
	win    Window
	sink   AudioSink
	ring   *audio.Ring
	loader *sim.Loader
	fb     *video.Backbuffer
	in     *input.State
	clock  *timing.Clock
	logger *log.Logger

	safetyFactor float64
	state        RunState
	quitPending  bool
	reloadTarget string
	stats        Stats
	closed       bool
}

// New wires a loop from its collaborators. The loader must already hold a
// loaded simulation; the sink is started on the ring buffer created here.
// Any failure is an initialization failure and maps to a non-zero exit.
func New(win Window, sink AudioSink, loader *sim.Loader, opts Options) (*Loop, error) {
	opts.fill()

	if loader.Status() != sim.StatusLoaded {
		return nil, fmt.Errorf("%w: loop requires a loaded simulation", sim.ErrLoad)
	}

	fb, err := video.New(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}

	channels := sink.Channels()
	rate := sink.SampleRate()
	capacity := int(float64(rate)*opts.AudioCapacitySeconds) * channels
	capacity -= capacity % channels
	margin := int(float64(rate)*opts.AudioMarginSeconds) * channels
	margin -= margin % channels
	if margin >= capacity {
		margin = capacity / 2
	}
	ring, err := audio.NewRing(rate, channels, capacity, margin)
	if err != nil {
		return nil, err
	}
	if err := sink.Start(ring); err != nil {
		return nil, err
	}

	target := 1.0 / float64(opts.TargetFPS)
	l := &Loop{
		win:          win,
		sink:         sink,
		ring:         ring,
		loader:       loader,
		fb:           fb,
		in:           input.NewState(),
		clock:        timing.NewClock(target, opts.MaxDeltaSeconds, opts.SpinWindow),
		logger:       opts.Logger,
		safetyFactor: opts.AudioSafetyFactor,
		state:        StateInitializing,
	}
	return l, nil
}

// State returns the loop's lifecycle state.
func (l *Loop) State() RunState { return l.state }

// Stats returns run statistics so far.
func (l *Loop) Stats() Stats {
	s := l.stats
	s.SimSeconds = l.clock.Accumulated()
	s.Reloads = l.loader.Reloads()
	return s
}

// Backbuffer exposes the owned back-buffer to backends that need its
// dimensions (never to mutate it).
func (l *Loop) Backbuffer() *video.Backbuffer { return l.fb }

// Clock exposes the frame clock for backends that take over pacing.
func (l *Loop) Clock() *timing.Clock { return l.clock }

// RequestQuit asks the loop to stop. Observed at the top of the next
// iteration; the current iteration still completes its blit and audio
// commit so the hardware stream is never left torn.
func (l *Loop) RequestQuit() { l.quitPending = true }

// RequestReload schedules a hot-reload of the named simulation. Applied
// between frames, never mid-frame, so a reload can never be concurrent
// with an in-progress update call.
func (l *Loop) RequestReload(id string) { l.reloadTarget = id }

// Run drives Step at the configured cadence until a quit event, a context
// cancellation, or a fatal error, then tears down window and audio.
func (l *Loop) Run(ctx context.Context) error {
	defer l.Close()

	for {
		if ctx.Err() != nil {
			l.RequestQuit()
		}
		cont, err := l.Step()
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
		l.clock.SleepUntilNextFrame()
	}
}

// Step runs exactly one loop iteration without pacing: poll events →
// input snapshot → apply pending reload → tick → simulation update →
// blit → audio fill → done. Returns false once the loop has observed a
// quit and transitioned to shutting down. Backends with their own cadence
// (the desktop backend under ebiten's TPS) call Step directly.
func (l *Loop) Step() (bool, error) {
	if l.state == StateShuttingDown {
		return false, nil
	}
	if l.quitPending {
		l.state = StateShuttingDown
		l.logger.Info("shutting down", "frames", l.stats.Frames, "sim_seconds", fmt.Sprintf("%.2f", l.clock.Accumulated()))
		return false, nil
	}
	if l.state == StateInitializing {
		l.state = StateRunning
		l.logger.Info("loop running",
			"sim", l.loader.ActiveID(),
			"size", fmt.Sprintf("%dx%d", l.fb.Width(), l.fb.Height()),
			"target_fps", fmt.Sprintf("%.0f", 1.0/l.clock.TargetFrameSeconds()),
			"audio_rate", l.ring.SampleRate())
	}

	// 1. Pump OS events into the input snapshot.
	l.in.BeginFrame(l.clock.Accumulated())
	for _, ev := range l.win.PollEvents() {
		if err := l.handleEvent(ev); err != nil {
			return false, err
		}
	}
	l.handleControlKeys()

	// 2. Apply a pending hot-reload while no update is in flight.
	if l.reloadTarget != "" {
		if err := l.loader.Reload(l.reloadTarget); err != nil {
			// Non-fatal: the previous version keeps running.
			l.logger.Warn("reload failed, keeping active simulation",
				"sim", l.reloadTarget, "err", err)
		}
		l.reloadTarget = ""
	}

	// 3. Advance time.
	var dt float64
	if l.state == StatePaused {
		l.clock.Skip()
	} else {
		dt = l.clock.Tick()
		if dt > l.stats.MaxFrameSeconds {
			l.stats.MaxFrameSeconds = dt
		}
	}

	// 4. Simulation update and render.
	if l.state == StateRunning {
		if err := l.loader.Update(l.fb, l.in.Current(), dt); err != nil {
			return false, err
		}
	}

	// 5. Flush the back-buffer to the window.
	if err := l.win.Blit(l.fb); err != nil {
		return false, fmt.Errorf("%w: blit: %v", ErrWindowSystem, err)
	}

	// 6. Keep the hardware audio stream fed.
	l.fillAudio(dt)

	l.stats.Frames++
	return true, nil
}

func (l *Loop) handleEvent(ev Event) error {
	switch ev.Kind {
	case EventKey:
		l.in.ApplyKey(ev.Key, ev.Down)
	case EventMouseMove:
		l.in.ApplyMouseMove(ev.X, ev.Y)
	case EventMouseButton:
		l.in.ApplyMouseButton(ev.Button, ev.Down)
	case EventResize:
		if ev.Width == l.fb.Width() && ev.Height == l.fb.Height() {
			return nil
		}
		if err := l.fb.Resize(ev.Width, ev.Height); err != nil {
			return err // AllocationError: no backbuffer, no rendering
		}
		l.logger.Debug("backbuffer resized", "width", ev.Width, "height", ev.Height)
	case EventClose:
		l.quitPending = true
	}
	return nil
}

// handleControlKeys reacts to the platform-level keys after all events of
// the frame have been folded in, so a tap within one poll interval still
// registers.
func (l *Loop) handleControlKeys() {
	cur := l.in.Current()
	if cur.IsPressed(input.KeyQuit) {
		l.quitPending = true
	}
	if cur.IsPressed(input.KeyPause) {
		if l.state == StatePaused {
			l.state = StateRunning
			l.logger.Debug("resumed")
		} else if l.state == StateRunning {
			l.state = StatePaused
			l.logger.Debug("paused")
		}
	}
	if cur.IsPressed(input.KeyReload) && l.reloadTarget == "" {
		l.reloadTarget = l.loader.ActiveID()
	}
}

// fillAudio reserves this frame's sample budget, has the simulation fill
// it, and commits — always, on every path, so the stream stays
// continuous. Margin shortfalls are absorbed as silence and counted,
// never escalated.
func (l *Loop) fillAudio(dt float64) {
	budget := l.ring.FrameBudget(l.clock.TargetFrameSeconds(), l.safetyFactor)
	region, err := l.ring.ReserveWriteRegion(budget, l.sink.PlayCursor())
	if err != nil {
		if errors.Is(err, audio.ErrUnderrunRisk) {
			l.stats.UnderrunWarnings++
			l.logger.Debug("audio underrun risk", "err", err)
		} else {
			// Reserve misuse is a programming error; keep the stream
			// alive anyway.
			l.logger.Error("audio reserve failed", "err", err)
			return
		}
	}

	if l.state == StateRunning {
		if aerr := l.loader.RenderAudio(region, dt); aerr != nil {
			region.Silence()
		}
	} else {
		region.Silence()
	}

	if cerr := l.ring.CommitWrite(region.Len()); cerr != nil {
		l.logger.Error("audio commit failed", "err", cerr)
	}
}

// Close releases the window and audio resources. Idempotent; called by
// Run on exit and by backends that own the teardown order.
func (l *Loop) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.state = StateShuttingDown
	if err := l.sink.Close(); err != nil {
		l.logger.Warn("audio sink close failed", "err", err)
	}
	if err := l.win.Close(); err != nil {
		l.logger.Warn("window close failed", "err", err)
	}
}
