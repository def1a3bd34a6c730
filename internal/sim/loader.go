package sim

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixelhost/internal/audio"
	"github.com/vovakirdan/pixelhost/internal/input"
	"github.com/vovakirdan/pixelhost/internal/video"
)

var (
	// ErrLoad indicates the requested simulation could not be resolved.
	// Fatal at startup; on a reload attempt the previous version keeps
	// running and the error is only reported.
	ErrLoad = errors.New("sim: load failed")

	// ErrNotLoaded indicates a forwarded call while no simulation is
	// active.
	ErrNotLoaded = errors.New("sim: no simulation loaded")
)

// Status is the loader's lifecycle state.
type Status int

const (
	StatusUnloaded Status = iota
	StatusLoaded
	StatusReloading
)

// String returns a human-readable status name.
func (s Status) String() string {
	switch s {
	case StatusUnloaded:
		return "unloaded"
	case StatusLoaded:
		return "loaded"
	case StatusReloading:
		return "reloading"
	default:
		return "unknown"
	}
}

// Loader owns the currently active simulation entry points and the state
// blob that outlives them. Hot-swap is an entry-point table swap: the new
// code version is resolved from the registry and installed atomically
// between frames while the state bytes stay untouched.
//
// The loader is confined to the platform loop's goroutine; the loop
// guarantees a reload is never concurrent with an in-progress update by
// only applying reload requests at the top of an iteration.
type Loader struct {
	active   Simulation
	renderer Renderer // non-nil when active implements the optional pass
	activeID string
	state    *State
	status   Status
	reloads  int
	logger   *log.Logger
}

// NewLoader creates an unloaded loader owning a zeroed state blob of
// stateSize bytes.
func NewLoader(stateSize int, logger *log.Logger) (*Loader, error) {
	st, err := NewState(stateSize)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{state: st, status: StatusUnloaded, logger: logger}, nil
}

// Status returns the loader lifecycle state.
func (l *Loader) Status() Status { return l.status }

// ActiveID returns the ID of the loaded simulation, or "" when unloaded.
func (l *Loader) ActiveID() string { return l.activeID }

// Reloads returns how many successful hot-swaps have happened.
func (l *Loader) Reloads() int { return l.reloads }

// State returns the owned state blob.
func (l *Loader) State() *State { return l.state }

// Load resolves the simulation's entry points and initializes the state
// blob from scratch. On failure the loader stays Unloaded.
func (l *Loader) Load(id string) error {
	s, err := resolve(id)
	if err != nil {
		return err
	}
	l.state.Reset()
	l.install(s, id)
	l.active.Init(l.state)
	l.logger.Info("simulation loaded", "sim", id)
	return nil
}

// Reload atomically swaps the active entry points while preserving the
// state blob's raw bytes. A failed reload leaves the running version and
// its state untouched and returns a wrapped ErrLoad; the caller reports
// it and carries on. Detecting an incompatible state layout is the
// simulation's job, via the version tag inside its own blob.
func (l *Loader) Reload(id string) error {
	if l.status == StatusUnloaded {
		return fmt.Errorf("%w: reload before load", ErrLoad)
	}
	l.status = StatusReloading
	s, err := resolve(id)
	if err != nil {
		l.status = StatusLoaded
		return err
	}
	l.install(s, id)
	l.active.Init(l.state)
	l.reloads++
	l.logger.Info("simulation reloaded", "sim", id, "reloads", l.reloads)
	return nil
}

// Unload drops the active entry points. The state blob is kept so a
// subsequent Load of the same simulation could resume it, but Load always
// resets it.
func (l *Loader) Unload() {
	l.active = nil
	l.renderer = nil
	l.activeID = ""
	l.status = StatusUnloaded
}

func (l *Loader) install(s Simulation, id string) {
	l.active = s
	l.activeID = id
	l.renderer, _ = s.(Renderer)
	l.status = StatusLoaded
}

// Update forwards to the active simulation's update entry point.
func (l *Loader) Update(fb *video.Backbuffer, in *input.Snapshot, dt float64) error {
	if l.active == nil {
		return ErrNotLoaded
	}
	l.active.Update(l.state, fb, in, dt)
	if l.renderer != nil {
		l.renderer.Render(l.state, fb)
	}
	return nil
}

// RenderAudio forwards to the active simulation's audio entry point.
func (l *Loader) RenderAudio(region audio.Region, dt float64) error {
	if l.active == nil {
		return ErrNotLoaded
	}
	l.active.RenderAudio(l.state, region, dt)
	return nil
}

func resolve(id string) (Simulation, error) {
	f, ok := lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: unknown simulation %q", ErrLoad, id)
	}
	s := f()
	if s == nil {
		return nil, fmt.Errorf("%w: factory for %q returned nil", ErrLoad, id)
	}
	return s, nil
}
