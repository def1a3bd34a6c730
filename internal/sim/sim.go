// Package sim defines the contract between the platform and the pluggable
// simulation, the opaque state blob that survives hot-reloads, and the
// loader that swaps simulation code at runtime.
package sim

import (
	"github.com/vovakirdan/pixelhost/internal/audio"
	"github.com/vovakirdan/pixelhost/internal/input"
	"github.com/vovakirdan/pixelhost/internal/video"
)

// Simulation is the entire surface of "the game" as seen by the platform.
// Implementations receive temporary mutable access to the backbuffer and
// read-only access to the input snapshot during Update and must not retain
// either beyond the call.
//
// A failure inside any of these callbacks is fatal for the whole process:
// a software-rendered real-time loop has no safe partial-failure mode for
// a broken simulation, so the loader does not recover panics.
type Simulation interface {
	// ID returns a unique identifier (e.g. "gradient"), used for CLI
	// commands and telemetry.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Init prepares the state blob. Called after every load and reload;
	// the simulation inspects its own version tag inside the blob and
	// must preserve state it still understands rather than reinitialize.
	Init(st *State)

	// Update advances the simulation by dt seconds and renders into fb.
	Update(st *State, fb *video.Backbuffer, in *input.Snapshot, dt float64)

	// RenderAudio fills the reserved ring-buffer region with dt seconds
	// worth of samples (the region length is the platform's budget, which
	// may exceed dt for safety).
	RenderAudio(st *State, region audio.Region, dt float64)
}

// Renderer is an optional second render pass. When a simulation implements
// it, the platform invokes Render after Update each frame, allowing
// implementations to split state advancement from drawing.
type Renderer interface {
	Render(st *State, fb *video.Backbuffer)
}
