package sim

import (
	"errors"
	"fmt"
)

// MaxStateBytes is the fixed ceiling for a simulation state blob.
const MaxStateBytes = 2 << 20 // 2 MiB

// ErrStateSize indicates an invalid state blob size.
var ErrStateSize = errors.New("sim: invalid state size")

// State is the opaque memory region a simulation keeps its world in. The
// loader owns the allocation; the layout is defined solely by the
// currently loaded simulation code. The bytes survive reloads untouched,
// so simulations are expected to version-tag their own layout (see
// simutil.Header) instead of trusting raw reinterpretation.
type State struct {
	// Initialized is set by the simulation once it has laid out the blob.
	// The loader never resets it; a reload therefore sees initialized
	// state and must preserve it.
	Initialized bool

	data []byte
}

// NewState allocates a zeroed state blob of the given size.
func NewState(size int) (*State, error) {
	if size <= 0 || size > MaxStateBytes {
		return nil, fmt.Errorf("%w: %d (max %d)", ErrStateSize, size, MaxStateBytes)
	}
	return &State{data: make([]byte, size)}, nil
}

// Bytes returns the full state region. The slice is stable for the life
// of the loader; simulations may keep offsets into it but the platform
// loop is the only code that should hold the *State between frames.
func (s *State) Bytes() []byte { return s.data }

// Size returns the blob size in bytes.
func (s *State) Size() int { return len(s.data) }

// Snapshot returns a copy of the blob, for tests and diagnostics.
func (s *State) Snapshot() []byte {
	out := make([]byte, len(s.data))
	copy(out, s.data)
	return out
}

// Reset zero-fills the blob and clears Initialized. Used when loading a
// fresh simulation, never during a reload.
func (s *State) Reset() {
	clear(s.data)
	s.Initialized = false
}
