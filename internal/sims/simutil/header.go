// Package simutil provides helpers shared by the built-in simulations:
// the version-tagged blob header and a deterministic RNG.
package simutil

import (
	"encoding/binary"
	"math"
)

// HeaderSize is the size of the blob header in bytes.
const HeaderSize = 8

// Header is the version tag a simulation writes at offset 0 of its state
// blob. The loader preserves blob bytes across reloads, so on Init a
// simulation checks the header: a match means resume, a mismatch (or a
// fresh zeroed blob) means lay the state out from scratch.
type Header struct {
	Magic   uint32
	Version uint32
}

// ReadHeader decodes the header at the start of b.
func ReadHeader(b []byte) Header {
	return Header{
		Magic:   binary.LittleEndian.Uint32(b[0:4]),
		Version: binary.LittleEndian.Uint32(b[4:8]),
	}
}

// WriteHeader encodes h at the start of b.
func WriteHeader(b []byte, h Header) {
	binary.LittleEndian.PutUint32(b[0:4], h.Magic)
	binary.LittleEndian.PutUint32(b[4:8], h.Version)
}

// U32 reads a uint32 at offset off.
func U32(b []byte, off int) uint32 {
	return binary.LittleEndian.Uint32(b[off : off+4])
}

// PutU32 writes a uint32 at offset off.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// F64 reads a float64 at offset off.
func F64(b []byte, off int) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b[off : off+8]))
}

// PutF64 writes a float64 at offset off.
func PutF64(b []byte, off int, v float64) {
	binary.LittleEndian.PutUint64(b[off:off+8], math.Float64bits(v))
}
