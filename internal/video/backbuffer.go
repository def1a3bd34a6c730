// Package video provides the raw RGBA back-buffer that simulations render
// into each frame. It contains no display dependencies; putting the pixels
// on an actual window is the platform backend's job.
package video

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// BytesPerPixel is the size of one RGBA pixel.
const BytesPerPixel = 4

var (
	// ErrAllocation indicates the requested buffer dimensions cannot be
	// allocated. Rendering cannot proceed without a back-buffer, so callers
	// treat this as fatal.
	ErrAllocation = errors.New("video: cannot allocate backbuffer")

	// ErrOutOfBounds indicates a pixel access outside the buffer.
	ErrOutOfBounds = errors.New("video: pixel out of bounds")
)

// Color is a single RGBA pixel value.
type Color struct {
	R, G, B, A uint8
}

// Backbuffer is an off-screen RGBA pixel grid sized to the window client
// area. It owns its pixel storage exclusively; on resize the old buffer is
// discarded, never shared.
//
// Layout is row-major with Pitch bytes per row, matching image.RGBA so
// backends can hand the pixels to a display surface without conversion.
type Backbuffer struct {
	width  int
	height int
	pitch  int // bytes per row, >= width*4
	pix    []byte
}

// New creates a zero-filled back-buffer with the given dimensions.
func New(width, height int) (*Backbuffer, error) {
	b := &Backbuffer{}
	if err := b.Resize(width, height); err != nil {
		return nil, err
	}
	return b, nil
}

// Width returns the buffer width in pixels.
func (b *Backbuffer) Width() int { return b.width }

// Height returns the buffer height in pixels.
func (b *Backbuffer) Height() int { return b.height }

// Pitch returns the number of bytes per row.
func (b *Backbuffer) Pitch() int { return b.pitch }

// Pix returns the raw pixel storage. The slice is owned by the buffer and
// is invalidated by the next Resize.
func (b *Backbuffer) Pix() []byte { return b.pix }

// Resize reallocates the pixel buffer to the new dimensions and zero-fills
// it. Old contents are discarded without resampling. Returns ErrAllocation
// for non-positive or overflowing dimensions.
func (b *Backbuffer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrAllocation, width, height)
	}
	if width > (math.MaxInt/BytesPerPixel)/height {
		return fmt.Errorf("%w: %dx%d overflows", ErrAllocation, width, height)
	}
	pitch := width * BytesPerPixel
	b.width = width
	b.height = height
	b.pitch = pitch
	b.pix = make([]byte, pitch*height) // zero-filled by make
	return nil
}

// Clear zero-fills the whole buffer (transparent black).
func (b *Backbuffer) Clear() {
	clear(b.pix)
}

// Fill sets every pixel to c.
func (b *Backbuffer) Fill(c Color) {
	// Write the first row byte by byte, then replicate it.
	row := b.pix[:b.pitch]
	for x := 0; x < b.width; x++ {
		o := x * BytesPerPixel
		row[o] = c.R
		row[o+1] = c.G
		row[o+2] = c.B
		row[o+3] = c.A
	}
	for y := 1; y < b.height; y++ {
		copy(b.pix[y*b.pitch:(y+1)*b.pitch], row)
	}
}

// SetPixel writes one pixel. Out-of-bounds coordinates are silently
// ignored; this is the hot-path policy so simulations can draw partially
// clipped shapes without per-pixel error handling.
func (b *Backbuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	o := y*b.pitch + x*BytesPerPixel
	b.pix[o] = c.R
	b.pix[o+1] = c.G
	b.pix[o+2] = c.B
	b.pix[o+3] = c.A
}

// PixelAt is the checked accessor: it returns ErrOutOfBounds instead of
// clamping, for callers that need to distinguish a miss from black.
func (b *Backbuffer) PixelAt(x, y int) (Color, error) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Color{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfBounds, x, y, b.width, b.height)
	}
	o := y*b.pitch + x*BytesPerPixel
	return Color{R: b.pix[o], G: b.pix[o+1], B: b.pix[o+2], A: b.pix[o+3]}, nil
}

// FillRect fills a rectangle, clipping it against the buffer bounds.
func (b *Backbuffer) FillRect(x, y, w, h int, c Color) {
	x0 := max(x, 0)
	y0 := max(y, 0)
	x1 := min(x+w, b.width)
	y1 := min(y+h, b.height)
	for py := y0; py < y1; py++ {
		o := py*b.pitch + x0*BytesPerPixel
		for px := x0; px < x1; px++ {
			b.pix[o] = c.R
			b.pix[o+1] = c.G
			b.pix[o+2] = c.B
			b.pix[o+3] = c.A
			o += BytesPerPixel
		}
	}
}

// CopyTo copies the full buffer into dst, which uses dstPitch bytes per
// row. Handles pitch mismatches by copying row by row; dst must hold at
// least height full rows.
func (b *Backbuffer) CopyTo(dst []byte, dstPitch int) error {
	rowBytes := b.width * BytesPerPixel
	if dstPitch < rowBytes {
		return fmt.Errorf("video: destination pitch %d < row size %d", dstPitch, rowBytes)
	}
	if len(dst) < b.height*dstPitch {
		return fmt.Errorf("video: destination too small: %d < %d", len(dst), b.height*dstPitch)
	}
	if dstPitch == b.pitch {
		copy(dst, b.pix)
		return nil
	}
	for y := 0; y < b.height; y++ {
		copy(dst[y*dstPitch:y*dstPitch+rowBytes], b.pix[y*b.pitch:y*b.pitch+rowBytes])
	}
	return nil
}

// Image wraps the pixel storage as an image.RGBA without copying. The
// returned image aliases the buffer and is invalidated by the next Resize.
func (b *Backbuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.pix,
		Stride: b.pitch,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}
