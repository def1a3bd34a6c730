package video

import (
	"errors"
	"testing"
)

func TestNewBackbuffer(t *testing.T) {
	b, err := New(640, 480)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if b.Width() != 640 {
		t.Errorf("Width() = %d, expected 640", b.Width())
	}
	if b.Height() != 480 {
		t.Errorf("Height() = %d, expected 480", b.Height())
	}
	if b.Pitch() < b.Width()*BytesPerPixel {
		t.Errorf("Pitch() = %d, expected >= %d", b.Pitch(), b.Width()*BytesPerPixel)
	}
	if len(b.Pix()) != b.Pitch()*b.Height() {
		t.Errorf("len(Pix()) = %d, expected pitch*height = %d", len(b.Pix()), b.Pitch()*b.Height())
	}
}

func TestResizeInvariants(t *testing.T) {
	b, err := New(10, 10)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	sizes := [][2]int{{1, 1}, {320, 240}, {7, 13}, {640, 480}, {3, 200}}
	for _, sz := range sizes {
		if err := b.Resize(sz[0], sz[1]); err != nil {
			t.Fatalf("Resize(%d, %d) failed: %v", sz[0], sz[1], err)
		}
		if len(b.Pix()) != b.Pitch()*b.Height() {
			t.Errorf("after Resize(%d, %d): len(pix) = %d, expected %d",
				sz[0], sz[1], len(b.Pix()), b.Pitch()*b.Height())
		}
		if b.Pitch() < b.Width()*BytesPerPixel {
			t.Errorf("after Resize(%d, %d): pitch %d < width*4", sz[0], sz[1], b.Pitch())
		}
	}
}

func TestResizeZeroFills(t *testing.T) {
	b, err := New(8, 8)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	b.Fill(Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff})

	if err := b.Resize(16, 4); err != nil {
		t.Fatalf("Resize() failed: %v", err)
	}

	for i, v := range b.Pix() {
		if v != 0 {
			t.Fatalf("stale data after resize: pix[%d] = %#x, expected 0", i, v)
		}
	}
}

func TestResizeInvalidDimensions(t *testing.T) {
	b, err := New(4, 4)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	cases := [][2]int{{0, 10}, {10, 0}, {-1, 10}, {10, -1}, {1 << 40, 1 << 40}}
	for _, c := range cases {
		err := b.Resize(c[0], c[1])
		if !errors.Is(err, ErrAllocation) {
			t.Errorf("Resize(%d, %d) = %v, expected ErrAllocation", c[0], c[1], err)
		}
	}

	// A failed resize must not corrupt the previous buffer.
	if b.Width() != 4 || b.Height() != 4 || len(b.Pix()) != b.Pitch()*b.Height() {
		t.Error("failed Resize corrupted the existing buffer")
	}
}

func TestPixelAtBounds(t *testing.T) {
	b, err := New(4, 4)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	want := Color{R: 1, G: 2, B: 3, A: 4}
	b.SetPixel(2, 3, want)

	got, err := b.PixelAt(2, 3)
	if err != nil {
		t.Fatalf("PixelAt(2, 3) failed: %v", err)
	}
	if got != want {
		t.Errorf("PixelAt(2, 3) = %+v, expected %+v", got, want)
	}

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {4, 0}, {0, 4}} {
		if _, err := b.PixelAt(c[0], c[1]); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("PixelAt(%d, %d) = %v, expected ErrOutOfBounds", c[0], c[1], err)
		}
	}

	// SetPixel out of bounds is silent.
	b.SetPixel(-1, 0, want)
	b.SetPixel(100, 100, want)
}

func TestFillRectClips(t *testing.T) {
	b, err := New(4, 4)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	c := Color{R: 9, A: 0xff}
	b.FillRect(-2, -2, 4, 4, c) // Only (0,0)..(1,1) lands

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			got, _ := b.PixelAt(x, y)
			inside := x < 2 && y < 2
			if inside && got != c {
				t.Errorf("pixel (%d,%d) = %+v, expected filled", x, y, got)
			}
			if !inside && got != (Color{}) {
				t.Errorf("pixel (%d,%d) = %+v, expected untouched", x, y, got)
			}
		}
	}
}

func TestCopyToPitchMismatch(t *testing.T) {
	b, err := New(3, 2)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	b.Fill(Color{R: 0xaa, G: 0xbb, B: 0xcc, A: 0xff})

	// Destination stride wider than the source row.
	dstPitch := 16
	dst := make([]byte, dstPitch*b.Height())
	if err := b.CopyTo(dst, dstPitch); err != nil {
		t.Fatalf("CopyTo() failed: %v", err)
	}

	for y := 0; y < b.Height(); y++ {
		for x := 0; x < b.Width(); x++ {
			o := y*dstPitch + x*BytesPerPixel
			if dst[o] != 0xaa || dst[o+1] != 0xbb || dst[o+2] != 0xcc || dst[o+3] != 0xff {
				t.Fatalf("row %d pixel %d not copied", y, x)
			}
		}
		// Padding bytes beyond the row must be untouched.
		for o := y*dstPitch + b.Width()*BytesPerPixel; o < (y+1)*dstPitch; o++ {
			if dst[o] != 0 {
				t.Fatalf("padding byte %d written", o)
			}
		}
	}

	// Too-narrow destination pitch is an error.
	if err := b.CopyTo(dst, 8); err == nil {
		t.Error("CopyTo with pitch < row size should fail")
	}
}

func TestImageAliasesPixels(t *testing.T) {
	b, err := New(2, 2)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	img := b.Image()
	b.SetPixel(1, 1, Color{R: 0x7f, A: 0xff})

	got := img.RGBAAt(1, 1)
	if got.R != 0x7f || got.A != 0xff {
		t.Errorf("Image() does not alias pixel storage, got %+v", got)
	}
}
