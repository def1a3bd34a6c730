package bounce

import (
	"testing"

	"github.com/vovakirdan/pixelhost/internal/input"
	"github.com/vovakirdan/pixelhost/internal/sim"
	"github.com/vovakirdan/pixelhost/internal/sims/simutil"
	"github.com/vovakirdan/pixelhost/internal/video"
)

func setup(t *testing.T) (*Bounce, *sim.State, *video.Backbuffer, *input.State) {
	t.Helper()
	st, err := sim.NewState(StateBytes)
	if err != nil {
		t.Fatalf("NewState() failed: %v", err)
	}
	fb, err := video.New(200, 200)
	if err != nil {
		t.Fatalf("video.New() failed: %v", err)
	}
	s := &Bounce{}
	s.Init(st)
	return s, st, fb, input.NewState()
}

func TestSquareStaysInBounds(t *testing.T) {
	s, st, fb, in := setup(t)

	for i := 0; i < 2000; i++ {
		s.Update(st, fb, in.Current(), 1.0/60.0)
		x := simutil.F64(st.Bytes(), offX)
		y := simutil.F64(st.Bytes(), offY)
		if x < 0 || x > float64(fb.Width()-squareSize) {
			t.Fatalf("tick %d: x = %v out of bounds", i, x)
		}
		if y < 0 || y > float64(fb.Height()-squareSize) {
			t.Fatalf("tick %d: y = %v out of bounds", i, y)
		}
	}
}

func TestClickTeleports(t *testing.T) {
	s, st, fb, in := setup(t)

	in.BeginFrame(0)
	in.ApplyMouseMove(100, 120)
	in.ApplyMouseButton(input.MouseLeft, true)
	s.Update(st, fb, in.Current(), 0) // dt 0 isolates the teleport

	x := simutil.F64(st.Bytes(), offX)
	y := simutil.F64(st.Bytes(), offY)
	if x != 100-squareSize/2 || y != 120-squareSize/2 {
		t.Errorf("square at (%v, %v), expected centered on the click", x, y)
	}
}

func TestRenderDrawsSquare(t *testing.T) {
	s, st, fb, _ := setup(t)

	s.Render(st, fb)

	x := int(simutil.F64(st.Bytes(), offX))
	y := int(simutil.F64(st.Bytes(), offY))
	c, err := fb.PixelAt(x+squareSize/2, y+squareSize/2)
	if err != nil {
		t.Fatalf("PixelAt() failed: %v", err)
	}
	if c.R != 0xff || c.G != 0xa0 {
		t.Errorf("square center = %+v, expected the square color", c)
	}
}
