package gradient

import (
	"testing"

	"github.com/vovakirdan/pixelhost/internal/input"
	"github.com/vovakirdan/pixelhost/internal/sim"
	"github.com/vovakirdan/pixelhost/internal/sims/simutil"
	"github.com/vovakirdan/pixelhost/internal/video"
)

func newState(t *testing.T) *sim.State {
	t.Helper()
	st, err := sim.NewState(StateBytes)
	if err != nil {
		t.Fatalf("NewState() failed: %v", err)
	}
	return st
}

func TestInitWritesHeader(t *testing.T) {
	g := &Gradient{}
	st := newState(t)

	g.Init(st)

	if !st.Initialized {
		t.Error("Init should mark the state initialized")
	}
	h := simutil.ReadHeader(st.Bytes())
	if h.Magic != stateMagic || h.Version != stateVersion {
		t.Errorf("header = %+v, expected magic %#x version %d", h, stateMagic, stateVersion)
	}
	if got := simutil.F64(st.Bytes(), offToneHz); got != baseToneHz {
		t.Errorf("initial tone = %v, expected %v", got, baseToneHz)
	}
}

func TestInitPreservesCompatibleState(t *testing.T) {
	g := &Gradient{}
	st := newState(t)
	fb, _ := video.New(16, 16)
	in := input.NewState()

	g.Init(st)
	for i := 0; i < 10; i++ {
		g.Update(st, fb, in.Current(), 1.0/60.0)
	}
	before := st.Snapshot()

	// Reload path: Init on an already-initialized compatible blob.
	g.Init(st)

	after := st.Snapshot()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("Init reinitialized a compatible blob (byte %d changed)", i)
		}
	}
}

func TestInitResetsOnVersionMismatch(t *testing.T) {
	g := &Gradient{}
	st := newState(t)

	g.Init(st)
	simutil.WriteHeader(st.Bytes(), simutil.Header{Magic: stateMagic, Version: stateVersion + 1})
	simutil.PutF64(st.Bytes(), offToneHz, 9999)

	g.Init(st)

	if got := simutil.F64(st.Bytes(), offToneHz); got != baseToneHz {
		t.Errorf("tone after incompatible-version Init = %v, expected reset to %v", got, baseToneHz)
	}
}

func TestUpdateRendersEveryPixel(t *testing.T) {
	g := &Gradient{}
	st := newState(t)
	fb, _ := video.New(8, 8)
	in := input.NewState()

	g.Init(st)
	g.Update(st, fb, in.Current(), 1.0/60.0)

	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			c, err := fb.PixelAt(x, y)
			if err != nil {
				t.Fatalf("PixelAt(%d, %d) failed: %v", x, y, err)
			}
			if c.A != 0xff {
				t.Fatalf("pixel (%d, %d) alpha = %#x, expected opaque", x, y, c.A)
			}
		}
	}
}

func TestToneKeysAdjustPitch(t *testing.T) {
	g := &Gradient{}
	st := newState(t)
	fb, _ := video.New(4, 4)
	in := input.NewState()

	g.Init(st)

	in.BeginFrame(0)
	in.ApplyKey(input.KeyActionA, true)
	g.Update(st, fb, in.Current(), 1.0/60.0)

	if got := simutil.F64(st.Bytes(), offToneHz); got != baseToneHz+toneStepHz {
		t.Errorf("tone after ActionA = %v, expected %v", got, baseToneHz+toneStepHz)
	}

	// Held key must not keep stepping.
	in.BeginFrame(1)
	g.Update(st, fb, in.Current(), 1.0/60.0)
	if got := simutil.F64(st.Bytes(), offToneHz); got != baseToneHz+toneStepHz {
		t.Errorf("tone while ActionA held = %v, expected unchanged", got)
	}
}
