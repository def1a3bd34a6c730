// Package gradient is a built-in simulation: a scrolling color gradient
// with a steady sine tone. It doubles as the reference exercise for the
// platform contract, including state preservation across hot-reloads.
package gradient

import (
	"math"

	"github.com/vovakirdan/pixelhost/internal/audio"
	"github.com/vovakirdan/pixelhost/internal/input"
	"github.com/vovakirdan/pixelhost/internal/sim"
	"github.com/vovakirdan/pixelhost/internal/sims/simutil"
	"github.com/vovakirdan/pixelhost/internal/video"
)

const (
	stateMagic   = 0x47524144 // "GRAD"
	stateVersion = 1

	// Blob layout, offsets in bytes after the header.
	offXOffset   = simutil.HeaderSize
	offYOffset   = offXOffset + 8
	offToneHz    = offYOffset + 8
	offTonePhase = offToneHz + 8

	// StateBytes is the blob space this simulation needs.
	StateBytes = offTonePhase + 8

	scrollSpeed = 120.0 // pixels per second
	baseToneHz  = 256.0
	toneStepHz  = 32.0
	toneVolume  = 3000 // out of 32767
)

type Gradient struct{}

func init() {
	sim.Register("gradient", func() sim.Simulation { return &Gradient{} })
}

func (g *Gradient) ID() string    { return "gradient" }
func (g *Gradient) Title() string { return "Scrolling Gradient" }

// Init lays out the blob unless a compatible layout is already present.
func (g *Gradient) Init(st *sim.State) {
	b := st.Bytes()
	if st.Initialized && simutil.ReadHeader(b) == (simutil.Header{Magic: stateMagic, Version: stateVersion}) {
		return
	}
	simutil.WriteHeader(b, simutil.Header{Magic: stateMagic, Version: stateVersion})
	simutil.PutF64(b, offXOffset, 0)
	simutil.PutF64(b, offYOffset, 0)
	simutil.PutF64(b, offToneHz, baseToneHz)
	simutil.PutF64(b, offTonePhase, 0)
	st.Initialized = true
}

func (g *Gradient) Update(st *sim.State, fb *video.Backbuffer, in *input.Snapshot, dt float64) {
	b := st.Bytes()
	xOff := simutil.F64(b, offXOffset)
	yOff := simutil.F64(b, offYOffset)
	tone := simutil.F64(b, offToneHz)

	if in.IsDown(input.KeyRight) {
		xOff += scrollSpeed * dt
	}
	if in.IsDown(input.KeyLeft) {
		xOff -= scrollSpeed * dt
	}
	if in.IsDown(input.KeyDown) {
		yOff += scrollSpeed * dt
	}
	if in.IsDown(input.KeyUp) {
		yOff -= scrollSpeed * dt
	}
	if in.IsPressed(input.KeyActionA) {
		tone += toneStepHz
	}
	if in.IsPressed(input.KeyActionB) {
		tone = max(tone-toneStepHz, toneStepHz)
	}
	if !in.IsDown(input.KeyLeft) && !in.IsDown(input.KeyRight) {
		xOff += scrollSpeed * 0.25 * dt // idle drift
	}

	simutil.PutF64(b, offXOffset, xOff)
	simutil.PutF64(b, offYOffset, yOff)
	simutil.PutF64(b, offToneHz, tone)

	g.render(fb, int(xOff), int(yOff))
}

// render draws the wrapping two-axis gradient: blue follows x, green
// follows y, red marks the diagonal.
func (g *Gradient) render(fb *video.Backbuffer, xOff, yOff int) {
	pix := fb.Pix()
	for y := 0; y < fb.Height(); y++ {
		row := pix[y*fb.Pitch():]
		gv := uint8(y + yOff)
		for x := 0; x < fb.Width(); x++ {
			o := x * video.BytesPerPixel
			bv := uint8(x + xOff)
			row[o] = bv & gv
			row[o+1] = gv
			row[o+2] = bv
			row[o+3] = 0xff
		}
	}
}

// RenderAudio emits a sine tone, advancing the phase across the whole
// reserved region so frames join without clicks.
func (g *Gradient) RenderAudio(st *sim.State, region audio.Region, dt float64) {
	b := st.Bytes()
	tone := simutil.F64(b, offToneHz)
	phase := simutil.F64(b, offTonePhase)

	// Assumes the platform's default stream format (48 kHz stereo); other
	// formats detune the tone but stay glitch-free.
	step := 2 * math.Pi * tone / 48000.0
	write := func(s []int16) {
		for i := 0; i+1 < len(s); i += 2 {
			v := int16(math.Sin(phase) * toneVolume)
			s[i] = v
			s[i+1] = v
			phase += step
		}
	}
	write(region.First)
	write(region.Second)

	// Keep the phase bounded.
	phase = math.Mod(phase, 2*math.Pi)
	simutil.PutF64(b, offTonePhase, phase)
}
