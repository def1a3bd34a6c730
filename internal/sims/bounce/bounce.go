// Package bounce is a built-in simulation: a square that bounces off the
// buffer edges, steerable with the arrow keys and teleportable with a
// mouse click. Exercises input transitions and mouse state.
package bounce

import (
	"math"

	"github.com/vovakirdan/pixelhost/internal/audio"
	"github.com/vovakirdan/pixelhost/internal/input"
	"github.com/vovakirdan/pixelhost/internal/sim"
	"github.com/vovakirdan/pixelhost/internal/sims/simutil"
	"github.com/vovakirdan/pixelhost/internal/video"
)

const (
	stateMagic   = 0x424e4345 // "BNCE"
	stateVersion = 1

	offX     = simutil.HeaderSize
	offY     = offX + 8
	offVX    = offY + 8
	offVY    = offVX + 8
	offPhase = offVY + 8

	// StateBytes is the blob space this simulation needs.
	StateBytes = offPhase + 8

	squareSize = 24
	accel      = 600.0 // pixels per second^2 under key input
	startVX    = 140.0
	startVY    = 90.0
	toneVolume = 2500
)

type Bounce struct{}

func init() {
	sim.Register("bounce", func() sim.Simulation { return &Bounce{} })
}

func (s *Bounce) ID() string    { return "bounce" }
func (s *Bounce) Title() string { return "Bouncing Square" }

func (s *Bounce) Init(st *sim.State) {
	b := st.Bytes()
	if st.Initialized && simutil.ReadHeader(b) == (simutil.Header{Magic: stateMagic, Version: stateVersion}) {
		return
	}
	simutil.WriteHeader(b, simutil.Header{Magic: stateMagic, Version: stateVersion})
	simutil.PutF64(b, offX, 40)
	simutil.PutF64(b, offY, 40)
	simutil.PutF64(b, offVX, startVX)
	simutil.PutF64(b, offVY, startVY)
	simutil.PutF64(b, offPhase, 0)
	st.Initialized = true
}

func (s *Bounce) Update(st *sim.State, fb *video.Backbuffer, in *input.Snapshot, dt float64) {
	b := st.Bytes()
	x := simutil.F64(b, offX)
	y := simutil.F64(b, offY)
	vx := simutil.F64(b, offVX)
	vy := simutil.F64(b, offVY)

	if in.IsDown(input.KeyRight) {
		vx += accel * dt
	}
	if in.IsDown(input.KeyLeft) {
		vx -= accel * dt
	}
	if in.IsDown(input.KeyDown) {
		vy += accel * dt
	}
	if in.IsDown(input.KeyUp) {
		vy -= accel * dt
	}
	if in.Mouse.Buttons[input.MouseLeft].Pressed() {
		x = float64(in.Mouse.X) - squareSize/2
		y = float64(in.Mouse.Y) - squareSize/2
	}

	x += vx * dt
	y += vy * dt

	maxX := float64(fb.Width() - squareSize)
	maxY := float64(fb.Height() - squareSize)
	if x < 0 {
		x, vx = 0, -vx
	} else if x > maxX {
		x, vx = maxX, -vx
	}
	if y < 0 {
		y, vy = 0, -vy
	} else if y > maxY {
		y, vy = maxY, -vy
	}

	simutil.PutF64(b, offX, x)
	simutil.PutF64(b, offY, y)
	simutil.PutF64(b, offVX, vx)
	simutil.PutF64(b, offVY, vy)
}

// Render is the optional second pass; drawing is split from Update so the
// platform exercises both entry points.
func (s *Bounce) Render(st *sim.State, fb *video.Backbuffer) {
	b := st.Bytes()
	x := int(simutil.F64(b, offX))
	y := int(simutil.F64(b, offY))

	fb.Fill(video.Color{R: 0x10, G: 0x10, B: 0x18, A: 0xff})
	fb.FillRect(x, y, squareSize, squareSize, video.Color{R: 0xff, G: 0xa0, B: 0x20, A: 0xff})
}

// RenderAudio hums at a pitch that follows the square's horizontal
// position.
func (s *Bounce) RenderAudio(st *sim.State, region audio.Region, dt float64) {
	b := st.Bytes()
	phase := simutil.F64(b, offPhase)
	tone := 180.0 + simutil.F64(b, offX)

	step := 2 * math.Pi * tone / 48000.0
	write := func(smp []int16) {
		for i := 0; i+1 < len(smp); i += 2 {
			v := int16(math.Sin(phase) * toneVolume)
			smp[i] = v
			smp[i+1] = v
			phase += step
		}
	}
	write(region.First)
	write(region.Second)

	simutil.PutF64(b, offPhase, math.Mod(phase, 2*math.Pi))
}
