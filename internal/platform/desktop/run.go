package desktop

import (
	"context"
	"errors"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/pixelhost/internal/platform"
	"github.com/vovakirdan/pixelhost/internal/sim"
)

// DefaultSampleRate is the stream rate negotiated with Ebiten's mixer.
const DefaultSampleRate = 48000

// game adapts the frame loop to Ebiten's callbacks. Update runs exactly
// one loop iteration; pacing belongs to Ebiten's TPS scheduler, so the
// loop's own sleep is never used here.
type game struct {
	ctx  context.Context
	loop *platform.Loop
	win  *Window
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		g.loop.RequestQuit()
	}
	cont, err := g.loop.Step()
	if err != nil {
		return err
	}
	if !cont {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.win.draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	fb := g.loop.Backbuffer()
	return fb.Width(), fb.Height()
}

// Run hosts the loaded simulation in an OS window until the user quits,
// returning the final run statistics. It blocks on Ebiten's game loop and
// must be called from the main goroutine.
func Run(ctx context.Context, loader *sim.Loader, opts platform.Options, title string) (platform.Stats, error) {
	win := NewWindow()
	sink := NewSink(DefaultSampleRate)

	loop, err := platform.New(win, sink, loader, opts)
	if err != nil {
		return platform.Stats{}, err
	}
	defer loop.Close()

	fb := loop.Backbuffer()
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(fb.Width(), fb.Height())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(int(math.Round(1.0 / loop.Clock().TargetFrameSeconds())))

	g := &game{ctx: ctx, loop: loop, win: win}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return loop.Stats(), err
	}
	return loop.Stats(), nil
}
