package terminal

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/vovakirdan/pixelhost/internal/platform"
	"github.com/vovakirdan/pixelhost/internal/sim"
)

// DefaultSampleRate is the stream rate the mute sink advertises, matching
// what the desktop backend negotiates.
const DefaultSampleRate = 48000

// Run hosts the loaded simulation in the local terminal until the user
// quits, returning the final run statistics. The Bubble Tea program owns
// the terminal; the frame loop runs in a separate goroutine and exchanges
// frames and events with it.
func Run(ctx context.Context, loader *sim.Loader, opts platform.Options) (platform.Stats, error) {
	cols, rows := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cols, rows = w, h
	}

	win := NewWindow(cols, rows)
	sink := NewSink(DefaultSampleRate, 2)

	loop, err := platform.New(win, sink, loader, opts)
	if err != nil {
		return platform.Stats{}, err
	}

	p := tea.NewProgram(
		NewModel(win),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	win.SetProgram(p)

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- loop.Run(ctx)
	}()

	_, teaErr := p.Run()

	// The program is gone; make sure the loop notices and drains.
	win.push(platform.CloseEvent())
	err = <-loopErr

	if teaErr != nil {
		return loop.Stats(), fmt.Errorf("terminal: %w", teaErr)
	}
	return loop.Stats(), err
}
