package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixelhost/internal/config"
	"github.com/vovakirdan/pixelhost/internal/platform"
	"github.com/vovakirdan/pixelhost/internal/platform/desktop"
	"github.com/vovakirdan/pixelhost/internal/platform/headless"
	"github.com/vovakirdan/pixelhost/internal/platform/terminal"
	"github.com/vovakirdan/pixelhost/internal/sim"
	"github.com/vovakirdan/pixelhost/internal/telemetry"
)

var (
	flagDisplay string
	flagWidth   int
	flagHeight  int
	flagFPS     int
	flagLatency string
	flagFrames  int
)

var runCmd = &cobra.Command{
	Use:   "run <sim>",
	Short: "Host a simulation",
	Long: `Host the specified simulation at a fixed frame cadence.

Controls:
  Arrows/WASD  - Directional input
  Space        - Primary action
  P            - Pause (simulation time freezes, display stays live)
  R            - Hot-reload the simulation, preserving its state
  Q/Esc        - Quit

Display backends:
  window    - OS window via Ebiten (default)
  terminal  - Render into the terminal, two pixels per cell
  none      - Headless; useful with --frames for soak runs

Latency presets:
  low       - Minimal audio buffering, glitches on frame jitter
  balanced  - 1.5x provisioning (default)
  safe      - 2x provisioning, adds a frame of audio latency

Examples:
  pixelhost run gradient
  pixelhost run bounce --display terminal
  pixelhost run bounce --width 320 --height 240 --fps 30
  pixelhost run gradient --display none --frames 600
  pixelhost run bounce --latency low`,
	Args: cobra.ExactArgs(1),
	Run:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagDisplay, "display", "window", "Display backend: window, terminal, none")
	runCmd.Flags().IntVar(&flagWidth, "width", 0, "Back-buffer width (overrides config)")
	runCmd.Flags().IntVar(&flagHeight, "height", 0, "Back-buffer height (overrides config)")
	runCmd.Flags().IntVar(&flagFPS, "fps", 0, "Target frames per second (overrides config)")
	runCmd.Flags().StringVar(&flagLatency, "latency", "", "Audio latency preset: low, balanced, safe")
	runCmd.Flags().IntVar(&flagFrames, "frames", 0, "Stop after N frames (0 = run until quit)")
}

func runRun(cmd *cobra.Command, args []string) {
	simID := args[0]

	if !sim.Exists(simID) {
		fmt.Fprintf(os.Stderr, "Error: unknown simulation %q\n", simID)
		fmt.Fprintln(os.Stderr, "Run 'pixelhost list' to see available simulations.")
		os.Exit(1)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if flagWidth > 0 {
		cfg.Window.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.Window.Height = flagHeight
	}
	if flagFPS > 0 {
		cfg.Timing.TargetFPS = flagFPS
	}
	if flagLatency != "" {
		config.ApplyLatencyPreset(&cfg, config.LatencyPreset(flagLatency))
	}

	logger := newLogger(cfg)

	loader, err := sim.NewLoader(sim.MaxStateBytes, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating loader: %v\n", err)
		os.Exit(1)
	}
	if err := loader.Load(simID); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading simulation: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := cfg.LoopOptions()
	opts.Logger = logger

	var stats platform.Stats
	switch flagDisplay {
	case "window":
		stats, err = desktop.Run(ctx, loader, opts, cfg.Window.Title)
	case "terminal":
		stats, err = terminal.Run(ctx, loader, opts)
	case "none":
		stats, err = runHeadless(ctx, loader, opts, flagFrames)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown display backend %q\n", flagDisplay)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.Telemetry.Enabled {
		saveRunStats(cfg, logger, simID, stats)
	}
}

// runHeadless drives the loop against recording collaborators, pacing by
// wall clock but displaying nothing.
func runHeadless(ctx context.Context, loader *sim.Loader, opts platform.Options, frames int) (platform.Stats, error) {
	win := headless.NewWindow()
	sink := headless.NewSink(terminal.DefaultSampleRate, 2)

	loop, err := platform.New(win, sink, loader, opts)
	if err != nil {
		return platform.Stats{}, err
	}
	defer loop.Close()

	dt := loop.Clock().TargetFrameSeconds()
	for i := 0; frames == 0 || i < frames; i++ {
		if ctx.Err() != nil {
			loop.RequestQuit()
		}
		cont, err := loop.Step()
		if err != nil {
			return loop.Stats(), err
		}
		if !cont {
			break
		}
		sink.AdvanceSeconds(dt)
		loop.Clock().SleepUntilNextFrame()
	}
	return loop.Stats(), nil
}

// saveRunStats persists the session outcome, best-effort.
func saveRunStats(cfg config.Config, logger *log.Logger, simID string, stats platform.Stats) {
	store, err := telemetry.Open(cfg.Telemetry.DBPath)
	if err != nil {
		logger.Warn("could not open run-stats database", "err", err)
		return
	}
	defer store.Close()
	if _, err := store.SaveRun(simID, flagDisplay, stats); err != nil {
		logger.Warn("could not save run stats", "err", err)
	}
}
