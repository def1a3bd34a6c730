// pixelhost hosts pixel-buffer simulations in a desktop window or a
// terminal, with hot reload and a fed audio stream.
//
// Usage:
//
//	pixelhost list              - List available simulations
//	pixelhost run <sim>         - Host a simulation
//	pixelhost serve             - Serve simulations over SSH
//	pixelhost stats             - Show recorded run statistics
//
// Global flags:
//
//	--config <path>  - Host config YAML (default: search path)
//	--db <path>      - Run-stats database path
//	--log <level>    - Log level: debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixelhost/internal/config"

	// Import simulations to register them
	_ "github.com/vovakirdan/pixelhost/internal/sims/bounce"
	_ "github.com/vovakirdan/pixelhost/internal/sims/gradient"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pixelhost",
	Short: "Host pixel-buffer simulations with hot reload",
	Long: `pixelhost runs small real-time simulations against a raw RGBA
back-buffer and a 16-bit PCM audio stream, in an OS window or directly
in your terminal.

Available commands:
  list     - Show all available simulations
  run      - Host a simulation
  serve    - Serve simulations over SSH
  stats    - View recorded run statistics

Examples:
  pixelhost list
  pixelhost run gradient
  pixelhost run bounce --display terminal
  pixelhost serve --ssh :2222 --sim bounce
  pixelhost stats`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to host config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run-stats database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log", "", "Log level: debug, info, warn, error (overrides config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statsCmd)
}

// loadConfig resolves the effective configuration from the search path
// plus command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDBPath != "" {
		cfg.Telemetry.DBPath = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// newLogger builds the process logger from the config's log section.
func newLogger(cfg config.Config) *log.Logger {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "pixelhost",
	})
}
