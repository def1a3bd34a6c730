package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixelhost/internal/platform/terminal"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagServeSim    string
	flagServeWidth  int
	flagServeHeight int
	flagServeFPS    int
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve simulations over SSH",
	Long: `Start an SSH server that hosts a simulation for each connection.

Every session gets its own isolated state blob, back-buffer, and frame
loop, rendered into the client's terminal.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.pixelhost/host_key

Examples:
  pixelhost serve --sim gradient              # Listen on :23234
  pixelhost serve --sim bounce --ssh :2222
  pixelhost serve --sim bounce --fps 20       # Gentle on slow links

Users can connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagServeSim, "sim", "gradient", "Simulation to host for each session")
	serveCmd.Flags().IntVar(&flagServeWidth, "width", 320, "Per-session back-buffer width")
	serveCmd.Flags().IntVar(&flagServeHeight, "height", 240, "Per-session back-buffer height")
	serveCmd.Flags().IntVar(&flagServeFPS, "fps", 30, "Per-session frame cadence")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := terminal.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		SimID:       flagServeSim,
		Width:       flagServeWidth,
		Height:      flagServeHeight,
		TargetFPS:   flagServeFPS,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}

	server, err := terminal.NewSSHServer(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Serving %q on %s\n", flagServeSim, cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
