package terminal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/pixelhost/internal/platform"
	"github.com/vovakirdan/pixelhost/internal/sim"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file. If empty, a key is
	// auto-generated at ~/.pixelhost/host_key.
	HostKeyPath string

	// SimID is the simulation every session runs.
	SimID string

	// Width and Height size each session's back-buffer.
	Width, Height int

	// TargetFPS is the per-session frame cadence.
	TargetFPS int

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Logger receives server and session events.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		Width:       320,
		Height:      240,
		TargetFPS:   30,
		IdleTimeout: 30 * time.Minute,
	}
}

// SSHServer serves the simulation over SSH via Wish. Every connection
// gets its own loader, back-buffer, and frame loop, torn down with the
// session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates an SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if !sim.Exists(cfg.SimID) {
		return nil, fmt.Errorf("terminal: unknown simulation %q", cfg.SimID)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "pixelhost-ssh",
		})
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".pixelhost", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", err)
	}

	srv := &SSHServer{config: cfg, logger: logger}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.MiddlewareWithProgramHandler(srv.programHandler, termenv.TrueColor),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// programHandler builds a Bubble Tea program plus a dedicated frame loop
// for one SSH session. The loop goroutine exits when the session's
// context is cancelled.
func (s *SSHServer) programHandler(sess ssh.Session) *tea.Program {
	pty, _, ok := sess.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sess.User())
		return nil
	}

	loader, err := sim.NewLoader(sim.MaxStateBytes, s.logger.WithPrefix(sess.User()))
	if err != nil {
		s.logger.Error("cannot create loader", "err", err)
		return nil
	}
	if err := loader.Load(s.config.SimID); err != nil {
		s.logger.Error("cannot load simulation", "sim", s.config.SimID, "err", err)
		return nil
	}

	win := NewWindow(pty.Window.Width, pty.Window.Height)
	sink := NewSink(DefaultSampleRate, 2)

	loop, err := platform.New(win, sink, loader, platform.Options{
		Width:     s.config.Width,
		Height:    s.config.Height,
		TargetFPS: s.config.TargetFPS,
		Logger:    s.logger.WithPrefix(sess.User()),
	})
	if err != nil {
		s.logger.Error("cannot create loop", "err", err)
		return nil
	}

	opts := append(bubbletea.MakeOptions(sess), tea.WithAltScreen(), tea.WithMouseCellMotion())
	p := tea.NewProgram(NewModel(win), opts...)
	win.SetProgram(p)

	go func() {
		if err := loop.Run(sess.Context()); err != nil {
			s.logger.Warn("session loop ended", "user", sess.User(), "err", err)
		}
	}()

	return p
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
		next(sess)
		s.logger.Info("session ended",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until SIGINT/SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "sim", s.config.SimID)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "err", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
