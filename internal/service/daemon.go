// Package service provides the daemon lifecycle: bind, serve, drain on
// signal, and control of an already-running instance.
package service

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/ternarybob/arbor"

	"hubgrab/internal/config"
	"hubgrab/internal/instance"
)

// Daemon manages the HTTP server lifecycle.
type Daemon struct {
	cfg      *config.Config
	log      arbor.ILogger
	server   *http.Server
	listener net.Listener
	errCh    chan error

	mu      sync.Mutex
	running bool
}

// NewDaemon creates a new daemon instance.
func NewDaemon(cfg *config.Config, log arbor.ILogger) *Daemon {
	return &Daemon{
		cfg:   cfg,
		log:   log,
		errCh: make(chan error, 1),
	}
}

// Start binds the listen address and begins serving handler. Bind failures
// surface immediately; serve failures arrive through Wait.
func (d *Daemon) Start(handler http.Handler) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.running {
		return fmt.Errorf("daemon already running")
	}

	listener, err := net.Listen("tcp", d.cfg.Address())
	if err != nil {
		return fmt.Errorf("bind %s: %w", d.cfg.Address(), err)
	}

	d.listener = listener
	d.server = &http.Server{
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	d.running = true

	go func() {
		d.log.Info().Str("addr", listener.Addr().String()).Msg("server listening")
		if err := d.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			d.errCh <- err
		}
	}()

	return nil
}

// Addr returns the bound listen address.
func (d *Daemon) Addr() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.listener == nil {
		return ""
	}
	return d.listener.Addr().String()
}

// Wait blocks until a termination signal or a server error. On signal the
// server drains gracefully; a server error is returned to the caller.
func (d *Daemon) Wait() error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		d.log.Info().Str("signal", sig.String()).Msg("shutting down")
		d.Stop()
		return nil
	case err := <-d.errCh:
		return fmt.Errorf("http server: %w", err)
	}
}

// Stop drains the server gracefully. Safe to call more than once.
func (d *Daemon) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := d.server.Shutdown(ctx); err != nil {
		d.log.Warn().Err(err).Msg("server shutdown error")
	}

	d.running = false
}

// StopRunning terminates the instance holding the marker for port: SIGTERM,
// a bounded wait, then SIGKILL and marker removal.
func StopRunning(markerDir string, port int) error {
	running, pid := instance.Running(markerDir, port)
	if !running {
		return fmt.Errorf("daemon not running on port %d", port)
	}

	process, err := os.FindProcess(pid)
	if err != nil {
		return fmt.Errorf("find process: %w", err)
	}

	if err := process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("send signal: %w", err)
	}

	for i := 0; i < 30; i++ {
		time.Sleep(100 * time.Millisecond)
		if running, _ := instance.Running(markerDir, port); !running {
			return nil
		}
	}

	if err := process.Kill(); err != nil {
		return fmt.Errorf("kill process: %w", err)
	}
	_ = os.Remove(instance.MarkerPath(markerDir, port))

	return nil
}
