// Package instance enforces single-instance execution per port through a
// PID marker file.
package instance

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

// AlreadyRunningError reports that another live process owns the marker for
// a port.
type AlreadyRunningError struct {
	PID  int
	Port int
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("another instance (PID %d) is already running on port %d", e.PID, e.Port)
}

// Guard represents an acquired marker. Release must run on every exit path.
type Guard struct {
	path string
	pid  int
}

// MarkerPath returns the marker file path for a port under dir.
func MarkerPath(dir string, port int) string {
	return filepath.Join(dir, fmt.Sprintf("hubgrab_%d.pid", port))
}

// Acquire claims the marker for port under dir. It fails with
// *AlreadyRunningError when a live process already holds the marker, and
// treats unreadable or dead-owner markers as stale. A marker that cannot be
// written aborts acquisition; there is no degraded mode.
func Acquire(dir string, port int) (*Guard, error) {
	path := MarkerPath(dir, port)

	if data, err := os.ReadFile(path); err == nil {
		pid, perr := strconv.Atoi(strings.TrimSpace(string(data)))
		if perr == nil && processAlive(pid) {
			return nil, &AlreadyRunningError{PID: pid, Port: port}
		}
		// Stale or corrupt marker
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("remove stale marker %s: %w", path, err)
		}
	}

	pid := os.Getpid()
	if err := os.WriteFile(path, []byte(strconv.Itoa(pid)), 0644); err != nil {
		return nil, fmt.Errorf("write marker %s: %w", path, err)
	}

	return &Guard{path: path, pid: pid}, nil
}

// Release removes the marker if it still belongs to this guard's process.
// It is idempotent and leaves markers written by newer instances alone.
func (g *Guard) Release() {
	data, err := os.ReadFile(g.path)
	if err != nil {
		return
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid != g.pid {
		return
	}
	_ = os.Remove(g.path)
}

// Path returns the marker file location.
func (g *Guard) Path() string {
	return g.path
}

// Running reports whether a live process holds the marker for port under
// dir, cleaning up stale markers as a side effect.
func Running(dir string, port int) (bool, int) {
	data, err := os.ReadFile(MarkerPath(dir, port))
	if err != nil {
		return false, 0
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return false, 0
	}

	if !processAlive(pid) {
		_ = os.Remove(MarkerPath(dir, port))
		return false, 0
	}

	return true, pid
}

// processAlive checks process existence by sending signal 0.
func processAlive(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return process.Signal(syscall.Signal(0)) == nil
}
