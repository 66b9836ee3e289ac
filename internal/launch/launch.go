// Package launch starts external commands detached from the daemon.
package launch

import (
	"fmt"
	"os/exec"
	"syscall"
)

// Detach starts a command in its own session with discarded stdio and does
// not wait for it. The child is not tied to the daemon's lifetime.
func Detach(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", name, err)
	}
	return cmd.Process.Release()
}
