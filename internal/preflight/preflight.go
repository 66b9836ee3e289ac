// Package preflight verifies external tools and directories before the
// daemon starts serving.
package preflight

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"hubgrab/internal/config"
)

// Result reports the outcome of a single check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// Run evaluates every startup requirement: the clone tool, the editor
// command, and the clone base directory.
func Run(cfg *config.Config) []Result {
	return []Result{
		CheckBinary("git", cfg.Tools.Git),
		CheckBinary("editor", cfg.Tools.Editor),
		CheckDirectoryAccess("clone directory", cfg.Service.CloneDir),
	}
}

// Failures filters results down to the failed checks.
func Failures(results []Result) []Result {
	var failed []Result
	for _, r := range results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	return failed
}

// CheckBinary verifies that command resolves on the PATH.
func CheckBinary(name, command string) Result {
	if command == "" {
		return Result{Name: name, Detail: "command not configured"}
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("'%s' is not installed or not in PATH", command)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckDirectoryAccess verifies that path is an existing writable directory.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("directory '%s' doesn't exist", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s: stat: %v", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("'%s' is not a directory", path)}
	}
	if err := unix.Access(path, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("directory '%s' isn't writable: %v", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}
