// Package main provides the hubgrab daemon entry point.
//
// hubgrab listens on a local HTTP port, accepts a GitHub repository URL via
// POST, shallow-clones it under the configured base directory, and opens
// the result in the configured editor.
//
// Usage:
//
//	hubgrab [port]        Start the daemon (default port 45678)
//	hubgrab status        Show daemon status
//	hubgrab stop          Stop the running daemon
//	hubgrab version       Show version
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hubgrab [port]",
		Short: "Local daemon that clones GitHub repos and opens them in your editor",
		Long: `hubgrab is a single-instance local daemon. POST a GitHub repository URL to
any path on its port and it shallow-clones the repository into a fresh
directory and opens that directory in your editor.`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runServe,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	root.AddCommand(newStatusCmd())
	root.AddCommand(newStopCmd())
	root.AddCommand(newVersionCmd())

	return root
}

// parsePort validates a port argument into the unprivileged range.
func parsePort(arg string) (int, error) {
	port, err := strconv.Atoi(arg)
	if err != nil || port < 1024 || port > 65535 {
		return 0, fmt.Errorf("invalid port number '%s': must be an integer between 1024 and 65535", arg)
	}
	return port, nil
}
