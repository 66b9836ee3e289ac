package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"hubgrab/internal/config"
	"hubgrab/internal/instance"
	"hubgrab/internal/service"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status [port]",
		Short: "Show daemon status",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			port, err := resolvePort(args)
			if err != nil {
				return err
			}

			if running, pid := instance.Running(os.TempDir(), port); running {
				fmt.Printf("hubgrab: running (PID %d) on port %d\n", pid, port)
			} else {
				fmt.Printf("hubgrab: stopped (port %d)\n", port)
			}
			return nil
		},
	}
}

func newStopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stop [port]",
		Short: "Stop the running daemon",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			port, err := resolvePort(args)
			if err != nil {
				return err
			}

			running, pid := instance.Running(os.TempDir(), port)
			if !running {
				fmt.Printf("hubgrab is not running on port %d\n", port)
				return nil
			}

			fmt.Printf("Stopping hubgrab (PID %d)...\n", pid)
			if err := service.StopRunning(os.TempDir(), port); err != nil {
				return err
			}

			fmt.Println("hubgrab stopped")
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("hubgrab version %s\n", version)
		},
	}
}

// resolvePort picks the port from an optional argument, else the config.
func resolvePort(args []string) (int, error) {
	if len(args) == 1 {
		return parsePort(args[0])
	}
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return 0, fmt.Errorf("load config: %w", err)
	}
	return cfg.Service.Port, nil
}
