package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hubgrab/internal/api"
	"hubgrab/internal/clone"
	"hubgrab/internal/config"
	"hubgrab/internal/instance"
	"hubgrab/internal/logger"
	"hubgrab/internal/notify"
	"hubgrab/internal/preflight"
	"hubgrab/internal/service"
)

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if len(args) == 1 {
		port, err := parsePort(args[0])
		if err != nil {
			return err
		}
		cfg.Service.Port = port
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	log := logger.Setup(cfg)
	defer logger.Stop()

	notifier := notify.New(log)

	if failed := preflight.Failures(preflight.Run(cfg)); len(failed) > 0 {
		var details []string
		for _, f := range failed {
			notifier.Error(f.Detail)
			details = append(details, f.Detail)
		}
		return fmt.Errorf("preflight failed: %s", strings.Join(details, "; "))
	}

	guard, err := instance.Acquire(os.TempDir(), cfg.Service.Port)
	if err != nil {
		var already *instance.AlreadyRunningError
		if errors.As(err, &already) {
			notifier.Error(already.Error())
		}
		return err
	}
	defer guard.Release()

	workflow := clone.NewWorkflow(cfg, notifier, log)
	server := api.NewServer(workflow, log)
	daemon := service.NewDaemon(cfg, log)

	if err := daemon.Start(server.Handler()); err != nil {
		notifier.Error(fmt.Sprintf("Could not start HTTP server on port %d: %v", cfg.Service.Port, err))
		if strings.Contains(err.Error(), "address already in use") {
			log.Warn().Str("marker", guard.Path()).Int("port", cfg.Service.Port).
				Msg("Hint: check the marker file or whether another process is using the port")
		}
		return err
	}

	notifier.Info(fmt.Sprintf("hubgrab v%s listening on port %d", version, cfg.Service.Port))

	if err := daemon.Wait(); err != nil {
		notifier.Error(err.Error())
		return err
	}

	log.Info().Msg("listener stopped")
	return nil
}
