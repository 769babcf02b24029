package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/okian/fitcheck/internal/adapters/repository"
	app "github.com/okian/fitcheck/internal/app"
	"github.com/okian/fitcheck/internal/config"
	"github.com/okian/fitcheck/pkg/logger"
)

// rootFlags are the persistent flags shared by every subcommand.
type rootFlags struct {
	configFile string
	logLevel   string
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "fitcheck",
		Short: "A BMI calculator with a short, persisted history.",
		Long: `fitcheck computes Body Mass Index from weight and height in metric (kg/cm)
or imperial (lb/in) units and keeps the last results, newest first.

Run "fitcheck serve" for the web page and JSON API, or use the calc, history
and clear commands directly from the terminal.`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "YAML config file (overrides "+config.EnvConfigFile+")")
	root.PersistentFlags().StringVarP(&flags.logLevel, "loglevel", "l", "", "Set log level. Available: debug, info, warn, error")

	root.AddCommand(
		newServeCmd(flags),
		newCalcCmd(flags),
		newHistoryCmd(flags),
		newClearCmd(flags),
	)
	return root
}

// environment is what every subcommand runs against.
type environment struct {
	cfg *config.Config
	svc *app.Service
	log logger.Logger
}

// setup initializes logging, loads configuration and opens the history store.
// Log output goes to logs so command output on stdout stays clean.
func setup(ctx context.Context, flags *rootFlags, logs io.Writer) (*environment, error) {
	if flags.configFile != "" {
		if err := os.Setenv(config.EnvConfigFile, flags.configFile); err != nil {
			return nil, fmt.Errorf("set config path: %w", err)
		}
	}

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.WithWriter(logs), logger.WithJSON(cfg.LogJSON)); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	log := logger.Get()

	level := cfg.LogLevel
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	// Fall back to info on invalid input
	if err := logger.SetLevelString(level); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", level), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve time zone: %w", err)
	}

	path, err := cfg.ResolvedStoragePath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage path: %w", err)
	}
	store, err := repository.Open(ctx, cfg.StorageDriver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithStore(store),
		app.WithHistoryLimit(cfg.HistoryLimit),
		app.WithLocation(loc),
	)
	if err := svc.Start(ctx); err != nil {
		_ = svc.Stop()
		return nil, fmt.Errorf("failed to start service: %w", err)
	}

	log.Debug(ctx, "storage opened",
		logger.String("driver", cfg.StorageDriver),
		logger.String("path", path),
	)
	return &environment{cfg: cfg, svc: svc, log: log}, nil
}

// close stops the service and releases the store.
func (e *environment) close(ctx context.Context) {
	if err := e.svc.Stop(); err != nil {
		e.log.Error(ctx, "failed to close storage", logger.Error(err))
	}
}
