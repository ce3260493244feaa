package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"tasklite/internal/config"
	"tasklite/internal/logging"
	"tasklite/internal/persist"
	"tasklite/internal/storage"
	"tasklite/internal/tasklist"
	"tasklite/internal/ui"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "tasklite",
		Short:         "A small task list for the terminal",
		Long:          `Add, edit, complete, filter and delete short tasks. Run without a subcommand for the interactive view.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(configPath, nil)
			if err != nil {
				return err
			}
			defer a.Close()
			return ui.Run(a.list, a.cfg, a.logger)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", config.ResolveConfigPath(), "path to config.toml")

	root.AddCommand(
		newAddCmd(&configPath),
		newListCmd(&configPath),
		newDoneCmd(&configPath),
		newEditCmd(&configPath),
		newRmCmd(&configPath),
		newStatsCmd(&configPath),
	)
	return root
}

type app struct {
	cfg    config.Config
	store  *storage.Store
	list   *tasklist.List
	logger *log.Logger
	logOut io.Closer
}

// openApp loads config, opens the store and loads the task list. Logs go to
// logTo when it is non-nil, otherwise to the configured log file so they do
// not draw over the interactive view.
func openApp(configPath string, logTo io.Writer) (*app, error) {
	firstLaunch := false
	if _, err := os.Stat(configPath); err != nil {
		firstLaunch = errors.Is(err, os.ErrNotExist)
	}
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	opts := logging.DefaultOptions()
	opts.Level = logging.ParseLevel(cfg.LogLevel)
	var logger *log.Logger
	var logOut io.Closer
	if logTo != nil {
		opts.ReportTimestamp = false
		logger = logging.New(logTo, opts)
		logOut = io.NopCloser(nil)
	} else {
		logger, logOut, err = logging.OpenFile(cfg.LogFile, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
	}
	if firstLaunch {
		logger.Info("wrote default config", "path", configPath)
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logOut.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	bridge, err := persist.New(store, cfg.StorageKey)
	if err != nil {
		store.Close()
		logOut.Close()
		return nil, err
	}
	list, err := tasklist.Open(bridge, tasklist.WithLogger(logger))
	if err != nil {
		logger.Error("cannot load tasks", "key", bridge.Key(), "db", cfg.DBPath, "err", err)
		store.Close()
		logOut.Close()
		return nil, err
	}
	return &app{cfg: cfg, store: store, list: list, logger: logger, logOut: logOut}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("close database", "err", err)
	}
	a.logOut.Close()
}
