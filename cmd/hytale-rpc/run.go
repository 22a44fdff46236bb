package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hytalerpc/hytale-rpc-go/internal/alerts"
	"github.com/hytalerpc/hytale-rpc-go/internal/app"
	"github.com/hytalerpc/hytale-rpc-go/internal/config"
	"github.com/hytalerpc/hytale-rpc-go/internal/discord"
	"github.com/hytalerpc/hytale-rpc-go/internal/history"
	"github.com/hytalerpc/hytale-rpc-go/internal/logfinder"
	"github.com/hytalerpc/hytale-rpc-go/internal/notify"
	"github.com/hytalerpc/hytale-rpc-go/internal/presence"
	"github.com/hytalerpc/hytale-rpc-go/internal/process"
	"github.com/hytalerpc/hytale-rpc-go/internal/tray"
	"github.com/hytalerpc/hytale-rpc-go/pkg/hytalelog"
)

var (
	// run flags
	noTray   bool
	noNotify bool
	runPoll  time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the background service",
	Long: `Start the background service: detect the Hytale processes, tail the
client log and publish the derived activity as a Discord Rich Presence.

This is also what running hytale-rpc without a subcommand does.

Examples:
  # Start with the system tray icon
  hytale-rpc run

  # Headless, e.g. under a service manager
  hytale-rpc run --no-tray

  # Poll faster than the configured interval
  hytale-rpc run --poll 1s`,
	RunE: runService,
}

func init() {
	// The root command doubles as "run", so the flags live on both.
	for _, c := range []*cobra.Command{runCmd, rootCmd} {
		c.Flags().BoolVar(&noTray, "no-tray", false,
			"Run without the system tray icon")
		c.Flags().BoolVar(&noNotify, "no-notify", false,
			"Disable desktop notifications")
		c.Flags().DurationVar(&runPoll, "poll", 0,
			"Override the poll interval (0 = use config)")
	}
	rootCmd.AddCommand(runCmd)
}

func runService(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := newLogger()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if runPoll > 0 {
		cfg.PollInterval = runPoll
	}
	if noTray {
		cfg.EnableTray = false
	}
	if noNotify {
		cfg.EnableNotifications = false
	}

	notifier := notify.New(cfg.EnableNotifications, logger)
	evaluator := loadAlertRules(cfg.RulesFile, logger)

	watchOpts := []hytalelog.WatchOption{
		hytalelog.WithLogger(logger),
		hytalelog.WithLogDirs(logfinder.SearchDirs(cfg.LogDirs...)...),
	}
	if hook := app.AlertHook(evaluator, notifier, logger); hook != nil {
		watchOpts = append(watchOpts, hytalelog.WithLineHook(hook))
	}
	watcher, err := hytalelog.NewWatcher(watchOpts...)
	if err != nil {
		return fmt.Errorf("creating log watcher: %w", err)
	}

	manager := presence.NewManager(
		discord.NewClient(cfg.DiscordAppID),
		presence.Options{
			ShowWorldName: cfg.ShowWorldName,
			ShowServerIP:  cfg.ShowServerIP,
		},
		logger,
	)

	deps := app.Deps{
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     logger,
		Processes:  process.NewDetector(),
		Watcher:    watcher,
		Presence:   manager,
		History:    history.OpenStore(cfg.HistoryDB, logger),
		Notifier:   notifier,
	}

	if !cfg.EnableTray {
		return app.New(deps).Run(ctx)
	}

	t := tray.New(tray.Options{
		ShowWorldName: cfg.ShowWorldName,
		ShowServerIP:  cfg.ShowServerIP,
	}, logger)
	deps.TrayStatus = t.SetStatus
	deps.TrayEvents = t.Events()

	// The tray loop must own the main goroutine, so the service loop moves
	// to a background one. Whichever finishes first stops the other.
	errCh := make(chan error, 1)
	go func() {
		errCh <- app.New(deps).Run(ctx)
		t.Quit()
	}()
	t.Run()
	return <-errCh
}

// loadAlertRules loads the alert rule file. A missing file simply turns
// the feature off; a broken one is reported but never stops the service.
func loadAlertRules(path string, logger *slog.Logger) *alerts.Evaluator {
	if path == "" {
		return nil
	}
	evaluator, err := alerts.NewEvaluatorFromFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("no alert rules file", "path", path)
		} else {
			logger.Warn("ignoring alert rules", "path", path, "error", err)
		}
		return nil
	}
	logger.Info("alert rules loaded", "path", path, "rules", evaluator.Len())
	return evaluator
}
