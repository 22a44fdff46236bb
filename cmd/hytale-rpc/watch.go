package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hytalerpc/hytale-rpc-go/internal/config"
	"github.com/hytalerpc/hytale-rpc-go/internal/logfinder"
	"github.com/hytalerpc/hytale-rpc-go/pkg/hytalelog"
)

var (
	// watch flags
	watchFormat string
	watchPoll   time.Duration
	watchDirs   []string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the client log and print activity changes",
	Long: `Watch the newest Hytale client log and print every activity change,
without touching Discord. Useful for checking what the service would
publish.

Changes are output as JSON Lines by default (one JSON object per line),
which makes them easy to process with tools like jq.

Examples:
  # Watch with the configured log directories
  hytale-rpc watch

  # Human-readable output
  hytale-rpc watch --format text

  # Add a log directory and poll faster
  hytale-rpc watch -d ~/hytale/logs --poll 500ms

  # Pipe to jq for filtering
  hytale-rpc watch | jq 'select(.state == "multiplayer")'`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "jsonl",
		"Output format: text, jsonl")
	watchCmd.Flags().DurationVar(&watchPoll, "poll", 0,
		"Poll interval (0 = use config)")
	watchCmd.Flags().StringSliceVarP(&watchDirs, "log-dir", "d", nil,
		"Extra log directories to search (may be repeated)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if !validFormats[watchFormat] {
		return fmt.Errorf("unknown format: %s", watchFormat)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if watchPoll > 0 {
		cfg.PollInterval = watchPoll
	}

	dirs := logfinder.SearchDirs(append(watchDirs, cfg.LogDirs...)...)
	watcher, err := hytalelog.NewWatcher(
		hytalelog.WithLogDirs(dirs...),
		hytalelog.WithLogger(newLogger()),
	)
	if err != nil {
		return fmt.Errorf("creating log watcher: %w", err)
	}

	// Catch up on the existing log first so starting mid-game prints the
	// real state rather than idle.
	if _, err := watcher.Update(); err != nil && verbose {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	last := watcher.Activity()
	if err := outputActivity(watchFormat, last, time.Now(), os.Stdout); err != nil {
		return err
	}

	ticker := time.NewTicker(cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			changed, err := watcher.Update()
			if err != nil {
				if verbose {
					fmt.Fprintf(os.Stderr, "warning: %v\n", err)
				}
				continue
			}
			if !changed {
				continue
			}
			activity := watcher.Activity()
			if activity == last {
				continue
			}
			last = activity
			if err := outputActivity(watchFormat, activity, time.Now(), os.Stdout); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}
	}
}
