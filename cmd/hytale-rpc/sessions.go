package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hytalerpc/hytale-rpc-go/internal/config"
	"github.com/hytalerpc/hytale-rpc-go/internal/history"
)

var (
	// sessions flags
	sessionsLimit  int
	sessionsFormat string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List recorded play sessions",
	Long: `List play sessions recorded by the service, newest first.

A session starts when you enter a world or server and ends when you
leave it or close the game. Sessions still in progress show as open.

Examples:
  # Show the last 20 sessions
  hytale-rpc sessions

  # Show everything as JSON Lines
  hytale-rpc sessions --limit 0 --format jsonl`,
	RunE: runSessions,
}

func init() {
	sessionsCmd.Flags().IntVarP(&sessionsLimit, "limit", "l", 20,
		"Maximum sessions to show (0 = all)")
	sessionsCmd.Flags().StringVarP(&sessionsFormat, "format", "f", "text",
		"Output format: text, jsonl")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	if !validFormats[sessionsFormat] {
		return fmt.Errorf("unknown format: %s", sessionsFormat)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// The memory fallback the service uses would silently list nothing
	// here, so open the database directly and let failures surface.
	store, err := history.NewSQLiteStore(cfg.HistoryDB)
	if err != nil {
		return fmt.Errorf("opening session history: %w", err)
	}
	defer store.Close()

	sessions, err := store.Recent(cmd.Context(), sessionsLimit)
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	if len(sessions) == 0 && sessionsFormat == "text" {
		fmt.Println("no sessions recorded yet")
		return nil
	}
	for _, s := range sessions {
		if err := outputSession(sessionsFormat, s, os.Stdout); err != nil {
			return fmt.Errorf("output error: %w", err)
		}
	}
	return nil
}
