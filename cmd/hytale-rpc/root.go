package main

import (
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.2.3"
//
// When ldflags are not set, resolveVersion reads the VCS info that Go
// embeds automatically, so dev builds still report something useful.
var version = "dev"

var (
	// global flags
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "hytale-rpc",
	Short: "Discord Rich Presence for Hytale",
	Long: `hytale-rpc keeps your Discord status in sync with what you are doing
in Hytale. It watches the client log and the process table, derives your
current activity (main menu, loading, singleplayer world, multiplayer
server) and publishes it as a Discord Rich Presence.

Run without arguments to start the background service with the system
tray icon. Subcommands expose the building blocks for debugging and
scripting.

Examples:
  # Start the service
  hytale-rpc

  # Start without the tray icon
  hytale-rpc --no-tray

  # Watch activity changes without touching Discord
  hytale-rpc watch --format jsonl

  # Follow the raw client log
  hytale-rpc tail -n 50

  # Show the last ten play sessions
  hytale-rpc sessions --limit 10`,
	SilenceUsage: true,
	RunE:         runService,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file path (default: <user config dir>/hytale-rpc/config.yaml)")
	rootCmd.Version = resolveVersion()
}

// newLogger builds the process-wide structured logger. Everything below
// the CLI takes *slog.Logger, so the charm handler is wrapped once here.
func newLogger() *slog.Logger {
	opts := log.Options{
		ReportTimestamp: true,
		Prefix:          "hytale-rpc",
	}
	if verbose {
		opts.Level = log.DebugLevel
	}
	logger := slog.New(log.NewWithOptions(os.Stderr, opts))
	slog.SetDefault(logger)
	return logger
}

// resolveVersion returns the build version string. If version was set via
// ldflags it is returned as-is; otherwise the VCS revision embedded by the
// Go toolchain is used to construct a "dev+<hash>" tag.
func resolveVersion() string {
	if version != "dev" {
		return version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return version
	}
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return version
	}
	hash := revision[:min(7, len(revision))]
	if dirty {
		return "dev+" + hash + ".dirty"
	}
	return "dev+" + hash
}
