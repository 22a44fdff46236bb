package hytalelog

import (
	"errors"
	"log/slog"
)

// DefaultFileSuffix selects Hytale client logs such as
// "2026-08-20_14-03-11_client.log".
const DefaultFileSuffix = "_client.log"

// WatchOption configures a Watcher.
type WatchOption func(*watchConfig)

// watchConfig holds the resolved configuration for a Watcher.
type watchConfig struct {
	logDirs    []string
	fileSuffix string
	logger     *slog.Logger
	lineHook   func(line string)
}

// defaultWatchConfig returns the baseline configuration: platform default
// log directories, the standard client log suffix and no logging.
func defaultWatchConfig() *watchConfig {
	return &watchConfig{
		fileSuffix: DefaultFileSuffix,
	}
}

// applyWatchOptions builds a config from defaults plus the given options.
func applyWatchOptions(opts []WatchOption) *watchConfig {
	cfg := defaultWatchConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(cfg)
		}
	}
	return cfg
}

// validate checks the configuration for values that can never work.
func (c *watchConfig) validate() error {
	if c.fileSuffix == "" {
		return errors.New("file suffix must not be empty")
	}
	for _, dir := range c.logDirs {
		if dir == "" {
			return errors.New("log directory must not be empty")
		}
	}
	return nil
}

// WithLogDirs replaces the platform default search directories. Directories
// are searched in order and the newest matching file across all of them
// wins. Missing directories are skipped silently.
func WithLogDirs(dirs ...string) WatchOption {
	return func(c *watchConfig) {
		c.logDirs = dirs
	}
}

// WithFileSuffix overrides the file name suffix used to recognize client
// logs. The default is DefaultFileSuffix.
func WithFileSuffix(suffix string) WatchOption {
	return func(c *watchConfig) {
		c.fileSuffix = suffix
	}
}

// WithLogger sets a structured logger for diagnostics. The watcher logs
// file discovery at Info and per-line detections at Debug. By default
// nothing is logged.
func WithLogger(logger *slog.Logger) WatchOption {
	return func(c *watchConfig) {
		c.logger = logger
	}
}

// WithLineHook registers fn to receive every non-empty line the watcher
// reads, after whitespace trimming. The hook runs synchronously inside
// Update, before the line is matched, so it must be fast. Useful for
// feeding custom alerting or recording on top of activity tracking.
func WithLineHook(fn func(line string)) WatchOption {
	return func(c *watchConfig) {
		c.lineHook = fn
	}
}
