// Package config loads and persists the application configuration.
//
// The config lives at <user config dir>/hytale-rpc/config.yaml and every
// field is optional: a missing file or a missing field falls back to a
// default, so a fresh install runs without any setup.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hytalerpc/hytale-rpc-go/internal/safefile"
)

// EnvConfigPath overrides the config file location when set.
const EnvConfigPath = "HYTALE_RPC_CONFIG"

// DefaultDiscordAppID is the Discord application the presence is published
// under. Overridable for people who registered their own application.
const DefaultDiscordAppID = "1461306150497550376"

// DefaultPollInterval is how often the log watcher and process detector run.
const DefaultPollInterval = 3 * time.Second

const configDirName = "hytale-rpc"

// Config is the resolved application configuration.
type Config struct {
	// ShowWorldName controls whether world names appear in the presence.
	ShowWorldName bool
	// ShowServerIP controls whether server addresses appear in the presence.
	ShowServerIP bool
	// PollInterval is the cadence of log and process polling.
	PollInterval time.Duration
	// LogDirs lists extra log directories searched before the platform
	// defaults.
	LogDirs []string
	// DiscordAppID is the Discord application id used for the connection.
	DiscordAppID string
	// EnableTray runs the system tray icon.
	EnableTray bool
	// EnableNotifications shows desktop notifications for alert rules.
	EnableNotifications bool
	// HistoryDB is the session history database path.
	HistoryDB string
	// RulesFile is the alert rules file path. The file may be absent.
	RulesFile string
}

// rawConfig mirrors the YAML document. Pointers distinguish "absent" from
// "explicitly false" so booleans can default to true.
type rawConfig struct {
	ShowWorldName       *bool    `yaml:"show_world_name"`
	ShowServerIP        *bool    `yaml:"show_server_ip"`
	PollInterval        string   `yaml:"poll_interval"`
	LogDirs             []string `yaml:"log_dirs"`
	DiscordAppID        string   `yaml:"discord_app_id"`
	EnableTray          *bool    `yaml:"enable_tray"`
	EnableNotifications *bool    `yaml:"enable_notifications"`
	HistoryDB           string   `yaml:"history_db"`
	RulesFile           string   `yaml:"rules_file"`
}

// Default returns the configuration a fresh install runs with.
func Default() Config {
	return Config{
		ShowWorldName:       true,
		ShowServerIP:        true,
		PollInterval:        DefaultPollInterval,
		DiscordAppID:        DefaultDiscordAppID,
		EnableTray:          true,
		EnableNotifications: true,
		HistoryDB:           filepath.Join(mustDir(), "history.db"),
		RulesFile:           filepath.Join(mustDir(), "alerts.yaml"),
	}
}

// Dir returns the application config directory.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving config dir: %w", err)
	}
	return filepath.Join(base, configDirName), nil
}

// mustDir is Dir with a relative fallback for systems without a resolvable
// config directory.
func mustDir() string {
	dir, err := Dir()
	if err != nil {
		return configDirName
	}
	return dir
}

// Path returns the config file location.
//
// Priority:
//  1. HYTALE_RPC_CONFIG environment variable
//  2. <user config dir>/hytale-rpc/config.yaml
func Path() (string, error) {
	if env := os.Getenv(EnvConfigPath); env != "" {
		return expandPath(env)
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config at path, or at Path() when path is empty. A missing
// file yields the defaults; a file that exists but cannot be parsed is an
// error so typos do not silently drop settings.
func Load(path string) (Config, error) {
	resolved, err := resolveConfigPath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var raw rawConfig
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}

	if raw.ShowWorldName != nil {
		cfg.ShowWorldName = *raw.ShowWorldName
	}
	if raw.ShowServerIP != nil {
		cfg.ShowServerIP = *raw.ShowServerIP
	}
	if raw.EnableTray != nil {
		cfg.EnableTray = *raw.EnableTray
	}
	if raw.EnableNotifications != nil {
		cfg.EnableNotifications = *raw.EnableNotifications
	}
	if s := strings.TrimSpace(raw.PollInterval); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil {
			return Config{}, fmt.Errorf("parsing poll_interval: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("poll_interval must be positive, got %s", d)
		}
		cfg.PollInterval = d
	}
	if s := strings.TrimSpace(raw.DiscordAppID); s != "" {
		cfg.DiscordAppID = s
	}
	for _, dir := range raw.LogDirs {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		expanded, err := expandPath(dir)
		if err != nil {
			return Config{}, fmt.Errorf("expanding log dir %q: %w", dir, err)
		}
		cfg.LogDirs = append(cfg.LogDirs, expanded)
	}
	if s := strings.TrimSpace(raw.HistoryDB); s != "" {
		expanded, err := expandPath(s)
		if err != nil {
			return Config{}, fmt.Errorf("expanding history_db: %w", err)
		}
		cfg.HistoryDB = expanded
	}
	if s := strings.TrimSpace(raw.RulesFile); s != "" {
		expanded, err := expandPath(s)
		if err != nil {
			return Config{}, fmt.Errorf("expanding rules_file: %w", err)
		}
		cfg.RulesFile = expanded
	}

	return cfg, nil
}

// Save writes cfg to path, or to Path() when path is empty, creating the
// parent directory as needed. The write is atomic so a crash mid-save never
// leaves a half-written config behind.
func Save(cfg Config, path string) error {
	resolved, err := resolveConfigPath(path)
	if err != nil {
		return err
	}

	raw := rawConfig{
		ShowWorldName:       &cfg.ShowWorldName,
		ShowServerIP:        &cfg.ShowServerIP,
		PollInterval:        cfg.PollInterval.String(),
		LogDirs:             cfg.LogDirs,
		DiscordAppID:        cfg.DiscordAppID,
		EnableTray:          &cfg.EnableTray,
		EnableNotifications: &cfg.EnableNotifications,
		HistoryDB:           cfg.HistoryDB,
		RulesFile:           cfg.RulesFile,
	}

	data, err := yaml.Marshal(&raw)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}
	if err := safefile.WriteAtomic(resolved, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

func resolveConfigPath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return Path()
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
