package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !cfg.ShowWorldName || !cfg.ShowServerIP {
		t.Error("display toggles should default to true")
	}
	if cfg.PollInterval != DefaultPollInterval {
		t.Errorf("PollInterval = %v, want %v", cfg.PollInterval, DefaultPollInterval)
	}
	if cfg.DiscordAppID != DefaultDiscordAppID {
		t.Errorf("DiscordAppID = %v, want %v", cfg.DiscordAppID, DefaultDiscordAppID)
	}
	if !cfg.EnableTray || !cfg.EnableNotifications {
		t.Error("feature toggles should default to true")
	}
}

func TestLoad_ParsesFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := strings.Join([]string{
		"show_world_name: false",
		"poll_interval: 10s",
		"discord_app_id: \"12345\"",
		"log_dirs:",
		"  - /opt/hytale/logs",
		"enable_tray: false",
	}, "\n")
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ShowWorldName {
		t.Error("ShowWorldName = true, want false")
	}
	if cfg.ShowServerIP != true {
		t.Error("ShowServerIP should keep its default when absent")
	}
	if cfg.PollInterval != 10*time.Second {
		t.Errorf("PollInterval = %v, want 10s", cfg.PollInterval)
	}
	if cfg.DiscordAppID != "12345" {
		t.Errorf("DiscordAppID = %v, want 12345", cfg.DiscordAppID)
	}
	if len(cfg.LogDirs) != 1 || cfg.LogDirs[0] != "/opt/hytale/logs" {
		t.Errorf("LogDirs = %v", cfg.LogDirs)
	}
	if cfg.EnableTray {
		t.Error("EnableTray = true, want false")
	}
}

func TestLoad_RejectsBadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("poll_interval: [not, a, duration]"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for malformed document")
	}
}

func TestLoad_RejectsBadPollInterval(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unparseable", "poll_interval: soon"},
		{"negative", "poll_interval: -3s"},
		{"zero", "poll_interval: 0s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.doc), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("Load() expected error")
			}
		})
	}
}

func TestLoad_ExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	doc := "log_dirs:\n  - ~/hytale/logs\nhistory_db: ~/hytale/history.db\n"
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := filepath.Join(home, "hytale", "logs")
	if len(cfg.LogDirs) != 1 || cfg.LogDirs[0] != want {
		t.Errorf("LogDirs = %v, want [%v]", cfg.LogDirs, want)
	}
	if cfg.HistoryDB != filepath.Join(home, "hytale", "history.db") {
		t.Errorf("HistoryDB = %v", cfg.HistoryDB)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.ShowWorldName = false
	cfg.PollInterval = 7 * time.Second
	cfg.LogDirs = []string{"/opt/hytale/logs"}

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if got.ShowWorldName != cfg.ShowWorldName {
		t.Errorf("ShowWorldName = %v, want %v", got.ShowWorldName, cfg.ShowWorldName)
	}
	if got.PollInterval != cfg.PollInterval {
		t.Errorf("PollInterval = %v, want %v", got.PollInterval, cfg.PollInterval)
	}
	if len(got.LogDirs) != 1 || got.LogDirs[0] != "/opt/hytale/logs" {
		t.Errorf("LogDirs = %v, want %v", got.LogDirs, cfg.LogDirs)
	}
}

func TestPath_EnvOverride(t *testing.T) {
	oldVal := os.Getenv(EnvConfigPath)
	os.Setenv(EnvConfigPath, "/etc/hytale-rpc/config.yaml")
	defer os.Setenv(EnvConfigPath, oldVal)

	got, err := Path()
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}
	if got != "/etc/hytale-rpc/config.yaml" {
		t.Errorf("Path() = %v, want env override", got)
	}
}
