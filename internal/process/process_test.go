package process

import (
	"errors"
	"testing"
)

func TestMatchesAny(t *testing.T) {
	tests := []struct {
		name    string
		process string
		names   []string
		want    bool
	}{
		{"exact", "hytale", GameProcessNames, true},
		{"exact_exe", "hytale.exe", GameProcessNames, true},
		{"case_insensitive", "HytaleClient.exe", GameProcessNames, true},
		{"extension_via_prefix", "hytale.x86_64", GameProcessNames, true},
		{"launcher_dash", "hytale-launcher", LauncherProcessNames, true},
		{"prefix_without_dot", "hytaled", GameProcessNames, false},
		{"substring_not_enough", "nothytale", GameProcessNames, false},
		{"unrelated", "firefox", GameProcessNames, false},
		{"discord_canary", "DiscordCanary", DiscordProcessNames, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MatchesAny(tt.process, tt.names); got != tt.want {
				t.Errorf("MatchesAny(%q) = %v, want %v", tt.process, got, tt.want)
			}
		})
	}
}

func TestDetector_Snapshot(t *testing.T) {
	d := &Detector{list: func() ([]string, error) {
		return []string{"systemd", "Discord", "hytaleclient.exe", "firefox"}, nil
	}}

	got, err := d.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	want := Status{Game: true, Launcher: false, Discord: true}
	if got != want {
		t.Errorf("Snapshot() = %+v, want %+v", got, want)
	}
}

func TestDetector_SnapshotError(t *testing.T) {
	scanErr := errors.New("proc unavailable")
	d := &Detector{list: func() ([]string, error) { return nil, scanErr }}

	if _, err := d.Snapshot(); !errors.Is(err, scanErr) {
		t.Errorf("Snapshot() error = %v, want %v", err, scanErr)
	}
}

func TestDetector_GameRunning(t *testing.T) {
	d := &Detector{list: func() ([]string, error) {
		return []string{"hytale-launcher"}, nil
	}}

	game, err := d.GameRunning()
	if err != nil {
		t.Fatal(err)
	}
	if game {
		t.Error("GameRunning() = true, the launcher is not the game")
	}

	launcher, err := d.LauncherRunning()
	if err != nil {
		t.Fatal(err)
	}
	if !launcher {
		t.Error("LauncherRunning() = false, want true")
	}
}

func TestNewDetector_ScansLiveTable(t *testing.T) {
	// The live scan must at least not fail; this test process is itself
	// in the table.
	d := NewDetector()
	if _, err := d.Snapshot(); err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
}
