// Package process detects running Hytale and Discord processes.
package process

import (
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v4/process"
)

// Known executable names per process of interest. Matching ignores case
// and accepts trailing extensions, so "hytale" also covers "Hytale.exe"
// and "hytale.x86_64".
var (
	GameProcessNames = []string{
		"hytale",
		"hytale.exe",
		"hytaleclient",
		"hytaleclient.exe",
	}
	LauncherProcessNames = []string{
		"hytalelauncher",
		"hytalelauncher.exe",
		"hytale-launcher",
	}
	DiscordProcessNames = []string{
		"discord",
		"discord.exe",
		"discordptb",
		"discordcanary",
		"vesktop",
	}
)

// Status is one snapshot of the processes the app cares about.
type Status struct {
	Game     bool
	Launcher bool
	Discord  bool
}

// Detector scans the process table.
type Detector struct {
	list func() ([]string, error)
}

// NewDetector returns a detector backed by the live process table.
func NewDetector() *Detector {
	return &Detector{list: runningProcessNames}
}

// Snapshot walks the process table once and reports everything of
// interest.
func (d *Detector) Snapshot() (Status, error) {
	running, err := d.list()
	if err != nil {
		return Status{}, err
	}

	var s Status
	for _, name := range running {
		if !s.Game && MatchesAny(name, GameProcessNames) {
			s.Game = true
		}
		if !s.Launcher && MatchesAny(name, LauncherProcessNames) {
			s.Launcher = true
		}
		if !s.Discord && MatchesAny(name, DiscordProcessNames) {
			s.Discord = true
		}
	}
	return s, nil
}

// GameRunning reports whether the Hytale client is running.
func (d *Detector) GameRunning() (bool, error) {
	return d.anyRunning(GameProcessNames)
}

// LauncherRunning reports whether the Hytale launcher is running.
func (d *Detector) LauncherRunning() (bool, error) {
	return d.anyRunning(LauncherProcessNames)
}

// DiscordRunning reports whether a Discord client is running.
func (d *Detector) DiscordRunning() (bool, error) {
	return d.anyRunning(DiscordProcessNames)
}

func (d *Detector) anyRunning(names []string) (bool, error) {
	running, err := d.list()
	if err != nil {
		return false, err
	}
	for _, proc := range running {
		if MatchesAny(proc, names) {
			return true, nil
		}
	}
	return false, nil
}

// MatchesAny reports whether a process name matches one of the given
// executable names: equal after lowercasing, or the name followed by a
// dot-separated extension.
func MatchesAny(processName string, names []string) bool {
	pn := strings.ToLower(processName)
	for _, name := range names {
		n := strings.ToLower(name)
		if pn == n || strings.HasPrefix(pn, n+".") {
			return true
		}
	}
	return false
}

func runningProcessNames() ([]string, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("listing processes: %w", err)
	}
	names := make([]string, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			// The process may have exited mid-scan.
			continue
		}
		names = append(names, name)
	}
	return names, nil
}
