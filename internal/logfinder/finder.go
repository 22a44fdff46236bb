// Package logfinder locates Hytale client log directories and files.
package logfinder

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// EnvLogDir overrides the log directory search. When set, the directory it
// names is searched before all others.
const EnvLogDir = "HYTALE_LOG_DIR"

// ErrNoLogFile is returned when no matching log file exists in any of the
// searched directories.
var ErrNoLogFile = errors.New("no client log file found")

// DefaultLogDirs returns the candidate Hytale log directories for this
// platform in priority order. Directories are not checked for existence;
// callers skip the ones that are missing.
func DefaultLogDirs() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	// The launcher installs under ~/.hytale on every platform.
	dirs := []string{
		filepath.Join(home, ".hytale", "UserData", "Logs"),
	}

	switch runtime.GOOS {
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			dirs = append(dirs, filepath.Join(appData, "Hytale", "UserData", "Logs"))
		}
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			dirs = append(dirs, filepath.Join(localAppData, "Hytale", "UserData", "Logs"))
		}
	case "darwin":
		dirs = append(dirs,
			filepath.Join(home, "Library", "Application Support", "Hytale", "UserData", "Logs"),
		)
	default:
		// Native installs, Flatpak sandboxes and Proton prefixes.
		dirs = append(dirs,
			filepath.Join(home, ".local", "share", "Hytale", "UserData", "Logs"),
			filepath.Join(home, ".config", "Hytale", "UserData", "Logs"),
			filepath.Join(home, ".var", "app", "com.hytale.Hytale", "data", "Hytale", "UserData", "Logs"),
			filepath.Join(home, ".var", "app", "com.hytale.Hytale", "config", "Hytale", "UserData", "Logs"),
			filepath.Join(home, ".steam", "steam", "steamapps", "compatdata", "Hytale", "pfx",
				"drive_c", "users", "steamuser", "AppData", "Roaming", "Hytale", "UserData", "Logs"),
			filepath.Join(home, ".local", "share", "Steam", "steamapps", "compatdata", "Hytale", "pfx",
				"drive_c", "users", "steamuser", "AppData", "Roaming", "Hytale", "UserData", "Logs"),
		)
	}

	return dirs
}

// SearchDirs builds the full search list for a run.
//
// Priority:
//  1. HYTALE_LOG_DIR environment variable
//  2. extra directories passed by the caller, in order
//  3. platform defaults from DefaultLogDirs
func SearchDirs(extra ...string) []string {
	var dirs []string
	if envDir := os.Getenv(EnvLogDir); envDir != "" {
		dirs = append(dirs, envDir)
	}
	for _, dir := range extra {
		if dir != "" {
			dirs = append(dirs, dir)
		}
	}
	return append(dirs, DefaultLogDirs()...)
}

// logCandidate holds a log file path and its cached modification time.
// Stat results are cached so files deleted mid-scan cannot skew the pick.
type logCandidate struct {
	path    string
	modTime time.Time
}

// FindLatestLogFile returns the most recently modified file ending in
// suffix across all given directories. Directories that do not exist or
// cannot be read are skipped. Ties keep the file seen first, so earlier
// directories win.
//
// Returns ErrNoLogFile when nothing matches.
func FindLatestLogFile(dirs []string, suffix string) (string, error) {
	var latest logCandidate
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), suffix) {
				continue
			}
			info, err := entry.Info()
			if err != nil {
				continue
			}
			if !info.Mode().IsRegular() {
				continue
			}
			if latest.path == "" || info.ModTime().After(latest.modTime) {
				latest = logCandidate{
					path:    filepath.Join(dir, entry.Name()),
					modTime: info.ModTime(),
				}
			}
		}
	}

	if latest.path == "" {
		return "", ErrNoLogFile
	}
	return latest.path, nil
}
