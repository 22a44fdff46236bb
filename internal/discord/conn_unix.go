//go:build !windows

package discord

import (
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"time"
)

// socketDirs returns the directories a running Discord client may have
// placed its IPC socket in, including Flatpak and Snap sandboxes.
func socketDirs() []string {
	base := os.Getenv("XDG_RUNTIME_DIR")
	if base == "" {
		base = os.Getenv("TMPDIR")
	}
	if base == "" {
		base = "/tmp"
	}
	return []string{
		base,
		filepath.Join(base, "app", "com.discordapp.Discord"),
		filepath.Join(base, "snap.discord"),
	}
}

// dialIPC tries discord-ipc-0 through discord-ipc-9 in each candidate
// directory and returns the first socket that accepts a connection.
func dialIPC() (io.ReadWriteCloser, error) {
	for _, dir := range socketDirs() {
		for i := 0; i < 10; i++ {
			path := filepath.Join(dir, fmt.Sprintf("discord-ipc-%d", i))
			conn, err := net.DialTimeout("unix", path, time.Second)
			if err == nil {
				return conn, nil
			}
		}
	}
	return nil, ErrNoSocket
}
