//go:build windows

package discord

import (
	"fmt"
	"io"
	"os"
)

// dialIPC opens the first responsive discord-ipc named pipe. Pipes answer
// ordinary file operations, which is all the synchronous request/reply
// traffic here needs.
func dialIPC() (io.ReadWriteCloser, error) {
	for i := 0; i < 10; i++ {
		path := fmt.Sprintf(`\\.\pipe\discord-ipc-%d`, i)
		f, err := os.OpenFile(path, os.O_RDWR, 0)
		if err == nil {
			return f, nil
		}
	}
	return nil, ErrNoSocket
}
