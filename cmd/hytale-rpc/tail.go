package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/nxadm/tail"
	"github.com/spf13/cobra"

	"github.com/hytalerpc/hytale-rpc-go/internal/config"
	"github.com/hytalerpc/hytale-rpc-go/internal/logfinder"
	"github.com/hytalerpc/hytale-rpc-go/pkg/hytalelog"
)

var (
	// tail flags
	tailLines  int
	tailFollow bool
	tailDirs   []string
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow the raw client log",
	Long: `Print the newest Hytale client log and follow it as the game appends.

The client writes a fresh log file per launch; this command follows the
newest one at startup. Restart it after relaunching the game.

Examples:
  # Follow the newest client log
  hytale-rpc tail

  # Print the last 50 lines before following
  hytale-rpc tail -n 50

  # Print the last lines and exit
  hytale-rpc tail -n 100 --follow=false`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().IntVarP(&tailLines, "lines", "n", 10,
		"Existing lines to print before following")
	tailCmd.Flags().BoolVar(&tailFollow, "follow", true,
		"Keep the log open and print new lines as they appear")
	tailCmd.Flags().StringSliceVarP(&tailDirs, "log-dir", "d", nil,
		"Extra log directories to search (may be repeated)")
	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	if tailLines < 0 {
		return fmt.Errorf("line count must not be negative, got %d", tailLines)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dirs := logfinder.SearchDirs(append(tailDirs, cfg.LogDirs...)...)
	path, err := logfinder.FindLatestLogFile(dirs, hytalelog.DefaultFileSuffix)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "==> %s <==\n", path)

	if tailLines > 0 {
		lines, err := readLastLines(path, tailLines)
		if err != nil {
			return fmt.Errorf("reading log file: %w", err)
		}
		for _, line := range lines {
			fmt.Println(line)
		}
	}
	if !tailFollow {
		return nil
	}

	t, err := tail.TailFile(path, tail.Config{
		Follow:        true,
		ReOpen:        true,
		MustExist:     true,
		CompleteLines: true,
		Location:      &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
		Logger:        tail.DiscardingLogger,
	})
	if err != nil {
		return fmt.Errorf("tailing log file: %w", err)
	}
	defer t.Cleanup()

	for {
		select {
		case <-ctx.Done():
			return t.Stop()
		case line, ok := <-t.Lines:
			if !ok {
				return nil
			}
			if line.Err != nil {
				if verbose {
					fmt.Fprintf(os.Stderr, "warning: %v\n", line.Err)
				}
				continue
			}
			fmt.Println(line.Text)
		}
	}
}

// maxTailScanBytes bounds the backward scan in readLastLines, so a log
// without newlines cannot pin arbitrary memory.
const maxTailScanBytes = 4 << 20

// readLastLines returns up to the last n non-empty lines of the file at
// path, scanning backwards in chunks so large logs are not read whole.
func readLastLines(path string, n int) ([]string, error) {
	if n <= 0 {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	const chunkSize = 4096
	var (
		lines   []string
		carry   []byte
		scanned int64
	)
	offset := info.Size()

	for offset > 0 && len(lines) < n && scanned < maxTailScanBytes {
		readSize := int64(chunkSize)
		if offset < readSize {
			readSize = offset
		}
		offset -= readSize
		scanned += readSize

		chunk := make([]byte, readSize)
		if _, err := f.ReadAt(chunk, offset); err != nil {
			return nil, err
		}
		// The carry from the previous iteration comes after this chunk in
		// file order.
		chunk = append(chunk, carry...)

		var found []string
		end := len(chunk)
		for i := len(chunk) - 1; i >= 0; i-- {
			if chunk[i] != '\n' {
				continue
			}
			if line := trimLineEnd(chunk[i+1 : end]); line != "" {
				found = append([]string{line}, found...)
			}
			end = i
		}
		carry = append([]byte(nil), chunk[:end]...)

		lines = append(found, lines...)
	}

	// A line at the start of the file has no leading newline.
	if offset == 0 {
		if line := trimLineEnd(carry); line != "" {
			lines = append([]string{line}, lines...)
		}
	}

	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines, nil
}

// trimLineEnd strips the trailing \r a CRLF file leaves behind.
func trimLineEnd(b []byte) string {
	if len(b) > 0 && b[len(b)-1] == '\r' {
		b = b[:len(b)-1]
	}
	return string(b)
}
