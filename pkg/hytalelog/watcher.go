package hytalelog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/hytalerpc/hytale-rpc-go/internal/logfinder"
	"github.com/hytalerpc/hytale-rpc-go/internal/safefile"
)

// discardLogger is used when no logger is configured.
var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// Watcher tails the newest Hytale client log and derives the player's
// current activity from newly appended lines.
//
// A Watcher owns a read cursor into one log file plus the activity state
// built from it. It does no background work: the caller drives it by
// calling Update on a polling schedule. Methods must not be called
// concurrently.
type Watcher struct {
	logDirs    []string
	fileSuffix string
	log        *slog.Logger
	lineHook   func(line string)

	currentLogPath string
	filePos        int64

	activity GameActivity

	// Pending fields accumulate details observed during loading before a
	// confirmation line folds them into the activity.
	pendingWorldName     string
	pendingServerAddress string
	pendingServerName    string
	isMultiplayer        bool
}

// NewWatcher creates a watcher. Without options it searches the platform
// default log directories for files ending in DefaultFileSuffix.
func NewWatcher(opts ...WatchOption) (*Watcher, error) {
	cfg := applyWatchOptions(opts)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid watcher options: %w", err)
	}

	dirs := cfg.logDirs
	if len(dirs) == 0 {
		dirs = logfinder.DefaultLogDirs()
	}
	logger := cfg.logger
	if logger == nil {
		logger = discardLogger
	}

	return &Watcher{
		logDirs:    dirs,
		fileSuffix: cfg.fileSuffix,
		log:        logger,
		lineHook:   cfg.lineHook,
		activity:   Idle(),
	}, nil
}

// Activity returns the current activity. The returned value is a snapshot;
// it does not change when the watcher advances.
func (w *Watcher) Activity() GameActivity {
	return w.activity
}

// CurrentLogPath returns the log file the watcher is reading, or the empty
// string when no file has been found yet.
func (w *Watcher) CurrentLogPath() string {
	return w.currentLogPath
}

// Reset drops the read cursor, the activity and all pending detail. Call it
// when the game process exits so a finished session is not reported as
// still running. Reset is idempotent.
func (w *Watcher) Reset() {
	w.currentLogPath = ""
	w.filePos = 0
	w.activity = Idle()
	w.pendingWorldName = ""
	w.pendingServerAddress = ""
	w.pendingServerName = ""
	w.isMultiplayer = false
}

// Update locates the newest client log, reads everything appended since the
// previous call and reports whether the activity changed.
//
// A missing log file is a normal condition and reports (false, nil): the
// game may simply not be running. Errors from opening or reading the file
// are returned to the caller; the cursor is left unchanged so the next
// Update retries the same span.
func (w *Watcher) Update() (bool, error) {
	latest, err := logfinder.FindLatestLogFile(w.logDirs, w.fileSuffix)
	if err != nil {
		if errors.Is(err, logfinder.ErrNoLogFile) {
			// Forget the file but keep the activity: a vanished log does
			// not mean the session ended.
			w.currentLogPath = ""
			w.filePos = 0
			return false, nil
		}
		return false, fmt.Errorf("finding log file: %w", err)
	}

	// A newer file means the client rotated logs. Start it from the top;
	// activity and pending state carry over untouched.
	if latest != w.currentLogPath {
		w.log.Info("watching log file", "path", latest)
		w.currentLogPath = latest
		w.filePos = 0
	}

	f, info, err := safefile.OpenRegular(w.currentLogPath)
	if err != nil {
		return false, fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()

	size := info.Size()

	// A shrunken file means it was truncated in place, usually by a client
	// restart reusing the same path. Rewind and drop the activity; pending
	// detail survives so a session already loading is not lost.
	if size < w.filePos {
		w.log.Info("log file truncated, rewinding", "path", w.currentLogPath)
		w.filePos = 0
		w.activity = Idle()
	}

	if size == w.filePos {
		return false, nil
	}

	if _, err := f.Seek(w.filePos, io.SeekStart); err != nil {
		return false, fmt.Errorf("seeking log file: %w", err)
	}

	changed := false
	pos := w.filePos
	r := bufio.NewReader(f)
	for {
		line, rerr := r.ReadString('\n')
		if len(line) > 0 {
			pos += int64(len(line))
			if w.lineHook != nil {
				if trimmed := strings.TrimSpace(line); trimmed != "" {
					w.lineHook(trimmed)
				}
			}
			if w.parseLine(line) {
				changed = true
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				break
			}
			return false, fmt.Errorf("reading log file: %w", rerr)
		}
	}
	w.filePos = pos

	return changed, nil
}
