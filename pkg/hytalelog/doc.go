// Package hytalelog extracts the player's current activity from Hytale
// client log files.
//
// The package tails the newest *_client.log it can find, feeds newly
// appended lines through a fixed set of patterns, and folds matches into a
// single GameActivity value: in the main menu, loading a world, playing
// singleplayer, or connected to a multiplayer server.
//
// # Basic Usage
//
// The watcher is poll-driven; the caller decides the cadence:
//
//	w, err := hytalelog.NewWatcher()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for range time.Tick(3 * time.Second) {
//	    changed, err := w.Update()
//	    if err != nil {
//	        log.Printf("update: %v", err)
//	        continue
//	    }
//	    if changed {
//	        fmt.Println(w.Activity())
//	    }
//	}
//
// Update reads only bytes appended since the previous call, re-resolves the
// newest log file on every call, and recovers from log rotation and
// truncation on its own. When the game process exits, call Reset so a stale
// session does not leak into the next run.
//
// A single goroutine must own a Watcher: Update and Reset perform no
// internal locking.
//
// # Platform Support
//
// Candidate log directories are auto-detected per platform (see
// internal/logfinder); WithLogDirs overrides them.
//
// # Disclaimer
//
// This is an unofficial tool and is not affiliated with Hypixel Studios.
package hytalelog
