package hytalelog

import "strings"

// placeholderWorldName is reported for singleplayer sessions whose world
// name never appeared in the log.
const placeholderWorldName = "Exploring Orbis"

// parseLine runs one raw log line through the pattern table and reports
// whether the visible activity changed.
//
// Checks run in a fixed priority order and the first hit wins. Lines that
// only prime pending state (server address, server name) report false even
// though they mutate the watcher.
func (w *Watcher) parseLine(rawLine string) bool {
	line := strings.TrimSpace(rawLine)
	if line == "" {
		return false
	}

	// Client logs wrap messages in a pipe-delimited envelope:
	// timestamp|level|source|message. Match against the message field when
	// the envelope is present, otherwise against the whole line.
	if parts := strings.SplitN(line, "|", 4); len(parts) == 4 {
		line = strings.TrimSpace(parts[3])
	}

	// Main menu is the only transition that clears pending state. Reaching
	// the menu means any half-observed session is gone for good.
	if mainMenuPattern.MatchString(line) {
		w.log.Debug("detected main menu")
		w.activity = InMainMenu()
		w.pendingWorldName = ""
		w.pendingServerAddress = ""
		w.pendingServerName = ""
		w.isMultiplayer = false
		return true
	}

	if m := singleplayerWorldPattern.FindStringSubmatch(line); m != nil {
		w.log.Debug("detected singleplayer world load", "world", m[1])
		w.pendingWorldName = m[1]
		w.isMultiplayer = false
		w.activity = LoadingWorld(m[1], false)
		return true
	}

	// World creation logs no name of its own; a preceding world-load line
	// may already have primed one.
	if singleplayerCreatePattern.MatchString(line) {
		w.log.Debug("detected singleplayer world create")
		w.isMultiplayer = false
		w.activity = LoadingWorld(w.pendingWorldName, false)
		return true
	}

	if multiplayerConnectPattern.MatchString(line) {
		w.log.Debug("detected multiplayer connect")
		w.isMultiplayer = true
		w.activity = LoadingWorld("", true)
		return true
	}

	// Stage transitions only refine an activity that is already Loading.
	// Outside of loading the line falls through to the checks below.
	if m := loadingStagePattern.FindStringSubmatch(line); m != nil && w.activity.Kind == KindLoading {
		w.log.Debug("detected loading stage", "stage", m[2])
		next := w.activity
		next.SubStage = "Loading: " + FormatStageName(m[2])
		w.activity = next
		return true
	}

	if m := serverConnectPattern.FindStringSubmatch(line); m != nil {
		host, port := m[1], m[2]
		if isLoopback(host) {
			// Singleplayer worlds run on a local listener. Seeing one
			// means this is not a real multiplayer session.
			w.log.Debug("detected loopback server, treating as singleplayer")
			w.isMultiplayer = false
		} else {
			address := host + ":" + port
			w.log.Debug("detected server address", "address", address)
			w.pendingServerAddress = address
			w.isMultiplayer = true
		}
		// An address alone never changes the visible activity.
		return false
	}

	if m := serverNamePattern.FindStringSubmatch(line); m != nil {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		w.log.Debug("detected server name", "name", name)
		w.pendingServerName = name
		return false
	}

	// Two distinct lines confirm that the player entered the world. Fold
	// whatever was primed during loading into the final activity.
	if inGamePattern.MatchString(line) || worldLoadedPattern.MatchString(line) {
		if w.isMultiplayer {
			w.log.Debug("entered multiplayer world",
				"server", w.pendingServerAddress, "name", w.pendingServerName)
			w.activity = InMultiplayerSession(w.pendingServerAddress, w.pendingServerName)
		} else {
			world := w.pendingWorldName
			if world == "" {
				world = placeholderWorldName
			}
			w.log.Debug("entered singleplayer world", "world", world)
			w.activity = InSingleplayerWorld(world)
		}
		return true
	}

	// Direct announcements appear on clients that skip the loading lines.
	// Without a captured world name the announcement carries no information.
	if m := playingSingleplayerPattern.FindStringSubmatch(line); m != nil && m[1] != "" {
		w.log.Debug("detected singleplayer announcement", "world", m[1])
		w.activity = InSingleplayerWorld(m[1])
		return true
	}

	if playingMultiplayerPattern.MatchString(line) && w.activity.Kind != KindMultiplayer {
		w.log.Debug("detected multiplayer announcement")
		w.activity = InMultiplayerSession(w.pendingServerAddress, w.pendingServerName)
		return true
	}

	return false
}

func isLoopback(host string) bool {
	return host == "127.0.0.1" || host == "localhost" || host == "::1"
}
