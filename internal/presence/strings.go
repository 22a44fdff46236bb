// Package presence renders game activities into Discord rich presence and
// keeps the published state in sync with the game.
package presence

import (
	"github.com/hytalerpc/hytale-rpc-go/internal/discord"
	"github.com/hytalerpc/hytale-rpc-go/pkg/hytalelog"
)

// Asset and button constants. The image names must match assets uploaded to
// the Discord application.
const (
	largeImage  = "hytale_logo"
	largeText   = "Hytale"
	buttonLabel = "Hytale Website"
	buttonURL   = "https://hytale.com"
)

// Options control how much session detail the presence reveals.
type Options struct {
	ShowWorldName bool
	ShowServerIP  bool
}

// Details renders the first presence line.
func Details(a hytalelog.GameActivity) string {
	switch a.Kind {
	case hytalelog.KindLauncher:
		return "In Launcher"
	case hytalelog.KindMainMenu:
		return "In Main Menu"
	case hytalelog.KindLoading:
		if a.SubStage != "" {
			return a.SubStage
		}
		if a.IsMultiplayer {
			return "Joining Server"
		}
		return "Loading World"
	case hytalelog.KindSingleplayer:
		return "Playing Singleplayer"
	case hytalelog.KindMultiplayer:
		return "Playing Multiplayer"
	default:
		return "Idle"
	}
}

// State renders the second presence line.
func State(a hytalelog.GameActivity, opts Options) string {
	switch a.Kind {
	case hytalelog.KindLauncher:
		return "Ready to Play"
	case hytalelog.KindMainMenu:
		return "Idle"
	case hytalelog.KindLoading:
		// With a sub stage in the details line, this line carries the
		// world name instead.
		if a.SubStage != "" {
			if opts.ShowWorldName && a.WorldName != "" {
				return a.WorldName
			}
			return "Please wait..."
		}
		if opts.ShowWorldName && a.WorldName != "" {
			return a.WorldName
		}
		return "..."
	case hytalelog.KindSingleplayer:
		if opts.ShowWorldName {
			return "World: " + a.WorldName
		}
		return "In Game"
	case hytalelog.KindMultiplayer:
		if !opts.ShowServerIP {
			return "Online"
		}
		if a.ServerName != "" {
			return "Server: " + a.ServerName
		}
		if a.ServerAddress != "" {
			return "Server: " + a.ServerAddress
		}
		return "Online"
	default:
		return "Waiting..."
	}
}

// BuildActivity assembles the wire payload for an activity. A nonzero
// startUnix becomes the elapsed-time anchor shown under the presence.
func BuildActivity(a hytalelog.GameActivity, opts Options, startUnix int64) *discord.Activity {
	act := &discord.Activity{
		Details: Details(a),
		State:   State(a, opts),
		Assets: &discord.Assets{
			LargeImage: largeImage,
			LargeText:  largeText,
		},
		Buttons: []discord.Button{{Label: buttonLabel, URL: buttonURL}},
	}
	if startUnix != 0 {
		act.Timestamps = &discord.Timestamps{Start: startUnix}
	}
	return act
}
