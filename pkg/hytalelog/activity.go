package hytalelog

import (
	"fmt"
	"strings"
	"unicode"
)

// Kind identifies which activity variant is current.
type Kind int

const (
	// KindIdle is the default state: no log signal yet, or after a reset.
	KindIdle Kind = iota
	// KindLauncher means the Hytale launcher is running but not the game.
	KindLauncher
	// KindMainMenu means the client is sitting in the main menu.
	KindMainMenu
	// KindLoading means a world or session is being established.
	KindLoading
	// KindSingleplayer means the player is in a singleplayer world.
	KindSingleplayer
	// KindMultiplayer means the player is connected to a server.
	KindMultiplayer
)

// String returns a short name for the kind.
func (k Kind) String() string {
	switch k {
	case KindIdle:
		return "idle"
	case KindLauncher:
		return "launcher"
	case KindMainMenu:
		return "main_menu"
	case KindLoading:
		return "loading"
	case KindSingleplayer:
		return "singleplayer"
	case KindMultiplayer:
		return "multiplayer"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// GameActivity is the externally visible state extracted from the log.
//
// Exactly one Kind is current at a time, and every transition replaces the
// whole value. Payload fields are meaningful only for the kinds that carry
// them; an empty string means "not known". The zero value is Idle.
//
// GameActivity is comparable, so callers can detect changes with ==.
type GameActivity struct {
	Kind Kind

	// WorldName is set for Loading (when known) and Singleplayer.
	WorldName string
	// IsMultiplayer distinguishes the two Loading flavors.
	IsMultiplayer bool
	// SubStage is a display string like "Loading: Booting Server",
	// set while Loading once stage transitions appear in the log.
	SubStage string

	// ServerAddress and ServerName are set for Multiplayer, when the log
	// revealed them before the session was confirmed.
	ServerAddress string
	ServerName    string
}

// Idle returns the default activity.
func Idle() GameActivity { return GameActivity{Kind: KindIdle} }

// InLauncher returns the launcher activity.
func InLauncher() GameActivity { return GameActivity{Kind: KindLauncher} }

// InMainMenu returns the main-menu activity.
func InMainMenu() GameActivity { return GameActivity{Kind: KindMainMenu} }

// LoadingWorld returns a Loading activity. worldName may be empty.
func LoadingWorld(worldName string, multiplayer bool) GameActivity {
	return GameActivity{Kind: KindLoading, WorldName: worldName, IsMultiplayer: multiplayer}
}

// InSingleplayerWorld returns a settled singleplayer activity.
func InSingleplayerWorld(worldName string) GameActivity {
	return GameActivity{Kind: KindSingleplayer, WorldName: worldName}
}

// InMultiplayerSession returns a settled multiplayer activity.
// Either field may be empty if the log never revealed it.
func InMultiplayerSession(serverAddress, serverName string) GameActivity {
	return GameActivity{Kind: KindMultiplayer, ServerAddress: serverAddress, ServerName: serverName}
}

// InGame reports whether the activity is a settled in-world state
// (singleplayer or multiplayer), as opposed to menus and loading screens.
func (a GameActivity) InGame() bool {
	return a.Kind == KindSingleplayer || a.Kind == KindMultiplayer
}

// String renders the activity for logs and debug output.
func (a GameActivity) String() string {
	switch a.Kind {
	case KindLoading:
		var b strings.Builder
		b.WriteString("loading")
		if a.IsMultiplayer {
			b.WriteString(" multiplayer")
		}
		if a.WorldName != "" {
			fmt.Fprintf(&b, " world=%q", a.WorldName)
		}
		if a.SubStage != "" {
			fmt.Fprintf(&b, " stage=%q", a.SubStage)
		}
		return b.String()
	case KindSingleplayer:
		return fmt.Sprintf("singleplayer world=%q", a.WorldName)
	case KindMultiplayer:
		if a.ServerName != "" {
			return fmt.Sprintf("multiplayer server=%q", a.ServerName)
		}
		if a.ServerAddress != "" {
			return fmt.Sprintf("multiplayer server=%q", a.ServerAddress)
		}
		return "multiplayer"
	default:
		return a.Kind.String()
	}
}

// FormatStageName converts a PascalCase stage token into a spaced display
// string: "BootingServer" becomes "Booting Server", "Initial" is unchanged.
// A space is inserted before every upper-case rune except the first.
func FormatStageName(stage string) string {
	var b strings.Builder
	b.Grow(len(stage) + 4)
	for i, r := range stage {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
