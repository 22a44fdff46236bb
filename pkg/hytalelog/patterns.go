package hytalelog

import "regexp"

// Compiled patterns for activity detection, one per recognized log event
// category. Construction happens at package init; a pattern that fails to
// compile is a programmer error, not a runtime condition.
//
// The dispatch order in parseLine is a contract, not an accident: priming
// patterns (server address, server name) must be checked before the generic
// in-game confirmation, and the loading-stage pattern must run before it as
// well. Keep additions in sync with parseLine.
var (
	// Matches: "Changing Stage to MainMenu"
	// Matches: "Changing from Stage Startup to MainMenu"
	mainMenuPattern = regexp.MustCompile(
		`Changing Stage to MainMenu|Changing from Stage (?:Loading|GameLoading|Startup) to MainMenu`,
	)

	// Matches: `Connecting to singleplayer world "TestWorld"...`
	// Captures: (1) world name
	singleplayerWorldPattern = regexp.MustCompile(
		`Connecting to singleplayer world "([^"]+)"`,
	)

	// Matches: "Creating new singleplayer world in ..."
	// Matches: "Creating world"
	singleplayerCreatePattern = regexp.MustCompile(
		`Creating new singleplayer world in|Creating world`,
	)

	// Matches: "Connecting to multiplayer server"
	// Matches: "Server connection established"
	multiplayerConnectPattern = regexp.MustCompile(
		`Connecting to (?:multiplayer|dedicated) server|Server connection established`,
	)

	// Matches: "Opening Quic Connection to play.hytale.com:25565"
	// Captures: (1) host, (2) port
	serverConnectPattern = regexp.MustCompile(
		`Opening Quic Connection to ([\d\w\.-]+):(\d+)`,
	)

	// Matches: "Changing from Stage GameLoading to InGame"
	// Matches: "GameInstance.StartJoiningWorld"
	inGamePattern = regexp.MustCompile(
		`Changing from Stage (?:GameLoading|Loading) to InGame|GameInstance\.StartJoiningWorld|GameInstance\.OnWorldJoined`,
	)

	// Matches: "World loaded", "World ready", "Loading world: ..."
	worldLoadedPattern = regexp.MustCompile(
		`World loaded|World finished loading|World ready|Loading world:`,
	)

	// Matches: `Server name: "Cool Server"` or `Joined server: "Cool Server"`
	// Captures: (1) or (2) server name; first non-empty group wins
	serverNamePattern = regexp.MustCompile(
		`Server name:?\s*"([^"]+)"|Joined server:?\s*"([^"]+)"`,
	)

	// Matches: `Singleplayer world "TestWorld"`
	// Captures: (1) world name; bare "Playing in singleplayer" forms match
	// without a capture and are treated as no-ops
	playingSingleplayerPattern = regexp.MustCompile(
		`Singleplayer world "([^"]+)"|Playing in singleplayer|Singleplayer mode`,
	)

	// Matches: "Playing in multiplayer", "dedicated server"
	playingMultiplayerPattern = regexp.MustCompile(
		`Playing in multiplayer|Multiplayer mode|Multi player|dedicated server`,
	)

	// Matches: "Changing from loading stage Initial to BootingServer"
	// Captures: (1) from stage, (2) to stage
	loadingStagePattern = regexp.MustCompile(
		`Changing from loading stage (\w+) to (\w+)`,
	)
)
