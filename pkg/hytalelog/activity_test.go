package hytalelog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hytalerpc/hytale-rpc-go/pkg/hytalelog"
)

func TestGameActivity_ZeroValueIsIdle(t *testing.T) {
	var a hytalelog.GameActivity
	assert.Equal(t, hytalelog.Idle(), a)
	assert.Equal(t, hytalelog.KindIdle, a.Kind)
}

func TestGameActivity_Comparable(t *testing.T) {
	// Change detection relies on plain equality.
	assert.Equal(t,
		hytalelog.InSingleplayerWorld("Adventure"),
		hytalelog.InSingleplayerWorld("Adventure"))
	assert.NotEqual(t,
		hytalelog.InSingleplayerWorld("Adventure"),
		hytalelog.InSingleplayerWorld("Cliffside"))
	assert.NotEqual(t,
		hytalelog.LoadingWorld("Adventure", false),
		hytalelog.LoadingWorld("Adventure", true))
	assert.NotEqual(t,
		hytalelog.InMainMenu(),
		hytalelog.Idle())
}

func TestGameActivity_InGame(t *testing.T) {
	tests := []struct {
		name     string
		activity hytalelog.GameActivity
		want     bool
	}{
		{"idle", hytalelog.Idle(), false},
		{"launcher", hytalelog.InLauncher(), false},
		{"main_menu", hytalelog.InMainMenu(), false},
		{"loading", hytalelog.LoadingWorld("Adventure", false), false},
		{"singleplayer", hytalelog.InSingleplayerWorld("Adventure"), true},
		{"multiplayer", hytalelog.InMultiplayerSession("play.hytale.com:25565", ""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.activity.InGame())
		})
	}
}

func TestGameActivity_String(t *testing.T) {
	tests := []struct {
		name     string
		activity hytalelog.GameActivity
		want     string
	}{
		{"idle", hytalelog.Idle(), "idle"},
		{"main_menu", hytalelog.InMainMenu(), "main_menu"},
		{"loading_bare", hytalelog.LoadingWorld("", false), "loading"},
		{"loading_multiplayer", hytalelog.LoadingWorld("", true), "loading multiplayer"},
		{"loading_world", hytalelog.LoadingWorld("Adventure", false), `loading world="Adventure"`},
		{"singleplayer", hytalelog.InSingleplayerWorld("Adventure"), `singleplayer world="Adventure"`},
		{"multiplayer_named", hytalelog.InMultiplayerSession("play.hytale.com:25565", "Orbis Realm"), `multiplayer server="Orbis Realm"`},
		{"multiplayer_addr_only", hytalelog.InMultiplayerSession("play.hytale.com:25565", ""), `multiplayer server="play.hytale.com:25565"`},
		{"multiplayer_unknown", hytalelog.InMultiplayerSession("", ""), "multiplayer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.activity.String())
		})
	}
}

func TestFormatStageName(t *testing.T) {
	tests := []struct {
		stage string
		want  string
	}{
		{"BootingServer", "Booting Server"},
		{"ReceivingAssets", "Receiving Assets"},
		{"Initial", "Initial"},
		{"", ""},
		{"lowercase", "lowercase"},
		{"ABC", "A B C"},
	}

	for _, tt := range tests {
		t.Run(tt.stage, func(t *testing.T) {
			assert.Equal(t, tt.want, hytalelog.FormatStageName(tt.stage))
		})
	}
}
