package presence

import (
	"testing"

	"github.com/hytalerpc/hytale-rpc-go/pkg/hytalelog"
)

func TestDetails(t *testing.T) {
	tests := []struct {
		name     string
		activity hytalelog.GameActivity
		want     string
	}{
		{"idle", hytalelog.Idle(), "Idle"},
		{"launcher", hytalelog.InLauncher(), "In Launcher"},
		{"main_menu", hytalelog.InMainMenu(), "In Main Menu"},
		{"loading_singleplayer", hytalelog.LoadingWorld("Adventure", false), "Loading World"},
		{"loading_multiplayer", hytalelog.LoadingWorld("", true), "Joining Server"},
		{"loading_sub_stage", withSubStage(hytalelog.LoadingWorld("Adventure", false), "Loading: Booting Server"), "Loading: Booting Server"},
		{"singleplayer", hytalelog.InSingleplayerWorld("Adventure"), "Playing Singleplayer"},
		{"multiplayer", hytalelog.InMultiplayerSession("play.hytale.com:25565", ""), "Playing Multiplayer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Details(tt.activity); got != tt.want {
				t.Errorf("Details() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestState(t *testing.T) {
	show := Options{ShowWorldName: true, ShowServerIP: true}
	hide := Options{}

	tests := []struct {
		name     string
		activity hytalelog.GameActivity
		opts     Options
		want     string
	}{
		{"idle", hytalelog.Idle(), show, "Waiting..."},
		{"launcher", hytalelog.InLauncher(), show, "Ready to Play"},
		{"main_menu", hytalelog.InMainMenu(), show, "Idle"},

		{"loading_with_world", hytalelog.LoadingWorld("Adventure", false), show, "Adventure"},
		{"loading_without_world", hytalelog.LoadingWorld("", false), show, "..."},
		{"loading_world_hidden", hytalelog.LoadingWorld("Adventure", false), hide, "..."},
		{"loading_sub_stage_with_world", withSubStage(hytalelog.LoadingWorld("Adventure", false), "Loading: Booting Server"), show, "Adventure"},
		{"loading_sub_stage_without_world", withSubStage(hytalelog.LoadingWorld("", true), "Loading: Booting Server"), show, "Please wait..."},
		{"loading_sub_stage_world_hidden", withSubStage(hytalelog.LoadingWorld("Adventure", false), "Loading: Booting Server"), hide, "Please wait..."},

		{"singleplayer", hytalelog.InSingleplayerWorld("Adventure"), show, "World: Adventure"},
		{"singleplayer_world_hidden", hytalelog.InSingleplayerWorld("Adventure"), hide, "In Game"},

		{"multiplayer_named", hytalelog.InMultiplayerSession("play.hytale.com:25565", "Orbis Realm"), show, "Server: Orbis Realm"},
		{"multiplayer_addr_only", hytalelog.InMultiplayerSession("play.hytale.com:25565", ""), show, "Server: play.hytale.com:25565"},
		{"multiplayer_unknown", hytalelog.InMultiplayerSession("", ""), show, "Online"},
		{"multiplayer_ip_hidden", hytalelog.InMultiplayerSession("play.hytale.com:25565", "Orbis Realm"), hide, "Online"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := State(tt.activity, tt.opts); got != tt.want {
				t.Errorf("State() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildActivity(t *testing.T) {
	act := BuildActivity(hytalelog.InSingleplayerWorld("Adventure"), Options{ShowWorldName: true}, 1755700000)

	if act.Details != "Playing Singleplayer" {
		t.Errorf("Details = %q", act.Details)
	}
	if act.State != "World: Adventure" {
		t.Errorf("State = %q", act.State)
	}
	if act.Assets == nil || act.Assets.LargeImage != "hytale_logo" || act.Assets.LargeText != "Hytale" {
		t.Errorf("Assets = %+v", act.Assets)
	}
	if len(act.Buttons) != 1 || act.Buttons[0].URL != "https://hytale.com" {
		t.Errorf("Buttons = %+v", act.Buttons)
	}
	if act.Timestamps == nil || act.Timestamps.Start != 1755700000 {
		t.Errorf("Timestamps = %+v", act.Timestamps)
	}
}

func TestBuildActivity_NoTimestampOutsideGame(t *testing.T) {
	act := BuildActivity(hytalelog.InMainMenu(), Options{}, 0)
	if act.Timestamps != nil {
		t.Errorf("Timestamps = %+v, want nil", act.Timestamps)
	}
}

func withSubStage(a hytalelog.GameActivity, stage string) hytalelog.GameActivity {
	a.SubStage = stage
	return a
}
