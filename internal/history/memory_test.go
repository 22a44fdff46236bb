package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hytalerpc/hytale-rpc-go/pkg/hytalelog"
)

func TestMemoryStore_RecordAndRecent(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		s := Session{ID: id, Kind: KindSingleplayer, StartedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := st.RecordStart(ctx, s); err != nil {
			t.Fatalf("RecordStart: %v", err)
		}
	}

	got, err := st.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent returned %d sessions, want 2", len(got))
	}
	if got[0].ID != "c" || got[1].ID != "b" {
		t.Errorf("Recent order = [%s %s], want [c b]", got[0].ID, got[1].ID)
	}

	all, err := st.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Recent(0) returned %d sessions, want all 3", len(all))
	}
}

func TestMemoryStore_RecordEnd(t *testing.T) {
	st := NewMemoryStore()
	ctx := context.Background()
	start := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	if err := st.RecordStart(ctx, Session{ID: "a", Kind: KindMultiplayer, Server: "host:5520", StartedAt: start}); err != nil {
		t.Fatalf("RecordStart: %v", err)
	}
	if err := st.RecordEnd(ctx, "a", end); err != nil {
		t.Fatalf("RecordEnd: %v", err)
	}

	got, err := st.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if !got[0].EndedAt.Equal(end) {
		t.Errorf("EndedAt = %v, want %v", got[0].EndedAt, end)
	}

	if err := st.RecordEnd(ctx, "missing", end); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("RecordEnd on unknown id = %v, want ErrSessionNotFound", err)
	}
}

func TestNewSession(t *testing.T) {
	start := time.Date(2026, 3, 14, 20, 0, 0, 0, time.UTC)

	sp := NewSession(hytalelog.InSingleplayerWorld("Adventure"), start)
	if sp.ID == "" {
		t.Error("singleplayer session has empty id")
	}
	if sp.Kind != KindSingleplayer || sp.World != "Adventure" || sp.Server != "" {
		t.Errorf("singleplayer session = %+v", sp)
	}
	if !sp.StartedAt.Equal(start) {
		t.Errorf("StartedAt = %v, want %v", sp.StartedAt, start)
	}

	mp := NewSession(hytalelog.InMultiplayerSession("play.example.com:5520", "Orbis Realm"), start)
	if mp.Kind != KindMultiplayer || mp.Server != "play.example.com:5520" || mp.ServerName != "Orbis Realm" {
		t.Errorf("multiplayer session = %+v", mp)
	}
	if mp.ID == sp.ID {
		t.Error("sessions share an id")
	}
}
