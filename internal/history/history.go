// Package history records play sessions in a local store so recently
// visited worlds and servers can be listed later.
package history

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hytalerpc/hytale-rpc-go/pkg/hytalelog"
)

// Session kinds as stored in the database.
const (
	KindSingleplayer = "singleplayer"
	KindMultiplayer  = "multiplayer"
)

// ErrSessionNotFound is returned by RecordEnd when no session with the
// given id exists.
var ErrSessionNotFound = errors.New("session not found")

// Session is one stretch of in-game play, from entering a world or
// server until leaving it.
type Session struct {
	ID         string
	Kind       string
	World      string
	Server     string
	ServerName string
	StartedAt  time.Time
	EndedAt    time.Time
}

// Open reports whether the session has no recorded end yet.
func (s Session) Open() bool { return s.EndedAt.IsZero() }

// Store persists sessions. Implementations are safe for use from a
// single goroutine; the app loop is the only writer.
type Store interface {
	RecordStart(ctx context.Context, s Session) error
	RecordEnd(ctx context.Context, id string, endedAt time.Time) error
	// Recent returns sessions ordered newest first. limit <= 0 returns
	// all sessions.
	Recent(ctx context.Context, limit int) ([]Session, error)
	Close() error
}

// NewSession builds an open session row with a fresh id from an in-game
// activity snapshot. The caller records it with Store.RecordStart.
func NewSession(a hytalelog.GameActivity, startedAt time.Time) Session {
	s := Session{
		ID:        uuid.NewString(),
		Kind:      KindSingleplayer,
		World:     a.WorldName,
		StartedAt: startedAt,
	}
	if a.Kind == hytalelog.KindMultiplayer {
		s.Kind = KindMultiplayer
		s.Server = a.ServerAddress
		s.ServerName = a.ServerName
	}
	return s
}

// OpenStore opens the sqlite store at path, falling back to an in-memory
// store when the database cannot be opened. Sessions recorded in the
// fallback are lost when the process exits.
func OpenStore(path string, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	st, err := NewSQLiteStore(path)
	if err != nil {
		logger.Warn("session history database unavailable, keeping sessions in memory",
			"path", path, "error", err)
		return NewMemoryStore()
	}
	return st
}
