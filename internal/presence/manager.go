package presence

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/hytalerpc/hytale-rpc-go/internal/discord"
	"github.com/hytalerpc/hytale-rpc-go/pkg/hytalelog"
)

// connectAttempts bounds one Connect call. Discord may simply not be
// running; the app loop decides whether to try again later.
const connectAttempts = 10

// Publisher is the slice of the Discord client the manager drives.
type Publisher interface {
	Connect() error
	SetActivity(*discord.Activity) error
	ClearActivity() error
	Connected() bool
	Close() error
}

// Manager owns the published presence: it renders activities, drops
// duplicates, anchors the in-game session timer and reconnects a dropped
// Discord connection on the next publish.
//
// A Manager is single-owner; methods must not be called concurrently.
type Manager struct {
	pub Publisher
	log *slog.Logger

	opts         Options
	last         *hytalelog.GameActivity
	sessionStart int64
	now          func() time.Time
}

// NewManager wires a manager to a publisher. A nil logger disables logging.
func NewManager(pub Publisher, opts Options, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{pub: pub, opts: opts, log: logger, now: time.Now}
}

// Connect establishes the Discord connection, retrying with exponential
// backoff until it succeeds, ctx is cancelled or the attempt budget runs
// out.
func (m *Manager) Connect(ctx context.Context) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = 30 * time.Second

	connect := func() (struct{}, error) {
		if err := m.pub.Connect(); err != nil {
			m.log.Warn("discord connect failed", "error", err)
			return struct{}{}, err
		}
		return struct{}{}, nil
	}

	_, err := backoff.Retry(ctx, connect,
		backoff.WithBackOff(b),
		backoff.WithMaxTries(connectAttempts),
	)
	if err != nil {
		return fmt.Errorf("connecting to discord: %w", err)
	}
	m.log.Info("connected to discord")
	return nil
}

// SetOptions changes the display options. A real change forces the next
// Publish through even if the activity itself did not move.
func (m *Manager) SetOptions(opts Options) {
	if m.opts == opts {
		return
	}
	m.opts = opts
	m.last = nil
}

// Options returns the current display options.
func (m *Manager) Options() Options {
	return m.opts
}

// Publish renders and sends the activity. Publishing the same activity
// twice in a row is a no-op. A dropped connection is re-established with a
// single attempt; the backoff lives in Connect.
func (m *Manager) Publish(a hytalelog.GameActivity) error {
	if m.last != nil && *m.last == a {
		return nil
	}

	if !m.pub.Connected() {
		if err := m.pub.Connect(); err != nil {
			return fmt.Errorf("reconnecting to discord: %w", err)
		}
		m.log.Info("reconnected to discord")
	}

	// The elapsed timer starts when the player enters a world and stops
	// the moment they leave it.
	if a.InGame() {
		if m.last == nil || !m.last.InGame() {
			m.sessionStart = m.now().Unix()
		}
	} else {
		m.sessionStart = 0
	}

	act := BuildActivity(a, m.opts, m.sessionStart)
	m.log.Debug("publishing presence", "details", act.Details, "state", act.State)

	if err := m.pub.SetActivity(act); err != nil {
		m.last = nil
		return fmt.Errorf("updating presence: %w", err)
	}

	snapshot := a
	m.last = &snapshot
	return nil
}

// Connected reports whether the underlying client holds a live connection.
func (m *Manager) Connected() bool {
	return m.pub.Connected()
}

// Clear removes the presence, keeping the connection. The next Publish
// always goes through.
func (m *Manager) Clear() error {
	m.last = nil
	m.sessionStart = 0
	if !m.pub.Connected() {
		return nil
	}
	if err := m.pub.ClearActivity(); err != nil {
		return fmt.Errorf("clearing presence: %w", err)
	}
	m.log.Debug("cleared presence")
	return nil
}

// Close shuts the connection down.
func (m *Manager) Close() error {
	m.last = nil
	m.sessionStart = 0
	return m.pub.Close()
}
