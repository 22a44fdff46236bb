// Package notify sends desktop notifications for game lifecycle events
// and alert rule firings.
package notify

import (
	"io"
	"log/slog"

	"github.com/gen2brain/beeep"
)

// DefaultTitle is used for game lifecycle notifications.
const DefaultTitle = "Hytale RPC"

// Notifier sends desktop notifications. A disabled notifier drops every
// send. Delivery failures are logged, never returned.
type Notifier struct {
	enabled bool
	log     *slog.Logger
	send    func(title, message string) error
}

func New(enabled bool, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Notifier{
		enabled: enabled,
		log:     logger,
		send: func(title, message string) error {
			return beeep.Notify(title, message, "")
		},
	}
}

// Enabled reports whether notifications are delivered.
func (n *Notifier) Enabled() bool { return n.enabled }

// Notify shows a desktop notification.
func (n *Notifier) Notify(title, message string) {
	if !n.enabled {
		return
	}
	if err := n.send(title, message); err != nil {
		n.log.Warn("failed to show notification", "title", title, "error", err)
	}
}

// GameDetected announces that the game process appeared.
func (n *Notifier) GameDetected() { n.Notify(DefaultTitle, "Hytale Game detected") }

// GameClosed announces that the game process exited.
func (n *Notifier) GameClosed() { n.Notify(DefaultTitle, "Hytale Game closed") }
