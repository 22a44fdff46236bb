package app

import (
	"io"
	"log/slog"

	"github.com/hytalerpc/hytale-rpc-go/internal/alerts"
)

// alertTitle heads every rule-fired notification.
const alertTitle = "Hytale Alert"

// AlertHook builds the watcher line hook that evaluates alert rules and
// delivers matches as notifications. A nil evaluator returns a nil hook,
// leaving the feature off.
func AlertHook(ev *alerts.Evaluator, n GameNotifier, logger *slog.Logger) func(string) {
	if ev == nil {
		return nil
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	guard := &notifierGuard{n: n}
	return func(line string) {
		for _, f := range ev.Eval(line) {
			logger.Info("alert rule fired", "rule", f.RuleID)
			guard.Notify(alertTitle, f.Message)
		}
	}
}
