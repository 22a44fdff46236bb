// Package app wires the process detector, log watcher, presence manager,
// tray, notifications, session history, and alert rules into the daemon
// loop.
package app

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hytalerpc/hytale-rpc-go/internal/config"
	"github.com/hytalerpc/hytale-rpc-go/internal/history"
	"github.com/hytalerpc/hytale-rpc-go/internal/logfinder"
	"github.com/hytalerpc/hytale-rpc-go/internal/presence"
	"github.com/hytalerpc/hytale-rpc-go/internal/process"
	"github.com/hytalerpc/hytale-rpc-go/internal/tray"
	"github.com/hytalerpc/hytale-rpc-go/pkg/hytalelog"
)

// Tray status lines.
const (
	statusWaiting        = "Waiting for Hytale..."
	statusGameDetected   = "Hytale Game detected"
	statusInLauncher     = "In Launcher"
	statusWaitingDiscord = "Waiting for Discord..."
)

// connectTimeout bounds the backoff dial on a game launch edge. After it
// expires the loop falls back to one reconnect attempt per tick.
const connectTimeout = 15 * time.Second

// shutdownTimeout bounds the final history write and presence clear.
const shutdownTimeout = 2 * time.Second

// ProcessChecker reports which of the watched processes are running.
// *process.Detector satisfies it.
type ProcessChecker interface {
	Snapshot() (process.Status, error)
}

// GameNotifier delivers desktop notifications. *notify.Notifier
// satisfies it.
type GameNotifier interface {
	GameDetected()
	GameClosed()
	Notify(title, message string)
}

// Deps are the collaborators the loop drives. TrayStatus and TrayEvents
// are nil when running without a tray.
type Deps struct {
	Config     config.Config
	ConfigPath string
	Logger     *slog.Logger

	Processes ProcessChecker
	Watcher   *hytalelog.Watcher
	Presence  *presence.Manager
	History   history.Store
	Notifier  GameNotifier

	TrayStatus func(string)
	TrayEvents <-chan tray.Event
}

// App is the long-running daemon: it polls the process table, tails the
// client log, and keeps Discord, the tray, and the session history in
// sync with what the game is doing.
type App struct {
	cfg        config.Config
	cfgPath    string
	log        *slog.Logger
	procs      ProcessChecker
	watcher    *hytalelog.Watcher
	presence   *presence.Manager
	store      history.Store
	notifier   *notifierGuard
	trayStatus func(string)
	trayEvents <-chan tray.Event

	gameWasRunning     bool
	launcherWasRunning bool
	session            *history.Session

	now            func() time.Time
	connectTimeout time.Duration
}

func New(d Deps) *App {
	logger := d.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &App{
		cfg:        d.Config,
		cfgPath:    d.ConfigPath,
		log:        logger,
		procs:      d.Processes,
		watcher:    d.Watcher,
		presence:   d.Presence,
		store:      d.History,
		notifier:   &notifierGuard{n: d.Notifier},
		trayStatus: d.TrayStatus,
		trayEvents: d.TrayEvents,
		now:        time.Now,

		connectTimeout: connectTimeout,
	}
}

// Run drives the loop until ctx is canceled or the tray requests quit.
// Both exits are clean and return nil.
func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting background service", "poll_interval", a.cfg.PollInterval)
	a.setStatus(statusWaiting)

	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()

	fsEvents, fsErrors, closeFS := a.watchLogDirs()
	defer closeFS()

	a.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			a.shutdown()
			return nil
		case ev := <-a.trayEvents:
			if quit := a.handleTrayEvent(ev); quit {
				a.shutdown()
				return nil
			}
		case event, ok := <-fsEvents:
			if !ok {
				fsEvents = nil
				continue
			}
			// The log grew; pick up the new lines without waiting for
			// the next poll. Process edges stay on the poll cadence.
			if isLogEvent(event) && a.gameWasRunning {
				a.refreshPresence(ctx)
			}
		case err, ok := <-fsErrors:
			if !ok {
				fsErrors = nil
				continue
			}
			a.log.Warn("log directory watch error", "error", err)
		case <-ticker.C:
			a.tick(ctx)
		}
	}
}

// tick is one full pass: refresh the process table, handle start/stop
// edges, then publish whatever the current state calls for.
func (a *App) tick(ctx context.Context) {
	st, err := a.procs.Snapshot()
	if err != nil {
		a.log.Warn("process scan failed", "error", err)
		return
	}

	if st.Game && !a.gameWasRunning {
		a.log.Info("Hytale Game detected")
		a.setStatus(statusGameDetected)
		a.notifier.GameDetected()
		a.connectPresence(ctx)
	} else if !st.Game && a.gameWasRunning {
		a.log.Info("Hytale Game closed")
		a.setStatus(statusWaiting)
		a.watcher.Reset()
		a.closeSession()
		if err := a.presence.Clear(); err != nil {
			a.log.Warn("failed to clear presence", "error", err)
		}
		a.notifier.GameClosed()
	}
	a.gameWasRunning = st.Game

	if st.Launcher && !a.launcherWasRunning {
		a.log.Info("Hytale Launcher detected")
		if !st.Game {
			a.setStatus(statusInLauncher)
		}
	} else if !st.Launcher && a.launcherWasRunning {
		a.log.Info("Hytale Launcher closed")
	}
	a.launcherWasRunning = st.Launcher

	switch {
	case st.Game:
		a.refreshPresence(ctx)
	case st.Launcher:
		a.setStatus(statusInLauncher)
		a.publish(hytalelog.InLauncher())
	default:
		a.idle()
	}
}

// refreshPresence reads new log lines and pushes the resulting activity.
func (a *App) refreshPresence(ctx context.Context) {
	changed, err := a.watcher.Update()
	if err != nil {
		a.log.Warn("error reading log file", "error", err)
		changed = false
	}
	activity := a.watcher.Activity()

	if changed {
		a.setStatus(presence.Details(activity) + " - " + presence.State(activity, a.presence.Options()))
		a.syncSession(ctx, activity)
	}

	a.publish(activity)
}

func (a *App) publish(activity hytalelog.GameActivity) {
	if err := a.presence.Publish(activity); err != nil {
		a.log.Warn("failed to update presence", "error", err)
		if !a.presence.Connected() {
			a.setStatus(statusWaitingDiscord)
		}
	}
}

// connectPresence dials Discord with backoff once, on the launch edge.
// Failures degrade to the per-tick reconnect inside Publish.
func (a *App) connectPresence(ctx context.Context) {
	cctx, cancel := context.WithTimeout(ctx, a.connectTimeout)
	defer cancel()
	if err := a.presence.Connect(cctx); err != nil {
		a.log.Warn("could not connect to Discord", "error", err)
		a.setStatus(statusWaitingDiscord)
	}
}

// idle runs when neither the game nor the launcher is up: drop the
// presence and the connection until something starts again.
func (a *App) idle() {
	if a.presence.Connected() {
		if err := a.presence.Clear(); err != nil {
			a.log.Warn("failed to clear presence", "error", err)
		}
		if err := a.presence.Close(); err != nil {
			a.log.Warn("failed to close presence connection", "error", err)
		}
	}
	a.setStatus(statusWaiting)
}

func (a *App) handleTrayEvent(ev tray.Event) (quit bool) {
	switch ev {
	case tray.EventQuit:
		a.log.Info("quit requested from tray")
		return true
	case tray.EventToggleWorldName:
		opts := a.presence.Options()
		opts.ShowWorldName = !opts.ShowWorldName
		a.applyOptions(opts)
		a.log.Info("toggled show_world_name", "value", opts.ShowWorldName)
	case tray.EventToggleServerIP:
		opts := a.presence.Options()
		opts.ShowServerIP = !opts.ShowServerIP
		a.applyOptions(opts)
		a.log.Info("toggled show_server_ip", "value", opts.ShowServerIP)
	}
	return false
}

// applyOptions persists a toggle and hands it to the presence manager,
// which republishes on the next tick.
func (a *App) applyOptions(opts presence.Options) {
	a.presence.SetOptions(opts)
	a.cfg.ShowWorldName = opts.ShowWorldName
	a.cfg.ShowServerIP = opts.ShowServerIP
	if err := config.Save(a.cfg, a.cfgPath); err != nil {
		a.log.Error("failed to save config", "error", err)
	}
}

func (a *App) shutdown() {
	a.log.Info("shutting down background service")
	a.closeSession()
	if err := a.presence.Clear(); err != nil {
		a.log.Debug("failed to clear presence on shutdown", "error", err)
	}
	if err := a.presence.Close(); err != nil {
		a.log.Debug("failed to close presence connection", "error", err)
	}
	if err := a.store.Close(); err != nil {
		a.log.Warn("failed to close session store", "error", err)
	}
}

// syncSession keeps the history store in step with the activity: open on
// entering a world or server, close on leaving, and roll over when the
// player moves between targets without passing through a menu.
func (a *App) syncSession(ctx context.Context, activity hytalelog.GameActivity) {
	inGame := activity.InGame()
	switch {
	case inGame && a.session == nil:
		a.openSession(ctx, activity)
	case !inGame && a.session != nil:
		a.closeSession()
	case inGame && !sameSessionTarget(*a.session, activity):
		a.closeSession()
		a.openSession(ctx, activity)
	}
}

func (a *App) openSession(ctx context.Context, activity hytalelog.GameActivity) {
	s := history.NewSession(activity, a.now())
	if err := a.store.RecordStart(ctx, s); err != nil {
		a.log.Warn("failed to record session start", "error", err)
		return
	}
	a.log.Debug("session opened", "kind", s.Kind, "world", s.World, "server", s.Server)
	a.session = &s
}

// closeSession writes the session end with its own deadline so shutdown
// and canceled contexts still get the row closed.
func (a *App) closeSession() {
	if a.session == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.store.RecordEnd(ctx, a.session.ID, a.now()); err != nil {
		a.log.Warn("failed to record session end", "error", err)
	}
	a.log.Debug("session closed", "id", a.session.ID)
	a.session = nil
}

func sameSessionTarget(s history.Session, a hytalelog.GameActivity) bool {
	if a.Kind == hytalelog.KindMultiplayer {
		return s.Kind == history.KindMultiplayer && s.Server == a.ServerAddress && s.ServerName == a.ServerName
	}
	return s.Kind == history.KindSingleplayer && s.World == a.WorldName
}

func (a *App) setStatus(status string) {
	if a.trayStatus != nil {
		a.trayStatus(status)
	}
}

// watchLogDirs sets up the fsnotify watch over every existing log
// directory. The poll ticker remains the fallback when the watch cannot
// be established.
func (a *App) watchLogDirs() (<-chan fsnotify.Event, <-chan error, func()) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		a.log.Warn("log directory watch unavailable, relying on polling", "error", err)
		return nil, nil, func() {}
	}
	added := 0
	for _, dir := range logfinder.SearchDirs(a.cfg.LogDirs...) {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		if err := fw.Add(dir); err != nil {
			a.log.Debug("cannot watch log directory", "dir", dir, "error", err)
			continue
		}
		added++
	}
	a.log.Debug("watching log directories", "count", added)
	return fw.Events, fw.Errors, func() { _ = fw.Close() }
}

func isLogEvent(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
		return false
	}
	return strings.HasSuffix(filepath.Base(ev.Name), hytalelog.DefaultFileSuffix)
}

// notifierGuard makes a nil Notifier safe to call.
type notifierGuard struct {
	n GameNotifier
}

func (g *notifierGuard) GameDetected() {
	if g.n != nil {
		g.n.GameDetected()
	}
}

func (g *notifierGuard) GameClosed() {
	if g.n != nil {
		g.n.GameClosed()
	}
}

func (g *notifierGuard) Notify(title, message string) {
	if g.n != nil {
		g.n.Notify(title, message)
	}
}
