// Package tray renders the system tray icon and menu.
package tray

import (
	"io"
	"log/slog"
	"sync"

	"fyne.io/systray"
)

// URLs opened from the tray menu.
const (
	GitHubURL  = "https://github.com/hytalerpc/hytale-rpc-go"
	WebsiteURL = "https://hytale.com"
)

const defaultStatus = "Waiting for Hytale..."

// Event is a user action from the tray menu that the app has to act on.
// Browser links are handled inside the tray itself.
type Event int

const (
	EventQuit Event = iota
	EventToggleWorldName
	EventToggleServerIP
)

func (e Event) String() string {
	switch e {
	case EventQuit:
		return "quit"
	case EventToggleWorldName:
		return "toggle-world-name"
	case EventToggleServerIP:
		return "toggle-server-ip"
	default:
		return "unknown"
	}
}

// Options are the initial checkbox states, taken from the config.
type Options struct {
	ShowWorldName bool
	ShowServerIP  bool
}

// Tray drives the system tray icon and menu. Run blocks the calling
// goroutine; user actions surface on Events.
type Tray struct {
	opts    Options
	events  chan Event
	openURL func(string) error
	log     *slog.Logger

	mu       sync.Mutex
	status   string
	statusCh chan struct{}
}

func New(opts Options, logger *slog.Logger) *Tray {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Tray{
		opts:     opts,
		events:   make(chan Event, 8),
		openURL:  OpenURL,
		log:      logger,
		status:   defaultStatus,
		statusCh: make(chan struct{}, 1),
	}
}

// Events returns the stream of user actions. Events are dropped when the
// receiver falls behind.
func (t *Tray) Events() <-chan Event { return t.events }

// SetStatus updates the status line and tooltip. Only the latest value is
// rendered when updates arrive faster than the menu redraws.
func (t *Tray) SetStatus(status string) {
	t.mu.Lock()
	t.status = status
	t.mu.Unlock()
	select {
	case t.statusCh <- struct{}{}:
	default:
	}
}

// Run starts the tray and blocks until Quit is called. Some platforms
// require it to run on the main goroutine.
func (t *Tray) Run() {
	systray.Run(t.onReady, nil)
}

// Quit stops the tray and unblocks Run.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("Hytale RPC")
	systray.SetTooltip(t.currentStatus())

	statusItem := systray.AddMenuItem(t.currentStatus(), "")
	statusItem.Disable()
	systray.AddSeparator()
	worldItem := systray.AddMenuItemCheckbox("Show World Name", "Show world names in Discord", t.opts.ShowWorldName)
	serverItem := systray.AddMenuItemCheckbox("Show Server IP", "Show server addresses in Discord", t.opts.ShowServerIP)
	systray.AddSeparator()
	githubItem := systray.AddMenuItem("GitHub", "")
	websiteItem := systray.AddMenuItem("Hytale Website", "")
	systray.AddSeparator()
	quitItem := systray.AddMenuItem("Quit", "")

	go t.menuLoop(statusItem, worldItem, serverItem, githubItem, websiteItem, quitItem)
}

func (t *Tray) menuLoop(status, world, server, github, website, quit *systray.MenuItem) {
	for {
		select {
		case <-t.statusCh:
			s := t.currentStatus()
			status.SetTitle(s)
			systray.SetTooltip(s)
		case <-world.ClickedCh:
			toggleCheck(world)
			t.emit(EventToggleWorldName)
		case <-server.ClickedCh:
			toggleCheck(server)
			t.emit(EventToggleServerIP)
		case <-github.ClickedCh:
			t.open(GitHubURL)
		case <-website.ClickedCh:
			t.open(WebsiteURL)
		case <-quit.ClickedCh:
			t.emit(EventQuit)
			return
		}
	}
}

// systray checkboxes do not flip themselves on click.
func toggleCheck(item *systray.MenuItem) {
	if item.Checked() {
		item.Uncheck()
	} else {
		item.Check()
	}
}

func (t *Tray) emit(ev Event) {
	select {
	case t.events <- ev:
	default:
		t.log.Debug("dropping tray event", "event", ev)
	}
}

func (t *Tray) open(url string) {
	if err := t.openURL(url); err != nil {
		t.log.Warn("failed to open browser", "url", url, "error", err)
	}
}

func (t *Tray) currentStatus() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}
