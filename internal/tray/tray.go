// Package tray shows the gesture session in the system tray.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

const (
	titleEnabled  = "● Gestures on"
	titleDisabled = "○ Gestures off"
)

// Options configures the tray menu.
type Options struct {
	// Player is shown as a disabled menu line.
	Player string
	// Enabled is the initial state of the toggle.
	Enabled bool
	// DashboardURL adds an "Open dashboard" item when set.
	DashboardURL string
}

// Tray is the system tray menu of a running session.
type Tray struct {
	opts        Options
	onToggle    func(enabled bool)
	onDashboard func(url string)
	onQuit      func()
	enabled     bool
	lastCommand string
	mu          sync.RWMutex

	menuToggle *systray.MenuItem
	menuLast   *systray.MenuItem
}

// New creates a Tray.
func New(opts Options) *Tray {
	return &Tray{
		opts:    opts,
		enabled: opts.Enabled,
	}
}

// OnToggle sets the callback run when the user flips the toggle.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnDashboard sets the callback run when the dashboard item is clicked.
func (t *Tray) OnDashboard(fn func(url string)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onDashboard = fn
}

// OnQuit sets the callback run when the quit item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run shows the tray and blocks until Quit is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, func() {})
}

// Quit removes the tray icon and makes Run return.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetTitle("mudra")
	systray.SetTooltip("Hand gesture media control")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleTitle(t.enabled), "Pause or resume gesture control")
	systray.AddSeparator()
	t.menuLast = systray.AddMenuItem(lastTitle(t.lastCommand), "Last command sent to the player")
	t.menuLast.Disable()
	t.mu.Unlock()

	if t.opts.Player != "" {
		systray.AddMenuItem("Player: "+t.opts.Player, "Media player being controlled").Disable()
	}
	systray.AddSeparator()

	dashboard := make(chan struct{})
	if t.opts.DashboardURL != "" {
		dashboard = systray.AddMenuItem("Open dashboard...", t.opts.DashboardURL).ClickedCh
	}
	menuQuit := systray.AddMenuItem("Quit", "Stop gesture control")

	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-dashboard:
				t.handleDashboard()
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled
	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(enabled))
	}
	callback := t.onToggle
	t.mu.Unlock()

	if callback != nil {
		callback(enabled)
	}
}

func (t *Tray) handleDashboard() {
	t.mu.RLock()
	callback := t.onDashboard
	t.mu.RUnlock()

	if callback != nil {
		callback(t.opts.DashboardURL)
	}
}

func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
	systray.Quit()
}

// SetLastCommand updates the last command line of the menu.
func (t *Tray) SetLastCommand(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.lastCommand = name
	if t.menuLast != nil {
		t.menuLast.SetTitle(lastTitle(name))
	}
}

// LastCommand returns the command shown in the menu.
func (t *Tray) LastCommand() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.lastCommand
}

// IsEnabled returns the current state of the toggle.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

func toggleTitle(enabled bool) string {
	if enabled {
		return titleEnabled
	}
	return titleDisabled
}

func lastTitle(name string) string {
	if name == "" {
		return "Last: none"
	}
	return "Last: " + name
}
