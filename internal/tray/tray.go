// Package tray provides the system tray menu for airpaint.
package tray

import (
	"sync"

	"github.com/getlantern/systray"
)

// item names a plain menu command.
type item int

const (
	itemClear item = iota
	itemSnapshot
	itemSave
	itemOpenUI
)

// Tray represents the system tray application.
type Tray struct {
	onToggle func(enabled bool)
	onQuit   func()
	actions  map[item]func()
	enabled  bool
	mu       sync.RWMutex

	// Menu items stored for later updates
	menuToggle *systray.MenuItem
	menuStatus *systray.MenuItem
}

// New creates a new Tray with gesture drawing enabled.
func New() *Tray {
	return &Tray{
		actions: make(map[item]func()),
		enabled: true,
	}
}

// OnToggle sets the callback for pausing and resuming gesture drawing.
func (t *Tray) OnToggle(fn func(enabled bool)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onToggle = fn
}

// OnClear sets the callback for the Clear Canvas item.
func (t *Tray) OnClear(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.actions[itemClear] = fn
}

// OnSnapshot sets the callback for the Capture Snapshot item.
func (t *Tray) OnSnapshot(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.actions[itemSnapshot] = fn
}

// OnSave sets the callback for the Save Drawing item.
func (t *Tray) OnSave(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.actions[itemSave] = fn
}

// OnOpenUI sets the callback for the Open Web UI item.
func (t *Tray) OnOpenUI(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.actions[itemOpenUI] = fn
}

// OnQuit sets the callback function to be called when the quit menu item is clicked.
func (t *Tray) OnQuit(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onQuit = fn
}

// Run starts the system tray application.
// This function blocks until systray.Quit() is called.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onExit)
}

// onReady is called when the system tray is ready.
// It sets up the menu structure.
func (t *Tray) onReady() {
	systray.SetTitle("airpaint")
	systray.SetTooltip("airpaint - draw with your hand")

	t.mu.Lock()
	t.menuToggle = systray.AddMenuItem(toggleTitle(t.enabled), "Pause or resume gesture drawing")
	t.menuStatus = systray.AddMenuItem("Mode: idle", "Current gesture mode")
	t.menuStatus.Disable()
	t.mu.Unlock()
	systray.AddSeparator()

	menuClear := systray.AddMenuItem("Clear Canvas", "Erase the whole drawing")
	menuSnapshot := systray.AddMenuItem("Capture Snapshot", "Add the canvas to the snapshot history")
	menuSave := systray.AddMenuItem("Save Drawing", "Export the canvas as PNG")
	systray.AddSeparator()

	menuOpen := systray.AddMenuItem("Open Web UI...", "Open the controls in a browser")
	systray.AddSeparator()

	menuQuit := systray.AddMenuItem("Quit", "Quit airpaint")

	// Handle menu item clicks in a separate goroutine
	go func() {
		for {
			select {
			case <-t.menuToggle.ClickedCh:
				t.handleToggle()
			case <-menuClear.ClickedCh:
				t.handle(itemClear)
			case <-menuSnapshot.ClickedCh:
				t.handle(itemSnapshot)
			case <-menuSave.ClickedCh:
				t.handle(itemSave)
			case <-menuOpen.ClickedCh:
				t.handle(itemOpenUI)
			case <-menuQuit.ClickedCh:
				t.handleQuit()
				return
			}
		}
	}()
}

// onExit is called when the system tray is about to exit.
func (t *Tray) onExit() {}

func toggleTitle(enabled bool) string {
	if enabled {
		return "● Gesture Drawing"
	}
	return "○ Gesture Drawing (paused)"
}

// handleToggle handles the toggle menu item click.
func (t *Tray) handleToggle() {
	t.mu.Lock()
	t.enabled = !t.enabled
	enabled := t.enabled
	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(enabled))
	}
	callback := t.onToggle
	t.mu.Unlock()

	// Call the callback outside the lock to prevent deadlocks
	if callback != nil {
		callback(enabled)
	}
}

// handle runs the callback registered for it, outside the lock.
func (t *Tray) handle(it item) {
	t.mu.RLock()
	callback := t.actions[it]
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}
}

// handleQuit handles the quit menu item click.
func (t *Tray) handleQuit() {
	t.mu.RLock()
	callback := t.onQuit
	t.mu.RUnlock()

	if callback != nil {
		callback()
	}

	systray.Quit()
}

// SetEnabled syncs the toggle with a change made elsewhere, without calling OnToggle.
func (t *Tray) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.enabled = enabled
	if t.menuToggle != nil {
		t.menuToggle.SetTitle(toggleTitle(enabled))
	}
}

// SetMode updates the mode line in the menu.
func (t *Tray) SetMode(mode string) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.menuStatus != nil {
		t.menuStatus.SetTitle("Mode: " + mode)
	}
}

// IsEnabled returns the current enabled state.
func (t *Tray) IsEnabled() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.enabled
}

// Quit closes the tray, making Run return.
func (t *Tray) Quit() {
	systray.Quit()
}
