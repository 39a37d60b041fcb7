package tray

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"github.com/lrfbranco/eye-strain-alarm/internal/notify"
	"github.com/lrfbranco/eye-strain-alarm/internal/ui/preferences"
)

const menuTitle = "Eye Strain Alarm"

// intervalPresets are the reminder intervals offered in the tray menu.
var intervalPresets = []time.Duration{
	20 * time.Minute,
	45 * time.Minute,
	60 * time.Minute,
	90 * time.Minute,
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnPreferences      func()
	OnInterval         func(time.Duration)
	OnMode             func(notify.Mode)
	OnToggleMute       func()
	OnToggleFullscreen func()
	OnRemindNow        func()
	OnQuit             func()
}

// Manager handles system tray state.
type Manager struct {
	app       desktop.App
	callbacks Callbacks

	statusItem      *fyne.MenuItem
	prefsItem       *fyne.MenuItem
	intervalItem    *fyne.MenuItem
	intervalOptions map[time.Duration]*fyne.MenuItem
	modeItem        *fyne.MenuItem
	voiceItem       *fyne.MenuItem
	beepItem        *fyne.MenuItem
	muteItem        *fyne.MenuItem
	fullscreenItem  *fyne.MenuItem
	remindItem      *fyne.MenuItem
	quitItem        *fyne.MenuItem
}

// New creates a tray manager seeded with the current settings.
func New(app desktop.App, settings preferences.Settings, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:             app,
		callbacks:       callbacks,
		intervalOptions: make(map[time.Duration]*fyne.MenuItem),
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.prefsItem = fyne.NewMenuItem("Preferences", func() {
		if manager.callbacks.OnPreferences != nil {
			manager.callbacks.OnPreferences()
		}
	})

	manager.intervalItem = fyne.NewMenuItem("Remind every", nil)
	var intervalItems []*fyne.MenuItem
	for _, preset := range intervalPresets {
		duration := preset
		item := fyne.NewMenuItem(formatInterval(duration), func() {
			if manager.callbacks.OnInterval != nil {
				manager.callbacks.OnInterval(duration)
			}
		})
		item.Checked = duration == settings.Interval
		manager.intervalOptions[duration] = item
		intervalItems = append(intervalItems, item)
	}
	manager.intervalItem.ChildMenu = fyne.NewMenu("", intervalItems...)

	manager.voiceItem = fyne.NewMenuItem("Voice", func() {
		if manager.callbacks.OnMode != nil {
			manager.callbacks.OnMode(notify.ModeVoice)
		}
	})
	manager.beepItem = fyne.NewMenuItem("Beep", func() {
		if manager.callbacks.OnMode != nil {
			manager.callbacks.OnMode(notify.ModeBeep)
		}
	})
	manager.modeItem = fyne.NewMenuItem("Alert sound", nil)
	manager.modeItem.ChildMenu = fyne.NewMenu("", manager.voiceItem, manager.beepItem)
	manager.applyModeChecks(settings.Mode)

	manager.muteItem = fyne.NewMenuItem("Mute reminders", func() {
		if manager.callbacks.OnToggleMute != nil {
			manager.callbacks.OnToggleMute()
		}
	})
	manager.muteItem.Checked = settings.Muted

	manager.fullscreenItem = fyne.NewMenuItem("Suppress during fullscreen", func() {
		if manager.callbacks.OnToggleFullscreen != nil {
			manager.callbacks.OnToggleFullscreen()
		}
	})
	manager.fullscreenItem.Checked = settings.SuppressFullscreen

	manager.remindItem = fyne.NewMenuItem("Remind now", func() {
		if manager.callbacks.OnRemindNow != nil {
			manager.callbacks.OnRemindNow()
		}
	})

	manager.quitItem = fyne.NewMenuItem("Quit", func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})

	manager.refreshMenu()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

// SetInterval moves the checkmark to the matching interval preset.
func (manager *Manager) SetInterval(interval time.Duration) {
	for duration, item := range manager.intervalOptions {
		item.Checked = duration == interval
	}
	manager.refreshMenu()
}

// SetMode moves the checkmark between the voice and beep entries.
func (manager *Manager) SetMode(mode notify.Mode) {
	manager.applyModeChecks(mode)
	manager.refreshMenu()
}

// SetMuted updates the mute checkmark.
func (manager *Manager) SetMuted(muted bool) {
	manager.muteItem.Checked = muted
	manager.refreshMenu()
}

// SetSuppressFullscreen updates the fullscreen suppression checkmark.
func (manager *Manager) SetSuppressFullscreen(suppress bool) {
	manager.fullscreenItem.Checked = suppress
	manager.refreshMenu()
}

func (manager *Manager) applyModeChecks(mode notify.Mode) {
	manager.voiceItem.Checked = mode != notify.ModeBeep
	manager.beepItem.Checked = mode == notify.ModeBeep
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		manager.prefsItem,
		manager.intervalItem,
		manager.modeItem,
		manager.muteItem,
		manager.fullscreenItem,
		manager.remindItem,
		manager.quitItem,
	))
}

func formatInterval(interval time.Duration) string {
	return fmt.Sprintf("%d minutes", int(interval/time.Minute))
}
