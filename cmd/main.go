package main

import (
	"fmt"
	"os"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/lrfbranco/eye-strain-alarm/internal/core/alarm"
	"github.com/lrfbranco/eye-strain-alarm/internal/notify"
	"github.com/lrfbranco/eye-strain-alarm/internal/platform"
	"github.com/lrfbranco/eye-strain-alarm/internal/storage"
	"github.com/lrfbranco/eye-strain-alarm/internal/ui/preferences"
	"github.com/lrfbranco/eye-strain-alarm/internal/ui/tray"
	"github.com/lrfbranco/eye-strain-alarm/resources"
)

const (
	appName     = "eye-strain-alarm"
	displayName = "Eye Strain Alarm"
	appID       = "com.lrfbranco.eye-strain-alarm"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	logLevel := pflag.String("log-level", "info", "log level: debug, info, warn, error")
	showVersion := pflag.BoolP("version", "v", false, "print version and exit")
	pflag.Parse()

	if *showVersion {
		fmt.Printf("%s %s\n", appName, version)
		return
	}

	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", *logLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		logrus.Infof("another instance is already running: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	settings, err := storage.LoadSettings(appName)
	if err != nil {
		logrus.Warnf("load settings: %v", err)
	}

	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.TrackingIcon())
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		logrus.Errorf("system tray unsupported on this platform")
		return
	}

	trayWindow := fyneApp.NewWindow(displayName)
	trayWindow.SetContent(widget.NewLabel(displayName + " is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	keeper := alarm.New(settings.AlarmConfig(), alarm.Config{TickInterval: alarm.DefaultTickInterval})
	keeper.SetProbe(platform.NewProbe())

	notifier := notify.New(displayName, settings.Mode)
	notifier.Start()
	defer notifier.Close()

	autostartService := platform.NewService()
	if settings.Autostart {
		syncAutostart(autostartService, true)
	}

	var settingsMu sync.Mutex
	currentSettings := func() preferences.Settings {
		settingsMu.Lock()
		defer settingsMu.Unlock()
		return settings
	}

	var (
		trayManager *tray.Manager
		prefsWindow *preferences.Window
	)

	applySettings := func(updated preferences.Settings, persist bool) {
		settingsMu.Lock()
		previous := settings
		settings = updated
		settingsMu.Unlock()

		keeper.UpdateConfig(updated.AlarmConfig())
		notifier.SetMode(updated.Mode)
		if updated.Autostart != previous.Autostart {
			syncAutostart(autostartService, updated.Autostart)
		}

		fyne.Do(func() {
			trayManager.SetInterval(updated.Interval)
			trayManager.SetMode(updated.Mode)
			trayManager.SetMuted(updated.Muted)
			trayManager.SetSuppressFullscreen(updated.SuppressFullscreen)
			prefsWindow.UpdateSettings(updated)
		})

		if persist {
			if err := storage.SaveSettings(appName, updated); err != nil {
				logrus.Warnf("save settings: %v", err)
			}
		}
	}

	prefsWindow = preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		applySettings(updated, true)
	})

	trayManager = tray.New(desktopApp, settings, tray.Callbacks{
		OnPreferences: func() {
			prefsWindow.UpdateSettings(currentSettings())
			prefsWindow.Show()
		},
		OnInterval: func(interval time.Duration) {
			updated := currentSettings()
			updated.Interval = interval
			applySettings(updated, true)
		},
		OnMode: func(mode notify.Mode) {
			updated := currentSettings()
			updated.Mode = mode
			applySettings(updated, true)
		},
		OnToggleMute: func() {
			updated := currentSettings()
			updated.Muted = !updated.Muted
			applySettings(updated, true)
		},
		OnToggleFullscreen: func() {
			updated := currentSettings()
			updated.SuppressFullscreen = !updated.SuppressFullscreen
			applySettings(updated, true)
		},
		OnRemindNow: func() {
			notifier.Notify(currentSettings().Phrase)
		},
		OnQuit: func() {
			keeper.Stop()
			notifier.Close()
			fyneApp.Quit()
		},
	})

	desktopApp.SetSystemTrayIcon(resources.TrackingIcon())

	watcher, err := storage.NewWatcher(appName, func(updated preferences.Settings) {
		applySettings(updated, false)
	})
	if err != nil {
		logrus.Warnf("settings hot-reload disabled: %v", err)
	} else {
		defer watcher.Close()
	}

	events := keeper.Subscribe(8)
	go func() {
		for event := range events {
			switch event.Type {
			case alarm.EventFire:
				logrus.Infof("reminder due")
				notifier.Notify(currentSettings().Phrase)
			case alarm.EventStateChange:
				icon := stateIcon(event.State)
				status := statusText(event)
				fyne.Do(func() {
					desktopApp.SetSystemTrayIcon(icon)
					trayManager.SetStatus(status)
				})
			case alarm.EventProgress:
				status := statusText(event)
				fyne.Do(func() {
					trayManager.SetStatus(status)
				})
			}
		}
	}()

	keeper.Start()
	logrus.Infof("%s %s started", displayName, version)

	fyneApp.Run()
}

func stateIcon(state alarm.State) fyne.Resource {
	switch state {
	case alarm.StateIdle:
		return resources.IdleIcon()
	case alarm.StateMuted:
		return resources.MutedIcon()
	default:
		return resources.TrackingIcon()
	}
}

func statusText(event alarm.Event) string {
	switch event.State {
	case alarm.StateMuted:
		return "muted"
	case alarm.StateIdle:
		return "idle, timer on hold"
	default:
		return "next reminder in " + formatRemaining(event.Remaining)
	}
}

func formatRemaining(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := int(remaining.Seconds())
	minutes := seconds / 60
	seconds = seconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func syncAutostart(service platform.Service, enabled bool) {
	if enabled {
		executable, err := os.Executable()
		if err != nil {
			logrus.Warnf("autostart: %v", err)
			return
		}
		if err := service.EnableAutostart(appName, executable); err != nil {
			logrus.Warnf("autostart: %v", err)
		}
		return
	}
	if err := service.DisableAutostart(appName); err != nil {
		logrus.Warnf("autostart: %v", err)
	}
}
