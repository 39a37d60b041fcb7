package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"

	"github.com/lrfbranco/eye-strain-alarm/internal/ui/preferences"
)

// settingsReloadDelay coalesces the bursts of write events editors
// produce when saving a file.
const settingsReloadDelay = 500 * time.Millisecond

// Watcher reloads settings when the file changes on disk and hands the
// fresh values to onChange.
type Watcher struct {
	appName   string
	onChange  func(preferences.Settings)
	fsWatcher *fsnotify.Watcher

	mu       sync.Mutex
	debounce *time.Timer

	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher watches the settings file for external edits. The parent
// directory is watched rather than the file itself so the watch
// survives editors that replace the file on save.
func NewWatcher(appName string, onChange func(preferences.Settings)) (*Watcher, error) {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return nil, fmt.Errorf("create config directory: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(configPath)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("watch config directory: %w", err)
	}

	watcher := &Watcher{
		appName:   appName,
		onChange:  onChange,
		fsWatcher: fsWatcher,
		done:      make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Close stops watching. Pending reloads are cancelled.
func (watcher *Watcher) Close() error {
	watcher.closeOnce.Do(func() {
		close(watcher.done)
	})

	watcher.mu.Lock()
	if watcher.debounce != nil {
		watcher.debounce.Stop()
	}
	watcher.mu.Unlock()

	return watcher.fsWatcher.Close()
}

func (watcher *Watcher) run() {
	for {
		select {
		case <-watcher.done:
			return
		case event, ok := <-watcher.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != settingsFileName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			watcher.scheduleReload()
		case err, ok := <-watcher.fsWatcher.Errors:
			if !ok {
				return
			}
			logrus.Warnf("settings watcher: %v", err)
		}
	}
}

func (watcher *Watcher) scheduleReload() {
	watcher.mu.Lock()
	defer watcher.mu.Unlock()

	if watcher.debounce != nil {
		watcher.debounce.Stop()
	}
	watcher.debounce = time.AfterFunc(settingsReloadDelay, watcher.reload)
}

func (watcher *Watcher) reload() {
	select {
	case <-watcher.done:
		return
	default:
	}

	settings, err := LoadSettings(watcher.appName)
	if err != nil {
		logrus.Warnf("reload settings: %v", err)
		return
	}
	logrus.Infof("settings file changed, reloading")
	watcher.onChange(settings)
}
