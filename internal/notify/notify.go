package notify

import (
	"errors"
	"os"
	"runtime"
	"strings"
	"sync"

	"github.com/gen2brain/beeep"
	"github.com/sirupsen/logrus"
)

// Mode selects how a reminder is rendered audibly.
type Mode string

const (
	ModeVoice Mode = "voice"
	ModeBeep  Mode = "beep"
)

// ParseMode normalizes a stored mode string, defaulting to voice.
func ParseMode(value string) Mode {
	if strings.EqualFold(strings.TrimSpace(value), string(ModeBeep)) {
		return ModeBeep
	}
	return ModeVoice
}

const (
	beepFrequency = 800
	beepDuration  = 200
)

// Notifier delivers reminders from a single worker goroutine so slow
// speech synthesis never blocks the timer. One request may wait while
// another is being delivered; anything beyond that is dropped.
type Notifier struct {
	appName string

	mu   sync.Mutex
	mode Mode

	speaker Speaker
	chime   func() error
	banner  func(message string) error

	requests chan string
	stopCh   chan struct{}
	stopOnce sync.Once
}

// New creates a Notifier for the given application name and mode.
func New(appName string, mode Mode) *Notifier {
	return &Notifier{
		appName: appName,
		mode:    ParseMode(string(mode)),
		speaker: newSpeaker(),
		chime:   systemBeep,
		banner: func(message string) error {
			return desktopNotify(appName, message)
		},
		requests: make(chan string, 1),
		stopCh:   make(chan struct{}),
	}
}

// Start launches the delivery worker.
func (notifier *Notifier) Start() {
	go notifier.run()
}

// Close stops the delivery worker. Queued requests are dropped.
func (notifier *Notifier) Close() {
	notifier.stopOnce.Do(func() {
		close(notifier.stopCh)
	})
}

// SetMode switches between spoken and beeped reminders.
func (notifier *Notifier) SetMode(mode Mode) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	notifier.mode = ParseMode(string(mode))
}

// Mode returns the current delivery mode.
func (notifier *Notifier) Mode() Mode {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	return notifier.mode
}

// Notify queues one audible reminder. It never blocks the caller.
func (notifier *Notifier) Notify(message string) {
	select {
	case notifier.requests <- message:
	default:
		logrus.Debugf("notifier busy, dropping reminder")
	}
}

func (notifier *Notifier) run() {
	for {
		select {
		case <-notifier.stopCh:
			return
		case message := <-notifier.requests:
			notifier.deliver(message)
		}
	}
}

// deliver renders one reminder. Speech failures fall back to the beep
// so a reminder is never silently lost.
func (notifier *Notifier) deliver(message string) {
	if notifier.banner != nil {
		if err := notifier.banner(message); err != nil {
			logrus.Debugf("desktop notification failed: %v", err)
		}
	}

	if notifier.Mode() == ModeVoice {
		err := notifier.speaker.Speak(message)
		if err == nil {
			return
		}
		if errors.Is(err, ErrSpeechUnsupported) {
			logrus.Debugf("speech unsupported, falling back to beep")
		} else {
			logrus.Warnf("speech failed, falling back to beep: %v", err)
		}
	}

	if err := notifier.chime(); err != nil {
		logrus.Warnf("beep failed: %v", err)
	}
}

func systemBeep() error {
	return beeep.Beep(beepFrequency, beepDuration)
}

// desktopNotify posts a best-effort desktop notification alongside the
// audible alert. Headless Linux sessions have no notification daemon,
// so skip the attempt there.
func desktopNotify(title, message string) error {
	if runtime.GOOS == "linux" && os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return nil
	}
	return beeep.Notify(title, message, "")
}
