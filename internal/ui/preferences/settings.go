package preferences

import (
	"time"

	"github.com/lrfbranco/eye-strain-alarm/internal/core/model"
	"github.com/lrfbranco/eye-strain-alarm/internal/notify"
)

// DefaultPhrase is spoken when no custom reminder phrase is set.
const DefaultPhrase = "Look away and blink"

// Settings defines editable user preferences.
type Settings struct {
	Interval           time.Duration
	IdleThreshold      time.Duration
	Muted              bool
	SuppressFullscreen bool

	Mode      notify.Mode
	Phrase    string
	Autostart bool
}

// DefaultSettings returns the out-of-the-box configuration.
func DefaultSettings() Settings {
	return Settings{
		Interval:           60 * time.Minute,
		IdleThreshold:      10 * time.Minute,
		Muted:              false,
		SuppressFullscreen: true,
		Mode:               notify.ModeVoice,
		Phrase:             DefaultPhrase,
		Autostart:          false,
	}
}

// AlarmConfig converts settings to the alarm timer configuration.
func (settings Settings) AlarmConfig() model.AlarmConfig {
	return model.AlarmConfig{
		Interval:           settings.Interval,
		IdleThreshold:      settings.IdleThreshold,
		Muted:              settings.Muted,
		SuppressFullscreen: settings.SuppressFullscreen,
	}
}
