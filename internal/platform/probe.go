package platform

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lrfbranco/eye-strain-alarm/internal/core/alarm"
)

// ErrUnsupported indicates the platform cannot answer an activity query.
var ErrUnsupported = errors.New("platform query unsupported")

const probeWarnInterval = time.Minute

// probeCommandTimeout bounds the helper processes some providers shell
// out to. Samples run on the timer's tick, so a stuck helper would
// otherwise stall the whole state machine.
const probeCommandTimeout = time.Second

// Probe combines the idle and fullscreen providers into the activity
// snapshot consumed by the alarm timer. Failed queries degrade to an
// active, non-fullscreen reading so reminders keep firing; a provider
// that reports ErrUnsupported is not asked again.
type Probe struct {
	idle       IdleProvider
	fullscreen FullscreenProvider

	idleDisabled       bool
	fullscreenDisabled bool
	idleWarned         time.Time
	fullscreenWarned   time.Time
}

// NewProbe returns a probe backed by this platform's providers.
func NewProbe() *Probe {
	return &Probe{
		idle:       newIdleProvider(),
		fullscreen: newFullscreenProvider(),
	}
}

// Sample returns the current activity snapshot.
func (probe *Probe) Sample() alarm.Sample {
	var sample alarm.Sample

	if probe.idle != nil && !probe.idleDisabled {
		idle, err := probe.idle.IdleDuration()
		switch {
		case err == nil:
			sample.Idle = idle
		case errors.Is(err, ErrUnsupported):
			probe.idleDisabled = true
			logrus.Warnf("idle detection unavailable, treating the user as always active: %v", err)
		default:
			probe.warnf(&probe.idleWarned, "idle query failed: %v", err)
		}
	}

	if probe.fullscreen != nil && !probe.fullscreenDisabled {
		fullscreen, err := probe.fullscreen.Fullscreen()
		switch {
		case err == nil:
			sample.Fullscreen = fullscreen
		case errors.Is(err, ErrUnsupported):
			probe.fullscreenDisabled = true
			logrus.Warnf("fullscreen detection unavailable: %v", err)
		default:
			probe.warnf(&probe.fullscreenWarned, "fullscreen query failed: %v", err)
		}
	}

	return sample
}

// warnf rate-limits one provider's transient warnings so a flapping
// query does not flood the log at every tick. Each provider keeps its
// own stamp; one noisy provider must not silence the other.
func (probe *Probe) warnf(lastWarn *time.Time, format string, args ...interface{}) {
	now := time.Now()
	if now.Sub(*lastWarn) < probeWarnInterval {
		return
	}
	*lastWarn = now
	logrus.Warnf(format, args...)
}
