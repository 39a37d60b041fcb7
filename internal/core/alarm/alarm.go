package alarm

import (
	"sync"
	"time"

	"github.com/lrfbranco/eye-strain-alarm/internal/core/model"
)

// DefaultTickInterval is the cadence at which the timer samples activity.
const DefaultTickInterval = 2 * time.Second

// Sample is one observation of user activity.
type Sample struct {
	Idle       time.Duration
	Fullscreen bool
}

// Probe supplies the activity snapshot consumed on every tick.
type Probe interface {
	Sample() Sample
}

// Config contains runtime options for Timer.
type Config struct {
	TickInterval time.Duration
}

// Timer is a state machine that accumulates active screen time and fires
// a reminder each time a full interval of activity has been observed.
// Accumulation freezes while the user is idle, while a fullscreen
// application has focus, or while the timer is muted; it is never reset
// by those states, only by a fire.
type Timer struct {
	mu          sync.Mutex
	config      model.AlarmConfig
	options     Config
	state       State
	accumulated time.Duration
	lastTick    time.Time
	probe       Probe
	events      []chan Event
	stopCh      chan struct{}
	running     bool
}

// New creates a Timer with the provided configuration.
func New(config model.AlarmConfig, options Config) *Timer {
	if options.TickInterval <= 0 {
		options.TickInterval = DefaultTickInterval
	}

	return &Timer{
		config:  config,
		options: options,
		state:   StateTracking,
	}
}

// SetProbe injects the activity probe consulted on every tick.
func (keeper *Timer) SetProbe(probe Probe) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.probe = probe
}

// Subscribe registers a new observer channel.
func (keeper *Timer) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Start launches the ticking loop.
func (keeper *Timer) Start() {
	keeper.mu.Lock()
	if keeper.running {
		keeper.mu.Unlock()
		return
	}
	keeper.running = true
	keeper.accumulated = 0
	keeper.lastTick = time.Now()
	// A fresh channel per start; the previous one was closed by Stop
	// and its loop may still be draining.
	keeper.stopCh = make(chan struct{})
	stopCh := keeper.stopCh
	keeper.state = keeper.modeLocked(keeper.sampleLocked())
	startState := keeper.state
	remaining := keeper.remainingLocked()
	keeper.mu.Unlock()

	keeper.emit(Event{
		Type:      EventStateChange,
		State:     startState,
		Remaining: remaining,
		At:        time.Now(),
	})

	go keeper.run(stopCh)
}

// Stop terminates the ticking loop and closes observers.
func (keeper *Timer) Stop() {
	keeper.mu.Lock()
	if !keeper.running {
		keeper.mu.Unlock()
		return
	}
	close(keeper.stopCh)
	keeper.running = false
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// SetMuted suppresses or restores reminders. Accumulated progress is
// kept either way.
func (keeper *Timer) SetMuted(muted bool) {
	keeper.mu.Lock()
	config := keeper.config
	keeper.mu.Unlock()

	config.Muted = muted
	keeper.UpdateConfig(config)
}

// UpdateConfig replaces the runtime configuration. Invalid settings are
// ignored so the timer keeps running with the previous valid ones;
// callers validate at the boundary. Accumulated progress is kept.
func (keeper *Timer) UpdateConfig(config model.AlarmConfig) {
	if err := config.Validate(); err != nil {
		return
	}

	keeper.mu.Lock()
	keeper.config = config
	if !keeper.running {
		keeper.mu.Unlock()
		return
	}
	previous := keeper.state
	keeper.state = keeper.modeLocked(keeper.sampleLocked())
	changed := keeper.state != previous
	currentState := keeper.state
	accumulated := keeper.accumulated
	remaining := keeper.remainingLocked()
	keeper.mu.Unlock()

	if changed {
		keeper.emit(Event{
			Type:        EventStateChange,
			State:       currentState,
			Accumulated: accumulated,
			Remaining:   remaining,
			At:          time.Now(),
		})
	}
}

// State returns the current mode.
func (keeper *Timer) State() State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state
}

// Accumulated returns the active time counted toward the next reminder.
func (keeper *Timer) Accumulated() time.Duration {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.accumulated
}

// Remaining returns the active time left before the next reminder.
func (keeper *Timer) Remaining() time.Duration {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.remainingLocked()
}

func (keeper *Timer) run(stopCh <-chan struct{}) {
	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C:
			keeper.tick(tickTime)
		}
	}
}

func (keeper *Timer) tick(tickTime time.Time) {
	keeper.mu.Lock()
	if !keeper.running {
		keeper.mu.Unlock()
		return
	}

	elapsed := tickTime.Sub(keeper.lastTick)
	if elapsed < 0 {
		elapsed = 0
	}
	keeper.lastTick = tickTime

	keeper.advanceLocked(elapsed, keeper.sampleLocked(), tickTime)
	keeper.mu.Unlock()
}

func (keeper *Timer) advanceLocked(elapsed time.Duration, sample Sample, now time.Time) {
	previous := keeper.state
	keeper.state = keeper.modeLocked(sample)
	if keeper.state == StateTracking {
		keeper.accumulated += elapsed
	}

	if keeper.state != previous {
		keeper.emitLocked(Event{
			Type:        EventStateChange,
			State:       keeper.state,
			Accumulated: keeper.accumulated,
			Remaining:   keeper.remainingLocked(),
			At:          now,
		})
	}

	if keeper.state == StateTracking && keeper.accumulated >= keeper.config.Interval {
		keeper.accumulated = 0
		keeper.emitLocked(Event{
			Type:      EventFire,
			State:     keeper.state,
			Remaining: keeper.remainingLocked(),
			At:        now,
		})
	}

	keeper.emitLocked(Event{
		Type:        EventProgress,
		State:       keeper.state,
		Accumulated: keeper.accumulated,
		Remaining:   keeper.remainingLocked(),
		At:          now,
	})
}

// modeLocked derives the visible mode from a sample. Muted wins over
// idle, idle wins over tracking.
func (keeper *Timer) modeLocked(sample Sample) State {
	switch {
	case keeper.config.Muted:
		return StateMuted
	case sample.Idle >= keeper.config.IdleThreshold:
		return StateIdle
	case keeper.config.SuppressFullscreen && sample.Fullscreen:
		return StateIdle
	default:
		return StateTracking
	}
}

func (keeper *Timer) sampleLocked() Sample {
	if keeper.probe == nil {
		return Sample{}
	}
	return keeper.probe.Sample()
}

func (keeper *Timer) remainingLocked() time.Duration {
	remaining := keeper.config.Interval - keeper.accumulated
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (keeper *Timer) emit(event Event) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.emitLocked(event)
}

func (keeper *Timer) emitLocked(event Event) {
	events := append([]chan Event(nil), keeper.events...)
	for _, ch := range events {
		select {
		case ch <- event:
		default:
		}
	}
}
