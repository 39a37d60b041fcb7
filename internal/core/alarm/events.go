package alarm

import "time"

// State represents the current Timer mode.
type State string

const (
	StateTracking State = "tracking"
	StateIdle     State = "idle"
	StateMuted    State = "muted"
)

// EventType defines the type of Timer event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventFire        EventType = "fire"
	EventProgress    EventType = "progress"
)

// Event represents a Timer update for observers.
type Event struct {
	Type        EventType
	State       State
	Accumulated time.Duration
	Remaining   time.Duration
	At          time.Time
}
