package platform

import "time"

// IdleProvider returns the duration since last user input. The probe
// holds one per platform; construction happens through NewProbe.
type IdleProvider interface {
	IdleDuration() (time.Duration, error)
}
