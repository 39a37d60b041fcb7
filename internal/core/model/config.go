package model

import (
	"errors"
	"time"
)

// ErrInvalidInterval reports a reminder interval that is zero or negative.
var ErrInvalidInterval = errors.New("reminder interval must be positive")

// ErrInvalidIdleThreshold reports an idle threshold that is zero or negative.
var ErrInvalidIdleThreshold = errors.New("idle threshold must be positive")

// AlarmConfig contains runtime settings for the alarm timer state machine.
type AlarmConfig struct {
	Interval           time.Duration
	IdleThreshold      time.Duration
	Muted              bool
	SuppressFullscreen bool
}

// Validate rejects settings the alarm timer must never run with.
func (config AlarmConfig) Validate() error {
	if config.Interval <= 0 {
		return ErrInvalidInterval
	}
	if config.IdleThreshold <= 0 {
		return ErrInvalidIdleThreshold
	}
	return nil
}
