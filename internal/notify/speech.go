package notify

import (
	"errors"
	"time"
)

// ErrSpeechUnsupported indicates no speech backend exists on this
// system.
var ErrSpeechUnsupported = errors.New("speech synthesis unsupported")

// Speaker renders a phrase as synthesized speech, blocking until the
// audio has finished.
type Speaker interface {
	Speak(message string) error
}

// Every backend speaks the phrase twice with a short pause between
// repeats.
const (
	speechRepeats = 2
	speechPause   = 150 * time.Millisecond
)

type unsupportedSpeaker struct{}

func (unsupportedSpeaker) Speak(string) error {
	return ErrSpeechUnsupported
}
