//go:build !linux && !windows && !darwin

package notify

func newSpeaker() Speaker {
	return unsupportedSpeaker{}
}
