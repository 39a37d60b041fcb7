//go:build !linux && !windows && !darwin

package platform

import "time"

type idleProvider struct{}

func newIdleProvider() IdleProvider {
	return &idleProvider{}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	return 0, ErrUnsupported
}
