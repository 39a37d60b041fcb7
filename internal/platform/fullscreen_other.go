//go:build !linux && !windows && !darwin

package platform

type fullscreenProvider struct{}

func newFullscreenProvider() FullscreenProvider {
	return &fullscreenProvider{}
}

func (provider *fullscreenProvider) Fullscreen() (bool, error) {
	return false, ErrUnsupported
}
