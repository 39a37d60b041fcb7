package platform

// FullscreenProvider reports whether the foreground window covers its
// monitor.
type FullscreenProvider interface {
	Fullscreen() (bool, error)
}
