package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

type idleProvider struct {
	xprintidlePath string
}

type unsupportedIdleProvider struct{}

// xprintidle only sees X clients, so a Wayland session (or a session
// without a display at all) cannot be queried reliably.
func newIdleProvider() IdleProvider {
	if strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") {
		return unsupportedIdleProvider{}
	}
	if os.Getenv("DISPLAY") == "" {
		return unsupportedIdleProvider{}
	}
	path, err := exec.LookPath("xprintidle")
	if err != nil {
		return unsupportedIdleProvider{}
	}
	return &idleProvider{xprintidlePath: path}
}

func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), probeCommandTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, provider.xprintidlePath).Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w", err)
	}
	value := strings.TrimSpace(string(output))
	idleMillis, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse idle milliseconds: %w", err)
	}
	if idleMillis < 0 {
		idleMillis = 0
	}
	return time.Duration(idleMillis) * time.Millisecond, nil
}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, ErrUnsupported
}
