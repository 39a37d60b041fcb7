package platform

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

type idleProvider struct {
	ioregPath string
}

type unsupportedIdleProvider struct{}

func newIdleProvider() IdleProvider {
	path, err := exec.LookPath("ioreg")
	if err != nil {
		return unsupportedIdleProvider{}
	}
	return &idleProvider{ioregPath: path}
}

// IOHIDSystem reports HIDIdleTime in nanoseconds.
func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	ctx, cancel := context.WithTimeout(context.Background(), probeCommandTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, provider.ioregPath, "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}
	for _, line := range strings.Split(string(output), "\n") {
		if !strings.Contains(line, "HIDIdleTime") {
			continue
		}
		separator := strings.LastIndex(line, "=")
		if separator < 0 {
			continue
		}
		value := strings.TrimSpace(line[separator+1:])
		idleNanos, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse idle nanoseconds: %w", err)
		}
		if idleNanos < 0 {
			idleNanos = 0
		}
		return time.Duration(idleNanos), nil
	}
	return 0, fmt.Errorf("ioreg: HIDIdleTime not reported")
}

func (unsupportedIdleProvider) IdleDuration() (time.Duration, error) {
	return 0, ErrUnsupported
}
