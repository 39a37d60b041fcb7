package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

type fullscreenProvider struct {
	xpropPath string
}

type unsupportedFullscreenProvider struct{}

func newFullscreenProvider() FullscreenProvider {
	if strings.EqualFold(os.Getenv("XDG_SESSION_TYPE"), "wayland") {
		return unsupportedFullscreenProvider{}
	}
	if os.Getenv("DISPLAY") == "" {
		return unsupportedFullscreenProvider{}
	}
	path, err := exec.LookPath("xprop")
	if err != nil {
		return unsupportedFullscreenProvider{}
	}
	return &fullscreenProvider{xpropPath: path}
}

func (provider *fullscreenProvider) Fullscreen() (bool, error) {
	// One budget covers both xprop calls.
	ctx, cancel := context.WithTimeout(context.Background(), probeCommandTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, provider.xpropPath, "-root", "_NET_ACTIVE_WINDOW").Output()
	if err != nil {
		return false, fmt.Errorf("xprop active window: %w", err)
	}

	windowID := parseWindowID(string(output))
	if windowID == "" || windowID == "0x0" {
		return false, nil
	}

	output, err = exec.CommandContext(ctx, provider.xpropPath, "-id", windowID, "_NET_WM_STATE").Output()
	if err != nil {
		return false, fmt.Errorf("xprop window state: %w", err)
	}
	return strings.Contains(string(output), "_NET_WM_STATE_FULLSCREEN"), nil
}

// parseWindowID extracts the window handle from xprop output of the
// form "_NET_ACTIVE_WINDOW(WINDOW): window id # 0x3c00010".
func parseWindowID(output string) string {
	_, after, found := strings.Cut(output, "# ")
	if !found {
		return ""
	}
	fields := strings.Fields(after)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimSuffix(fields[0], ",")
}

func (unsupportedFullscreenProvider) Fullscreen() (bool, error) {
	return false, ErrUnsupported
}
