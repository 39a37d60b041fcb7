package platform

import (
	"fmt"
	"unsafe"
)

var (
	procGetForegroundWindow = user32.NewProc("GetForegroundWindow")
	procGetWindowRect       = user32.NewProc("GetWindowRect")
	procMonitorFromWindow   = user32.NewProc("MonitorFromWindow")
	procGetMonitorInfoW     = user32.NewProc("GetMonitorInfoW")
)

const monitorDefaultToNearest = 2

// A window counts as fullscreen when its rect matches the monitor rect
// within a small tolerance, or covers nearly all of the monitor area
// (borderless games often leave a stray pixel on some edge).
const (
	fullscreenEdgeTolerance = 2
	fullscreenMinCoverage   = 0.98
)

type windowRect struct {
	left   int32
	top    int32
	right  int32
	bottom int32
}

type monitorInfo struct {
	cbSize    uint32
	rcMonitor windowRect
	rcWork    windowRect
	dwFlags   uint32
}

type fullscreenProvider struct{}

func newFullscreenProvider() FullscreenProvider {
	return &fullscreenProvider{}
}

func (provider *fullscreenProvider) Fullscreen() (bool, error) {
	hwnd, _, _ := procGetForegroundWindow.Call()
	if hwnd == 0 {
		return false, nil
	}

	var window windowRect
	result, _, err := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&window)))
	if result == 0 {
		if err != nil {
			return false, fmt.Errorf("get window rect: %w", err)
		}
		return false, fmt.Errorf("get window rect: unknown error")
	}

	monitor, _, _ := procMonitorFromWindow.Call(hwnd, monitorDefaultToNearest)
	if monitor == 0 {
		return false, nil
	}

	info := monitorInfo{cbSize: uint32(unsafe.Sizeof(monitorInfo{}))}
	result, _, err = procGetMonitorInfoW.Call(monitor, uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		if err != nil {
			return false, fmt.Errorf("get monitor info: %w", err)
		}
		return false, fmt.Errorf("get monitor info: unknown error")
	}

	return coversMonitor(window, info.rcMonitor), nil
}

func coversMonitor(window, monitor windowRect) bool {
	if withinTolerance(window.left, monitor.left) &&
		withinTolerance(window.top, monitor.top) &&
		withinTolerance(window.right, monitor.right) &&
		withinTolerance(window.bottom, monitor.bottom) {
		return true
	}

	monitorArea := rectArea(monitor)
	if monitorArea == 0 {
		return false
	}
	return float64(rectArea(window))/float64(monitorArea) >= fullscreenMinCoverage
}

func withinTolerance(a, b int32) bool {
	delta := a - b
	if delta < 0 {
		delta = -delta
	}
	return delta <= fullscreenEdgeTolerance
}

func rectArea(r windowRect) int64 {
	width := int64(r.right - r.left)
	height := int64(r.bottom - r.top)
	if width < 0 || height < 0 {
		return 0
	}
	return width * height
}
