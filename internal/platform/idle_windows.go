package platform

import (
	"fmt"
	"syscall"
	"time"
	"unsafe"
)

var (
	user32   = syscall.NewLazyDLL("user32.dll")
	kernel32 = syscall.NewLazyDLL("kernel32.dll")

	procGetLastInputInfo = user32.NewProc("GetLastInputInfo")
	procGetTickCount64   = kernel32.NewProc("GetTickCount64")
)

type idleProvider struct{}

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

func newIdleProvider() IdleProvider {
	return &idleProvider{}
}

// GetLastInputInfo reports the tick count at the last input event;
// idle time is the distance to the current tick count.
func (provider *idleProvider) IdleDuration() (time.Duration, error) {
	info := lastInputInfo{cbSize: uint32(unsafe.Sizeof(lastInputInfo{}))}

	result, _, err := procGetLastInputInfo.Call(uintptr(unsafe.Pointer(&info)))
	if result == 0 {
		if err != nil {
			return 0, fmt.Errorf("get last input info: %w", err)
		}
		return 0, fmt.Errorf("get last input info: unknown error")
	}

	tickResult, _, tickErr := procGetTickCount64.Call()
	if tickResult == 0 && tickErr != nil {
		return 0, fmt.Errorf("get tick count: %w", tickErr)
	}

	return idleSince(uint64(tickResult), info.dwTime), nil
}

// idleSince measures from the 32-bit input stamp to the 64-bit tick
// counter. The stamp wraps every ~49.7 days, so the subtraction must
// stay in 32-bit space or long uptimes inflate the result by whole
// wrap periods.
func idleSince(tickCount uint64, lastInput uint32) time.Duration {
	idleMillis := uint32(tickCount) - lastInput
	return time.Duration(idleMillis) * time.Millisecond
}
