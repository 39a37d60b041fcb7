//go:build !linux && !windows && !darwin

package platform

import (
	"fmt"
	"path/filepath"
	"runtime"
)

func (service *platformService) EnableAutostart(appName, execPath string) error {
	return fmt.Errorf("enable autostart: unsupported on %s", runtime.GOOS)
}

func (service *platformService) DisableAutostart(appName string) error {
	return nil
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}
