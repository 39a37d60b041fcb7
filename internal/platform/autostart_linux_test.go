package platform

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAutostartDesktopEntryLifecycle(t *testing.T) {
	configDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configDir)

	service := NewService()
	if err := service.EnableAutostart("Eye Strain Alarm", "/usr/local/bin/eye-strain-alarm"); err != nil {
		t.Fatalf("enable autostart: %v", err)
	}

	entryPath := filepath.Join(configDir, "autostart", "eye-strain-alarm.desktop")
	data, err := os.ReadFile(entryPath)
	if err != nil {
		t.Fatalf("read desktop entry: %v", err)
	}
	content := string(data)
	for _, want := range []string{
		"[Desktop Entry]",
		"Name=Eye Strain Alarm",
		"Exec=/usr/local/bin/eye-strain-alarm",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("desktop entry missing %q:\n%s", want, content)
		}
	}

	if err := service.DisableAutostart("Eye Strain Alarm"); err != nil {
		t.Fatalf("disable autostart: %v", err)
	}
	if _, err := os.Stat(entryPath); !os.IsNotExist(err) {
		t.Errorf("desktop entry still present after disable")
	}

	if err := service.DisableAutostart("Eye Strain Alarm"); err != nil {
		t.Fatalf("second disable: %v", err)
	}
}
