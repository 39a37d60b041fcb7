package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lrfbranco/eye-strain-alarm/internal/notify"
	"github.com/lrfbranco/eye-strain-alarm/internal/ui/preferences"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	IntervalMinutes      int  `yaml:"interval_minutes"`
	IdleThresholdMinutes int  `yaml:"idle_threshold_minutes"`
	Muted                bool `yaml:"muted"`
	// Pointer so an absent key keeps the enabled-by-default behavior.
	SuppressFullscreen *bool  `yaml:"suppress_fullscreen"`
	Mode               string `yaml:"mode"`
	Phrase             string `yaml:"phrase"`
	Autostart          bool   `yaml:"autostart"`
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
// Out-of-range values revert to their defaults field by field.
func LoadSettings(appName string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return settings, err
	}

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := resolveConfigPath(appName)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	suppress := settings.SuppressFullscreen
	fileData := yamlSettings{
		IntervalMinutes:      int(settings.Interval / time.Minute),
		IdleThresholdMinutes: int(settings.IdleThreshold / time.Minute),
		Muted:                settings.Muted,
		SuppressFullscreen:   &suppress,
		Mode:                 string(settings.Mode),
		Phrase:               settings.Phrase,
		Autostart:            settings.Autostart,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func resolveConfigPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.IntervalMinutes > 0 {
		settings.Interval = time.Duration(fileData.IntervalMinutes) * time.Minute
	}
	if fileData.IdleThresholdMinutes > 0 {
		settings.IdleThreshold = time.Duration(fileData.IdleThresholdMinutes) * time.Minute
	}
	if fileData.SuppressFullscreen != nil {
		settings.SuppressFullscreen = *fileData.SuppressFullscreen
	}
	if fileData.Mode != "" {
		settings.Mode = notify.ParseMode(fileData.Mode)
	}
	if phrase := strings.TrimSpace(fileData.Phrase); phrase != "" {
		settings.Phrase = phrase
	}

	settings.Muted = fileData.Muted
	settings.Autostart = fileData.Autostart
}
