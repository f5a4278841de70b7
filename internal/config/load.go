package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	appName      = "marquee"
	settingsFile = "settings.yaml"

	// EnvPrefix prefixes every environment override, e.g.
	// MARQUEE_ATTRACT_IDLE_TIME=45s.
	EnvPrefix = "MARQUEE_"
)

//go:embed default_settings.yaml
var defaultSettingsYAML []byte

// GetConfigDir returns the OS-appropriate configuration directory:
//   - Linux: $XDG_CONFIG_HOME/marquee or $HOME/.config/marquee
//   - macOS: $HOME/.config/marquee
//   - Windows: %LOCALAPPDATA%\marquee
func GetConfigDir() (string, error) {
	switch runtime.GOOS {
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, appName), nil
		}
		profile := os.Getenv("USERPROFILE")
		if profile == "" {
			return "", fmt.Errorf("cannot determine user profile directory (LOCALAPPDATA and USERPROFILE not set)")
		}
		return filepath.Join(profile, "AppData", "Local", appName), nil

	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(home, ".config", appName), nil

	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		return filepath.Join(home, ".config", appName), nil
	}
}

// GetSettingsPath returns the full path to the settings file.
func GetSettingsPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFile), nil
}

// Load reads settings from path, or from the default location when path is
// empty. A missing file yields the embedded defaults. Environment overrides
// are applied last, then the result is validated.
func Load(path string) (Settings, error) {
	if path == "" {
		p, err := GetSettingsPath()
		if err != nil {
			return Settings{}, fmt.Errorf("failed to get settings path: %w", err)
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		data = nil
	case err != nil:
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("%s: %w", path, err)
	}
	s.resolvePaths(filepath.Dir(path))

	if err := ApplyEnv(&s); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Parse decodes user YAML on top of the embedded defaults. Empty data returns
// the defaults.
func Parse(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(defaultSettingsYAML, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse embedded defaults: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &s); err != nil {
			return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
		}
	}
	if s.Version != CurrentVersion {
		return Settings{}, fmt.Errorf("unsupported settings version: %d (expected %d)", s.Version, CurrentVersion)
	}
	return s, nil
}

// ApplyEnv overlays MARQUEE_* environment variables onto s.
func ApplyEnv(s *Settings) error {
	if err := env.ParseWithOptions(s, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// resolvePaths makes library paths relative to the settings file.
func (s *Settings) resolvePaths(base string) {
	if s.Library.Path != "" && !filepath.IsAbs(s.Library.Path) {
		s.Library.Path = filepath.Join(base, s.Library.Path)
	}
	if s.Library.StatsPath == "" {
		s.Library.StatsPath = filepath.Join(base, "stats.yaml")
	} else if !filepath.IsAbs(s.Library.StatsPath) {
		s.Library.StatsPath = filepath.Join(base, s.Library.StatsPath)
	}
}

// WriteDefault writes the embedded defaults to path, refusing to overwrite an
// existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("settings file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, defaultSettingsYAML, 0o600); err != nil {
		return fmt.Errorf("failed to write temporary settings file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to save settings file: %w", err)
	}
	return nil
}
