// Package config loads startup settings. Sources are applied in order,
// later ones winning: built-in defaults, a YAML file, then environment
// variables. Command-line flags are layered on top by the caller.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hammamikhairi/tomato/internal/domain"
	"github.com/hammamikhairi/tomato/internal/settings"
)

const (
	appName        = "tomato"
	configFileName = "config.yaml"
)

// Env var names.
const (
	EnvWorkMinutes  = "TOMATO_WORK_MINUTES"
	EnvBreakMinutes = "TOMATO_BREAK_MINUTES"
	EnvLanguage     = "TOMATO_LANG"
	EnvSound        = "TOMATO_SOUND"
	EnvLogLevel     = "TOMATO_LOG_LEVEL"
)

// Config holds startup settings. Durations are raw minutes; the engine
// clamps them.
type Config struct {
	WorkMinutes  int
	BreakMinutes int
	Language     string
	Sound        bool
	LogLevel     string
}

type yamlConfig struct {
	WorkMinutes  int    `yaml:"work_minutes"`
	BreakMinutes int    `yaml:"break_minutes"`
	Language     string `yaml:"language"`
	Sound        *bool  `yaml:"sound"`
	LogLevel     string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		WorkMinutes:  domain.DefaultWorkMinutes,
		BreakMinutes: domain.DefaultBreakMinutes,
		Sound:        true,
		LogLevel:     "normal",
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, appName, configFileName), nil
}

// Load reads the YAML file at path (a missing file is not an error) and
// then applies environment overrides through getenv. Pass os.Getenv in
// production. A bad source is reported but does not stop the others:
// the returned Config is always usable. Malformed minutes fall back to
// the minimum, as they do in the settings form.
func Load(path string, getenv func(string) string) (Config, error) {
	cfg := Default()

	var errs []error
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			errs = append(errs, err)
		}
	}
	if getenv != nil {
		errs = append(errs, cfg.applyEnv(getenv)...)
	}
	return cfg, errors.Join(errs...)
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(raw, &fileData); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}

	if fileData.WorkMinutes != 0 {
		c.WorkMinutes = fileData.WorkMinutes
	}
	if fileData.BreakMinutes != 0 {
		c.BreakMinutes = fileData.BreakMinutes
	}
	if fileData.Language != "" {
		c.Language = fileData.Language
	}
	if fileData.Sound != nil {
		c.Sound = *fileData.Sound
	}
	if fileData.LogLevel != "" {
		c.LogLevel = fileData.LogLevel
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) []error {
	var errs []error
	minutes := func(key string, dst *int, fallback int) {
		v := getenv(key)
		if v == "" {
			return
		}
		n, err := settings.ParseMinutes(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
			n = fallback
		}
		*dst = n
	}
	minutes(EnvWorkMinutes, &c.WorkMinutes, domain.MinWorkMinutes)
	minutes(EnvBreakMinutes, &c.BreakMinutes, domain.MinBreakMinutes)

	if v := getenv(EnvLanguage); v != "" {
		c.Language = v
	}
	if v := getenv(EnvSound); v != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSound, err))
		} else {
			c.Sound = b
		}
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	return errs
}
