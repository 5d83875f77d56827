// Package config loads the host simulator's settings from a TOML file,
// defaults, and environment variables.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"fredsistance/hal"
	"fredsistance/sparkos/timefmt"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the simulator configuration.
type Config struct {
	// Clock24h is the 24-hour preference. Nil leaves it unset, which the
	// watch face treats as 12-hour.
	Clock24h *bool  `toml:"clock_24h"`
	Timezone string `toml:"timezone"` // IANA name, "Local" or "UTC"
	Locale   string `toml:"locale"`   // "en", "de", "fr"

	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Scale      int    `toml:"scale"`
	Background string `toml:"background"` // PNG path replacing the bundled image
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Timezone: "Local",
		Locale:   "en",
		Width:    hal.DefaultWidth,
		Height:   hal.DefaultHeight,
		Scale:    3,
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "fredsistance.toml"
	}
	return filepath.Join(home, ".config", "fredsistance", "config.toml")
}

// LoadFrom starts with defaults, overlays the file if it exists, then applies
// environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	cfg.Background = expandPath(cfg.Background)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("FREDSISTANCE_CLOCK_24H"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("FREDSISTANCE_CLOCK_24H: %w", err)
		}
		cfg.Clock24h = &on
	}
	if v := os.Getenv("FREDSISTANCE_TZ"); v != "" {
		cfg.Timezone = v
	}
	if v := os.Getenv("FREDSISTANCE_LOCALE"); v != "" {
		cfg.Locale = v
	}
	return nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Width > 1024 || c.Height > 1024 {
		return fmt.Errorf("screen size %dx%d exceeds 1024x1024", c.Width, c.Height)
	}
	if c.Scale <= 0 {
		return errors.New("scale must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, ok := timefmt.LocaleByName(c.Locale); !ok {
		return fmt.Errorf("unknown locale %q", c.Locale)
	}
	return nil
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	switch c.Timezone {
	case "", "Local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Formatter returns the time formatter for Locale, English when unknown.
func (c *Config) Formatter() timefmt.Formatter {
	l, ok := timefmt.LocaleByName(c.Locale)
	if !ok {
		return timefmt.Default
	}
	return timefmt.Formatter{Locale: l}
}

// ApplySettings publishes the preferences in c to s.
func (c *Config) ApplySettings(s *hal.SettingsStore) {
	if c.Clock24h == nil {
		s.ResetClock24h()
		return
	}
	s.SetClock24h(*c.Clock24h)
}

// LoadBackground reads the background override. It returns nil when none is
// configured.
func (c *Config) LoadBackground() ([]byte, error) {
	if c.Background == "" {
		return nil, nil
	}
	data, err := os.ReadFile(c.Background)
	if err != nil {
		return nil, fmt.Errorf("reading background: %w", err)
	}
	return data, nil
}
