package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fredsistance/hal"
)

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Clock24h != nil {
		t.Errorf("expected clock_24h unset, got %v", *cfg.Clock24h)
	}
	if cfg.Width != hal.DefaultWidth || cfg.Height != hal.DefaultHeight {
		t.Errorf("expected %dx%d, got %dx%d", hal.DefaultWidth, hal.DefaultHeight, cfg.Width, cfg.Height)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, `
clock_24h = true
timezone = "UTC"
locale = "fr_FR"
width = 240
height = 240
scale = 2
`)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Clock24h == nil || !*cfg.Clock24h {
		t.Errorf("expected clock_24h true, got %v", cfg.Clock24h)
	}
	if cfg.Width != 240 || cfg.Height != 240 || cfg.Scale != 2 {
		t.Errorf("expected 240x240@2, got %dx%d@%d", cfg.Width, cfg.Height, cfg.Scale)
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.UTC {
		t.Errorf("expected UTC location, got %v (%v)", loc, err)
	}
	if got := cfg.Formatter().Locale.Name; got != "fr" {
		t.Errorf("expected locale fr, got %s", got)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `clock_24h = `},
		{"zero width", `width = 0`},
		{"huge", `height = 5000`},
		{"bad zone", `timezone = "Mars/Olympus"`},
		{"bad locale", `locale = "tlh"`},
		{"bad scale", `scale = -1`},
		{"misspelled key", "clock24h = true\nlocale = \"de\""},
	}
	for _, tt := range tests {
		path := filepath.Join(t.TempDir(), "config.toml")
		writeConfig(t, path, tt.content)
		if _, err := LoadFrom(path); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "clock_24h = false\n")
	t.Setenv("FREDSISTANCE_CLOCK_24H", "true")
	t.Setenv("FREDSISTANCE_TZ", "UTC")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Clock24h == nil || !*cfg.Clock24h {
		t.Errorf("expected env to force clock_24h true")
	}
	if cfg.Timezone != "UTC" {
		t.Errorf("expected timezone UTC, got %s", cfg.Timezone)
	}

	t.Setenv("FREDSISTANCE_CLOCK_24H", "maybe")
	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for unparsable FREDSISTANCE_CLOCK_24H")
	}
}

func TestApplySettings(t *testing.T) {
	s := hal.NewSettingsStore()
	on := true
	(&Config{Clock24h: &on}).ApplySettings(s)
	if got, ok := s.Clock24h(); !got || !ok {
		t.Fatalf("Clock24h() = %v, %v; want true, true", got, ok)
	}
	(&Config{}).ApplySettings(s)
	if _, ok := s.Clock24h(); ok {
		t.Fatal("Clock24h() ok = true after applying an unset preference")
	}
}

func TestLoadBackground(t *testing.T) {
	if data, err := Default().LoadBackground(); data != nil || err != nil {
		t.Fatalf("LoadBackground() with none configured = %v, %v", data, err)
	}
	path := filepath.Join(t.TempDir(), "bg.png")
	writeConfig(t, path, "png")
	cfg := &Config{Background: path}
	data, err := cfg.LoadBackground()
	if err != nil || string(data) != "png" {
		t.Fatalf("LoadBackground() = %q, %v", data, err)
	}
	cfg.Background = path + ".missing"
	if _, err := cfg.LoadBackground(); err == nil {
		t.Fatal("LoadBackground() of missing file err = nil")
	}
}

func TestWatcherReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	writeConfig(t, path, "clock_24h = false\n")

	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() err = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan *Config, 16)
	go w.Run(ctx, func(c *Config) { changes <- c }, nil)

	writeConfig(t, path, "clock_24h = true\n")

	timeout := time.After(5 * time.Second)
	for {
		select {
		case c := <-changes:
			if c.Clock24h != nil && *c.Clock24h {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for reload with clock_24h = true")
		}
	}
}

func TestWatcherStopsOnCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() err = %v", err)
	}
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, nil, nil) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run() err = %v, want context.Canceled", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}
}
