//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// HostConfig shapes the desktop stand-in for the watch.
type HostConfig struct {
	Width  int
	Height int
	// Scale is the window zoom factor; ignored in headless mode.
	Scale int
	// Location is the device time zone. Nil means time.Local.
	Location *time.Location
	// Settings backs HAL.Settings. Nil means a store with nothing set.
	Settings *SettingsStore
}

func (c HostConfig) withDefaults() HostConfig {
	if c.Width <= 0 {
		c.Width = DefaultWidth
	}
	if c.Height <= 0 {
		c.Height = DefaultHeight
	}
	if c.Scale <= 0 {
		c.Scale = 3
	}
	if c.Location == nil {
		c.Location = time.Local
	}
	if c.Settings == nil {
		c.Settings = NewSettingsStore()
	}
	return c
}

type hostHAL struct {
	logger   *hostLogger
	led      *hostLED
	fb       *hostFramebuffer
	t        *hostTime
	clock    hostClock
	settings *SettingsStore
	scale    int
}

// New returns a host HAL implementation with default settings.
func New() HAL {
	return newHost(HostConfig{})
}

// NewHost returns a host HAL implementation.
func NewHost(cfg HostConfig) HAL {
	return newHost(cfg)
}

func newHost(cfg HostConfig) *hostHAL {
	cfg = cfg.withDefaults()
	logger := &hostLogger{w: os.Stdout}
	return &hostHAL{
		logger:   logger,
		led:      &hostLED{logger: logger},
		fb:       newHostFramebuffer(cfg.Width, cfg.Height),
		t:        newHostTime(),
		clock:    hostClock{loc: cfg.Location},
		settings: cfg.Settings,
		scale:    cfg.Scale,
	}
}

func (h *hostHAL) Logger() Logger     { return h.logger }
func (h *hostHAL) LED() LED           { return h.led }
func (h *hostHAL) Display() Display   { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Time() Time         { return h.t }
func (h *hostHAL) Clock() Clock       { return h.clock }
func (h *hostHAL) Settings() Settings { return h.settings }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostClock struct {
	loc *time.Location
}

func (c hostClock) Now() time.Time { return time.Now().In(c.loc) }

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}

type hostLED struct {
	mu     sync.Mutex
	on     bool
	logger *hostLogger
}

func (l *hostLED) High() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = true
	l.logger.WriteLineString("led: HIGH")
}

func (l *hostLED) Low() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.on = false
	l.logger.WriteLineString("led: LOW")
}
