package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// LED is a minimal output pin abstraction.
type LED interface {
	High()
	Low()
}

var ErrNotImplemented = errors.New("not implemented")

const (
	// DefaultWidth and DefaultHeight match the classic 144x168 watch panel.
	DefaultWidth  = 144
	DefaultHeight = 168
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp little-endian: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Time provides a base tick stream.
//
// Ticks are 1ms apart on every backend; higher-level timers live in userland.
type Time interface {
	Ticks() <-chan uint64
}

// Clock reads the wall clock in the device's local time zone.
type Clock interface {
	Now() time.Time
}

// Settings exposes user preferences owned by the platform.
//
// Values are polled; the platform may change them at any time.
type Settings interface {
	// Clock24h reports the 24-hour clock preference. ok is false when the
	// user never set one.
	Clock24h() (on bool, ok bool)
}

// HAL provides the only contact point between the OS and the outside world.
type HAL interface {
	Logger() Logger
	LED() LED
	Display() Display
	Time() Time
	Clock() Clock
	Settings() Settings
}
