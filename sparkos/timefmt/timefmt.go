// Package timefmt renders the watch face's time and date lines.
//
// Formatting is pure: the same instant, style and locale always produce the
// same strings, and nothing is remembered between calls.
package timefmt

import (
	"fmt"
	"time"
)

// Style selects the hour rendering.
type Style uint8

const (
	TwelveHour Style = iota
	TwentyFourHour
)

func (s Style) String() string {
	if s == TwentyFourHour {
		return "24h"
	}
	return "12h"
}

// StyleFromSetting maps the platform's 24-hour flag to a Style.
// An unset flag means TwelveHour.
func StyleFromSetting(on, ok bool) Style {
	if ok && on {
		return TwentyFourHour
	}
	return TwelveHour
}

const (
	// MaxTimeLen is the longest English time line in bytes ("12:00 AM").
	MaxTimeLen = 8
	// MaxDateLen is the longest English date line in bytes ("Wed, 12/31/24").
	// Other locales may exceed it; their lines are never cut.
	MaxDateLen = 13
)

// Valid reports whether t can be rendered: it must be set and its year must
// fit in four digits.
func Valid(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	y := t.Year()
	return y >= 0 && y <= 9999
}

// Formatter renders time and date lines in one locale.
type Formatter struct {
	Locale Locale
}

// Default renders English lines.
var Default = Formatter{Locale: English}

// Format renders t with the default formatter.
func Format(t time.Time, style Style) (timeLine, dateLine string) {
	return Default.Format(t, style)
}

// Format returns the time line ("HH:MM" or "HH:MM AM") and the date line
// ("Www, MM/DD/YY") for t in t's own location.
//
// Calling Format with an invalid time is a programming error and panics.
func (f Formatter) Format(t time.Time, style Style) (timeLine, dateLine string) {
	if !Valid(t) {
		panic(fmt.Sprintf("timefmt: invalid time %v", t))
	}
	tb := f.AppendTime(make([]byte, 0, MaxTimeLen), t, style)
	db := f.AppendDate(make([]byte, 0, MaxDateLen), t)
	return string(tb), string(db)
}

// AppendTime appends the time line for t to dst.
func (f Formatter) AppendTime(dst []byte, t time.Time, style Style) []byte {
	h, m := t.Hour(), t.Minute()
	if style == TwentyFourHour {
		dst = append2(dst, h)
		dst = append(dst, ':')
		return append2(dst, m)
	}

	marker := f.Locale.AM
	if h >= 12 {
		marker = f.Locale.PM
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	dst = append2(dst, h)
	dst = append(dst, ':')
	dst = append2(dst, m)
	dst = append(dst, ' ')
	return append(dst, marker...)
}

// AppendDate appends the date line for t to dst.
func (f Formatter) AppendDate(dst []byte, t time.Time) []byte {
	dst = append(dst, f.Locale.Weekdays[t.Weekday()]...)
	dst = append(dst, ',', ' ')
	dst = append2(dst, int(t.Month()))
	dst = append(dst, '/')
	dst = append2(dst, t.Day())
	dst = append(dst, '/')
	return append2(dst, t.Year()%100)
}

// append2 appends v (0..99) as two digits.
func append2(dst []byte, v int) []byte {
	return append(dst, byte('0'+v/10), byte('0'+v%10))
}
