//go:build tinygo

package hal

import "time"

// Clock24hDefault seeds the 24-hour preference on boards without a settings
// store. Set with -ldflags "-X fredsistance/hal.Clock24hDefault=1".
// Empty leaves the preference unset.
var Clock24hDefault = ""

// ClockZone is the device UTC offset as "+HH:MM" or "-HH:MM", set the same way.
var ClockZone = ""

func newBoardSettings() *SettingsStore {
	s := NewSettingsStore()
	switch Clock24hDefault {
	case "1", "true":
		s.SetClock24h(true)
	case "0", "false":
		s.SetClock24h(false)
	}
	return s
}

type boardClock struct {
	loc *time.Location
}

func newBoardClock() boardClock {
	loc := time.UTC
	if ClockZone != "" {
		if t, err := time.Parse("-07:00", ClockZone); err == nil {
			_, off := t.Zone()
			loc = time.FixedZone(ClockZone, off)
		}
	}
	return boardClock{loc: loc}
}

func (c boardClock) Now() time.Time { return time.Now().In(c.loc) }
