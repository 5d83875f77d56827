package hal

import "sync/atomic"

const (
	clock24hUnset uint32 = iota
	clock24hOff
	clock24hOn
)

// SettingsStore is a Settings value that can be updated from any goroutine.
type SettingsStore struct {
	clock24h atomic.Uint32
}

// NewSettingsStore returns a store with no preference set.
func NewSettingsStore() *SettingsStore {
	return &SettingsStore{}
}

func (s *SettingsStore) Clock24h() (on bool, ok bool) {
	switch s.clock24h.Load() {
	case clock24hOn:
		return true, true
	case clock24hOff:
		return false, true
	default:
		return false, false
	}
}

// SetClock24h records an explicit preference.
func (s *SettingsStore) SetClock24h(on bool) {
	if on {
		s.clock24h.Store(clock24hOn)
		return
	}
	s.clock24h.Store(clock24hOff)
}

// ResetClock24h forgets the preference.
func (s *SettingsStore) ResetClock24h() {
	s.clock24h.Store(clock24hUnset)
}
