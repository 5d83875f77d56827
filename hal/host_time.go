//go:build !tinygo

package hal

import "time"

// hostTime numbers elapsed wall time in 1ms ticks since the first step.
type hostTime struct {
	ch    chan uint64
	now   func() time.Time
	start time.Time
	seq   uint64
}

func newHostTime() *hostTime {
	return &hostTime{ch: make(chan uint64, 1), now: time.Now}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

func (t *hostTime) step() {
	now := t.now()
	if t.start.IsZero() {
		t.start = now
	}
	seq := uint64(now.Sub(t.start)/time.Millisecond) + 1
	if seq <= t.seq {
		return
	}
	t.seq = seq

	// Only the newest sequence matters; replace a stale unread one.
	select {
	case <-t.ch:
	default:
	}
	t.ch <- seq
}
