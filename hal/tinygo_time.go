//go:build tinygo

package hal

import "time"

// boardTime publishes milliseconds since boot. The sequence follows the
// monotonic clock, so a tick dropped on a full channel is folded into the
// next one instead of slowing the kernel down.
type boardTime struct {
	ch chan uint64
}

func newBoardTime() *boardTime {
	t := &boardTime{ch: make(chan uint64, 16)}
	start := time.Now()
	go func() {
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for now := range ticker.C {
			seq := uint64(now.Sub(start) / time.Millisecond)
			select {
			case t.ch <- seq:
			default:
			}
		}
	}()
	return t
}

func (t *boardTime) Ticks() <-chan uint64 { return t.ch }
