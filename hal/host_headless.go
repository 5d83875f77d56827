//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	// Hz is the frame rate, 60 when unset.
	Hz int
	// Ticks stops the runner after this many frames; 0 runs until ctx ends.
	Ticks uint64
	Host  HostConfig
}

// AppFactory builds the OS on a HAL. step runs once per host frame and stop
// once when the runner exits.
type AppFactory func(HAL) (step func() error, stop func())

// hostRunner advances host time and the OS by one frame per call.
type hostRunner struct {
	h    *hostHAL
	step func() error
}

func (r *hostRunner) frame() error {
	r.h.t.step()
	if r.step == nil {
		return nil
	}
	return r.step()
}

// RunHeadless runs the OS without opening a window.
func RunHeadless(ctx context.Context, newApp AppFactory, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	period := time.Second / time.Duration(cfg.Hz)
	if period <= 0 {
		return fmt.Errorf("headless: invalid hz %d", cfg.Hz)
	}

	h := newHost(cfg.Host)
	step, stop := newApp(h)
	if stop != nil {
		defer stop()
	}
	r := &hostRunner{h: h, step: step}

	t := time.NewTicker(period)
	defer t.Stop()

	for n := uint64(1); ; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
		if err := r.frame(); err != nil {
			return err
		}
		if cfg.Ticks > 0 && n >= cfg.Ticks {
			return nil
		}
	}
}
