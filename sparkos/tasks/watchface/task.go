// Package watchface is the digital watch face app: the time at the top and
// the date at the bottom of the screen, refreshed every minute.
package watchface

import (
	"fredsistance/hal"
	clockclient "fredsistance/sparkos/client/clock"
	logclient "fredsistance/sparkos/client/logger"
	"fredsistance/sparkos/kernel"
	"fredsistance/sparkos/proto"
	"fredsistance/sparkos/ui"
)

// Task dispatches kernel messages to a Handler.
//
// It receives app control, shutdown and clock ticks on one endpoint. On start
// it subscribes that endpoint to minute ticks; on shutdown it hides the face
// and unsubscribes.
type Task struct {
	h        Handler
	disp     hal.Display
	ep       kernel.Capability
	clockCap kernel.Capability
	log      *logclient.Client

	win    *ui.Window
	active bool
}

// New returns the task. ep needs both rights: the task receives on it and
// hands the send right to the clock service.
func New(h Handler, disp hal.Display, ep, clockCap, logCap, timeCap kernel.Capability) *Task {
	return &Task{
		h:        h,
		disp:     disp,
		ep:       ep,
		clockCap: clockCap,
		log:      logclient.New(logCap, timeCap),
	}
}

func (t *Task) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(t.ep)
	if !ok {
		return
	}

	if res := clockclient.Subscribe(ctx, t.clockCap, t.ep.Restrict(kernel.RightSend), proto.UnitMinute); res != kernel.SendOK {
		t.log.Logf(ctx, "watchface: subscribe: %s", res)
	}

	for msg := range ch {
		if !t.Dispatch(ctx, msg) {
			return
		}
	}
}

// Dispatch handles one message and reports whether the task keeps running.
func (t *Task) Dispatch(ctx *kernel.Context, msg kernel.Message) bool {
	switch proto.Kind(msg.Kind) {
	case proto.MsgAppControl:
		active, ok := proto.DecodeAppControlPayload(msg.Payload())
		if !ok {
			return true
		}
		t.setActive(ctx, active)

	case proto.MsgClockTick:
		if !t.active {
			return true
		}
		_, changed, ok := proto.DecodeClockTickPayload(msg.Payload())
		if !ok {
			return true
		}
		if err := t.h.OnTick(changed); err != nil {
			t.log.Logf(ctx, "watchface: tick: %v", err)
		}

	case proto.MsgError:
		if perr, ok := proto.DecodeError(msg.Payload()); ok {
			t.log.Logf(ctx, "watchface: %v", perr)
		}

	case proto.MsgAppShutdown:
		t.setActive(ctx, false)
		if res := clockclient.Unsubscribe(ctx, t.clockCap, t.ep.Restrict(kernel.RightSend)); res != kernel.SendOK {
			t.log.Logf(ctx, "watchface: unsubscribe: %s", res)
		}
		if err := t.log.LogRetry(ctx, "watchface: shutdown"); err != nil {
			t.log.Logf(ctx, "watchface: shutdown log: %v", err)
		}
		return false
	}
	return true
}

func (t *Task) setActive(ctx *kernel.Context, active bool) {
	if active == t.active {
		return
	}
	if !active {
		t.h.OnHide(t.win)
		t.active = false
		t.log.Log(ctx, "watchface: hidden")
		return
	}

	if t.win == nil {
		var fb hal.Framebuffer
		if t.disp != nil {
			fb = t.disp.Framebuffer()
		}
		t.win = ui.NewWindow(fb)
	}
	if err := t.h.OnShow(t.win); err != nil {
		t.log.Logf(ctx, "watchface: %v", err)
		return
	}
	t.active = true
	b := t.win.Bounds()
	t.log.Logf(ctx, "watchface: shown %dx%d", b.W, b.H)
}
