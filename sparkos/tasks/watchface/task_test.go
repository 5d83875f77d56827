package watchface

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"fredsistance/hal"
	"fredsistance/sparkos/kernel"
	"fredsistance/sparkos/proto"
	"fredsistance/sparkos/services/logger"
	"fredsistance/sparkos/ui"
)

const testTimeout = 3 * time.Second

// recorder is a Handler that reports each call on events.
type recorder struct {
	events chan string
}

func (r *recorder) OnShow(w *ui.Window) error {
	b := w.Bounds()
	r.events <- fmt.Sprintf("show %dx%d", b.W, b.H)
	return nil
}

func (r *recorder) OnHide(*ui.Window) { r.events <- "hide" }

func (r *recorder) OnTick(changed proto.TimeUnits) error {
	r.events <- "tick " + changed.String()
	return nil
}

type fakeDisplay struct{ fb hal.Framebuffer }

func (d fakeDisplay) Framebuffer() hal.Framebuffer { return d.fb }

type lineLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *lineLogger) WriteLineString(s string) {
	l.mu.Lock()
	l.lines = append(l.lines, s)
	l.mu.Unlock()
}

func (l *lineLogger) WriteLineBytes(b []byte) { l.WriteLineString(string(b)) }

func (l *lineLogger) has(prefix string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, s := range l.lines {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// fakeClockService stands in for the clock service and scripts the app's
// lifecycle: a tick while hidden, show, a tick, shutdown.
type fakeClockService struct {
	ep     kernel.Capability
	appCap kernel.Capability
	got    chan<- kernel.Message
}

func (s *fakeClockService) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}
	sub := <-ch
	s.got <- sub
	tickCap := sub.Cap

	at := time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC).Unix()
	tick := proto.ClockTickPayload(at, proto.UnitMinute)

	ctx.SendToCapRetry(tickCap, uint16(proto.MsgClockTick), tick, kernel.Capability{}, 16)
	ctx.SendToCapRetry(s.appCap, uint16(proto.MsgAppControl), proto.AppControlPayload(true), kernel.Capability{}, 16)
	ctx.SendToCapRetry(tickCap, uint16(proto.MsgClockTick), proto.ClockTickPayload(at+60, proto.UnitMinute|proto.UnitHour), kernel.Capability{}, 16)
	ctx.SendToCapRetry(s.appCap, uint16(proto.MsgAppShutdown), nil, kernel.Capability{}, 16)

	for msg := range ch {
		s.got <- msg
	}
}

func TestTaskLifecycle(t *testing.T) {
	k := kernel.New()
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	clockEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	appEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	lines := &lineLogger{}
	k.AddTask(logger.New(lines, logEP.Restrict(kernel.RightRecv)))

	rec := &recorder{events: make(chan string, 8)}
	disp := fakeDisplay{fb: newMemFB(144, 168)}
	k.AddTask(New(rec, disp, appEP, clockEP.Restrict(kernel.RightSend), logEP.Restrict(kernel.RightSend), kernel.Capability{}))

	got := make(chan kernel.Message, 8)
	k.AddTask(&fakeClockService{
		ep:     clockEP.Restrict(kernel.RightRecv),
		appCap: appEP.Restrict(kernel.RightSend),
		got:    got,
	})

	sub := recvMsg(t, got)
	if proto.Kind(sub.Kind) != proto.MsgClockSubscribe {
		t.Fatalf("first clock message = %s, want %s", proto.Kind(sub.Kind), proto.MsgClockSubscribe)
	}
	units, ok := proto.DecodeClockSubscribePayload(sub.Payload())
	if !ok || units != proto.UnitsFrom(proto.UnitMinute) {
		t.Fatalf("subscribe units = %s, %v; want %s", units, ok, proto.UnitsFrom(proto.UnitMinute))
	}
	if !sub.Cap.Valid() {
		t.Fatal("subscribe carried no tick capability")
	}

	want := []string{"show 144x168", "tick minute|hour", "hide"}
	for _, w := range want {
		select {
		case ev := <-rec.events:
			if ev != w {
				t.Fatalf("handler event = %q, want %q", ev, w)
			}
		case <-time.After(testTimeout):
			t.Fatalf("timed out waiting for %q", w)
		}
	}

	unsub := recvMsg(t, got)
	if proto.Kind(unsub.Kind) != proto.MsgClockUnsubscribe {
		t.Fatalf("last clock message = %s, want %s", proto.Kind(unsub.Kind), proto.MsgClockUnsubscribe)
	}
	if unsub.Cap != sub.Cap {
		t.Fatal("unsubscribe capability differs from subscribe")
	}

	deadline := time.Now().Add(testTimeout)
	for !lines.has("watchface: shutdown") {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for shutdown log line")
		}
		time.Sleep(time.Millisecond)
	}
	if !lines.has("watchface: shown 144x168") {
		t.Fatal("missing shown log line")
	}
}

func recvMsg(t *testing.T, ch <-chan kernel.Message) kernel.Message {
	t.Helper()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(testTimeout):
		t.Fatal("timed out waiting for message")
	}
	return kernel.Message{}
}
