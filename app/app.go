// Package app assembles the watch OS: services, the watch face and the glue
// that feeds HAL ticks into the kernel.
package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"fredsistance/hal"
	"fredsistance/sparkos/kernel"
	"fredsistance/sparkos/proto"
	clocksvc "fredsistance/sparkos/services/clock"
	"fredsistance/sparkos/services/logger"
	timesvc "fredsistance/sparkos/services/time"
	"fredsistance/sparkos/tasks/watchface"
)

// shutdownTimeout bounds how long Shutdown waits for the face to tear down.
const shutdownTimeout = 2 * time.Second

var ErrShutdownTimeout = errors.New("app: shutdown timed out")

type Config struct {
	Face watchface.Config
	// ExitOnPanic makes Step fail once a task has panicked, which ends
	// headless runs instead of leaving the panic screen up.
	ExitOnPanic bool
}

// System is a running watch OS instance.
type System struct {
	k           *kernel.Kernel
	face        *watchface.Face
	exitOnPanic bool

	quit     chan struct{}
	faceDone chan struct{}
	stopOnce sync.Once
	stopErr  error
}

// New starts the OS and returns the step and stop hooks expected by the HAL
// runners.
func New(h hal.HAL, cfg Config) (step func() error, stop func()) {
	s := NewSystem(h, cfg)
	return s.Step, func() { _ = s.Shutdown() }
}

// Run starts the OS and blocks forever (TinyGo/native entrypoint).
func Run(h hal.HAL, cfg Config) {
	_ = NewSystem(h, cfg)
	select {}
}

// NewSystem builds and starts every task.
func NewSystem(h hal.HAL, cfg Config) *System {
	bootDiagStart(h)
	bootScreen(h, "kernel")
	installPanicHandler(h)

	k := kernel.New()

	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	timeEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	clockEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	faceEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	s := &System{
		k:           k,
		face:        watchface.NewFace(h.Clock(), h.Settings(), cfg.Face),
		exitOnPanic: cfg.ExitOnPanic,
		quit:        make(chan struct{}),
		faceDone:    make(chan struct{}),
	}

	bootScreen(h, "services")
	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(timesvc.New(timeEP.Restrict(kernel.RightRecv)))
	k.AddTask(clocksvc.New(h.Clock(), clockEP.Restrict(kernel.RightRecv), timeEP.Restrict(kernel.RightSend)))

	bootScreen(h, "watchface")
	face := watchface.New(
		s.face,
		h.Display(),
		faceEP,
		clockEP.Restrict(kernel.RightSend),
		logEP.Restrict(kernel.RightSend),
		timeEP.Restrict(kernel.RightSend),
	)
	k.AddTask(&doneTask{t: face, done: s.faceDone})
	k.AddTask(&launcher{appCap: faceEP.Restrict(kernel.RightSend), quit: s.quit})

	if ht := h.Time(); ht != nil {
		if ch := ht.Ticks(); ch != nil {
			go func() {
				for seq := range ch {
					k.TickTo(seq)
				}
			}()
		}
	}

	return s
}

// Step is called once per host frame. Tasks run on their own goroutines, so
// it only reports a task panic when asked to.
func (s *System) Step() error {
	if !s.exitOnPanic {
		return nil
	}
	if info, ok := kernel.LastPanic(); ok {
		return fmt.Errorf("app: task %d panicked: %v", info.TaskID, info.Value)
	}
	return nil
}

// Shutdown asks the watch face to hide and unsubscribe, and waits for it to
// exit. Calling Shutdown more than once is safe.
func (s *System) Shutdown() error {
	s.stopOnce.Do(func() {
		close(s.quit)
		select {
		case <-s.faceDone:
		case <-time.After(shutdownTimeout):
			s.stopErr = ErrShutdownTimeout
		}
	})
	return s.stopErr
}

// launcher pushes the watch face on start and sends it the shutdown message
// when quit closes.
type launcher struct {
	appCap kernel.Capability
	quit   <-chan struct{}
}

func (l *launcher) Run(ctx *kernel.Context) {
	ctx.SendToCapRetry(l.appCap, uint16(proto.MsgAppControl), proto.AppControlPayload(true), kernel.Capability{}, sendRetries)
	<-l.quit
	ctx.SendToCapRetry(l.appCap, uint16(proto.MsgAppShutdown), nil, kernel.Capability{}, sendRetries)
}

const sendRetries = 16

// doneTask closes done when t returns.
type doneTask struct {
	t    kernel.Task
	done chan struct{}
}

func (d *doneTask) Run(ctx *kernel.Context) {
	defer close(d.done)
	d.t.Run(ctx)
}
