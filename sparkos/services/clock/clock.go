// Package clocksvc is the tick timer service: it watches the wall clock and
// notifies subscribers when calendar fields roll over.
package clocksvc

import (
	"time"

	"fredsistance/hal"
	timeclient "fredsistance/sparkos/client/time"
	"fredsistance/sparkos/kernel"
	"fredsistance/sparkos/proto"
)

const maxSubscribers = 8

// pollTicks caps the sleep between wall clock reads so clock adjustments are
// noticed within a second.
const pollTicks = 1000

type subscriber struct {
	inUse bool
	to    kernel.Capability
	units proto.TimeUnits
}

// Service delivers MsgClockTick to subscribers.
type Service struct {
	clock   hal.Clock
	ep      kernel.Capability
	timeCap kernel.Capability

	subs [maxSubscribers]subscriber
	last time.Time
}

func New(clock hal.Clock, ep kernel.Capability, timeCap kernel.Capability) *Service {
	return &Service{clock: clock, ep: ep, timeCap: timeCap}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok || s.clock == nil {
		return
	}

	done := make(chan struct{})
	defer close(done)

	sleeper := timeclient.NewSleeper(s.timeCap)
	wakeCh := make(chan struct{}, 1)
	go func() {
		for {
			if err := sleeper.Sleep(ctx, untilNextSecond(s.clock.Now())); err != nil {
				ctx.BlockOnTick()
			}
			select {
			case <-done:
				return
			case wakeCh <- struct{}{}:
			default:
			}
		}
	}()

	s.last = s.clock.Now()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.handle(ctx, msg)
		case <-wakeCh:
			s.poll(ctx)
		}
	}
}

func (s *Service) handle(ctx *kernel.Context, msg kernel.Message) {
	switch proto.Kind(msg.Kind) {
	case proto.MsgClockSubscribe:
		if !msg.Cap.Valid() {
			return
		}
		units, ok := proto.DecodeClockSubscribePayload(msg.Payload())
		if !ok {
			_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgError),
				proto.ErrorPayload(proto.ErrBadMessage, proto.MsgClockSubscribe, 0), kernel.Capability{})
			return
		}
		if !s.subscribe(msg.Cap, units) {
			_ = ctx.SendToCapResult(msg.Cap, uint16(proto.MsgError),
				proto.ErrorPayload(proto.ErrOverflow, proto.MsgClockSubscribe, 0), kernel.Capability{})
		}

	case proto.MsgClockUnsubscribe:
		s.unsubscribe(msg.Cap)
	}
}

func (s *Service) subscribe(to kernel.Capability, units proto.TimeUnits) bool {
	free := -1
	for i := range s.subs {
		if s.subs[i].inUse && s.subs[i].to == to {
			s.subs[i].units = units
			return true
		}
		if !s.subs[i].inUse && free < 0 {
			free = i
		}
	}
	if free < 0 {
		return false
	}
	s.subs[free] = subscriber{inUse: true, to: to, units: units}
	return true
}

func (s *Service) unsubscribe(to kernel.Capability) {
	for i := range s.subs {
		if s.subs[i].inUse && s.subs[i].to == to {
			s.subs[i] = subscriber{}
		}
	}
}

// poll reads the clock once and notifies subscribers about rolled-over units.
// Missed boundaries are not replayed; a subscriber with a full queue simply
// misses that tick.
func (s *Service) poll(ctx *kernel.Context) {
	now := s.clock.Now()
	changed := ChangedUnits(s.last, now)
	s.last = now
	if changed == 0 {
		return
	}

	payload := proto.ClockTickPayload(now.Unix(), changed)
	for i := range s.subs {
		sub := &s.subs[i]
		if !sub.inUse || sub.units&changed == 0 {
			continue
		}
		switch ctx.SendToCapResult(sub.to, uint16(proto.MsgClockTick), payload, kernel.Capability{}) {
		case kernel.SendOK, kernel.SendErrQueueFull:
		default:
			*sub = subscriber{}
		}
	}
}

// ChangedUnits reports which calendar fields differ between prev and now.
// A zero prev reports nothing.
func ChangedUnits(prev, now time.Time) proto.TimeUnits {
	if prev.IsZero() {
		return 0
	}
	var u proto.TimeUnits
	if prev.Second() != now.Second() {
		u |= proto.UnitSecond
	}
	if prev.Minute() != now.Minute() {
		u |= proto.UnitMinute
	}
	if prev.Hour() != now.Hour() {
		u |= proto.UnitHour
	}
	if prev.Day() != now.Day() {
		u |= proto.UnitDay
	}
	if prev.Month() != now.Month() {
		u |= proto.UnitMonth
	}
	if prev.Year() != now.Year() {
		u |= proto.UnitYear
	}
	return u
}

func untilNextSecond(now time.Time) uint32 {
	ms := uint32(1000 - now.Nanosecond()/int(time.Millisecond))
	if ms == 0 || ms > pollTicks {
		ms = pollTicks
	}
	return ms
}
