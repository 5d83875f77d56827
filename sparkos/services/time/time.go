package timesvc

import (
	"fredsistance/sparkos/kernel"
	"fredsistance/sparkos/proto"
)

const maxSleepers = 32

type sleeper struct {
	inUse bool
	due   uint64
	id    uint32
	reply kernel.Capability
}

// Service answers MsgSleep requests with MsgWake once the kernel tick base
// has advanced by the requested number of ticks.
type Service struct {
	ep kernel.Capability

	sleepers [maxSleepers]sleeper
}

func New(ep kernel.Capability) *Service {
	return &Service{ep: ep}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok {
		return
	}

	done := make(chan struct{})
	defer close(done)

	tickCh := make(chan uint64, 1)
	go func() {
		last := ctx.NowTick()
		for {
			last = ctx.WaitTick(last)
			select {
			case <-done:
				return
			case tickCh <- last:
			default:
			}
		}
	}()

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			s.handle(ctx, msg)
		case now := <-tickCh:
			s.wakeReady(ctx, now)
		}
	}
}

func (s *Service) handle(ctx *kernel.Context, msg kernel.Message) {
	if proto.Kind(msg.Kind) != proto.MsgSleep || !msg.Cap.Valid() {
		return
	}

	req, ok := proto.DecodeSleep(msg.Payload())
	if !ok {
		reply(ctx, msg.Cap, proto.MsgError, proto.ErrorPayload(proto.ErrBadMessage, proto.MsgSleep, 0))
		return
	}
	if req.Ticks == 0 {
		reply(ctx, msg.Cap, proto.MsgWake, proto.WakePayload(req.RequestID))
		return
	}
	if !s.schedule(ctx.NowTick()+uint64(req.Ticks), req.RequestID, msg.Cap) {
		reply(ctx, msg.Cap, proto.MsgError, proto.ErrorPayload(proto.ErrOverflow, proto.MsgSleep, req.RequestID))
	}
}

func (s *Service) schedule(due uint64, requestID uint32, to kernel.Capability) bool {
	for i := range s.sleepers {
		if s.sleepers[i].inUse {
			continue
		}
		s.sleepers[i] = sleeper{inUse: true, due: due, id: requestID, reply: to}
		return true
	}
	return false
}

func (s *Service) wakeReady(ctx *kernel.Context, now uint64) {
	for i := range s.sleepers {
		sl := &s.sleepers[i]
		if !sl.inUse || sl.due > now {
			continue
		}
		// A full reply queue keeps the sleeper for the next tick.
		if reply(ctx, sl.reply, proto.MsgWake, proto.WakePayload(sl.id)) == kernel.SendErrQueueFull {
			continue
		}
		*sl = sleeper{}
	}
}

func reply(ctx *kernel.Context, to kernel.Capability, kind proto.Kind, payload []byte) kernel.SendResult {
	return ctx.SendToCapResult(to, uint16(kind), payload, kernel.Capability{})
}
