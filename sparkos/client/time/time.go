package time

import (
	"fmt"

	"fredsistance/sparkos/kernel"
	"fredsistance/sparkos/proto"
)

// sendRetries bounds how many ticks Sleep waits for room in the time
// service queue.
const sendRetries = 64

// Sleeper issues sleep requests to the time service. It owns a private
// reply endpoint, so it must be used from one goroutine at a time.
type Sleeper struct {
	timeCap  kernel.Capability
	replyCap kernel.Capability
	nextID   uint32
}

func NewSleeper(timeCap kernel.Capability) *Sleeper {
	return &Sleeper{timeCap: timeCap}
}

// Sleep blocks until dt kernel ticks have passed, as measured by the time
// service.
func (s *Sleeper) Sleep(ctx *kernel.Context, dt uint32) error {
	if ctx == nil {
		return fmt.Errorf("time sleep: nil context")
	}
	if !s.replyCap.Valid() {
		s.replyCap = ctx.NewEndpoint(kernel.RightSend | kernel.RightRecv)
		if !s.replyCap.Valid() {
			return fmt.Errorf("time sleep: allocate reply endpoint")
		}
	}

	s.nextID++
	if s.nextID == 0 {
		s.nextID++
	}
	id := s.nextID

	res := ctx.SendToCapRetry(s.timeCap, uint16(proto.MsgSleep), proto.SleepPayload(id, dt), s.replyCap.Restrict(kernel.RightSend), sendRetries)
	if res != kernel.SendOK {
		return fmt.Errorf("time sleep send: %s", res)
	}

	replyRecv := s.replyCap.Restrict(kernel.RightRecv)
	for {
		msg, ok := ctx.Recv(replyRecv)
		if !ok {
			return fmt.Errorf("time sleep: reply endpoint closed")
		}

		switch proto.Kind(msg.Kind) {
		case proto.MsgWake:
			reqID, ok := proto.DecodeWakePayload(msg.Payload())
			if !ok {
				return fmt.Errorf("time wake: bad payload")
			}
			if reqID != id {
				// Stale wake from an earlier request.
				continue
			}
			return nil

		case proto.MsgError:
			perr, ok := proto.DecodeError(msg.Payload())
			if !ok {
				return fmt.Errorf("time error: bad payload")
			}
			if perr.RequestID != 0 && perr.RequestID != id {
				continue
			}
			return fmt.Errorf("time sleep: %w", perr)
		}
	}
}
