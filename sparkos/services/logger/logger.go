// Package logger is the log sink task: it owns the HAL logger and writes
// every MsgLogLine it receives, one physical line per embedded newline.
package logger

import (
	"bytes"

	"fredsistance/hal"
	"fredsistance/sparkos/kernel"
	"fredsistance/sparkos/proto"
)

type Service struct {
	out hal.Logger
	ep  kernel.Capability
}

func New(out hal.Logger, ep kernel.Capability) *Service {
	return &Service{out: out, ep: ep}
}

func (s *Service) Run(ctx *kernel.Context) {
	ch, ok := ctx.RecvChan(s.ep)
	if !ok || s.out == nil {
		return
	}
	for msg := range ch {
		if proto.Kind(msg.Kind) == proto.MsgLogLine {
			s.write(msg.Payload())
		}
	}
}

func (s *Service) write(payload []byte) {
	for len(payload) > 0 {
		line, rest, _ := bytes.Cut(payload, []byte{'\n'})
		payload = rest
		line = bytes.TrimSuffix(line, []byte{'\r'})
		if len(line) > 0 {
			s.out.WriteLineBytes(line)
		}
	}
}
