package clock

import (
	"fredsistance/sparkos/kernel"
	"fredsistance/sparkos/proto"
)

const sendRetries = 16

// Subscribe asks the clock service to deliver MsgClockTick to tickCap
// whenever unit or any coarser unit changes.
//
// Errors from the service (table full) arrive on tickCap as MsgError.
func Subscribe(ctx *kernel.Context, clockCap, tickCap kernel.Capability, unit proto.TimeUnits) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrNoContext
	}
	if !tickCap.Valid() {
		return kernel.SendErrInvalidToCap
	}
	payload := proto.ClockSubscribePayload(proto.UnitsFrom(unit))
	return ctx.SendToCapRetry(clockCap, uint16(proto.MsgClockSubscribe), payload, tickCap, sendRetries)
}

// Unsubscribe stops tick delivery to tickCap.
func Unsubscribe(ctx *kernel.Context, clockCap, tickCap kernel.Capability) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrNoContext
	}
	return ctx.SendToCapRetry(clockCap, uint16(proto.MsgClockUnsubscribe), nil, tickCap, sendRetries)
}
