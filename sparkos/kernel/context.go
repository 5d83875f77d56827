package kernel

// Context is a task's handle on the kernel, passed to Task.Run. A nil
// Context or one without a kernel fails every operation.
type Context struct {
	k *Kernel
}

func (c *Context) live() bool { return c != nil && c.k != nil }

// RecvChan returns the inbound queue behind a receive capability. Tasks that
// select over several sources range over it directly.
func (c *Context) RecvChan(epCap Capability) (<-chan Message, bool) {
	if !c.live() || !epCap.canRecv() {
		return nil, false
	}
	ch := c.k.endpointChan(epCap.ep)
	return ch, ch != nil
}

// Recv blocks until a message arrives. ok is false if the capability cannot
// receive or the endpoint is closed.
func (c *Context) Recv(epCap Capability) (msg Message, ok bool) {
	ch, ok := c.RecvChan(epCap)
	if !ok {
		return Message{}, false
	}
	msg, ok = <-ch
	return msg, ok
}

// TryRecv is Recv without blocking.
func (c *Context) TryRecv(epCap Capability) (Message, bool) {
	ch, ok := c.RecvChan(epCap)
	if !ok {
		return Message{}, false
	}
	select {
	case msg, ok := <-ch:
		return msg, ok
	default:
		return Message{}, false
	}
}

// SendToCapResult queues a message on the endpoint behind toCap, optionally
// transferring xfer. It never blocks.
func (c *Context) SendToCapResult(toCap Capability, kind uint16, payload []byte, xfer Capability) SendResult {
	switch {
	case !c.live():
		return SendErrNoContext
	case !toCap.valid():
		return SendErrInvalidToCap
	case !toCap.canSend():
		return SendErrToNoSendRight
	}
	return c.k.send(toCap.ep, kind, payload, xfer)
}

// SendToCapRetry retries SendToCapResult once per kernel tick while the
// queue is full, at most limit times.
func (c *Context) SendToCapRetry(toCap Capability, kind uint16, payload []byte, xfer Capability, limit int) SendResult {
	res := c.SendToCapResult(toCap, kind, payload, xfer)
	for i := 0; i < limit && res == SendErrQueueFull; i++ {
		c.BlockOnTick()
		res = c.SendToCapResult(toCap, kind, payload, xfer)
	}
	return res
}

// NewEndpoint allocates an endpoint, e.g. a private reply queue.
func (c *Context) NewEndpoint(rights Rights) Capability {
	if !c.live() {
		return Capability{}
	}
	return c.k.NewEndpoint(rights)
}

// NowTick returns the current kernel tick (1ms on every HAL).
func (c *Context) NowTick() uint64 {
	if !c.live() {
		return 0
	}
	return c.k.nowTick()
}

// WaitTick blocks until the tick passes after and returns the new tick.
func (c *Context) WaitTick(after uint64) uint64 {
	if !c.live() {
		return 0
	}
	return c.k.waitTick(after)
}

// BlockOnTick waits for the next kernel tick.
func (c *Context) BlockOnTick() {
	if c.live() {
		c.k.waitTick(c.k.nowTick())
	}
}
