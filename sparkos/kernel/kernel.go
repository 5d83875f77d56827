package kernel

import "sync"

const (
	maxTasks     = 32
	maxEndpoints = 32
	mailboxSlots = 8
)

type TaskID uint8

// Rights define which operations are allowed for a capability.
type Rights uint8

const (
	RightSend Rights = 1 << iota
	RightRecv
)

// Endpoint identifies an IPC destination.
type Endpoint uint8

// Capability grants access to an IPC endpoint.
//
// It is opaque by construction (no exported fields) and may be transferred via IPC.
type Capability struct {
	ep     Endpoint
	rights Rights
}

func (c Capability) valid() bool {
	return c.rights != 0
}

func (c Capability) Valid() bool { return c.valid() }

func (c Capability) canSend() bool { return c.rights&RightSend != 0 }
func (c Capability) canRecv() bool { return c.rights&RightRecv != 0 }

// Restrict returns a capability with a reduced set of rights.
func (c Capability) Restrict(rights Rights) Capability {
	if !c.valid() {
		return Capability{}
	}
	r := c.rights & rights
	if r == 0 {
		return Capability{}
	}
	return Capability{ep: c.ep, rights: r}
}

// MaxMessageBytes is the maximum payload size for IPC messages.
const MaxMessageBytes = 128

// Message is a fixed-size IPC envelope. Payloads are copied in, so the
// sender may reuse its buffer as soon as the send returns.
type Message struct {
	Kind uint16
	Len  uint16
	Data [MaxMessageBytes]byte
	// Cap is the capability transferred with the message, if any.
	Cap Capability
}

// Payload returns the valid prefix of Data.
func (m *Message) Payload() []byte {
	return m.Data[:min(int(m.Len), MaxMessageBytes)]
}

// SendResult describes the outcome of a send attempt.
type SendResult uint8

const (
	SendOK SendResult = iota
	// SendErrNoContext: called outside a running task.
	SendErrNoContext
	SendErrInvalidToCap
	SendErrToNoSendRight
	SendErrNoEndpoint
	SendErrPayloadTooLarge
	SendErrQueueFull
)

var sendResultText = [...]string{
	SendOK:                 "ok",
	SendErrNoContext:       "no task context",
	SendErrInvalidToCap:    "invalid capability",
	SendErrToNoSendRight:   "capability has no send right",
	SendErrNoEndpoint:      "no such endpoint",
	SendErrPayloadTooLarge: "payload too large",
	SendErrQueueFull:       "queue full",
}

func (r SendResult) String() string {
	if int(r) < len(sendResultText) {
		return sendResultText[r]
	}
	return "unknown"
}

// Task is a unit of execution. Run is called once on its own goroutine and
// owns that goroutine until it returns.
type Task interface {
	Run(*Context)
}

type endpointState struct {
	ch chan Message
}

// Kernel is a minimal task runner plus IPC router.
type Kernel struct {
	mu sync.Mutex

	endpoints     [maxEndpoints]endpointState
	endpointCount Endpoint

	taskCount TaskID

	tickMu   sync.Mutex
	tickCond *sync.Cond
	tick     uint64
}

// New creates a kernel instance.
func New() *Kernel {
	k := &Kernel{}
	k.tickCond = sync.NewCond(&k.tickMu)
	return k
}

// NewEndpoint allocates a new endpoint and returns a capability for it.
func (k *Kernel) NewEndpoint(rights Rights) Capability {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.endpointCount >= maxEndpoints {
		return Capability{}
	}
	ep := k.endpointCount
	k.endpointCount++
	k.endpoints[ep].ch = make(chan Message, mailboxSlots)
	return Capability{ep: ep, rights: rights}
}

// AddTask starts a task and returns its ID.
//
// A panic inside the task puts the kernel in panic mode (see SetPanicHandler).
func (k *Kernel) AddTask(t Task) TaskID {
	k.mu.Lock()
	if k.taskCount >= maxTasks {
		k.mu.Unlock()
		return 0
	}
	id := k.taskCount
	k.taskCount++
	k.mu.Unlock()

	go func() {
		defer func() {
			if r := recover(); r != nil {
				triggerPanic(PanicInfo{TaskID: id, Value: r})
			}
		}()
		t.Run(&Context{k: k})
	}()
	return id
}

// TickTo advances the kernel tick base to seq and wakes tick waiters.
//
// Ticks never move backwards; a stale seq is ignored.
func (k *Kernel) TickTo(seq uint64) {
	k.tickMu.Lock()
	if seq > k.tick {
		k.tick = seq
		k.tickCond.Broadcast()
	}
	k.tickMu.Unlock()
}

// Tick advances the kernel tick base by one.
func (k *Kernel) Tick() {
	k.tickMu.Lock()
	k.tick++
	k.tickCond.Broadcast()
	k.tickMu.Unlock()
}

func (k *Kernel) nowTick() uint64 {
	k.tickMu.Lock()
	defer k.tickMu.Unlock()
	return k.tick
}

func (k *Kernel) waitTick(after uint64) uint64 {
	k.tickMu.Lock()
	defer k.tickMu.Unlock()
	for k.tick <= after {
		k.tickCond.Wait()
	}
	return k.tick
}

func (k *Kernel) endpointChan(ep Endpoint) chan Message {
	k.mu.Lock()
	defer k.mu.Unlock()
	if ep >= k.endpointCount {
		return nil
	}
	return k.endpoints[ep].ch
}

func (k *Kernel) send(to Endpoint, kind uint16, payload []byte, xfer Capability) SendResult {
	if len(payload) > MaxMessageBytes {
		return SendErrPayloadTooLarge
	}
	ch := k.endpointChan(to)
	if ch == nil {
		return SendErrNoEndpoint
	}

	msg := Message{Kind: kind, Len: uint16(len(payload)), Cap: xfer}
	copy(msg.Data[:], payload)

	return trySend(ch, msg)
}

func trySend(ch chan Message, msg Message) (res SendResult) {
	// Sending on a closed endpoint panics; report it as gone instead.
	defer func() {
		if recover() != nil {
			res = SendErrNoEndpoint
		}
	}()
	select {
	case ch <- msg:
		return SendOK
	default:
		return SendErrQueueFull
	}
}
