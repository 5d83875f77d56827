package kernel

import (
	"bytes"
	"sync"
)

// PanicInfo contains details about a recovered task panic.
type PanicInfo struct {
	TaskID TaskID
	Value  any
	Stack  []byte
}

// panicState records the first task panic. Later panics are ignored: the
// screen already shows the root cause.
type panicState struct {
	mu      sync.Mutex
	active  bool
	info    PanicInfo
	handler func(PanicInfo)
}

var panics panicState

// InPanicMode reports whether any task has panicked.
func InPanicMode() bool {
	_, ok := LastPanic()
	return ok
}

// LastPanic returns the first recorded panic.
func LastPanic() (PanicInfo, bool) {
	panics.mu.Lock()
	defer panics.mu.Unlock()
	return panics.info, panics.active
}

// SetPanicHandler installs a process-wide panic handler.
//
// The handler runs once, on the panicking task's goroutine, and may block
// forever. It must not panic.
func SetPanicHandler(fn func(PanicInfo)) {
	panics.mu.Lock()
	panics.handler = fn
	panics.mu.Unlock()
}

func triggerPanic(info PanicInfo) {
	panics.mu.Lock()
	if panics.active {
		panics.mu.Unlock()
		return
	}
	info.Stack = trimStack(captureStack())
	panics.active = true
	panics.info = info
	fn := panics.handler
	panics.mu.Unlock()

	if fn != nil {
		fn(info)
	}
}

// trimStack drops the frames of the recovery machinery so the stack starts
// at the code that panicked. Stacks without a panic frame are returned as is.
func trimStack(stack []byte) []byte {
	i := bytes.LastIndex(stack, []byte("\npanic("))
	if i < 0 {
		return stack
	}
	rest := stack[i+1:]
	// Skip the panic( call line and its file:line.
	for n := 0; n < 2; n++ {
		j := bytes.IndexByte(rest, '\n')
		if j < 0 {
			return stack
		}
		rest = rest[j+1:]
	}
	if header := bytes.IndexByte(stack, '\n'); header >= 0 && header < i {
		out := make([]byte, 0, header+1+len(rest))
		out = append(out, stack[:header+1]...)
		return append(out, rest...)
	}
	return rest
}
