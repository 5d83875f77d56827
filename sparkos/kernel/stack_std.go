//go:build !tinygo

package kernel

import "runtime/debug"

// captureStack returns the calling goroutine's stack. Called from the
// recover in AddTask, it still includes the panicking frames.
func captureStack() []byte {
	return debug.Stack()
}
