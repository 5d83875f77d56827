package logger

import (
	"fmt"

	timeclient "fredsistance/sparkos/client/time"
	"fredsistance/sparkos/kernel"
	"fredsistance/sparkos/proto"
)

const maxRetries = 8

// Client sends log lines to the logger service.
type Client struct {
	logCap  kernel.Capability
	backoff *timeclient.Sleeper
}

// New returns a logger client. timeCap is used for LogRetry backoff and may
// be invalid, in which case LogRetry waits on kernel ticks instead.
func New(logCap, timeCap kernel.Capability) *Client {
	c := &Client{logCap: logCap}
	if timeCap.Valid() {
		c.backoff = timeclient.NewSleeper(timeCap)
	}
	return c
}

// Log sends a log line to the logger service.
//
// The call is best-effort: it may drop on queue full.
func (c *Client) Log(ctx *kernel.Context, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrNoContext
	}
	b := []byte(line)
	if len(b) > kernel.MaxMessageBytes {
		b = b[:kernel.MaxMessageBytes]
	}
	return ctx.SendToCapResult(c.logCap, uint16(proto.MsgLogLine), b, kernel.Capability{})
}

// Logf formats and sends a log line, best-effort.
func (c *Client) Logf(ctx *kernel.Context, format string, args ...any) kernel.SendResult {
	return c.Log(ctx, fmt.Sprintf(format, args...))
}

// LogRetry sends a log line, backing off one tick while the logger queue is
// full.
func (c *Client) LogRetry(ctx *kernel.Context, line string) error {
	if ctx == nil {
		return fmt.Errorf("logger retry: nil context")
	}

	for attempt := 0; ; attempt++ {
		res := c.Log(ctx, line)
		switch res {
		case kernel.SendOK:
			return nil
		case kernel.SendErrQueueFull:
			if attempt >= maxRetries {
				return fmt.Errorf("logger send: %s after %d retries", res, attempt)
			}
			if c.backoff == nil {
				ctx.BlockOnTick()
				continue
			}
			if err := c.backoff.Sleep(ctx, 1); err != nil {
				return fmt.Errorf("logger retry backoff: %w", err)
			}
		default:
			return fmt.Errorf("logger send: %s", res)
		}
	}
}
