// Package proto defines the message kinds and little-endian payload layouts
// exchanged between tasks over kernel endpoints.
package proto

// Kind identifies the message type carried in kernel.Message.Kind.
type Kind uint16

const (
	MsgLogLine Kind = iota + 1
	MsgSleep
	MsgWake
	MsgError
	MsgAppControl
	MsgAppShutdown
	MsgClockSubscribe
	MsgClockUnsubscribe
	MsgClockTick
)

var kindNames = [...]string{
	MsgLogLine:          "log_line",
	MsgSleep:            "sleep",
	MsgWake:             "wake",
	MsgError:            "error",
	MsgAppControl:       "app_control",
	MsgAppShutdown:      "app_shutdown",
	MsgClockSubscribe:   "clock_subscribe",
	MsgClockUnsubscribe: "clock_unsubscribe",
	MsgClockTick:        "clock_tick",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}
