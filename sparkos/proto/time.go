package proto

import "encoding/binary"

// Sleep is a MsgSleep request: wake the sender after Ticks kernel ticks.
// The reply capability travels in Message.Cap.
type Sleep struct {
	RequestID uint32
	Ticks     uint32
}

// SleepPayload encodes a Sleep as u32 request ID, u32 ticks.
func SleepPayload(requestID uint32, ticks uint32) []byte {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], requestID)
	binary.LittleEndian.PutUint32(buf[4:8], ticks)
	return buf
}

func DecodeSleep(b []byte) (Sleep, bool) {
	if len(b) != 8 {
		return Sleep{}, false
	}
	return Sleep{
		RequestID: binary.LittleEndian.Uint32(b[0:4]),
		Ticks:     binary.LittleEndian.Uint32(b[4:8]),
	}, true
}

// WakePayload encodes a MsgWake reply: the u32 request ID being answered.
func WakePayload(requestID uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, requestID)
}

func DecodeWakePayload(b []byte) (requestID uint32, ok bool) {
	if len(b) != 4 {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}
