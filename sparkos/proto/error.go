package proto

import (
	"encoding/binary"
	"fmt"
)

// ErrCode is the failure category carried by a MsgError reply.
type ErrCode uint16

const (
	ErrUnknown ErrCode = iota
	// ErrBadMessage: the request payload did not decode.
	ErrBadMessage
	// ErrOverflow: the service table for this request kind is full.
	ErrOverflow
)

func (c ErrCode) String() string {
	switch c {
	case ErrBadMessage:
		return "bad_message"
	case ErrOverflow:
		return "overflow"
	default:
		return "unknown"
	}
}

const errorPayloadLen = 8

// Error is a decoded MsgError reply. It implements error so clients can
// return it as is.
type Error struct {
	Code ErrCode
	// Ref is the request kind that failed.
	Ref Kind
	// RequestID echoes the failed request, 0 when it carried none.
	RequestID uint32
}

func (e Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Ref, e.Code)
}

// Payload encodes e as u16 code, u16 ref kind, u32 request ID.
func (e Error) Payload() []byte {
	buf := make([]byte, errorPayloadLen)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(e.Code))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(e.Ref))
	binary.LittleEndian.PutUint32(buf[4:8], e.RequestID)
	return buf
}

// ErrorPayload is shorthand for Error{code, ref, requestID}.Payload().
func ErrorPayload(code ErrCode, ref Kind, requestID uint32) []byte {
	return Error{Code: code, Ref: ref, RequestID: requestID}.Payload()
}

// DecodeError decodes a MsgError payload.
func DecodeError(b []byte) (Error, bool) {
	if len(b) != errorPayloadLen {
		return Error{}, false
	}
	return Error{
		Code:      ErrCode(binary.LittleEndian.Uint16(b[0:2])),
		Ref:       Kind(binary.LittleEndian.Uint16(b[2:4])),
		RequestID: binary.LittleEndian.Uint32(b[4:8]),
	}, true
}
