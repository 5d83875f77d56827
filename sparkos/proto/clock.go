package proto

import "encoding/binary"

// TimeUnits is a bitmask of calendar fields.
type TimeUnits uint8

const (
	UnitSecond TimeUnits = 1 << iota
	UnitMinute
	UnitHour
	UnitDay
	UnitMonth
	UnitYear
)

// UnitsFrom returns the mask of unit and every coarser unit.
//
// Subscribing to minutes means also hearing about hour and day rollovers.
func UnitsFrom(unit TimeUnits) TimeUnits {
	if unit == 0 {
		return 0
	}
	var m TimeUnits
	for u := unit; u != 0 && u <= UnitYear; u <<= 1 {
		m |= u
	}
	return m
}

func (u TimeUnits) String() string {
	if u == 0 {
		return "none"
	}
	names := [...]string{"second", "minute", "hour", "day", "month", "year"}
	var b []byte
	for i, name := range names {
		if u&(1<<i) == 0 {
			continue
		}
		if len(b) > 0 {
			b = append(b, '|')
		}
		b = append(b, name...)
	}
	return string(b)
}

// ClockSubscribePayload encodes a MsgClockSubscribe request payload.
//
// Layout:
//   - u8: units mask the subscriber wants to hear about
//
// The tick destination capability must be transferred in Message.Cap.
func ClockSubscribePayload(units TimeUnits) []byte {
	return []byte{byte(units)}
}

// DecodeClockSubscribePayload decodes a ClockSubscribePayload.
func DecodeClockSubscribePayload(b []byte) (units TimeUnits, ok bool) {
	if len(b) != 1 || b[0] == 0 {
		return 0, false
	}
	return TimeUnits(b[0]), true
}

// ClockTickPayload encodes a MsgClockTick payload.
//
// Layout (little-endian):
//   - i64: wall clock, unix seconds
//   - u8:  units changed since the previous tick
func ClockTickPayload(unix int64, changed TimeUnits) []byte {
	buf := make([]byte, 9)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(unix))
	buf[8] = byte(changed)
	return buf
}

// DecodeClockTickPayload decodes a ClockTickPayload.
func DecodeClockTickPayload(b []byte) (unix int64, changed TimeUnits, ok bool) {
	if len(b) != 9 {
		return 0, 0, false
	}
	return int64(binary.LittleEndian.Uint64(b[0:8])), TimeUnits(b[8]), true
}
