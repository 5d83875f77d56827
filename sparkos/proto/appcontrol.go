package proto

// MsgAppControl payload: one byte, 1 shows the app's window and 0 hides it.
const (
	appHide byte = 0
	appShow byte = 1
)

func AppControlPayload(show bool) []byte {
	if show {
		return []byte{appShow}
	}
	return []byte{appHide}
}

// DecodeAppControlPayload rejects anything but a single 0 or 1 byte.
func DecodeAppControlPayload(b []byte) (show bool, ok bool) {
	if len(b) != 1 {
		return false, false
	}
	switch b[0] {
	case appShow:
		return true, true
	case appHide:
		return false, true
	}
	return false, false
}
