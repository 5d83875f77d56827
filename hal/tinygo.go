//go:build tinygo && baremetal && !pinetime

package hal

import "machine"

type tinyGoHAL struct {
	logger   *uartLogger
	led      *pinLED
	fb       Framebuffer
	t        *boardTime
	clock    boardClock
	settings *SettingsStore
}

// New returns a generic board HAL: UART logger at 115200 8N1, the board LED
// and a panel-less framebuffer so the OS still boots and logs.
func New() HAL {
	return &tinyGoHAL{
		logger:   newUARTLogger(),
		led:      newPinLED(machine.LED, false),
		fb:       &headlessFramebuffer{w: DefaultWidth, h: DefaultHeight},
		t:        newBoardTime(),
		clock:    newBoardClock(),
		settings: newBoardSettings(),
	}
}

func (h *tinyGoHAL) Logger() Logger     { return h.logger }
func (h *tinyGoHAL) LED() LED           { return h.led }
func (h *tinyGoHAL) Display() Display   { return boardDisplay{fb: h.fb} }
func (h *tinyGoHAL) Time() Time         { return h.t }
func (h *tinyGoHAL) Clock() Clock       { return h.clock }
func (h *tinyGoHAL) Settings() Settings { return h.settings }
