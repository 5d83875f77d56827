//go:build tinygo && !baremetal

package hal

type tinyGoHostHAL struct {
	logger   printLogger
	led      *printLED
	fb       *headlessFramebuffer
	t        *boardTime
	clock    boardClock
	settings *SettingsStore
}

// New returns the HAL for `tinygo run` on linux or wasm: no pins, no panel,
// log lines on the runtime's console.
func New() HAL {
	return &tinyGoHostHAL{
		led:      &printLED{},
		fb:       &headlessFramebuffer{w: DefaultWidth, h: DefaultHeight},
		t:        newBoardTime(),
		clock:    newBoardClock(),
		settings: newBoardSettings(),
	}
}

func (h *tinyGoHostHAL) Logger() Logger     { return h.logger }
func (h *tinyGoHostHAL) LED() LED           { return h.led }
func (h *tinyGoHostHAL) Display() Display   { return boardDisplay{fb: h.fb} }
func (h *tinyGoHostHAL) Time() Time         { return h.t }
func (h *tinyGoHostHAL) Clock() Clock       { return h.clock }
func (h *tinyGoHostHAL) Settings() Settings { return h.settings }

type printLogger struct{}

func (printLogger) WriteLineString(s string) { println(s) }
func (printLogger) WriteLineBytes(b []byte)  { println(string(b)) }

type printLED struct {
	on bool
}

func (l *printLED) High() {
	l.on = true
	println("led: on")
}

func (l *printLED) Low() {
	l.on = false
	println("led: off")
}
