//go:build tinygo && baremetal

package hal

import "machine"

// uartLogger writes CRLF-terminated lines to a UART.
type uartLogger struct {
	uart *machine.UART
}

func newUARTLogger() *uartLogger {
	uart := machine.DefaultUART
	uart.Configure(machine.UARTConfig{BaudRate: 115200})
	return &uartLogger{uart: uart}
}

func (l *uartLogger) WriteLineString(s string) {
	for i := 0; i < len(s); i++ {
		l.uart.WriteByte(s[i])
	}
	l.uart.Write([]byte{'\r', '\n'})
}

func (l *uartLogger) WriteLineBytes(b []byte) {
	l.uart.Write(b)
	l.uart.Write([]byte{'\r', '\n'})
}

// pinLED drives an output pin. High means on, whatever the wiring.
type pinLED struct {
	pin       machine.Pin
	activeLow bool
}

func newPinLED(pin machine.Pin, activeLow bool) *pinLED {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	l := &pinLED{pin: pin, activeLow: activeLow}
	l.Low()
	return l
}

func (l *pinLED) High() { l.pin.Set(!l.activeLow) }
func (l *pinLED) Low()  { l.pin.Set(l.activeLow) }
