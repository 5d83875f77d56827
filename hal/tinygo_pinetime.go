//go:build tinygo && baremetal && pinetime

package hal

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/st7789"
)

const (
	pineTimeWidth  = 240
	pineTimeHeight = 240
)

type pineTimeHAL struct {
	logger   *uartLogger
	led      *pinLED
	fb       *pineTimeFramebuffer
	t        *boardTime
	clock    boardClock
	settings *SettingsStore
}

// New returns a PineTime HAL: ST7789 panel on SPI0, UART logger on the
// debug pads and the vibration motor (P0.16) exposed as LED.
func New() HAL {
	return &pineTimeHAL{
		logger:   newUARTLogger(),
		led:      newPinLED(machine.P0_16, true),
		fb:       newPineTimeFramebuffer(),
		t:        newBoardTime(),
		clock:    newBoardClock(),
		settings: newBoardSettings(),
	}
}

func (h *pineTimeHAL) Logger() Logger     { return h.logger }
func (h *pineTimeHAL) LED() LED           { return h.led }
func (h *pineTimeHAL) Display() Display   { return boardDisplay{fb: h.fb} }
func (h *pineTimeHAL) Time() Time         { return h.t }
func (h *pineTimeHAL) Clock() Clock       { return h.clock }
func (h *pineTimeHAL) Settings() Settings { return h.settings }

type pineTimeFramebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte
	row    []byte

	lcd st7789.Device
}

func newPineTimeFramebuffer() *pineTimeFramebuffer {
	machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 8000000,
		SCK:       machine.LCD_SCK,
		SDO:       machine.LCD_SDI,
		Mode:      3,
	})
	lcd := st7789.New(machine.SPI0,
		machine.LCD_RESET,
		machine.LCD_RS,
		machine.LCD_CS,
		machine.LCD_BACKLIGHT_HIGH)
	lcd.Configure(st7789.Config{
		Width:      pineTimeWidth,
		Height:     pineTimeHeight,
		Rotation:   st7789.NO_ROTATION,
		RowOffset:  80,
		FrameRate:  st7789.FRAMERATE_111,
		VSyncLines: st7789.MAX_VSYNC_SCANLINES,
	})

	const stride = pineTimeWidth * 2
	return &pineTimeFramebuffer{
		w:      pineTimeWidth,
		h:      pineTimeHeight,
		stride: stride,
		buf:    make([]byte, stride*pineTimeHeight),
		row:    make([]byte, stride),
		lcd:    lcd,
	}
}

func (f *pineTimeFramebuffer) Width() int          { return f.w }
func (f *pineTimeFramebuffer) Height() int         { return f.h }
func (f *pineTimeFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *pineTimeFramebuffer) StrideBytes() int    { return f.stride }
func (f *pineTimeFramebuffer) Buffer() []byte      { return f.buf }

func (f *pineTimeFramebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.buf, RGB565(r, g, b))
}

// Present pushes the buffer one row at a time.
func (f *pineTimeFramebuffer) Present() error {
	if len(f.buf) < f.stride*f.h {
		return errors.New("pinetime: invalid framebuffer")
	}
	for y := 0; y < f.h; y++ {
		src := f.buf[y*f.stride : (y+1)*f.stride]
		for i := 0; i+1 < len(src); i += 2 {
			// The OS stores RGB565 in little-endian. The panel expects big-endian.
			f.row[i] = src[i+1]
			f.row[i+1] = src[i]
		}
		if err := f.lcd.DrawRGBBitmap8(0, int16(y), f.row, int16(f.w), 1); err != nil {
			return err
		}
	}
	return nil
}
