//go:build tinygo && bootdebug

package app

import (
	"image/color"
	"sync/atomic"
	"time"

	"fredsistance/hal"
	"fredsistance/sparkos/ui"

	"tinygo.org/x/tinyfont"
)

// Built with -tags bootdebug, boot progress is reported three ways so a hang
// can be located on any board: the stage is drawn on the panel, repeated on
// the logger, and the LED blinks once per stage reached.

var bootStage atomic.Pointer[string]

var bootStages atomic.Int32

func bootDiagStart(h hal.HAL) {
	if h == nil || h.Logger() == nil {
		return
	}
	log, led := h.Logger(), h.LED()
	go func() {
		for {
			stage := "<none>"
			if p := bootStage.Load(); p != nil {
				stage = *p
			}
			log.WriteLineString("bootdebug: " + stage)
			if led != nil {
				for i := int32(0); i < bootStages.Load(); i++ {
					led.High()
					time.Sleep(60 * time.Millisecond)
					led.Low()
					time.Sleep(60 * time.Millisecond)
				}
			}
			time.Sleep(500 * time.Millisecond)
		}
	}()
}

func bootScreen(h hal.HAL, stage string) {
	bootStage.Store(&stage)
	n := bootStages.Add(1)
	if h == nil || h.Display() == nil {
		return
	}
	fb := h.Display().Framebuffer()
	if fb == nil {
		return
	}

	fb.ClearRGB(0, 0, 0x40)
	d := ui.NewDisplayer(fb, ui.Rect{W: fb.Width(), H: fb.Height()})
	lineH := int16(panicFont.GetYAdvance())
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	tinyfont.WriteLine(d, panicFont, 2, lineH, "fredsistance", white)
	tinyfont.WriteLine(d, panicFont, 2, 3*lineH, string(rune('0'+n))+": "+stage, white)
	_ = fb.Present()
}
