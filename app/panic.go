package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"fredsistance/hal"
	"fredsistance/sparkos/kernel"
	"fredsistance/sparkos/ui"

	"tinygo.org/x/tinyfont"
)

var panicFont = &tinyfont.TomThumb

func installPanicHandler(h hal.HAL) {
	kernel.SetPanicHandler(func(info kernel.PanicInfo) {
		lines := panicLines(info)
		if l := h.Logger(); l != nil {
			for _, line := range lines {
				l.WriteLineString(line)
			}
		}

		disp := h.Display()
		if disp == nil {
			select {}
		}
		fb := disp.Framebuffer()
		if fb == nil {
			select {}
		}
		drawPanicScreen(fb, lines)
		select {}
	})
}

func panicLines(info kernel.PanicInfo) []string {
	lines := []string{
		"Panic:",
		fmt.Sprintf("task: %d", info.TaskID),
		fmt.Sprintf("panic: %v", info.Value),
	}
	if len(info.Stack) == 0 {
		return append(lines, "stack: unavailable")
	}
	lines = append(lines, "stack:")
	for _, line := range strings.Split(string(info.Stack), "\n") {
		if line == "" {
			continue
		}
		lines = append(lines, strings.TrimSpace(line))
	}
	return lines
}

// drawPanicScreen wraps lines to the screen width in a fixed-cell font and
// stops at the bottom edge.
func drawPanicScreen(fb hal.Framebuffer, lines []string) {
	fb.ClearRGB(0, 0, 0)

	_, outbox := tinyfont.LineWidth(panicFont, "0")
	cellW := int(outbox)
	cellH := int(panicFont.GetYAdvance())
	if cellW <= 0 || cellH <= 0 {
		_ = fb.Present()
		return
	}
	ascent := ui.Ascent(panicFont, "0Ag")

	d := ui.NewDisplayer(fb, ui.Rect{W: fb.Width(), H: fb.Height()})
	fg := color.RGBA{R: 255, A: 255}
	cols := max(fb.Width()/cellW, 1)

	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+cellH > fb.Height() {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			x := 0
			for _, r := range chunk {
				tinyfont.DrawChar(d, panicFont, int16(x), int16(y+ascent), r, fg)
				x += cellW
			}
			y += cellH
			line = strings.TrimLeft(rest, " ")
		}
	}
	_ = fb.Present()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	i, count := 0, 0
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	return s[:i], s[i:]
}
