package ui

import (
	"image/color"

	"fredsistance/hal"

	"tinygo.org/x/drivers"
)

var _ drivers.Displayer = (*Displayer)(nil)

// Displayer adapts an RGB565 framebuffer to drivers.Displayer so tinyfont can
// draw into it. Pixels outside the clip rect are dropped.
type Displayer struct {
	fb   hal.Framebuffer
	clip Rect
}

// NewDisplayer returns a Displayer clipped to clip and the framebuffer bounds.
func NewDisplayer(fb hal.Framebuffer, clip Rect) *Displayer {
	d := &Displayer{fb: fb}
	if fb != nil {
		d.clip = clip.Intersect(Rect{W: fb.Width(), H: fb.Height()})
	}
	return d
}

func (d *Displayer) Size() (x, y int16) {
	if d.fb == nil {
		return 0, 0
	}
	return int16(d.fb.Width()), int16(d.fb.Height())
}

// SetPixel writes c at (x, y). Fully transparent colours are skipped.
func (d *Displayer) SetPixel(x, y int16, c color.RGBA) {
	if c.A == 0 {
		return
	}
	d.set(int(x), int(y), hal.RGB565(c.R, c.G, c.B))
}

func (d *Displayer) Display() error { return nil }

// FillRect paints r, clipped, with a packed RGB565 pixel.
func (d *Displayer) FillRect(r Rect, pixel uint16) {
	r = r.Intersect(d.clip)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			d.set(x, y, pixel)
		}
	}
}

func (d *Displayer) set(x, y int, pixel uint16) {
	if d.fb == nil || d.fb.Format() != hal.PixelFormatRGB565 {
		return
	}
	if !d.clip.Contains(x, y) {
		return
	}
	buf := d.fb.Buffer()
	off := y*d.fb.StrideBytes() + x*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}
