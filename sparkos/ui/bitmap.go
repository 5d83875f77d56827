package ui

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"fredsistance/hal"
)

var ErrBitmapDestroyed = errors.New("ui: bitmap destroyed")

// Bitmap is an RGB565 image held in memory.
type Bitmap struct {
	w, h int
	pix  []uint16
}

// DecodeBitmap decodes a PNG resource into an RGB565 bitmap.
func DecodeBitmap(data []byte) (*Bitmap, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ui: decode bitmap: %w", err)
	}
	return BitmapFromImage(img), nil
}

// BitmapFromImage converts img, dropping alpha.
func BitmapFromImage(img image.Image) *Bitmap {
	b := img.Bounds()
	bm := &Bitmap{w: b.Dx(), h: b.Dy(), pix: make([]uint16, b.Dx()*b.Dy())}
	for y := 0; y < bm.h; y++ {
		for x := 0; x < bm.w; x++ {
			c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			bm.pix[y*bm.w+x] = hal.RGB565(c.R, c.G, c.B)
		}
	}
	return bm
}

func (b *Bitmap) Size() (w, h int) {
	if b == nil {
		return 0, 0
	}
	return b.w, b.h
}

// At returns the packed pixel at (x, y), or 0 outside the bitmap.
func (b *Bitmap) At(x, y int) uint16 {
	if b == nil || x < 0 || y < 0 || x >= b.w || y >= b.h || b.pix == nil {
		return 0
	}
	return b.pix[y*b.w+x]
}

// Destroy releases the pixel memory. A destroyed bitmap draws nothing.
func (b *Bitmap) Destroy() {
	if b == nil {
		return
	}
	b.pix = nil
	b.w, b.h = 0, 0
}

func (b *Bitmap) Destroyed() bool { return b == nil || b.pix == nil }

// BitmapLayer stretches a bitmap over its frame.
type BitmapLayer struct {
	layer
	bm *Bitmap
}

func NewBitmapLayer(frame Rect) *BitmapLayer {
	return &BitmapLayer{layer: layer{frame: frame}}
}

func (l *BitmapLayer) Bitmap() *Bitmap { return l.bm }

func (l *BitmapLayer) SetBitmap(bm *Bitmap) {
	l.bm = bm
	l.markDirty()
}

// Draw scales the bitmap to the frame with nearest-neighbour sampling.
func (l *BitmapLayer) Draw(fb hal.Framebuffer) {
	if l.bm.Destroyed() || l.frame.Empty() {
		return
	}
	d := NewDisplayer(fb, l.frame)
	fr := l.frame
	srcW, srcH := l.bm.Size()
	for y := 0; y < fr.H; y++ {
		sy := int(int64(y) * int64(srcH) / int64(fr.H))
		for x := 0; x < fr.W; x++ {
			sx := int(int64(x) * int64(srcW) / int64(fr.W))
			d.set(fr.X+x, fr.Y+y, l.bm.At(sx, sy))
		}
	}
}
