package ui

import (
	"image/color"

	"fredsistance/hal"

	"tinygo.org/x/tinyfont"
)

// TextLayer draws one line of text inside its frame.
//
// The text is copied on SetText; callers may reuse their buffers.
type TextLayer struct {
	layer
	text  string
	font  tinyfont.Fonter
	fg    color.RGBA
	bg    color.RGBA
	align Alignment
}

// NewTextLayer returns a left-aligned layer drawing black text on a white
// background.
func NewTextLayer(frame Rect) *TextLayer {
	return &TextLayer{
		layer: layer{frame: frame},
		fg:    color.RGBA{A: 255},
		bg:    color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

func (t *TextLayer) Text() string { return t.text }

// SetText replaces the text. Setting the same text leaves the window clean.
func (t *TextLayer) SetText(s string) {
	if s == t.text {
		return
	}
	t.text = s
	t.markDirty()
}

func (t *TextLayer) SetFont(f tinyfont.Fonter) {
	if f == t.font {
		return
	}
	t.font = f
	t.markDirty()
}

func (t *TextLayer) SetTextColor(c color.RGBA) {
	t.fg = c
	t.markDirty()
}

// SetBackgroundColor sets the fill behind the text. A zero alpha leaves the
// layers below visible.
func (t *TextLayer) SetBackgroundColor(c color.RGBA) {
	t.bg = c
	t.markDirty()
}

func (t *TextLayer) SetAlignment(a Alignment) {
	t.align = a
	t.markDirty()
}

func (t *TextLayer) Draw(fb hal.Framebuffer) {
	d := NewDisplayer(fb, t.frame)
	if t.bg.A != 0 {
		d.FillRect(t.frame, hal.RGB565(t.bg.R, t.bg.G, t.bg.B))
	}
	if t.text == "" || t.font == nil {
		return
	}
	x, baseline := t.origin()
	tinyfont.WriteLine(d, t.font, int16(x), int16(baseline), t.text, t.fg)
}

// origin returns the pen position for the first glyph: the aligned left edge
// and a baseline that puts the tallest glyph of the text at the frame top.
func (t *TextLayer) origin() (x, baseline int) {
	_, outbox := tinyfont.LineWidth(t.font, t.text)
	w := int(outbox)

	x = t.frame.X
	switch t.align {
	case AlignCenter:
		x += (t.frame.W - w) / 2
	case AlignRight:
		x += t.frame.W - w
	}
	return x, t.frame.Y + Ascent(t.font, t.text)
}

// Ascent is the height above the baseline of the tallest glyph in s.
func Ascent(f tinyfont.Fonter, s string) int {
	a := 0
	for _, r := range s {
		g := f.GetGlyph(r)
		if g == nil {
			continue
		}
		if up := -int(g.Info().YOffset); up > a {
			a = up
		}
	}
	return a
}
