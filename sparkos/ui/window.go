package ui

import (
	"errors"
	"image/color"
	"slices"

	"fredsistance/hal"
)

var (
	ErrNoFramebuffer     = errors.New("ui: no framebuffer")
	ErrUnsupportedFormat = errors.New("ui: unsupported framebuffer format")
)

// Layer is a drawable element of a Window.
type Layer interface {
	Frame() Rect
	Draw(fb hal.Framebuffer)
	attach(w *Window)
}

// layer carries the state shared by every layer kind.
type layer struct {
	frame Rect
	win   *Window
}

func (l *layer) Frame() Rect { return l.frame }

func (l *layer) attach(w *Window) { l.win = w }

func (l *layer) markDirty() {
	if l.win != nil {
		l.win.MarkDirty()
	}
}

// Window is a full-screen stack of layers.
type Window struct {
	fb       hal.Framebuffer
	bg       color.RGBA
	children []Layer
	dirty    bool
}

func NewWindow(fb hal.Framebuffer) *Window {
	return &Window{
		fb:    fb,
		bg:    color.RGBA{A: 255},
		dirty: true,
	}
}

// Bounds is the full screen rect.
func (w *Window) Bounds() Rect {
	if w.fb == nil {
		return Rect{}
	}
	return Rect{W: w.fb.Width(), H: w.fb.Height()}
}

func (w *Window) SetBackgroundColor(c color.RGBA) {
	w.bg = c
	w.dirty = true
}

// AddChild appends l on top of the existing layers. Adding a layer twice is a
// no-op.
func (w *Window) AddChild(l Layer) {
	if l == nil || slices.Contains(w.children, l) {
		return
	}
	w.children = append(w.children, l)
	l.attach(w)
	w.dirty = true
}

// RemoveChild detaches l and reports whether it was present.
func (w *Window) RemoveChild(l Layer) bool {
	i := slices.Index(w.children, l)
	if i < 0 {
		return false
	}
	w.children = slices.Delete(w.children, i, i+1)
	l.attach(nil)
	w.dirty = true
	return true
}

// Layers returns the layers bottom to top.
func (w *Window) Layers() []Layer {
	return slices.Clone(w.children)
}

func (w *Window) MarkDirty() { w.dirty = true }

func (w *Window) Dirty() bool { return w.dirty }

// Render redraws the whole window and presents it.
func (w *Window) Render() error {
	if w.fb == nil {
		return ErrNoFramebuffer
	}
	if w.fb.Format() != hal.PixelFormatRGB565 {
		return ErrUnsupportedFormat
	}
	w.fb.ClearRGB(w.bg.R, w.bg.G, w.bg.B)
	for _, l := range w.children {
		l.Draw(w.fb)
	}
	w.dirty = false
	return w.fb.Present()
}

// RenderIfDirty renders only when something changed since the last frame.
func (w *Window) RenderIfDirty() error {
	if !w.dirty {
		return nil
	}
	return w.Render()
}
