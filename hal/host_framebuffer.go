//go:build !tinygo

package hal

import (
	"image"
	"sync"
)

// hostFramebuffer is drawn into by the kernel tasks and read by the window
// or Snapshot. Present converts the draw buffer into the shown RGBA frame,
// so readers never observe a half-drawn face.
type hostFramebuffer struct {
	width  int
	height int
	buf    []byte

	mu     sync.Mutex
	shown  *image.RGBA
	frames uint64
}

func newHostFramebuffer(width, height int) *hostFramebuffer {
	return &hostFramebuffer{
		width:  width,
		height: height,
		buf:    make([]byte, width*height*2),
		shown:  image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

func (f *hostFramebuffer) Width() int          { return f.width }
func (f *hostFramebuffer) Height() int         { return f.height }
func (f *hostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *hostFramebuffer) StrideBytes() int    { return f.width * 2 }
func (f *hostFramebuffer) Buffer() []byte      { return f.buf }

func (f *hostFramebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.buf, RGB565(r, g, b))
}

func (f *hostFramebuffer) Present() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	expandRGB565(f.shown.Pix, f.buf)
	f.frames++
	return nil
}

// copyShown copies the shown RGBA pixels into dst and returns the number of
// frames presented so far.
func (f *hostFramebuffer) copyShown(dst []byte) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	copy(dst, f.shown.Pix)
	return f.frames
}
