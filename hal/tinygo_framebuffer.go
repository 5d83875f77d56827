//go:build tinygo

package hal

type boardDisplay struct {
	fb Framebuffer
}

func (d boardDisplay) Framebuffer() Framebuffer { return d.fb }

// headlessFramebuffer keeps pixels in RAM and has nowhere to show them.
// Frames counts Present calls.
type headlessFramebuffer struct {
	w, h   int
	buf    []byte
	frames int
}

func (f *headlessFramebuffer) Width() int          { return f.w }
func (f *headlessFramebuffer) Height() int         { return f.h }
func (f *headlessFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *headlessFramebuffer) StrideBytes() int    { return f.w * 2 }

func (f *headlessFramebuffer) Buffer() []byte {
	if f.buf == nil {
		f.buf = make([]byte, f.w*f.h*2)
	}
	return f.buf
}

func (f *headlessFramebuffer) ClearRGB(r, g, b uint8) {
	fillRGB565(f.Buffer(), RGB565(r, g, b))
}

func (f *headlessFramebuffer) Present() error {
	f.frames++
	return nil
}
