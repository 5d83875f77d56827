//go:build !tinygo

package hal

import "image"

// Snapshot returns the last presented frame of fb as an RGBA image. For
// framebuffers other than the host one the draw buffer is read directly.
func Snapshot(fb Framebuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width(), fb.Height()))
	if hf, ok := fb.(*hostFramebuffer); ok {
		hf.copyShown(img.Pix)
		return img
	}
	expandRGB565(img.Pix, fb.Buffer())
	return img
}

// expandRGB565 converts packed little-endian RGB565 pixels into opaque RGBA.
func expandRGB565(dst, src []byte) {
	n := min(len(src)/2, len(dst)/4)
	for i := 0; i < n; i++ {
		r, g, b := RGB888From565(uint16(src[2*i]) | uint16(src[2*i+1])<<8)
		px := dst[4*i : 4*i+4]
		px[0], px[1], px[2], px[3] = r, g, b, 0xFF
	}
}
