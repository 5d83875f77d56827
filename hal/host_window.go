//go:build !tinygo && cgo

package hal

import (
	"fredsistance/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunWindow shows the framebuffer in a desktop window, zoomed by
// HostConfig.Scale. It blocks until the window closes.
func RunWindow(cfg HostConfig, newApp AppFactory) error {
	h := newHost(cfg)
	step, stop := newApp(h)
	if stop != nil {
		defer stop()
	}

	g := &hostGame{
		runner: hostRunner{h: h, step: step},
		pix:    make([]byte, h.fb.width*h.fb.height*4),
	}
	ebiten.SetWindowTitle("Fredsistance (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.fb.width*h.scale, h.fb.height*h.scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	runner hostRunner
	pix    []byte
	img    *ebiten.Image
	seen   uint64
}

func (g *hostGame) Update() error {
	return g.runner.frame()
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.runner.h.fb
	if g.img == nil {
		g.img = ebiten.NewImage(fb.width, fb.height)
	}
	// The face redraws once a minute; upload only new frames.
	if n := fb.copyShown(g.pix); n != g.seen {
		g.img.WritePixels(g.pix)
		g.seen = n
	}
	screen.DrawImage(g.img, nil)
}

func (g *hostGame) Layout(int, int) (int, int) {
	fb := g.runner.h.fb
	return fb.width, fb.height
}
