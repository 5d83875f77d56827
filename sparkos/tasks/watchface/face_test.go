package watchface

import (
	"sync"
	"testing"
	"time"

	"fredsistance/hal"
	"fredsistance/sparkos/proto"
	"fredsistance/sparkos/timefmt"
	"fredsistance/sparkos/ui"
)

type memFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newMemFB(w, h int) *memFB {
	return &memFB{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *memFB) Width() int              { return f.w }
func (f *memFB) Height() int             { return f.h }
func (f *memFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFB) StrideBytes() int        { return f.w * 2 }
func (f *memFB) Buffer() []byte          { return f.buf }
func (f *memFB) Present() error          { f.presents++; return nil }

func (f *memFB) ClearRGB(r, g, b uint8) {
	p := hal.RGB565(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

func (f *memFB) at(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	reads int
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reads++
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

func (c *fakeClock) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}

// dispatcher drives a Handler the way the watch face task does.
type dispatcher struct {
	t   *testing.T
	h   Handler
	win *ui.Window
}

func newDispatcher(t *testing.T, h Handler, fb hal.Framebuffer) *dispatcher {
	return &dispatcher{t: t, h: h, win: ui.NewWindow(fb)}
}

func (d *dispatcher) show() {
	d.t.Helper()
	if err := d.h.OnShow(d.win); err != nil {
		d.t.Fatalf("OnShow() err = %v", err)
	}
}

func (d *dispatcher) tick() {
	d.t.Helper()
	if err := d.h.OnTick(proto.UnitMinute); err != nil {
		d.t.Fatalf("OnTick() err = %v", err)
	}
}

func (d *dispatcher) hide() { d.h.OnHide(d.win) }

func newTestFace(at time.Time, settings hal.Settings, cfg Config) (*Face, *fakeClock) {
	clk := &fakeClock{now: at}
	return NewFace(clk, settings, cfg), clk
}

func TestShowRendersImmediately(t *testing.T) {
	fb := newMemFB(144, 168)
	f, _ := newTestFace(time.Date(2024, time.March, 6, 0, 0, 0, 0, time.UTC), nil, Config{})
	d := newDispatcher(t, f, fb)
	d.show()

	if got := f.TimeText(); got != "12:00 AM" {
		t.Fatalf("TimeText() = %q, want %q", got, "12:00 AM")
	}
	if got := f.DateText(); got != "Wed, 03/06/24" {
		t.Fatalf("DateText() = %q, want %q", got, "Wed, 03/06/24")
	}
	if fb.presents != 1 {
		t.Fatalf("presents = %d, want 1", fb.presents)
	}

	layers := d.win.Layers()
	if len(layers) != 3 {
		t.Fatalf("len(Layers()) = %d, want 3", len(layers))
	}
	if _, ok := layers[0].(*ui.BitmapLayer); !ok {
		t.Fatalf("bottom layer = %T, want *ui.BitmapLayer", layers[0])
	}
	if got := layers[1].Frame(); got != (ui.Rect{Y: 5, W: 144, H: 35}) {
		t.Fatalf("time frame = %+v", got)
	}
	if got := layers[2].Frame(); got != (ui.Rect{Y: 133, W: 144, H: 25}) {
		t.Fatalf("date frame = %+v", got)
	}

	white := 0
	for y := 5; y < 40; y++ {
		for x := 0; x < 144; x++ {
			if fb.at(x, y) == 0xFFFF {
				white++
			}
		}
	}
	if white == 0 {
		t.Fatal("no time text pixels in the time frame")
	}
}

func TestLayoutScalesToScreen(t *testing.T) {
	fb := newMemFB(240, 240)
	f, _ := newTestFace(time.Date(2024, time.March, 6, 9, 30, 0, 0, time.UTC), nil, Config{})
	d := newDispatcher(t, f, fb)
	d.show()

	layers := d.win.Layers()
	if got := layers[1].Frame(); got != (ui.Rect{Y: 7, W: 240, H: 50}) {
		t.Fatalf("time frame = %+v", got)
	}
	if got := layers[2].Frame(); got != (ui.Rect{Y: 190, W: 240, H: 35}) {
		t.Fatalf("date frame = %+v", got)
	}
}

func TestTickReadsClockAndSettingsEveryTime(t *testing.T) {
	settings := hal.NewSettingsStore()
	f, clk := newTestFace(time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC), settings, Config{})
	d := newDispatcher(t, f, newMemFB(144, 168))
	d.show()

	if got := f.TimeText(); got != "11:59 PM" {
		t.Fatalf("TimeText() = %q, want %q", got, "11:59 PM")
	}
	if got := f.DateText(); got != "Tue, 12/31/24" {
		t.Fatalf("DateText() = %q, want %q", got, "Tue, 12/31/24")
	}

	clk.Set(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC))
	settings.SetClock24h(true)
	d.tick()
	if got := f.TimeText(); got != "00:00" {
		t.Fatalf("TimeText() after tick = %q, want %q", got, "00:00")
	}
	if got := f.DateText(); got != "Wed, 01/01/25" {
		t.Fatalf("DateText() after tick = %q, want %q", got, "Wed, 01/01/25")
	}

	clk.Set(time.Date(2025, time.January, 1, 13, 5, 0, 0, time.UTC))
	d.tick()
	if got := f.TimeText(); got != "13:05" {
		t.Fatalf("TimeText() = %q, want %q", got, "13:05")
	}

	settings.ResetClock24h()
	d.tick()
	if got := f.TimeText(); got != "01:05 PM" {
		t.Fatalf("TimeText() with unset preference = %q, want %q", got, "01:05 PM")
	}
}

func TestHideRemovesLayersAndStopsRefresh(t *testing.T) {
	fb := newMemFB(144, 168)
	f, clk := newTestFace(time.Date(2024, time.March, 6, 8, 0, 0, 0, time.UTC), nil, Config{})
	d := newDispatcher(t, f, fb)
	d.show()
	d.hide()

	if f.Shown() {
		t.Fatal("Shown() = true after hide")
	}
	if got := len(d.win.Layers()); got != 0 {
		t.Fatalf("len(Layers()) after hide = %d, want 0", got)
	}

	reads, presents := clk.Reads(), fb.presents
	d.tick()
	if clk.Reads() != reads || fb.presents != presents {
		t.Fatal("tick while hidden touched the clock or the screen")
	}

	d.show()
	if got := len(d.win.Layers()); got != 3 {
		t.Fatalf("len(Layers()) after re-show = %d, want 3", got)
	}
}

func TestLongWeekdayLocaleKeepsFullDate(t *testing.T) {
	cfg := Config{Formatter: timefmt.Formatter{Locale: timefmt.French}}
	f, _ := newTestFace(time.Date(2024, time.December, 31, 23, 59, 0, 0, time.UTC), nil, cfg)
	d := newDispatcher(t, f, newMemFB(144, 168))
	d.show()

	if got, want := f.DateText(), "mar., 12/31/24"; got != want {
		t.Fatalf("DateText() = %q, want %q", got, want)
	}
}

func TestBadBackgroundFailsShow(t *testing.T) {
	cfg := Config{Resources: Resources{Background: []byte("nope")}}
	f, _ := newTestFace(time.Date(2024, time.March, 6, 8, 0, 0, 0, time.UTC), nil, cfg)
	win := ui.NewWindow(newMemFB(144, 168))

	if err := f.OnShow(win); err == nil {
		t.Fatal("OnShow() err = nil, want decode error")
	}
	if f.Shown() || len(win.Layers()) != 0 {
		t.Fatal("failed show left layers behind")
	}
}

func TestInvalidClockPanics(t *testing.T) {
	f, _ := newTestFace(time.Time{}, nil, Config{})
	defer func() {
		if recover() == nil {
			t.Fatal("OnShow with zero clock did not panic")
		}
	}()
	_ = f.OnShow(ui.NewWindow(newMemFB(144, 168)))
}

func TestFitFont(t *testing.T) {
	res := DefaultResources()
	if got := fitFont("Wed, 03/06/24", 1000, res.DateFont, res.DateFontSmall); got != res.DateFont {
		t.Fatal("fitFont skipped a font that fits")
	}
	if got := fitFont("Wed, 03/06/24", 10, res.DateFont, res.DateFontSmall); got != res.DateFontSmall {
		t.Fatal("fitFont did not fall back to the last font")
	}
}

func TestLoadFont(t *testing.T) {
	for _, id := range []ResourceID{ResourceTimeFont, ResourceTimeFontSmall, ResourceDateFont, ResourceDateFontSmall} {
		if f, err := LoadFont(id); err != nil || f == nil {
			t.Fatalf("LoadFont(%d) = %v, %v", id, f, err)
		}
	}
	if _, err := LoadFont(ResourceBackground); err == nil {
		t.Fatal("LoadFont(ResourceBackground) err = nil")
	}
}

func TestTickPresentsOnlyWhenTextChanges(t *testing.T) {
	fb := newMemFB(144, 168)
	f, clk := newTestFace(time.Date(2024, time.March, 6, 8, 0, 0, 0, time.UTC), nil, Config{})
	d := newDispatcher(t, f, fb)
	d.show()

	reads := clk.Reads()
	d.tick()
	if clk.Reads() == reads {
		t.Fatal("tick did not read the clock")
	}
	if fb.presents != 1 {
		t.Fatalf("presents after same-minute tick = %d, want 1", fb.presents)
	}

	clk.Set(time.Date(2024, time.March, 6, 8, 1, 0, 0, time.UTC))
	d.tick()
	if fb.presents != 2 {
		t.Fatalf("presents after minute change = %d, want 2", fb.presents)
	}
	if got := f.TimeText(); got != "08:01 AM" {
		t.Fatalf("TimeText() = %q, want %q", got, "08:01 AM")
	}
}
