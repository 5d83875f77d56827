package watchface

import (
	"fmt"
	"image/color"

	"fredsistance/hal"
	"fredsistance/sparkos/proto"
	"fredsistance/sparkos/timefmt"
	"fredsistance/sparkos/ui"

	"tinygo.org/x/tinyfont"
)

// Handler receives the watch face lifecycle. All calls come from one
// goroutine.
type Handler interface {
	OnShow(w *ui.Window) error
	OnHide(w *ui.Window)
	OnTick(changed proto.TimeUnits) error
}

var _ Handler = (*Face)(nil)

// Layout is expressed for a 144x168 panel and scaled to the real screen.
const (
	refHeight = 168

	timeTop    = 5
	timeHeight = 35
	dateBottom = 35
	dateHeight = 25
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Config customises a Face.
type Config struct {
	// Formatter renders the lines. The zero value renders English.
	Formatter timefmt.Formatter
	Resources Resources
}

// Face is the digital watch face: a background image with the time at the
// top and the date at the bottom.
type Face struct {
	clock    hal.Clock
	settings hal.Settings
	format   timefmt.Formatter
	res      Resources

	win       *ui.Window
	bg        *ui.Bitmap
	bgLayer   *ui.BitmapLayer
	timeLayer *ui.TextLayer
	dateLayer *ui.TextLayer
}

// NewFace returns a face reading the wall clock from clock and the 24-hour
// preference from settings. settings may be nil.
func NewFace(clock hal.Clock, settings hal.Settings, cfg Config) *Face {
	f := cfg.Formatter
	if f.Locale.Name == "" {
		f = timefmt.Default
	}
	return &Face{
		clock:    clock,
		settings: settings,
		format:   f,
		res:      cfg.Resources.withDefaults(),
	}
}

// Shown reports whether the face currently owns a window.
func (f *Face) Shown() bool { return f.win != nil }

// TimeText and DateText return what the text layers currently hold.
func (f *Face) TimeText() string {
	if f.timeLayer == nil {
		return ""
	}
	return f.timeLayer.Text()
}

func (f *Face) DateText() string {
	if f.dateLayer == nil {
		return ""
	}
	return f.dateLayer.Text()
}

// OnShow builds the layers on w and draws the current time right away.
func (f *Face) OnShow(w *ui.Window) error {
	if f.win != nil {
		f.OnHide(f.win)
	}

	bg, err := ui.DecodeBitmap(f.res.Background)
	if err != nil {
		return fmt.Errorf("watchface show: %w", err)
	}

	bounds := w.Bounds()
	if bounds.Empty() {
		bg.Destroy()
		return fmt.Errorf("watchface show: %w", ui.ErrNoFramebuffer)
	}

	f.win = w
	f.bg = bg
	f.bgLayer = ui.NewBitmapLayer(bounds)
	f.bgLayer.SetBitmap(bg)

	f.timeLayer = newLabel(ui.Rect{
		Y: scale(timeTop, bounds.H),
		W: bounds.W,
		H: scale(timeHeight, bounds.H),
	}, f.res.TimeFont)

	f.dateLayer = newLabel(ui.Rect{
		Y: bounds.H - scale(dateBottom, bounds.H),
		W: bounds.W,
		H: scale(dateHeight, bounds.H),
	}, f.res.DateFont)

	w.AddChild(f.bgLayer)
	w.AddChild(f.timeLayer)
	w.AddChild(f.dateLayer)

	return f.refresh()
}

// OnHide removes the layers from w and frees the background.
func (f *Face) OnHide(w *ui.Window) {
	if w != nil {
		for _, l := range []ui.Layer{f.dateLayer, f.timeLayer, f.bgLayer} {
			if l != nil {
				w.RemoveChild(l)
			}
		}
	}
	f.bg.Destroy()

	f.win = nil
	f.bg = nil
	f.bgLayer = nil
	f.timeLayer = nil
	f.dateLayer = nil
}

// OnTick redraws both lines from the clock and the current preference.
// Ticks while hidden are ignored.
func (f *Face) OnTick(proto.TimeUnits) error {
	if f.win == nil {
		return nil
	}
	return f.refresh()
}

func (f *Face) refresh() error {
	style := timefmt.TwelveHour
	if f.settings != nil {
		style = timefmt.StyleFromSetting(f.settings.Clock24h())
	}

	timeLine, dateLine := f.format.Format(f.clock.Now(), style)

	f.timeLayer.SetFont(fitFont(timeLine, f.timeLayer.Frame().W, f.res.TimeFont, f.res.TimeFontSmall))
	f.timeLayer.SetText(timeLine)
	f.dateLayer.SetFont(fitFont(dateLine, f.dateLayer.Frame().W, f.res.DateFont, f.res.DateFontSmall))
	f.dateLayer.SetText(dateLine)

	if err := f.win.RenderIfDirty(); err != nil {
		return fmt.Errorf("watchface render: %w", err)
	}
	return nil
}

func newLabel(frame ui.Rect, font tinyfont.Fonter) *ui.TextLayer {
	l := ui.NewTextLayer(frame)
	l.SetFont(font)
	l.SetTextColor(white)
	l.SetBackgroundColor(color.RGBA{})
	l.SetAlignment(ui.AlignCenter)
	return l
}

// fitFont returns the first font that draws s within width, or the last one.
func fitFont(s string, width int, fonts ...tinyfont.Fonter) tinyfont.Fonter {
	for _, f := range fonts {
		if _, w := tinyfont.LineWidth(f, s); int(w) <= width {
			return f
		}
	}
	return fonts[len(fonts)-1]
}

func scale(v, height int) int {
	return v * height / refHeight
}
