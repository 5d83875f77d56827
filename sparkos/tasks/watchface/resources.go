package watchface

import (
	_ "embed"
	"fmt"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

// ResourceID names a bundled asset.
type ResourceID uint8

const (
	ResourceBackground ResourceID = iota + 1
	ResourceTimeFont
	ResourceTimeFontSmall
	ResourceDateFont
	ResourceDateFontSmall
)

//go:embed bg.png
var backgroundPNG []byte

// Resources is the asset set a Face draws with.
type Resources struct {
	Background []byte // PNG

	// Each line is drawn in the large font when it fits the screen width and
	// in the small one otherwise.
	TimeFont      tinyfont.Fonter
	TimeFontSmall tinyfont.Fonter
	DateFont      tinyfont.Fonter
	DateFontSmall tinyfont.Fonter
}

// DefaultResources returns the bundled background and fonts.
func DefaultResources() Resources {
	return Resources{
		Background:    backgroundPNG,
		TimeFont:      mustFont(ResourceTimeFont),
		TimeFontSmall: mustFont(ResourceTimeFontSmall),
		DateFont:      mustFont(ResourceDateFont),
		DateFontSmall: mustFont(ResourceDateFontSmall),
	}
}

// LoadFont resolves a font resource.
func LoadFont(id ResourceID) (tinyfont.Fonter, error) {
	switch id {
	case ResourceTimeFont:
		return &freesans.Bold18pt7b, nil
	case ResourceTimeFontSmall:
		return &freesans.Bold12pt7b, nil
	case ResourceDateFont:
		return &freesans.Regular12pt7b, nil
	case ResourceDateFontSmall:
		return &freesans.Regular9pt7b, nil
	}
	return nil, fmt.Errorf("watchface: resource %d is not a font", id)
}

func mustFont(id ResourceID) tinyfont.Fonter {
	f, err := LoadFont(id)
	if err != nil {
		panic(err)
	}
	return f
}

// withDefaults fills unset fields from the bundled resources.
func (r Resources) withDefaults() Resources {
	def := DefaultResources()
	if len(r.Background) == 0 {
		r.Background = def.Background
	}
	if r.TimeFont == nil {
		r.TimeFont = def.TimeFont
	}
	if r.TimeFontSmall == nil {
		r.TimeFontSmall = def.TimeFontSmall
	}
	if r.DateFont == nil {
		r.DateFont = def.DateFont
	}
	if r.DateFontSmall == nil {
		r.DateFontSmall = def.DateFontSmall
	}
	return r
}
