package render

import (
	"fmt"

	"github.com/keilerkonzept/sortvis/internal/event"
)

// Pixel is a 0xAARRGGBB color value.
type Pixel uint32

// RGB returns the color as a "#rrggbb" string.
func (p Pixel) RGB() string {
	return fmt.Sprintf("#%06x", uint32(p)&0xFFFFFF)
}

// Palette assigns a pixel value to every color class and to the background.
type Palette struct {
	Background Pixel
	Idle       Pixel
	Read       Pixel
	Write      Pixel
	DoneOk     Pixel
	DoneError  Pixel
}

// DefaultPalette is a dark background with green bars.
var DefaultPalette = Palette{
	Background: 0xFF111111,
	Idle:       0xFF00AA22,
	Read:       0xFF00AAAA,
	Write:      0xFFAA0055,
	DoneOk:     0xFF2266FF,
	DoneError:  0xFFFF2200,
}

// Pixel returns the pixel value for a color class.
func (p Palette) Pixel(c event.Color) Pixel {
	switch c {
	case event.Read:
		return p.Read
	case event.Write:
		return p.Write
	case event.DoneOk:
		return p.DoneOk
	case event.DoneError:
		return p.DoneError
	default:
		return p.Idle
	}
}
