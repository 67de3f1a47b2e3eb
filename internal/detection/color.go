package detection

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnrecognizedColor is returned when a sample matches none of the tile colors.
var ErrUnrecognizedColor = errors.New("color not recognized")

// grayFloor is the per-channel level every channel must exceed for a sample
// to count as a gray (empty) tile.
const grayFloor = 200

// BGR is an 8-bit color sample in blue, green, red order.
type BGR struct {
	B uint8 `json:"b"`
	G uint8 `json:"g"`
	R uint8 `json:"r"`
}

// String renders the sample as (b,g,r).
func (s BGR) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s.B, s.G, s.R)
}

// SampleBGR reads the pixel at (x, y) as an 8-bit BGR triple.
// The caller must ensure the point lies inside img.Bounds().
func SampleBGR(img image.Image, x, y int) BGR {
	r, g, b, _ := img.At(x, y).RGBA()
	return BGR{B: uint8(b >> 8), G: uint8(g >> 8), R: uint8(r >> 8)}
}

// ColorLabel is the closed set of tile colors. The numeric values are the
// codes written to the result file.
type ColorLabel int

const (
	Gray ColorLabel = -1
	Blue ColorLabel = 0
	Red  ColorLabel = 1
)

// Code returns the integer written to result files for the label.
func (c ColorLabel) Code() int {
	return int(c)
}

func (c ColorLabel) String() string {
	switch c {
	case Gray:
		return "gray"
	case Blue:
		return "blue"
	case Red:
		return "red"
	default:
		return fmt.Sprintf("ColorLabel(%d)", int(c))
	}
}

// Valid reports whether c is one of Gray, Blue or Red.
func (c ColorLabel) Valid() bool {
	return c == Gray || c == Blue || c == Red
}

// ParseCode converts a result-file code back into a label.
func ParseCode(code int) (ColorLabel, error) {
	c := ColorLabel(code)
	if !c.Valid() {
		return 0, fmt.Errorf("invalid color code %d", code)
	}
	return c, nil
}

// Palette colors as they appear in the reference game screenshots.
var (
	graySwatch = colorful.Color{R: 0.85, G: 0.85, B: 0.85}
	blueSwatch = colorful.Color{R: 0x68 / 255.0, G: 0x9B / 255.0, B: 0xD1 / 255.0} // #689BD1
	redSwatch  = colorful.Color{R: 0xE8 / 255.0, G: 0x9E / 255.0, B: 0x5D / 255.0} // #E89E5D
)

// Swatch returns the display color used when rendering the label.
func (c ColorLabel) Swatch() color.Color {
	switch c {
	case Blue:
		return blueSwatch
	case Red:
		return redSwatch
	default:
		return graySwatch
	}
}

// Classify maps a sample to a tile color.
//
// Rules are evaluated in order:
//  1. every channel above 200 -> Gray
//  2. blue strictly greater than red and green -> Blue
//  3. red strictly greater than blue and green -> Red
//
// Anything else (green-dominant or tied samples) is ErrUnrecognizedColor.
func Classify(s BGR) (ColorLabel, error) {
	if s.B > grayFloor && s.G > grayFloor && s.R > grayFloor {
		return Gray, nil
	}
	if s.B > s.R && s.B > s.G {
		return Blue, nil
	}
	if s.R > s.B && s.R > s.G {
		return Red, nil
	}
	return 0, fmt.Errorf("%w: bgr%s", ErrUnrecognizedColor, s)
}
