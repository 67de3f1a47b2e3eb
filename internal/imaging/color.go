package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
//
// HSL makes it easy to see why a tile sample landed in a bucket: gray tiles
// have low saturation and high lightness, blue and red tiles differ in hue.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
type ColorResult struct {
	Hex string   `json:"hex"` // Hex format "#RRGGBB" (no alpha)
	RGB RGBColor `json:"rgb"` // RGB components
	HSL HSLColor `json:"hsl"` // HSL representation
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns:
//   - *ColorResult: The color at (x, y) in multiple formats.
//   - error: Non-nil if coordinates are outside the image bounds.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	if !image.Pt(x, y).In(img.Bounds()) {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	r, g, b, _ := img.At(x, y).RGBA()
	// Convert from 16-bit to 8-bit
	r8, g8, b8 := uint8(r>>8), uint8(g>>8), uint8(b>>8)

	return &ColorResult{
		Hex: fmt.Sprintf("#%02X%02X%02X", r8, g8, b8),
		RGB: RGBColor{R: r8, G: g8, B: b8},
		HSL: toHSL(r8, g8, b8),
	}, nil
}

// toHSL converts 8-bit RGB values to integer HSL.
func toHSL(r, g, b uint8) HSLColor {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	h, s, l := c.Hsl()
	if math.IsNaN(h) {
		h = 0
	}
	return HSLColor{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}
