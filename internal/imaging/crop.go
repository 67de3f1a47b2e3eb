package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

var (
	// ErrOutOfBounds is returned when a crop rectangle extends past the image.
	ErrOutOfBounds = errors.New("crop region outside image bounds")

	// ErrInvalidRegion is returned when a crop rectangle has no area.
	ErrInvalidRegion = errors.New("invalid crop region")
)

// CropRegion extracts the pixels with topLeft.Y <= y < bottomRight.Y and
// topLeft.X <= x < bottomRight.X.
//
// The returned image is a copy whose origin is (0,0), so pixel (0,0) of the
// result is pixel topLeft of the source.
//
// Coordinates are checked rather than clipped: a rectangle reaching outside
// the image fails with ErrOutOfBounds, an empty one with ErrInvalidRegion.
func CropRegion(img image.Image, topLeft, bottomRight image.Point) (image.Image, error) {
	bounds := img.Bounds()
	rect := image.Rectangle{Min: topLeft, Max: bottomRight}

	if topLeft.X >= bottomRight.X || topLeft.Y >= bottomRight.Y {
		return nil, fmt.Errorf("%w: (%d,%d)-(%d,%d): x1 must be < x2, y1 must be < y2",
			ErrInvalidRegion, topLeft.X, topLeft.Y, bottomRight.X, bottomRight.Y)
	}
	if !rect.In(bounds) {
		return nil, fmt.Errorf("%w: (%d,%d)-(%d,%d) vs (%d,%d)-(%d,%d)",
			ErrOutOfBounds, topLeft.X, topLeft.Y, bottomRight.X, bottomRight.Y,
			bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	return imaging.Crop(img, rect), nil
}

// CropResult contains the cropped image data
type CropResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Crop extracts a rectangular region and returns it as a base64 PNG, optionally scaled
func Crop(img image.Image, x1, y1, x2, y2 int, scale float64) (*CropResult, error) {
	cropped, err := CropRegion(img, image.Pt(x1, y1), image.Pt(x2, y2))
	if err != nil {
		return nil, err
	}

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	return EncodePNG(cropped)
}

// EncodePNG encodes img as a base64 PNG payload.
func EncodePNG(img image.Image) (*CropResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &CropResult{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
