package detection

import (
	"image"

	"github.com/anthonynsimon/bild/segment"
)

// Binarize converts img to a binary mask for contour tracing.
//
// Pixels whose brightness is at or below threshold become foreground (255);
// brighter pixels become background (0). With the default threshold of 240
// only the near-white gaps between tiles drop out, leaving one foreground
// blob per tile.
//
// The returned mask always has its origin at (0, 0).
func Binarize(img image.Image, threshold uint8) *image.Gray {
	b := img.Bounds()
	mask := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	if threshold == 255 {
		for i := range mask.Pix {
			mask.Pix[i] = 255
		}
		return mask
	}

	// segment.Threshold marks pixels at or above level as white, so level is
	// one past the last foreground brightness and the result is inverted.
	bright := segment.Threshold(img, threshold+1)
	bb := bright.Bounds()
	for y := 0; y < bb.Dy(); y++ {
		src := bright.Pix[y*bright.Stride : y*bright.Stride+bb.Dx()]
		dst := mask.Pix[y*mask.Stride : y*mask.Stride+bb.Dx()]
		for x, v := range src {
			if v == 0 {
				dst[x] = 255
			}
		}
	}
	return mask
}
