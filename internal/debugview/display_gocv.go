//go:build gocv

package debugview

import (
	"fmt"
	"image"
	"image/draw"

	"gocv.io/x/gocv"
)

// Available reports whether Show opens a window.
const Available = true

func display(title string, img image.Image, opts Options) error {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Bounds().Dx(), img.Bounds().Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)

	mat, err := gocv.ImageToMatRGB(rgba)
	if err != nil {
		return fmt.Errorf("failed to convert overlay: %w", err)
	}
	defer mat.Close()

	window := gocv.NewWindow(title)
	defer window.Close()

	opts.logger().Printf("showing %q, press any key to continue", title)
	window.IMShow(mat)
	window.WaitKey(0)
	return nil
}
