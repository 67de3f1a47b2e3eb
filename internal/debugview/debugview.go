// Package debugview presents the annotated overlay produced in debug mode.
//
// Builds with the gocv tag open an OpenCV window and block until a key is
// pressed. Other builds write the overlay to a PNG file and log its path.
package debugview

import (
	"fmt"
	"image"
	"io"
	"log"

	"github.com/disintegration/imaging"
)

// Options controls where the overlay goes besides the window.
type Options struct {
	// SavePath, when set, always receives a PNG copy of the overlay.
	SavePath string

	Logger *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard, "", 0)
	}
	return o.Logger
}

// Save writes img to path. The format follows the file extension.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save overlay to %s: %w", path, err)
	}
	return nil
}

// Show presents img under title and returns once the viewer is done with it.
func Show(title string, img image.Image, opts Options) error {
	if opts.SavePath != "" {
		if err := Save(img, opts.SavePath); err != nil {
			return err
		}
		opts.logger().Printf("overlay written to %s", opts.SavePath)
	}
	return display(title, img, opts)
}
