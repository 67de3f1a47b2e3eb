//go:build !gocv

package debugview

import (
	"fmt"
	"image"
	"os"
)

// Available reports whether Show opens a window.
const Available = false

// display falls back to a temporary PNG when no path was configured.
func display(title string, img image.Image, opts Options) error {
	if opts.SavePath != "" {
		return nil
	}

	f, err := os.CreateTemp("", "gridreader-overlay-*.png")
	if err != nil {
		return fmt.Errorf("failed to create overlay file: %w", err)
	}
	path := f.Name()
	f.Close()

	if err := Save(img, path); err != nil {
		return err
	}
	opts.logger().Printf("%s: no display available, overlay written to %s", title, path)
	return nil
}
