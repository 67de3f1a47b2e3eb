//go:build !gocv

package detection

import (
	"image"
)

// CVTracer is unavailable without OpenCV; build with -tags gocv.
type CVTracer struct{}

// NewCVTracer always fails in builds without the gocv tag.
func NewCVTracer() (*CVTracer, error) {
	return nil, ErrNoOpenCV
}

// Trace implements Tracer.
func (t *CVTracer) Trace(*image.Gray) ([]Contour, error) {
	return nil, ErrNoOpenCV
}
