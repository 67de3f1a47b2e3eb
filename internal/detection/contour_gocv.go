//go:build gocv

package detection

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// CVTracer traces borders with OpenCV's findContours in tree mode.
type CVTracer struct{}

// NewCVTracer returns an OpenCV-backed tracer.
func NewCVTracer() (*CVTracer, error) {
	return &CVTracer{}, nil
}

// Trace implements Tracer.
func (t *CVTracer) Trace(mask *image.Gray) ([]Contour, error) {
	b := mask.Bounds()
	mat, err := gocv.NewMatFromBytes(b.Dy(), b.Dx(), gocv.MatTypeCV8UC1, packGray(mask))
	if err != nil {
		return nil, fmt.Errorf("failed to convert mask: %w", err)
	}
	defer mat.Close()

	hierarchy := gocv.NewMat()
	defer hierarchy.Close()

	found := gocv.FindContoursWithParams(mat, &hierarchy, gocv.RetrievalTree, gocv.ChainApproxNone)
	defer found.Close()

	contours := make([]Contour, 0, found.Size())
	for i := 0; i < found.Size(); i++ {
		// hierarchy rows are [next, previous, first child, parent]; a
		// contour with an odd nesting depth is a hole.
		depth := 0
		for p := i; ; depth++ {
			p = int(hierarchy.GetVeciAt(0, p)[3])
			if p < 0 {
				break
			}
		}
		contours = append(contours, Contour{
			Points: found.At(i).ToPoints(),
			Hole:   depth%2 == 1,
		})
	}
	return contours, nil
}

// packGray returns the mask pixels without row padding.
func packGray(mask *image.Gray) []byte {
	b := mask.Bounds()
	if mask.Stride == b.Dx() {
		return mask.Pix[:b.Dx()*b.Dy()]
	}
	out := make([]byte, 0, b.Dx()*b.Dy())
	for y := 0; y < b.Dy(); y++ {
		out = append(out, mask.Pix[y*mask.Stride:y*mask.Stride+b.Dx()]...)
	}
	return out
}
