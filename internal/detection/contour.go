package detection

import (
	"errors"
	"image"
)

// ErrNoOpenCV is returned by CVTracer in builds without the gocv tag.
var ErrNoOpenCV = errors.New("gocv build tag is not enabled")

// Contour is a closed boundary traced in a binary mask.
type Contour struct {
	// Points lists the border pixels in tracing order. The first point is the
	// raster-first (top-most, then left-most) pixel of the border.
	Points []image.Point `json:"points"`

	// Hole is true for the inner border of a background region enclosed by
	// foreground.
	Hole bool `json:"hole"`
}

// Bounds returns the bounding rectangle of the contour (exclusive max).
func (c Contour) Bounds() image.Rectangle {
	if len(c.Points) == 0 {
		return image.Rectangle{}
	}
	r := image.Rectangle{Min: c.Points[0], Max: c.Points[0].Add(image.Pt(1, 1))}
	for _, p := range c.Points[1:] {
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})
	}
	return r
}

// Tracer finds every closed border in a binary mask. Non-zero pixels are
// foreground.
type Tracer interface {
	Trace(mask *image.Gray) ([]Contour, error)
}

// neighbors lists the 8-connected offsets in clockwise screen order
// (y grows downward), starting east.
var neighbors = [8]image.Point{
	{X: 1, Y: 0},   // E
	{X: 1, Y: 1},   // SE
	{X: 0, Y: 1},   // S
	{X: -1, Y: 1},  // SW
	{X: -1, Y: 0},  // W
	{X: -1, Y: -1}, // NW
	{X: 0, Y: -1},  // N
	{X: 1, Y: -1},  // NE
}

const (
	dirEast = 0
	dirWest = 4
)

func direction(from, to image.Point) int {
	d := to.Sub(from)
	for i, n := range neighbors {
		if n == d {
			return i
		}
	}
	return -1
}

// BorderTracer is a pure Go implementation of Suzuki-Abe topological border
// following with 8-connectivity. It reports both outer borders and hole
// borders, like a tree-mode retrieval without the hierarchy.
type BorderTracer struct{}

// NewBorderTracer returns the default tracer.
func NewBorderTracer() *BorderTracer {
	return &BorderTracer{}
}

// labelMap is the working copy of the mask, padded with a one-pixel
// background frame so that borders touching the image edge close properly.
type labelMap struct {
	w, h int
	px   []int32
}

func newLabelMap(mask *image.Gray) *labelMap {
	b := mask.Bounds()
	lm := &labelMap{w: b.Dx() + 2, h: b.Dy() + 2}
	lm.px = make([]int32, lm.w*lm.h)
	for y := 0; y < b.Dy(); y++ {
		row := mask.Pix[y*mask.Stride : y*mask.Stride+b.Dx()]
		for x, v := range row {
			if v != 0 {
				lm.px[(y+1)*lm.w+x+1] = 1
			}
		}
	}
	return lm
}

func (lm *labelMap) at(p image.Point) int32 {
	return lm.px[p.Y*lm.w+p.X]
}

func (lm *labelMap) set(p image.Point, v int32) {
	lm.px[p.Y*lm.w+p.X] = v
}

// Trace implements Tracer.
func (t *BorderTracer) Trace(mask *image.Gray) ([]Contour, error) {
	lm := newLabelMap(mask)
	var contours []Contour
	nbd := int32(1)

	for y := 1; y < lm.h-1; y++ {
		for x := 1; x < lm.w-1; x++ {
			p := image.Pt(x, y)
			f := lm.at(p)
			if f == 0 {
				continue
			}

			var from image.Point
			var hole bool
			switch {
			case f == 1 && lm.at(p.Add(neighbors[dirWest])) == 0:
				from = p.Add(neighbors[dirWest])
			case f >= 1 && lm.at(p.Add(neighbors[dirEast])) == 0:
				from = p.Add(neighbors[dirEast])
				hole = true
			default:
				continue
			}

			nbd++
			pts := lm.follow(p, from, nbd)
			for i := range pts {
				pts[i] = pts[i].Sub(image.Pt(1, 1))
			}
			contours = append(contours, Contour{Points: pts, Hole: hole})
		}
	}
	return contours, nil
}

// follow traces one border starting at start, entering from the background
// neighbor from, and labels it with nbd.
func (lm *labelMap) follow(start, from image.Point, nbd int32) []image.Point {
	// Clockwise search around start for the first foreground neighbor.
	d0 := direction(start, from)
	first := image.Point{}
	found := false
	for k := 0; k < 8; k++ {
		q := start.Add(neighbors[(d0+k)%8])
		if lm.at(q) != 0 {
			first, found = q, true
			break
		}
	}
	if !found {
		lm.set(start, -nbd)
		return []image.Point{start}
	}

	pts := []image.Point{start}
	prev, cur := first, start
	for {
		// Counterclockwise search around cur, starting just after prev.
		dp := direction(cur, prev)
		eastChecked := false
		var next image.Point
		for k := 1; k <= 8; k++ {
			d := (dp - k + 8) % 8
			q := cur.Add(neighbors[d])
			if lm.at(q) != 0 {
				next = q
				break
			}
			if d == dirEast {
				eastChecked = true
			}
		}

		if eastChecked {
			lm.set(cur, -nbd)
		} else if lm.at(cur) == 1 {
			lm.set(cur, nbd)
		}

		if next == start && cur == first {
			return pts
		}
		prev, cur = cur, next
		pts = append(pts, cur)
	}
}
