package detection

import (
	"image"
	"math"
)

// ArcLength returns the length of the polyline through pts. When closed is
// true the segment from the last point back to the first is included.
func ArcLength(pts []image.Point, closed bool) float64 {
	if len(pts) < 2 {
		return 0
	}
	var total float64
	for i := 1; i < len(pts); i++ {
		total += dist(pts[i-1], pts[i])
	}
	if closed {
		total += dist(pts[len(pts)-1], pts[0])
	}
	return total
}

// ApproxPoly simplifies a closed contour with the Douglas-Peucker algorithm.
//
// The curve is split at its first point and the contour point farthest from
// it; each half is then simplified independently, so for an axis-aligned
// rectangle traced from its top-left pixel the result starts at that corner
// and its third vertex is the opposite corner.
//
// epsilon is the maximum distance between the contour and the polygon.
func ApproxPoly(pts []image.Point, epsilon float64) Quad {
	switch len(pts) {
	case 0:
		return nil
	case 1, 2:
		return append(Quad(nil), pts...)
	}

	far := 0
	var best float64
	for i, p := range pts {
		if d := dist(pts[0], p); d > best {
			far, best = i, d
		}
	}
	if far == 0 {
		// Every point coincides with the first one.
		return Quad{pts[0]}
	}

	out := Quad{pts[0]}
	out = append(out, simplify(pts[:far+1], epsilon)...)
	out = append(out, pts[far])

	// Second half wraps around to the start point.
	tail := append(append([]image.Point(nil), pts[far:]...), pts[0])
	out = append(out, simplify(tail, epsilon)...)
	return out
}

// simplify returns the interior vertices Douglas-Peucker keeps for the open
// chain pts; the endpoints themselves are not included.
func simplify(pts []image.Point, epsilon float64) []image.Point {
	if len(pts) < 3 {
		return nil
	}
	a, b := pts[0], pts[len(pts)-1]
	idx := -1
	var best float64
	for i := 1; i < len(pts)-1; i++ {
		if d := segmentDist(pts[i], a, b); d > best {
			idx, best = i, d
		}
	}
	if idx < 0 || best <= epsilon {
		return nil
	}
	left := simplify(pts[:idx+1], epsilon)
	right := simplify(pts[idx:], epsilon)
	out := append(left, pts[idx])
	return append(out, right...)
}

func dist(a, b image.Point) float64 {
	return math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
}

// segmentDist is the distance from p to the line through a and b, or to a
// when a and b coincide.
func segmentDist(p, a, b image.Point) float64 {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	if dx == 0 && dy == 0 {
		return dist(p, a)
	}
	cross := dx*float64(p.Y-a.Y) - dy*float64(p.X-a.X)
	return math.Abs(cross) / math.Hypot(dx, dy)
}
