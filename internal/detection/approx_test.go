package detection

import (
	"image"
	"math"
	"testing"
)

func TestArcLength(t *testing.T) {
	square := []image.Point{{0, 0}, {10, 0}, {10, 10}, {0, 10}}

	tests := []struct {
		name   string
		pts    []image.Point
		closed bool
		want   float64
	}{
		{"closed square", square, true, 40},
		{"open square", square, false, 30},
		{"single point", square[:1], true, 0},
		{"empty", nil, true, 0},
		{"diagonal", []image.Point{{0, 0}, {3, 4}}, false, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ArcLength(tt.pts, tt.closed)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ArcLength = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestApproxPoly_TracedRectangle(t *testing.T) {
	mask := createMask(60, 60, image.Rect(10, 10, 50, 50))
	contours, err := NewBorderTracer().Trace(mask)
	if err != nil || len(contours) != 1 {
		t.Fatalf("Trace: got %d contours, err %v", len(contours), err)
	}
	pts := contours[0].Points

	quad := ApproxPoly(pts, 0.01*ArcLength(pts, true))
	if len(quad) != 4 {
		t.Fatalf("vertices: got %d (%v), want 4", len(quad), quad)
	}
	if quad[0] != image.Pt(10, 10) {
		t.Errorf("vertex 0: got %v, want top-left (10,10)", quad[0])
	}
	if quad[2] != image.Pt(49, 49) {
		t.Errorf("vertex 2: got %v, want bottom-right (49,49)", quad[2])
	}

	corners := map[image.Point]bool{
		{10, 10}: true, {49, 10}: true, {10, 49}: true, {49, 49}: true,
	}
	for _, v := range quad {
		if !corners[v] {
			t.Errorf("vertex %v is not a rectangle corner", v)
		}
	}
}

func TestApproxPoly_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		pts  []image.Point
		want int
	}{
		{"empty", nil, 0},
		{"single pixel", []image.Point{{3, 3}}, 1},
		{"two pixels", []image.Point{{3, 3}, {4, 3}}, 2},
		{"straight line traced both ways", []image.Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}, {2, 0}, {1, 0}}, 2},
		{"repeated point", []image.Point{{5, 5}, {5, 5}, {5, 5}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApproxPoly(tt.pts, 0.01*ArcLength(tt.pts, true))
			if len(got) != tt.want {
				t.Errorf("vertices: got %d (%v), want %d", len(got), got, tt.want)
			}
		})
	}
}

func TestApproxPoly_KeepsSharpCorner(t *testing.T) {
	// An L-shaped chain: the elbow must survive a small tolerance.
	pts := []image.Point{{0, 0}, {0, 5}, {0, 10}, {5, 10}, {10, 10}, {5, 5}}
	got := ApproxPoly(pts, 0.5)

	found := false
	for _, p := range got {
		if p == image.Pt(0, 10) {
			found = true
		}
	}
	if !found {
		t.Errorf("elbow (0,10) dropped: %v", got)
	}
}
