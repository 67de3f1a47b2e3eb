package detection

import (
	"image"
	"testing"
)

func TestBinarize(t *testing.T) {
	img := createBlankImage(20, 10)
	fillRect(img, image.Rect(5, 2, 10, 6), tileBlue)
	fillRect(img, image.Rect(12, 2, 15, 6), tileGray)

	mask := Binarize(img, 240)

	if mask.Bounds() != image.Rect(0, 0, 20, 10) {
		t.Fatalf("mask bounds: got %v", mask.Bounds())
	}

	tests := []struct {
		name string
		x, y int
		want uint8
	}{
		{"background", 0, 0, 0},
		{"blue tile", 6, 3, 255},
		{"gray tile", 13, 3, 255},
		{"gap between tiles", 11, 3, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mask.GrayAt(tt.x, tt.y).Y; got != tt.want {
				t.Errorf("mask at (%d,%d): got %d, want %d", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestBinarize_MaxThreshold(t *testing.T) {
	mask := Binarize(createBlankImage(4, 4), 255)
	for i, v := range mask.Pix {
		if v != 255 {
			t.Fatalf("pixel %d: got %d, want 255", i, v)
		}
	}
}

func TestBinarize_OffsetBounds(t *testing.T) {
	img := createBlankImage(20, 20)
	fillRect(img, image.Rect(10, 10, 15, 15), tileRed)
	sub := img.SubImage(image.Rect(8, 8, 20, 20))

	mask := Binarize(sub, 240)
	if mask.Bounds() != image.Rect(0, 0, 12, 12) {
		t.Fatalf("mask bounds: got %v, want origin-based 12x12", mask.Bounds())
	}
}

// createMask builds a binary mask with the given foreground rectangles
func createMask(width, height int, rects ...image.Rectangle) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, width, height))
	for _, r := range rects {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				mask.Pix[y*mask.Stride+x] = 255
			}
		}
	}
	return mask
}

func TestBorderTracer_FilledRectangle(t *testing.T) {
	mask := createMask(12, 12, image.Rect(2, 3, 7, 8))

	contours, err := NewBorderTracer().Trace(mask)
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}
	if len(contours) != 1 {
		t.Fatalf("contours: got %d, want 1", len(contours))
	}

	c := contours[0]
	if c.Hole {
		t.Error("outer border reported as hole")
	}
	if c.Points[0] != image.Pt(2, 3) {
		t.Errorf("first point: got %v, want (2,3)", c.Points[0])
	}
	if c.Bounds() != image.Rect(2, 3, 7, 8) {
		t.Errorf("bounds: got %v, want (2,3)-(7,8)", c.Bounds())
	}
	// A 5x5 block has 16 border pixels, each visited once.
	if len(c.Points) != 16 {
		t.Errorf("points: got %d, want 16", len(c.Points))
	}

	seen := make(map[image.Point]bool)
	for _, p := range c.Points {
		if seen[p] {
			t.Errorf("point %v visited twice", p)
		}
		seen[p] = true
		onEdge := p.X == 2 || p.X == 6 || p.Y == 3 || p.Y == 7
		if !onEdge {
			t.Errorf("point %v is not on the rectangle border", p)
		}
	}
}

func TestBorderTracer_Empty(t *testing.T) {
	contours, err := NewBorderTracer().Trace(createMask(10, 10))
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}
	if len(contours) != 0 {
		t.Errorf("contours: got %d, want 0", len(contours))
	}
}

func TestBorderTracer_SinglePixel(t *testing.T) {
	contours, err := NewBorderTracer().Trace(createMask(5, 5, image.Rect(2, 2, 3, 3)))
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}
	if len(contours) != 1 {
		t.Fatalf("contours: got %d, want 1", len(contours))
	}
	if len(contours[0].Points) != 1 || contours[0].Points[0] != image.Pt(2, 2) {
		t.Errorf("points: got %v, want [(2,2)]", contours[0].Points)
	}
}

func TestBorderTracer_TouchesEdge(t *testing.T) {
	contours, err := NewBorderTracer().Trace(createMask(6, 6, image.Rect(0, 0, 6, 6)))
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}
	if len(contours) != 1 {
		t.Fatalf("contours: got %d, want 1", len(contours))
	}
	if contours[0].Bounds() != image.Rect(0, 0, 6, 6) {
		t.Errorf("bounds: got %v, want full image", contours[0].Bounds())
	}
}

func TestBorderTracer_SeparateBlobs(t *testing.T) {
	mask := createMask(30, 30,
		image.Rect(2, 2, 10, 10),
		image.Rect(15, 2, 25, 10),
		image.Rect(2, 15, 10, 25),
	)

	contours, err := NewBorderTracer().Trace(mask)
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}
	if len(contours) != 3 {
		t.Fatalf("contours: got %d, want 3", len(contours))
	}
	for i, c := range contours {
		if c.Hole {
			t.Errorf("contour %d reported as hole", i)
		}
	}
}

func TestBorderTracer_Hole(t *testing.T) {
	mask := createMask(14, 14, image.Rect(1, 1, 11, 11))
	// Punch a hole in the middle of the block.
	for y := 4; y < 8; y++ {
		for x := 4; x < 8; x++ {
			mask.Pix[y*mask.Stride+x] = 0
		}
	}

	contours, err := NewBorderTracer().Trace(mask)
	if err != nil {
		t.Fatalf("Trace failed: %v", err)
	}
	if len(contours) != 2 {
		t.Fatalf("contours: got %d, want 2", len(contours))
	}

	var outer, hole *Contour
	for i := range contours {
		if contours[i].Hole {
			hole = &contours[i]
		} else {
			outer = &contours[i]
		}
	}
	if outer == nil || hole == nil {
		t.Fatalf("want one outer and one hole border, got %+v", contours)
	}
	if outer.Bounds() != image.Rect(1, 1, 11, 11) {
		t.Errorf("outer bounds: got %v", outer.Bounds())
	}
	hb := hole.Bounds()
	if !image.Rect(4, 4, 8, 8).In(hb) || !hb.In(outer.Bounds()) {
		t.Errorf("hole bounds %v should enclose the hole and sit inside the outer border", hb)
	}
}
