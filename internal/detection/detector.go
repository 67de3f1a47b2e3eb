package detection

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
)

// Config holds the tunable constants of the grid detector.
type Config struct {
	// Threshold is the brightness (0-255) at or below which a pixel belongs
	// to a tile. Brighter pixels are treated as background.
	Threshold uint8 `yaml:"threshold" json:"threshold"`

	// ApproxRatio scales the contour perimeter into the Douglas-Peucker
	// tolerance used to reduce a contour to its corners.
	ApproxRatio float64 `yaml:"approx_ratio" json:"approx_ratio"`

	// MinArea drops contours whose bounding box covers fewer pixels.
	// Zero keeps everything.
	MinArea int `yaml:"min_area" json:"min_area"`

	// RequireSquare makes Detect fail when the tile count is not k*k.
	RequireSquare bool `yaml:"require_square" json:"require_square"`
}

// DefaultConfig returns the settings tuned for the reference board photos.
func DefaultConfig() Config {
	return Config{
		Threshold:   240,
		ApproxRatio: 0.01,
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.ApproxRatio < 0 || c.ApproxRatio >= 1 {
		return fmt.Errorf("approx_ratio must be in [0,1), got %g", c.ApproxRatio)
	}
	if c.MinArea < 0 {
		return fmt.Errorf("min_area must not be negative, got %d", c.MinArea)
	}
	return nil
}

// Result is the outcome of one detection run.
type Result struct {
	// Grid is the reconstructed board.
	Grid Grid `json:"grid"`

	// Tiles are the detected tiles in discovery order.
	Tiles []Tile `json:"tiles"`

	// Skipped counts contours dropped as degenerate or too small.
	Skipped int `json:"skipped"`
}

// Detector finds tiles in a cropped board image and rebuilds the grid.
//
// A Detector holds no per-image state; Detect may be called repeatedly.
type Detector struct {
	cfg    Config
	tracer Tracer
	logger *log.Logger
	debug  bool
}

// Option customizes a Detector.
type Option func(*Detector)

// WithLogger routes detector logging to l. When debug is true, per-contour
// decisions are logged too.
func WithLogger(l *log.Logger, debug bool) Option {
	return func(d *Detector) {
		d.logger = l
		d.debug = debug
	}
}

// WithTracer replaces the default pure Go border tracer.
func WithTracer(t Tracer) Option {
	return func(d *Detector) {
		d.tracer = t
	}
}

// NewDetector creates a detector with the given configuration.
func NewDetector(cfg Config, opts ...Option) (*Detector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid detector config: %w", err)
	}
	d := &Detector{
		cfg:    cfg,
		tracer: NewBorderTracer(),
		logger: log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Config returns the detector configuration.
func (d *Detector) Config() Config {
	return d.cfg
}

// Detect finds the tiles in img, classifies each one and returns the grid.
//
// # Algorithm
//
//  1. Binarize at the configured brightness threshold
//  2. Trace every border (outer and hole) in the mask
//  3. Reduce each border to a polygon with tolerance ApproxRatio x perimeter
//  4. Take the midpoint of vertices 0 and 2 as the tile centroid; polygons
//     with fewer than three vertices are skipped
//  5. Classify the source pixel at the centroid
//  6. Reconstruct the grid from centroid positions
//
// An unrecognized tile color aborts the whole run and no partial result is
// returned. An image without tiles yields an empty grid.
func (d *Detector) Detect(img image.Image) (*Result, error) {
	bounds := img.Bounds()
	mask := Binarize(img, d.cfg.Threshold)

	contours, err := d.tracer.Trace(mask)
	if err != nil {
		return nil, fmt.Errorf("contour tracing failed: %w", err)
	}

	res := &Result{Tiles: make([]Tile, 0, len(contours))}
	for i, c := range contours {
		if d.cfg.MinArea > 0 {
			b := c.Bounds()
			if b.Dx()*b.Dy() < d.cfg.MinArea {
				res.Skipped++
				d.debugf("contour %d: area %d below minimum, skipped", i, b.Dx()*b.Dy())
				continue
			}
		}

		quad := ApproxPoly(c.Points, d.cfg.ApproxRatio*ArcLength(c.Points, true))
		center, err := quad.Centroid()
		if err != nil {
			if errors.Is(err, ErrDegenerateContour) {
				res.Skipped++
				d.debugf("contour %d: %v, skipped", i, err)
				continue
			}
			return nil, err
		}

		sample := SampleBGR(img, center.X+bounds.Min.X, center.Y+bounds.Min.Y)
		label, err := Classify(sample)
		if err != nil {
			return nil, fmt.Errorf("tile at (%d,%d): %w", center.X, center.Y, err)
		}
		d.debugf("contour %d: %d vertices, centroid (%d,%d), %s", i, len(quad), center.X, center.Y, label)

		res.Tiles = append(res.Tiles, Tile{Centroid: center, Color: label, Boundary: quad})
	}

	n := len(res.Tiles)
	if k := gridSize(n); k*k != n {
		if d.cfg.RequireSquare {
			return nil, fmt.Errorf("%w: %d tiles", ErrNonSquareGrid, n)
		}
		d.logger.Printf("warning: %d tiles is not a perfect square, last row will be short", n)
	}

	res.Grid = Reconstruct(res.Tiles)
	return res, nil
}

func (d *Detector) debugf(format string, args ...interface{}) {
	if d.debug {
		d.logger.Printf(format, args...)
	}
}
