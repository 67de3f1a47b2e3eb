// Package config loads gridreader settings from an optional YAML file.
//
// Every field has a default, so a file only needs the values it changes:
//
//	crop: {x1: 860, y1: 454, x2: 1866, y2: 1463}
//	detection:
//	  threshold: 240
//	  approx_ratio: 0.01
//	output: result.txt
package config

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"

	"github.com/ironsheep/grid-reader/internal/detection"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfig names an explicit config file.
	EnvConfig = "GRIDREADER_CONFIG"

	// EnvLogLevel enables debug logging when set to "debug".
	EnvLogLevel = "GRIDREADER_LOG_LEVEL"

	// DefaultFile is read from the working directory when EnvConfig is unset.
	DefaultFile = "gridreader.yaml"
)

// Tracer names accepted by Config.Tracer.
const (
	TracerBorder = "border"
	TracerOpenCV = "opencv"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Rect is a crop rectangle. (X1,Y1) is inclusive, (X2,Y2) exclusive.
type Rect struct {
	X1 int `yaml:"x1" json:"x1"`
	Y1 int `yaml:"y1" json:"y1"`
	X2 int `yaml:"x2" json:"x2"`
	Y2 int `yaml:"y2" json:"y2"`
}

// TopLeft returns the inclusive corner.
func (r Rect) TopLeft() image.Point { return image.Pt(r.X1, r.Y1) }

// BottomRight returns the exclusive corner.
func (r Rect) BottomRight() image.Point { return image.Pt(r.X2, r.Y2) }

// Config is the full gridreader configuration.
type Config struct {
	// Crop is the board region of the photo.
	Crop Rect `yaml:"crop" json:"crop"`

	Detection detection.Config `yaml:"detection" json:"detection"`

	// Tracer selects the contour tracer: "border" (pure Go) or "opencv"
	// (requires a gocv build).
	Tracer string `yaml:"tracer" json:"tracer"`

	// Output is where the grid codes are written.
	Output string `yaml:"output" json:"output"`

	// Overlay, when set, receives a PNG copy of the debug overlay.
	Overlay string `yaml:"overlay,omitempty" json:"overlay,omitempty"`
}

// Default returns the configuration for the reference board photos.
func Default() Config {
	return Config{
		Crop:      Rect{X1: 860, Y1: 454, X2: 1866, Y2: 1463},
		Detection: detection.DefaultConfig(),
		Tracer:    TracerBorder,
		Output:    "result.txt",
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Crop.X1 < 0 || c.Crop.Y1 < 0 {
		return fmt.Errorf("%w: crop corner (%d,%d) is negative", ErrInvalid, c.Crop.X1, c.Crop.Y1)
	}
	if c.Crop.X1 >= c.Crop.X2 || c.Crop.Y1 >= c.Crop.Y2 {
		return fmt.Errorf("%w: crop (%d,%d)-(%d,%d) is empty", ErrInvalid, c.Crop.X1, c.Crop.Y1, c.Crop.X2, c.Crop.Y2)
	}
	if err := c.Detection.Validate(); err != nil {
		return fmt.Errorf("%w: detection: %v", ErrInvalid, err)
	}
	switch c.Tracer {
	case TracerBorder, TracerOpenCV:
	default:
		return fmt.Errorf("%w: unknown tracer %q", ErrInvalid, c.Tracer)
	}
	if c.Output == "" {
		return fmt.Errorf("%w: output path is empty", ErrInvalid)
	}
	return nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the config file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Resolve finds and loads the active configuration. The file named by
// EnvConfig must exist; DefaultFile is optional. With neither, Default is
// returned. The second result is the file that was loaded, if any.
func Resolve() (Config, string, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}
	if _, err := os.Stat(DefaultFile); err == nil {
		cfg, err := Load(DefaultFile)
		return cfg, DefaultFile, err
	}
	return Default(), "", nil
}

// DebugEnabled reports whether EnvLogLevel asks for debug logging.
func DebugEnabled() bool {
	return os.Getenv(EnvLogLevel) == "debug"
}

// NewDetector builds a detector with the configured tracer and detection
// settings.
func (c Config) NewDetector(logger *log.Logger, debug bool) (*detection.Detector, error) {
	var tracer detection.Tracer
	switch c.Tracer {
	case TracerOpenCV:
		cv, err := detection.NewCVTracer()
		if err != nil {
			return nil, err
		}
		tracer = cv
	default:
		tracer = detection.NewBorderTracer()
	}

	opts := []detection.Option{detection.WithTracer(tracer)}
	if logger != nil {
		opts = append(opts, detection.WithLogger(logger, debug))
	}
	return detection.NewDetector(c.Detection, opts...)
}
