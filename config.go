package nonplanar

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/sgostarter/i/commerr"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = fmt.Errorf("invalid config: %w", commerr.ErrInvalidArgument)

// Config is everything needed to bend a program. Offsets are the spline's x
// coordinates; the first one is the center the model is bent around.
type Config struct {
	OffsetPoints         []float64 `yaml:"x_spline"`
	HeightPoints         []float64 `yaml:"z_spline"`
	LayerHeight          float64   `yaml:"layer_height"`
	MaxAngle             float64   `yaml:"max_angle"` // degrees
	DiscretizationLength float64   `yaml:"disc_length"`
	SplineAngle          float64   `yaml:"spline_angle"` // radians, used as the end slope
	ImplausibleDelta     float64   `yaml:"implausible_delta"`
}

func DefaultConfig() Config {
	return Config{
		LayerHeight:          0.3,
		MaxAngle:             30,
		DiscretizationLength: 0.01,
		SplineAngle:          -math.Pi / 6,
		ImplausibleDelta:     DefaultImplausibleDelta,
	}
}

// LoadConfig reads a YAML profile on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	d, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err = yaml.Unmarshal(d, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) RegisterFlags(fs *pflag.FlagSet) {
	fs.Float64SliceVarP(&cfg.OffsetPoints, "x-spline", "x", cfg.OffsetPoints,
		"spline x coordinates; the first must be the center of the model (usually the x-axis midpoint), minimum 2")
	fs.Float64SliceVarP(&cfg.HeightPoints, "z-spline", "z", cfg.HeightPoints,
		"spline z coordinates; the last must be equal to or greater than the model height, minimum 2")
	fs.Float64VarP(&cfg.LayerHeight, "layer-height", "l", cfg.LayerHeight, "layer height of the input gcode")
	fs.Float64VarP(&cfg.MaxAngle, "max-angle", "m", cfg.MaxAngle, "maximum angle printable with your setup, in degrees")
	fs.Float64VarP(&cfg.DiscretizationLength, "disc-length", "d", cfg.DiscretizationLength,
		"discretization length for the spline length lookup table")
	fs.Float64VarP(&cfg.SplineAngle, "spline-angle", "a", cfg.SplineAngle,
		"final spline angle in radians, usually negative")
	fs.Float64Var(&cfg.ImplausibleDelta, "implausible-delta", cfg.ImplausibleDelta,
		"largest height change in mm accepted for a single move")
}

// Override copies the fields of src whose flag was set on the command line.
func (cfg *Config) Override(src Config, changed func(name string) bool) {
	if changed("x-spline") {
		cfg.OffsetPoints = src.OffsetPoints
	}
	if changed("z-spline") {
		cfg.HeightPoints = src.HeightPoints
	}
	if changed("layer-height") {
		cfg.LayerHeight = src.LayerHeight
	}
	if changed("max-angle") {
		cfg.MaxAngle = src.MaxAngle
	}
	if changed("disc-length") {
		cfg.DiscretizationLength = src.DiscretizationLength
	}
	if changed("spline-angle") {
		cfg.SplineAngle = src.SplineAngle
	}
	if changed("implausible-delta") {
		cfg.ImplausibleDelta = src.ImplausibleDelta
	}
}

func (cfg Config) Validate() error {
	var errs []error

	check := func(name string, pts []float64) {
		if len(pts) < 2 {
			errs = append(errs, fmt.Errorf("%s requires at least 2 points, starting and ending", name))
			return
		}
		for _, v := range pts {
			if v < 0 {
				errs = append(errs, fmt.Errorf("%s: points must not be negative", name))
				return
			}
		}
	}
	check("x-spline", cfg.OffsetPoints)
	check("z-spline", cfg.HeightPoints)

	if len(cfg.OffsetPoints) != len(cfg.HeightPoints) {
		errs = append(errs, fmt.Errorf("x-spline has %d points but z-spline has %d",
			len(cfg.OffsetPoints), len(cfg.HeightPoints)))
	}
	if !(cfg.LayerHeight > 0) {
		errs = append(errs, fmt.Errorf("layer height must be positive, got %g", cfg.LayerHeight))
	}
	if !(cfg.MaxAngle > 0 && cfg.MaxAngle <= 90) {
		errs = append(errs, fmt.Errorf("max angle must be in (0, 90] degrees, got %g", cfg.MaxAngle))
	}
	if !(cfg.DiscretizationLength > 0) {
		errs = append(errs, fmt.Errorf("discretization length must be positive, got %g", cfg.DiscretizationLength))
	}
	if !(cfg.ImplausibleDelta > 0) {
		errs = append(errs, fmt.Errorf("implausible delta must be positive, got %g", cfg.ImplausibleDelta))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// NewTransformer validates cfg and builds the curve and its lookup table.
// The curve leaves the first point vertically, with zero slope.
func (cfg Config) NewTransformer() (*Transformer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	curve, err := NewCurveModel(cfg.HeightPoints, cfg.OffsetPoints, 0, cfg.SplineAngle)
	if err != nil {
		return nil, err
	}

	table, err := NewArcLengthTable(curve, cfg.DiscretizationLength)
	if err != nil {
		return nil, err
	}

	return NewTransformer(curve, table, cfg.LayerHeight, cfg.MaxAngle, cfg.ImplausibleDelta), nil
}
