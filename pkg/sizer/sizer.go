// Package sizer computes bucket target and intermediary sizes for images.
//
// Every plan it returns has an intermediary at least as large as its
// target on both axes, and every target dimension is a multiple of the
// configured alignment unit.
package sizer

import (
	"fmt"
	"log/slog"

	"github.com/menta2k/aspect-bucketer/pkg/cache"
	"github.com/menta2k/aspect-bucketer/pkg/types"
)

// DefaultAlignment is the default alignment unit in pixels
const DefaultAlignment = 64

// maxDimension bounds every computed dimension so float to int
// conversions stay exact
const maxDimension = 1 << 30

func checkDimension(name string, v float64) error {
	if v > maxDimension {
		return fmt.Errorf("%w: %s of %.0f pixels exceeds %d", ErrInvalidArgument, name, v, maxDimension)
	}
	return nil
}

// Config holds the bucketing parameters
type Config struct {
	// Alignment is the grid every emitted dimension is a multiple of.
	Alignment int
	// Rounding is the number of decimals aspect ratios are rounded to.
	Rounding int
}

// DefaultConfig returns alignment 64 and rounding 2
func DefaultConfig() Config {
	return Config{Alignment: DefaultAlignment, Rounding: DefaultRounding}
}

// Validate checks the configuration
func (c Config) Validate() error {
	if c.Alignment <= 0 {
		return fmt.Errorf("%w: alignment must be positive, got %d", ErrInvalidArgument, c.Alignment)
	}
	if c.Rounding < 0 || c.Rounding > maxRounding {
		return fmt.Errorf("%w: rounding must be in [0,%d], got %d", ErrInvalidArgument, maxRounding, c.Rounding)
	}
	return nil
}

// Sizer computes plans under a fixed configuration. The resolution cache
// it holds may be shared with other sizers; a Sizer is safe for
// concurrent use once configured.
type Sizer struct {
	config Config
	cache  *cache.ResolutionCache
	logger *slog.Logger
}

// New creates a Sizer with the default configuration and a private cache
func New() *Sizer {
	return &Sizer{
		config: DefaultConfig(),
		cache:  cache.New(),
		logger: slog.Default(),
	}
}

// NewWithConfig creates a Sizer with a custom configuration
func NewWithConfig(config Config) (*Sizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Sizer{
		config: config,
		cache:  cache.New(),
		logger: slog.Default(),
	}, nil
}

// SetCache replaces the resolution cache, typically with one shared
// between workers
func (s *Sizer) SetCache(c *cache.ResolutionCache) {
	s.cache = c
}

// SetLogger replaces the logger
func (s *Sizer) SetLogger(logger *slog.Logger) {
	s.logger = logger
}

// Cache returns the resolution cache in use
func (s *Sizer) Cache() *cache.ResolutionCache {
	return s.cache
}

// Config returns the configuration
func (s *Sizer) Config() Config {
	return s.config
}

// Round rounds value to the configured alignment
func (s *Sizer) Round(value float64) int {
	return roundToMultiple(value, s.config.Alignment)
}

// AspectRatio computes the aspect ratio of src with the configured rounding
func (s *Sizer) AspectRatio(src types.AspectSource) (float64, error) {
	return CalculateAspectRatio(src, s.config.Rounding)
}

// AdjustToInterval is AdjustToInterval with a debug record when a
// repair happens
func (s *Sizer) AdjustToInterval(initial, target types.Size) types.Size {
	adjusted := AdjustToInterval(initial, target)
	if adjusted != initial {
		s.logger.Debug("intermediary smaller than target, adjusted both sides",
			"initial", initial, "target", target, "adjusted", adjusted)
	}
	return adjusted
}

// Calculate sizes original under spec, dispatching on the spec's type
func (s *Sizer) Calculate(spec types.ResolutionSpec, aspectRatio float64, original types.Size) (types.Plan, error) {
	switch spec.Type {
	case types.Pixel:
		if spec.Value != float64(spec.Edge()) {
			return types.Plan{}, fmt.Errorf("%w: pixel edge must be a whole number, got %v", ErrInvalidArgument, spec.Value)
		}
		return s.SizeByEdge(aspectRatio, spec.Edge(), original)
	case types.Area:
		return s.SizeByArea(aspectRatio, spec.Value, original)
	default:
		return types.Plan{}, fmt.Errorf("%w: %q", ErrUnsupportedMode, spec.Type)
	}
}

// Plan sizes an image of the given native size, deriving its aspect
// ratio with the configured rounding
func (s *Sizer) Plan(original types.Size, spec types.ResolutionSpec) (types.Plan, error) {
	aspect, err := s.AspectRatio(types.FromSize(original.Width, original.Height))
	if err != nil {
		return types.Plan{}, err
	}
	plan, err := s.Calculate(spec, aspect, original)
	if err != nil {
		return types.Plan{}, fmt.Errorf("sizing %s at %s: %w", original, spec, err)
	}
	return plan, nil
}

// IsTooLarge reports whether size exceeds spec
func (s *Sizer) IsTooLarge(size types.Size, spec types.ResolutionSpec) (bool, error) {
	too, err := IsTooLarge(size, spec.Value, spec.Type)
	if err != nil {
		return false, err
	}
	s.logger.Debug("oversize check", "size", size, "limit", spec, "too_large", too)
	return too, nil
}
