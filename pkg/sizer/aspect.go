package sizer

import (
	"fmt"
	"math"
	"strconv"

	"github.com/menta2k/aspect-bucketer/pkg/types"
)

// DefaultRounding is the number of decimals aspect ratios are rounded to
const DefaultRounding = 2

// maxRounding keeps precision inside what a float64 can distinguish
const maxRounding = 15

// CalculateAspectRatio returns width/height of the source rounded to
// precision decimals. A ratio source is only rounded.
func CalculateAspectRatio(src types.AspectSource, precision int) (float64, error) {
	if precision < 0 || precision > maxRounding {
		return 0, fmt.Errorf("%w: rounding precision must be in [0,%d], got %d", ErrInvalidArgument, maxRounding, precision)
	}

	switch src.Kind {
	case types.SourceRatio:
		if !validRatio(src.Ratio) {
			return 0, fmt.Errorf("%w: aspect ratio must be positive and finite, got %v", ErrInvalidArgument, src.Ratio)
		}
		return roundDecimal(src.Ratio, precision), nil
	case types.SourceSize, types.SourceImage:
		if !src.Size.Positive() {
			return 0, fmt.Errorf("%w: %s %s has non-positive dimensions", ErrInvalidGeometry, src.Kind, src.Size)
		}
		return ratioOf(src.Size, precision), nil
	default:
		return 0, fmt.Errorf("%w: unknown aspect source %d", ErrInvalidArgument, src.Kind)
	}
}

// ratioOf assumes a positive size
func ratioOf(s types.Size, precision int) float64 {
	return roundDecimal(float64(s.Width)/float64(s.Height), precision)
}

// roundDecimal rounds to the closest decimal with the given number of
// places, halves going to even. strconv rounds the exact binary value,
// so 1.005 becomes 1.0 rather than 1.01.
func roundDecimal(v float64, precision int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', precision, 64), 64)
	if err != nil {
		return v
	}
	return r
}

func validRatio(r float64) bool {
	return r > 0 && !math.IsNaN(r) && !math.IsInf(r, 0)
}
