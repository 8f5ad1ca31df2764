package sizer

import (
	"fmt"
	"math"
)

// RoundToAlignment rounds value to the nearest multiple of unit, never
// returning less than one unit. Halves round to even.
func RoundToAlignment(value float64, unit int) (int, error) {
	if unit <= 0 {
		return 0, fmt.Errorf("%w: alignment unit must be positive, got %d", ErrInvalidArgument, unit)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: cannot align %v", ErrInvalidArgument, value)
	}
	return roundToMultiple(value, unit), nil
}

// roundToMultiple assumes unit > 0 and a finite value
func roundToMultiple(value float64, unit int) int {
	rounded := int(math.RoundToEven(value/float64(unit))) * unit
	if rounded < unit {
		return unit
	}
	return rounded
}
