package sizer

import (
	"fmt"

	"github.com/menta2k/aspect-bucketer/pkg/types"
)

// IsTooLarge reports whether size exceeds limit. Under Pixel the limit is
// an edge length checked against each dimension; under Area it is in
// megapixels and checked against width*height.
func IsTooLarge(size types.Size, limit float64, mode types.ResolutionType) (bool, error) {
	switch mode {
	case types.Pixel:
		return float64(size.Width) > limit || float64(size.Height) > limit, nil
	case types.Area:
		return float64(size.Area()) > limit*1e6, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrUnsupportedMode, mode)
	}
}
