package sizer

import "github.com/menta2k/aspect-bucketer/pkg/types"

// AdjustToInterval grows initial so it covers target, adding the larger
// per-axis shortfall to both dimensions. Width wins ties. If initial
// already covers target it is returned unchanged.
//
// This is the equal-delta repair used with edge-based sizing; area-based
// sizing has its own ratio-preserving repair.
func AdjustToInterval(initial, target types.Size) types.Size {
	wDiff := target.Width - initial.Width
	hDiff := target.Height - initial.Height

	switch {
	case wDiff > 0 && wDiff >= hDiff:
		return types.Size{Width: initial.Width + wDiff, Height: initial.Height + wDiff}
	case hDiff > 0 && hDiff > wDiff:
		return types.Size{Width: initial.Width + hDiff, Height: initial.Height + hDiff}
	}
	return initial
}
