package sizer

import (
	"fmt"

	"github.com/menta2k/aspect-bucketer/pkg/types"
)

// SizeByEdge sizes an image so its shorter side becomes edge pixels.
// Portrait and square originals fix the width, landscape ones the height.
//
// When alignment rounding pushes the target past the unrounded size, the
// larger shortfall is added to both intermediary dimensions. That can
// overshoot the axis which was already large enough; existing buckets
// depend on it.
func (s *Sizer) SizeByEdge(aspectRatio float64, edge int, original types.Size) (types.Plan, error) {
	if !validRatio(aspectRatio) {
		return types.Plan{}, fmt.Errorf("%w: aspect ratio must be positive and finite, got %v", ErrInvalidArgument, aspectRatio)
	}
	if edge <= 0 {
		return types.Plan{}, fmt.Errorf("%w: edge resolution must be positive, got %d", ErrInvalidArgument, edge)
	}
	if !original.Positive() {
		return types.Plan{}, fmt.Errorf("%w: original size %s", ErrInvalidGeometry, original)
	}

	if err := checkDimension("edge", float64(edge)); err != nil {
		return types.Plan{}, err
	}

	var initial types.Size
	if original.Width < original.Height {
		h := float64(edge) / aspectRatio
		if err := checkDimension("height", h); err != nil {
			return types.Plan{}, err
		}
		initial.Width = edge
		initial.Height = int(h)
	} else {
		w := float64(edge) * aspectRatio
		if err := checkDimension("width", w); err != nil {
			return types.Plan{}, err
		}
		initial.Height = edge
		initial.Width = int(w)
	}

	target := types.Size{
		Width:  s.Round(float64(initial.Width)),
		Height: s.Round(float64(initial.Height)),
	}

	if initial.Width < target.Width || initial.Height < target.Height {
		diff := max(target.Width-initial.Width, target.Height-initial.Height)
		s.logger.Debug("intermediary smaller than target, growing both sides",
			"intermediary", initial, "target", target, "original", original,
			"aspect_ratio", aspectRatio, "diff", diff)
		initial.Width += diff
		initial.Height += diff
	}

	return types.Plan{
		Target:       target,
		Intermediary: initial,
		AspectRatio:  ratioOf(target, s.config.Rounding),
	}, nil
}
