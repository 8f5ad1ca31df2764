package sizer

import (
	"fmt"
	"math"

	"github.com/menta2k/aspect-bucketer/pkg/types"
)

// driftTolerance is the relative megapixel error tolerated before a
// warning is logged
const driftTolerance = 0.1

// SizeByArea sizes an image to roughly megapixels of area while keeping
// its aspect ratio. Targets are shared through the resolution cache so
// every image with the same rounded ratio lands in the same bucket.
//
// Square ratios return a square target and the original size unchanged
// as intermediary; the caller resizes without cropping.
func (s *Sizer) SizeByArea(aspectRatio, megapixels float64, original types.Size) (types.Plan, error) {
	if !validRatio(aspectRatio) {
		return types.Plan{}, fmt.Errorf("%w: aspect ratio must be positive and finite, got %v", ErrInvalidArgument, aspectRatio)
	}
	if !(megapixels > 0) || math.IsInf(megapixels, 0) {
		return types.Plan{}, fmt.Errorf("%w: megapixels must be positive and finite, got %v", ErrInvalidArgument, megapixels)
	}
	if !original.Positive() {
		return types.Plan{}, fmt.Errorf("%w: original size %s", ErrInvalidGeometry, original)
	}

	targetArea := megapixels * 1e6
	side := math.Sqrt(targetArea)
	if err := checkDimension("square edge", side); err != nil {
		return types.Plan{}, err
	}
	edge := s.Round(float64(int(side)))

	if aspectRatio == 1.0 {
		s.logger.Debug("square ratio, using square edge as target and original as intermediary",
			"edge", edge, "original", original)
		return types.Plan{
			Target:       types.Size{Width: edge, Height: edge},
			Intermediary: original,
			AspectRatio:  aspectRatio,
			Passthrough:  true,
		}, nil
	}

	root := math.Sqrt(aspectRatio)
	w, h := float64(edge)*root, float64(edge)/root
	if err := checkDimension("width", w); err != nil {
		return types.Plan{}, err
	}
	if err := checkDimension("height", h); err != nil {
		return types.Plan{}, err
	}
	target := types.Size{Width: s.Round(w), Height: s.Round(h)}

	achieved := float64(target.Area()) / 1e6
	if math.Abs(achieved-megapixels) > 1e-8+driftTolerance*megapixels {
		s.logger.Warn("target will not have the requested megapixel size",
			"requested_mp", megapixels, "achieved_mp", achieved, "target", target)
	}

	var intermediary types.Size
	if target.Width < target.Height {
		intermediary.Width = target.Width
		intermediary.Height = int(float64(intermediary.Width) / aspectRatio)
	} else {
		intermediary.Height = target.Height
		intermediary.Width = int(float64(intermediary.Height) * aspectRatio)
	}

	bucketAspect := ratioOf(target, s.config.Rounding)
	cached, hit := s.cache.Get(megapixels, bucketAspect)
	if hit {
		s.logger.Debug("using cached bucket resolution",
			"megapixels", megapixels, "aspect", bucketAspect, "computed", target, "cached", cached)
		target = cached
	}

	intermediary = s.growToCover(intermediary, target, aspectRatio)

	s.logger.Debug("sized by area",
		"megapixels", megapixels, "original", original, "aspect_ratio", aspectRatio,
		"intermediary", intermediary, "target", target, "bucket_aspect", bucketAspect)

	if !hit {
		if _, inserted := s.cache.SetIfAbsent(megapixels, bucketAspect, target); inserted {
			s.logger.Debug("stored bucket resolution",
				"megapixels", megapixels, "aspect", bucketAspect, "target", target)
		}
	}

	return types.Plan{
		Target:       target,
		Intermediary: intermediary,
		AspectRatio:  bucketAspect,
	}, nil
}

// growToCover enlarges intermediary along the short axis and scales the
// other axis by aspectRatio until it covers target. Each pass fixes the
// axis it grows, so it terminates after at most two passes.
func (s *Sizer) growToCover(intermediary, target types.Size, aspectRatio float64) types.Size {
	for !intermediary.Covers(target) {
		var wDiff, hDiff int
		if target.Width > intermediary.Width {
			wDiff = target.Width - intermediary.Width
			hDiff = int(float64(wDiff) / aspectRatio)
		} else {
			hDiff = target.Height - intermediary.Height
			wDiff = int(float64(hDiff) * aspectRatio)
		}
		grown := types.Size{Width: intermediary.Width + wDiff, Height: intermediary.Height + hDiff}
		s.logger.Debug("intermediary smaller than target, growing at aspect ratio",
			"intermediary", intermediary, "target", target, "diff", types.Size{Width: wDiff, Height: hDiff}, "grown", grown)
		intermediary = grown
	}
	return intermediary
}
