// Package bucketer plans the dimensions images are resized and cropped to
// when a dataset is grouped into aspect ratio buckets.
//
// Each image gets a target size, the bucket it is cropped to, and an
// intermediary size it is first resized to while keeping its own aspect
// ratio. The intermediary is never smaller than the target on either axis
// and every target dimension is a multiple of the alignment unit.
//
// Basic usage:
//
//	b := bucketer.New()
//
//	plan, err := b.Plan(types.NewSize(3000, 2000), types.PixelArea(1.0))
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("resize to %s, crop to %s\n", plan.Intermediary, plan.Target)
//
// Resolution can be given as a maximum pixel edge (types.PixelEdge) or as
// a megapixel area (types.PixelArea). Under the area policy the first
// target computed for a (resolution, aspect ratio) pair is stored in a
// resolution cache and reused for every later image with that ratio, so
// all of them land in byte-identical buckets. Share one cache between
// Bucketers that process the same dataset concurrently.
package bucketer

import (
	"fmt"

	"github.com/menta2k/aspect-bucketer/pkg/cache"
	"github.com/menta2k/aspect-bucketer/pkg/processing"
	"github.com/menta2k/aspect-bucketer/pkg/sizer"
	"github.com/menta2k/aspect-bucketer/pkg/types"
)

// Version of the bucketer library
const Version = "1.0.0"

// Bucketer provides a high-level interface for bucket size planning
type Bucketer struct {
	sizer     *sizer.Sizer
	processor *processing.Processor
}

// New creates a Bucketer with alignment 64, rounding 2 and a private cache
func New() *Bucketer {
	return &Bucketer{
		sizer:     sizer.New(),
		processor: processing.NewProcessor(),
	}
}

// NewWithConfig creates a Bucketer with custom sizing parameters. A nil
// cache gives the Bucketer a private one.
func NewWithConfig(config sizer.Config, shared *cache.ResolutionCache) (*Bucketer, error) {
	s, err := sizer.NewWithConfig(config)
	if err != nil {
		return nil, err
	}
	if shared != nil {
		s.SetCache(shared)
	}
	return &Bucketer{
		sizer:     s,
		processor: processing.NewProcessor(),
	}, nil
}

// Sizer returns the underlying sizer
func (b *Bucketer) Sizer() *sizer.Sizer {
	return b.sizer
}

// Cache returns the resolution cache in use
func (b *Bucketer) Cache() *cache.ResolutionCache {
	return b.sizer.Cache()
}

// CalculateNewSizeByPixelEdge sizes an image so its shorter side matches edge
func (b *Bucketer) CalculateNewSizeByPixelEdge(aspectRatio float64, edge int, original types.Size) (types.Plan, error) {
	return b.sizer.SizeByEdge(aspectRatio, edge, original)
}

// CalculateNewSizeByPixelArea sizes an image to roughly megapixels of area
func (b *Bucketer) CalculateNewSizeByPixelArea(aspectRatio, megapixels float64, original types.Size) (types.Plan, error) {
	return b.sizer.SizeByArea(aspectRatio, megapixels, original)
}

// IsImageTooLarge reports whether size exceeds resolution under mode
func (b *Bucketer) IsImageTooLarge(size types.Size, resolution float64, mode types.ResolutionType) (bool, error) {
	return b.sizer.IsTooLarge(size, types.ResolutionSpec{Type: mode, Value: resolution})
}

// CalculateImageAspectRatio returns the rounded aspect ratio of src
func (b *Bucketer) CalculateImageAspectRatio(src types.AspectSource) (float64, error) {
	return b.sizer.AspectRatio(src)
}

// AdjustResolutionToBucketInterval grows initial by equal amounts on both
// axes until it covers target
func (b *Bucketer) AdjustResolutionToBucketInterval(initial, target types.Size) types.Size {
	return b.sizer.AdjustToInterval(initial, target)
}

// Plan sizes an image of the given native size under spec
func (b *Bucketer) Plan(original types.Size, spec types.ResolutionSpec) (types.Plan, error) {
	return b.sizer.Plan(original, spec)
}

// PlanFile reads an image file's size from its header and plans it
func (b *Bucketer) PlanFile(path string, spec types.ResolutionSpec) (types.Plan, error) {
	size, err := b.processor.ProbeSize(path)
	if err != nil {
		return types.Plan{}, fmt.Errorf("failed to read size of %s: %w", path, err)
	}
	return b.sizer.Plan(size, spec)
}

// GetVersion returns the library version
func GetVersion() string {
	return Version
}
