package types

import (
	"fmt"
	"image"
)

// Size is a width/height pair in pixels
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// NewSize returns a Size
func NewSize(width, height int) Size {
	return Size{Width: width, Height: height}
}

// SizeOf returns the size of an image's bounds
func SizeOf(img image.Image) Size {
	b := img.Bounds()
	return Size{Width: b.Dx(), Height: b.Dy()}
}

// Positive reports whether both dimensions are greater than zero
func (s Size) Positive() bool {
	return s.Width > 0 && s.Height > 0
}

// Area returns width*height
func (s Size) Area() int {
	return s.Width * s.Height
}

// Covers reports whether s is at least as large as other on both axes
func (s Size) Covers(other Size) bool {
	return s.Width >= other.Width && s.Height >= other.Height
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// ResolutionType selects how a resolution limit is interpreted
type ResolutionType string

const (
	// Pixel treats the resolution as a maximum edge length in pixels
	Pixel ResolutionType = "pixel"
	// Area treats the resolution as a target area in megapixels
	Area ResolutionType = "area"
)

// ResolutionSpec is a target resolution under one of the two policies
type ResolutionSpec struct {
	Type  ResolutionType `json:"type"`
	Value float64        `json:"value"`
}

// PixelEdge returns a spec for a maximum edge length
func PixelEdge(edge int) ResolutionSpec {
	return ResolutionSpec{Type: Pixel, Value: float64(edge)}
}

// PixelArea returns a spec for a megapixel area
func PixelArea(megapixels float64) ResolutionSpec {
	return ResolutionSpec{Type: Area, Value: megapixels}
}

// Edge returns the spec value as an edge length
func (r ResolutionSpec) Edge() int {
	return int(r.Value)
}

func (r ResolutionSpec) String() string {
	if r.Type == Pixel {
		return fmt.Sprintf("%dpx", int(r.Value))
	}
	return fmt.Sprintf("%gMP", r.Value)
}

// SourceKind identifies which variant an AspectSource holds
type SourceKind int

const (
	SourceSize SourceKind = iota
	SourceImage
	SourceRatio
)

func (k SourceKind) String() string {
	switch k {
	case SourceSize:
		return "size"
	case SourceImage:
		return "image"
	case SourceRatio:
		return "ratio"
	}
	return "unknown"
}

// AspectSource is the input to aspect ratio calculation: a size pair,
// an image, or a ratio computed elsewhere.
type AspectSource struct {
	Kind  SourceKind
	Size  Size
	Ratio float64
}

// FromSize builds an AspectSource from a width/height pair
func FromSize(width, height int) AspectSource {
	return AspectSource{Kind: SourceSize, Size: Size{Width: width, Height: height}}
}

// FromImage builds an AspectSource from an image's bounds
func FromImage(img image.Image) AspectSource {
	return AspectSource{Kind: SourceImage, Size: SizeOf(img)}
}

// FromRatio builds an AspectSource from a precomputed ratio
func FromRatio(ratio float64) AspectSource {
	return AspectSource{Kind: SourceRatio, Ratio: ratio}
}

// Plan is the outcome of sizing one image: resize to Intermediary,
// then crop to Target.
type Plan struct {
	Target       Size    `json:"target"`
	Intermediary Size    `json:"intermediary"`
	AspectRatio  float64 `json:"aspect_ratio"`
	// Passthrough marks square plans whose intermediary is the original
	// size; the image is resized straight to Target with no crop.
	Passthrough bool `json:"passthrough,omitempty"`
}

// Valid reports whether the plan can be executed: the intermediary
// covers the target, or the plan is a passthrough
func (p Plan) Valid() bool {
	if !p.Target.Positive() || !p.Intermediary.Positive() {
		return false
	}
	return p.Passthrough || p.Intermediary.Covers(p.Target)
}

func (p Plan) String() string {
	return fmt.Sprintf("%s -> %s (%.2f)", p.Intermediary, p.Target, p.AspectRatio)
}
