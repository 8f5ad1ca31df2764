package processing

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/menta2k/aspect-bucketer/pkg/sizer"
	"github.com/menta2k/aspect-bucketer/pkg/types"
)

// Output controls how rendered images are encoded
type Output struct {
	Format   string
	Quality  int
	Lossless bool
}

// DefaultOutput encodes JPEG at quality 90
func DefaultOutput() Output {
	return Output{Format: "jpg", Quality: 90}
}

// Processor reads image sizes and executes plans on image files
type Processor struct {
	output Output
}

// NewProcessor creates a processor with the default output settings
func NewProcessor() *Processor {
	return &Processor{output: DefaultOutput()}
}

// NewProcessorWithOutput creates a processor with custom output settings
func NewProcessorWithOutput(output Output) *Processor {
	return &Processor{output: output}
}

// ProbeSize reads the dimensions of an image file from its header
// without decoding pixels
func (p *Processor) ProbeSize(path string) (types.Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return types.Size{}, fmt.Errorf("failed to open image file: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		// fall back to libwebp for WebP files
		if !isWebP(path) {
			return types.Size{}, fmt.Errorf("failed to read image header: %w", err)
		}
		if _, serr := f.Seek(0, 0); serr != nil {
			return types.Size{}, serr
		}
		if cfg, err = webp.DecodeConfig(f); err != nil {
			return types.Size{}, fmt.Errorf("failed to read webp header: %w", err)
		}
	}

	size := types.NewSize(cfg.Width, cfg.Height)
	if !size.Positive() {
		return types.Size{}, fmt.Errorf("%w: %s has size %s", sizer.ErrInvalidGeometry, path, size)
	}
	return size, nil
}

// LoadImage loads an image from a file path with WebP support
func (p *Processor) LoadImage(path string) (image.Image, error) {
	img, openErr := imaging.Open(path)
	if openErr == nil {
		return img, nil
	}
	if !isWebP(path) {
		return nil, fmt.Errorf("failed to decode %s: %w", path, openErr)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, err = webp.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w (webp fallback: %v)", path, openErr, err)
	}
	return img, nil
}

// Apply resizes img to the plan's intermediary size and centre-crops it
// to the target. Passthrough plans are resized straight to the target.
func (p *Processor) Apply(img image.Image, plan types.Plan) (image.Image, error) {
	if !plan.Valid() {
		return nil, fmt.Errorf("%w: cannot crop %s to %s", sizer.ErrInvalidGeometry, plan.Intermediary, plan.Target)
	}

	t := plan.Target
	if plan.Passthrough {
		return imaging.Resize(img, t.Width, t.Height, imaging.Lanczos), nil
	}

	out := img
	if types.SizeOf(img) != plan.Intermediary {
		out = imaging.Resize(img, plan.Intermediary.Width, plan.Intermediary.Height, imaging.Lanczos)
	}
	if plan.Intermediary != t {
		out = imaging.CropCenter(out, t.Width, t.Height)
	}
	return out, nil
}

// ProcessFile loads in, applies plan, and writes the result to out
func (p *Processor) ProcessFile(in, out string, plan types.Plan) error {
	img, err := p.LoadImage(in)
	if err != nil {
		return fmt.Errorf("failed to load image: %w", err)
	}

	rendered, err := p.Apply(img, plan)
	if err != nil {
		return err
	}

	if err := p.SaveImage(rendered, out, p.output.Format, p.output.Quality, p.output.Lossless); err != nil {
		return fmt.Errorf("failed to save %s: %w", out, err)
	}
	return nil
}

// Extension returns the file extension rendered images are written with
func (p *Processor) Extension() string {
	return strings.ToLower(p.output.Format)
}

// SaveImage saves an image to a file with the specified format and quality
func (p *Processor) SaveImage(img image.Image, path, format string, quality int, lossless bool) error {
	switch strings.ToLower(format) {
	case "webp":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		opts := &webp.Options{Lossless: lossless, Quality: float32(quality)}
		return webp.Encode(f, img, opts)
	case "png":
		return imaging.Save(img, path)
	case "jpg", "jpeg":
		return imaging.Save(img, path, imaging.JPEGQuality(quality))
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

func isWebP(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".webp")
}
