package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/menta2k/aspect-bucketer/pkg/processing"
	"github.com/menta2k/aspect-bucketer/pkg/sizer"
	"github.com/menta2k/aspect-bucketer/pkg/types"
)

// Config holds the application configuration
type Config struct {
	Bucket     BucketConfig     `json:"bucket"`
	Resolution ResolutionConfig `json:"resolution"`
	Workers    int              `json:"workers"`
	Output     OutputConfig     `json:"output"`
}

// BucketConfig holds the alignment grid and aspect ratio rounding
type BucketConfig struct {
	Alignment int `json:"alignment"`
	Rounding  int `json:"rounding"`
}

// ResolutionConfig holds the target resolution policy
type ResolutionConfig struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

// OutputConfig holds configuration for rendered images
type OutputConfig struct {
	Dir      string `json:"dir"`
	Format   string `json:"format"`
	Quality  int    `json:"quality"`
	Lossless bool   `json:"lossless"`
	Prefix   string `json:"prefix"`
	Suffix   string `json:"suffix"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Bucket: BucketConfig{
			Alignment: sizer.DefaultAlignment,
			Rounding:  sizer.DefaultRounding,
		},
		Resolution: ResolutionConfig{
			Type:  string(types.Area),
			Value: 1.0,
		},
		Workers: 4,
		Output: OutputConfig{
			Format:  "jpg",
			Quality: 90,
		},
	}
}

// LoadFromFile loads configuration from a YAML or JSON file. Fields
// missing from the file keep their default values.
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a file, as JSON when the name ends
// in .json and YAML otherwise
func (c *Config) SaveToFile(filename string) error {
	dir := filepath.Dir(filename)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		if data, err = yaml.YAMLToJSON(data); err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Sizer().Validate(); err != nil {
		return fmt.Errorf("bucket: %w", err)
	}

	if _, err := c.ResolutionSpec(); err != nil {
		return err
	}

	if c.Workers < 1 {
		return fmt.Errorf("workers must be positive")
	}

	switch strings.ToLower(c.Output.Format) {
	case "jpg", "jpeg", "png", "webp":
	default:
		return fmt.Errorf("output.format must be one of jpg, png, webp")
	}

	if c.Output.Quality < 1 || c.Output.Quality > 100 {
		return fmt.Errorf("output.quality must be between 1 and 100")
	}

	return nil
}

// Sizer returns the sizing parameters
func (c *Config) Sizer() sizer.Config {
	return sizer.Config{Alignment: c.Bucket.Alignment, Rounding: c.Bucket.Rounding}
}

// ResolutionSpec returns the configured resolution policy
func (c *Config) ResolutionSpec() (types.ResolutionSpec, error) {
	switch types.ResolutionType(c.Resolution.Type) {
	case types.Pixel:
		edge := int(c.Resolution.Value)
		if edge <= 0 || float64(edge) != c.Resolution.Value {
			return types.ResolutionSpec{}, fmt.Errorf("resolution.value must be a positive whole number of pixels, got %v", c.Resolution.Value)
		}
		return types.PixelEdge(edge), nil
	case types.Area:
		if c.Resolution.Value <= 0 {
			return types.ResolutionSpec{}, fmt.Errorf("resolution.value must be positive megapixels, got %v", c.Resolution.Value)
		}
		return types.PixelArea(c.Resolution.Value), nil
	default:
		return types.ResolutionSpec{}, fmt.Errorf("%w: resolution.type %q", sizer.ErrUnsupportedMode, c.Resolution.Type)
	}
}

// Processing returns the output encoding settings
func (c *Config) Processing() processing.Output {
	return processing.Output{
		Format:   c.Output.Format,
		Quality:  c.Output.Quality,
		Lossless: c.Output.Lossless,
	}
}

// GetConfigPath returns the default configuration file path
func GetConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./bucket-sizer.yaml"
	}
	return filepath.Join(home, ".config", "bucket-sizer", "config.yaml")
}
