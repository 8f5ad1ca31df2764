package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/menta2k/aspect-bucketer/pkg/sizer"
	"github.com/menta2k/aspect-bucketer/pkg/types"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default config should be valid: %v", err)
	}
	if cfg.Bucket.Alignment != 64 || cfg.Bucket.Rounding != 2 {
		t.Errorf("Unexpected bucket defaults %+v", cfg.Bucket)
	}
	spec, err := cfg.ResolutionSpec()
	if err != nil {
		t.Fatalf("ResolutionSpec failed: %v", err)
	}
	if spec != types.PixelArea(1.0) {
		t.Errorf("Expected 1MP area spec, got %+v", spec)
	}
}

func TestLoadYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("bucket:\n  alignment: 32\nresolution:\n  type: pixel\n  value: 768\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Bucket.Alignment != 32 {
		t.Errorf("Expected alignment 32, got %d", cfg.Bucket.Alignment)
	}
	if cfg.Bucket.Rounding != 2 {
		t.Errorf("Expected default rounding 2, got %d", cfg.Bucket.Rounding)
	}
	spec, err := cfg.ResolutionSpec()
	if err != nil {
		t.Fatalf("ResolutionSpec failed: %v", err)
	}
	if spec != types.PixelEdge(768) {
		t.Errorf("Expected 768px edge spec, got %+v", spec)
	}
}

func TestLoadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := []byte(`{"workers": 8, "output": {"format": "png", "quality": 80}}`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}
	if cfg.Workers != 8 || cfg.Output.Format != "png" || cfg.Output.Quality != 80 {
		t.Errorf("Unexpected config %+v", cfg)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.Bucket.Alignment = 8
	cfg.Resolution = ResolutionConfig{Type: "pixel", Value: 512}

	for _, name := range []string{"nested/config.yaml", "config.json"} {
		path := filepath.Join(dir, name)
		if err := cfg.SaveToFile(path); err != nil {
			t.Fatalf("SaveToFile(%s) failed: %v", name, err)
		}
		loaded, err := LoadFromFile(path)
		if err != nil {
			t.Fatalf("LoadFromFile(%s) failed: %v", name, err)
		}
		if *loaded != *cfg {
			t.Errorf("%s: expected %+v, got %+v", name, cfg, loaded)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero alignment", func(c *Config) { c.Bucket.Alignment = 0 }},
		{"negative rounding", func(c *Config) { c.Bucket.Rounding = -1 }},
		{"unknown type", func(c *Config) { c.Resolution.Type = "volume" }},
		{"fractional edge", func(c *Config) { c.Resolution = ResolutionConfig{Type: "pixel", Value: 512.5} }},
		{"zero megapixels", func(c *Config) { c.Resolution.Value = 0 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"bad format", func(c *Config) { c.Output.Format = "gif" }},
		{"bad quality", func(c *Config) { c.Output.Quality = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestUnknownTypeIsUnsupportedMode(t *testing.T) {
	cfg := Default()
	cfg.Resolution.Type = "volume"
	if _, err := cfg.ResolutionSpec(); !errors.Is(err, sizer.ErrUnsupportedMode) {
		t.Errorf("Expected ErrUnsupportedMode, got %v", err)
	}
}
