// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/user/droneframes/pkg/pipeline"
	"github.com/user/droneframes/pkg/ports"
)

// Config holds the defaults that command-line flags fall back to.
type Config struct {
	// Extraction
	FPS          float64 `yaml:"fps"`
	Format       string  `yaml:"format"`
	Quality      int     `yaml:"quality"`
	MaxDimension int     `yaml:"max_dimension"`

	// Batch
	Workers    int      `yaml:"workers"`
	Extensions []string `yaml:"extensions"`

	// Tools
	FFmpegPath string `yaml:"ffmpeg_path"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Debug
	DebugDir string `yaml:"debug_dir"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	ext := pipeline.DefaultExtractionConfig()
	return Config{
		FPS:      ext.FPS,
		Format:   ext.Format,
		Quality:  ext.Quality,
		Workers:  1,
		LogLevel: "info",
	}
}

// LoadFromFile loads configuration from a YAML file. Keys missing from the
// file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks values that do not depend on a particular run.
func (c Config) Validate() error {
	if math.IsNaN(c.FPS) || math.IsInf(c.FPS, 0) {
		return fmt.Errorf("fps must be a finite number, got %g", c.FPS)
	}
	if c.Format != "" && !pipeline.IsOutputFormat(c.Format) {
		return fmt.Errorf("format must be one of %v, got %q", pipeline.OutputFormats, c.Format)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100, got %d", c.Quality)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	if c.MaxDimension < 0 {
		return fmt.Errorf("max_dimension must not be negative, got %d", c.MaxDimension)
	}
	if _, err := ports.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ToExtractionConfig converts Config to pipeline.ExtractionConfig with the
// given time bounds.
func (c Config) ToExtractionConfig(start float64, end *float64) pipeline.ExtractionConfig {
	return pipeline.ExtractionConfig{
		FPS:          c.FPS,
		Format:       c.Format,
		Quality:      c.Quality,
		StartTime:    start,
		EndTime:      end,
		MaxDimension: c.MaxDimension,
	}
}
