package pipeline

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
)

// =============================================================================
// Extraction settings
// =============================================================================

// Supported output formats accepted on the command line.
var OutputFormats = []string{"jpg", "jpeg", "png"}

// ExtractionConfig holds the parameters of one extraction. It is built once by
// the caller and never mutated afterwards.
type ExtractionConfig struct {
	FPS          float64  // Target sampling rate in frames per second (<= 0 keeps every frame)
	Format       string   // Output image extension: jpg, jpeg or png
	Quality      int      // Encoding quality 1-100
	StartTime    float64  // Start bound in seconds (0 = from the beginning)
	EndTime      *float64 // End bound in seconds (nil = until the stream ends)
	MaxDimension int      // Longest output side in pixels (0 = original size)
}

// DefaultExtractionConfig returns the settings used when nothing is specified.
func DefaultExtractionConfig() ExtractionConfig {
	return ExtractionConfig{
		FPS:     1.0,
		Format:  "jpg",
		Quality: 95,
	}
}

// Validate reports the first invalid setting.
func (c ExtractionConfig) Validate() error {
	if !isFinite(c.FPS) {
		return fmt.Errorf("fps must be a finite number, got %g", c.FPS)
	}
	if !isFinite(c.StartTime) {
		return fmt.Errorf("start time must be a finite number, got %g", c.StartTime)
	}
	if c.EndTime != nil && !isFinite(*c.EndTime) {
		return fmt.Errorf("end time must be a finite number, got %g", *c.EndTime)
	}
	if c.Format == "" {
		return errors.New("output format is required")
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("quality must be between 1 and 100, got %d", c.Quality)
	}
	if c.StartTime < 0 {
		return fmt.Errorf("start time must not be negative, got %g", c.StartTime)
	}
	if c.EndTime != nil && *c.EndTime <= c.StartTime {
		return fmt.Errorf("end time %g must be after start time %g", *c.EndTime, c.StartTime)
	}
	if c.MaxDimension < 0 {
		return fmt.Errorf("max dimension must not be negative, got %d", c.MaxDimension)
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// IsOutputFormat reports whether format is one of OutputFormats.
func IsOutputFormat(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}

// =============================================================================
// Per-video records
// =============================================================================

// FrameRecord describes one image file written for a sampled frame.
type FrameRecord struct {
	Path        string
	Name        string
	Sequence    int // Position among saved frames, starting at 0
	FrameIndex  int // Absolute index of the source frame
	TimestampMs int
}

// Result status values.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// ExtractionResult is the terminal outcome of processing one video.
type ExtractionResult struct {
	Video           string `json:"video"`
	Status          string `json:"status"`
	FramesExtracted *int   `json:"frames_extracted,omitempty"`
	Error           string `json:"error,omitempty"`
	OutputDir       string `json:"output_dir"`
}

// SuccessResult creates a successful result.
func SuccessResult(video, outputDir string, frames int) ExtractionResult {
	return ExtractionResult{
		Video:           video,
		Status:          StatusSuccess,
		FramesExtracted: &frames,
		OutputDir:       outputDir,
	}
}

// FailureResult creates a failed result. A nil error is reported as "unknown error".
func FailureResult(video, outputDir string, err error) ExtractionResult {
	msg := "unknown error"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return ExtractionResult{
		Video:     video,
		Status:    StatusError,
		Error:     msg,
		OutputDir: outputDir,
	}
}

// Succeeded reports whether the result is a success.
func (r ExtractionResult) Succeeded() bool {
	return r.Status == StatusSuccess
}

// Frames returns the number of extracted frames, or 0 for failures.
func (r ExtractionResult) Frames() int {
	if r.FramesExtracted == nil {
		return 0
	}
	return *r.FramesExtracted
}

// =============================================================================
// Extractor stage types
// =============================================================================

// ExtractInput contains everything needed to process one video.
type ExtractInput struct {
	VideoPath string
	OutputDir string
	Config    ExtractionConfig
}

// ExtractOutput is returned by a successful extraction.
type ExtractOutput struct {
	Frames       []FrameRecord
	MetadataPath string
	OutputDir    string
}

// VideoStem returns the file name of path without directory and extension.
func VideoStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
