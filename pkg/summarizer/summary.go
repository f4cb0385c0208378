// Package summarizer builds, formats and persists batch run summaries.
package summarizer

import (
	"time"

	"github.com/user/droneframes/pkg/pipeline"
)

// BatchSummary is the record of one batch run.
type BatchSummary struct {
	Timestamp time.Time                   `json:"timestamp"`
	Settings  Settings                    `json:"settings"`
	Results   []pipeline.ExtractionResult `json:"results"`
}

// Settings contains the batch configuration.
type Settings struct {
	FPS       float64  `json:"fps"`
	Format    string   `json:"format"`
	Quality   int      `json:"quality"`
	Workers   int      `json:"workers"`
	StartTime *float64 `json:"start_time,omitempty"`
	EndTime   *float64 `json:"end_time,omitempty"`
}

// SettingsFrom derives the summary settings from an extraction config.
// Time bounds are only recorded when set.
func SettingsFrom(cfg pipeline.ExtractionConfig, workers int) Settings {
	s := Settings{
		FPS:     cfg.FPS,
		Format:  cfg.Format,
		Quality: cfg.Quality,
		Workers: workers,
		EndTime: cfg.EndTime,
	}
	if cfg.StartTime > 0 {
		start := cfg.StartTime
		s.StartTime = &start
	}
	return s
}

// Successful returns the successful results in their recorded order.
func (s *BatchSummary) Successful() []pipeline.ExtractionResult {
	return s.filter(true)
}

// Failed returns the failed results in their recorded order.
func (s *BatchSummary) Failed() []pipeline.ExtractionResult {
	return s.filter(false)
}

// Succeeded reports whether every video succeeded.
func (s *BatchSummary) Succeeded() bool {
	return len(s.Failed()) == 0
}

func (s *BatchSummary) filter(success bool) []pipeline.ExtractionResult {
	var out []pipeline.ExtractionResult
	for _, r := range s.Results {
		if r.Succeeded() == success {
			out = append(out, r)
		}
	}
	return out
}

// FileName returns batch_summary_{YYYYMMDD_HHMMSS}.json for t.
func FileName(t time.Time) string {
	return "batch_summary_" + t.Format("20060102_150405") + ".json"
}

// Builder provides a fluent interface for building a BatchSummary.
type Builder struct {
	summary *BatchSummary
}

// NewBuilder creates a new Builder stamped with at.
func NewBuilder(at time.Time) *Builder {
	return &Builder{summary: &BatchSummary{Timestamp: at}}
}

// WithSettings sets the batch settings.
func (b *Builder) WithSettings(settings Settings) *Builder {
	b.summary.Settings = settings
	return b
}

// WithResults sets the per-video results.
func (b *Builder) WithResults(results []pipeline.ExtractionResult) *Builder {
	b.summary.Results = append([]pipeline.ExtractionResult(nil), results...)
	return b
}

// Build returns the constructed BatchSummary.
func (b *Builder) Build() *BatchSummary {
	if b.summary.Results == nil {
		b.summary.Results = []pipeline.ExtractionResult{}
	}
	return b.summary
}
