// Package metadata builds and persists the per-video JSON sidecar.
package metadata

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/user/droneframes/pkg/pipeline"
	"github.com/user/droneframes/pkg/ports"
)

// ExtractionInfo records the settings used for an extraction.
type ExtractionInfo struct {
	FPSExtracted float64  `json:"fps_extracted"`
	FramesSaved  int      `json:"frames_saved"`
	OutputFormat string   `json:"output_format"`
	Quality      int      `json:"quality"`
	StartTime    float64  `json:"start_time"`
	EndTime      *float64 `json:"end_time"`
}

// VideoMetadata is the content of {stem}_metadata.json.
type VideoMetadata struct {
	Filename        string         `json:"filename"`
	FPS             float64        `json:"fps"`
	FrameCount      int            `json:"frame_count"`
	Width           int            `json:"width"`
	Height          int            `json:"height"`
	DurationSeconds float64        `json:"duration_seconds"`
	ExtractionInfo  ExtractionInfo `json:"extraction_info"`
}

// New builds the sidecar for a finished video.
func New(videoPath string, info ports.VideoInfo, cfg pipeline.ExtractionConfig, framesSaved int) VideoMetadata {
	return VideoMetadata{
		Filename:        filepath.Base(videoPath),
		FPS:             info.FPS,
		FrameCount:      info.FrameCount,
		Width:           info.Width,
		Height:          info.Height,
		DurationSeconds: info.DurationSeconds(),
		ExtractionInfo: ExtractionInfo{
			FPSExtracted: cfg.FPS,
			FramesSaved:  framesSaved,
			OutputFormat: cfg.Format,
			Quality:      cfg.Quality,
			StartTime:    cfg.StartTime,
			EndTime:      cfg.EndTime,
		},
	}
}

// FileName returns {stem}_metadata.json.
func FileName(stem string) string {
	return stem + "_metadata.json"
}

// Write stores m in dir, replacing any previous sidecar, and returns its path.
func Write(fs ports.FileSystem, dir, stem string, m VideoMetadata) (string, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal metadata: %w", err)
	}

	if err := fs.MkdirAll(dir); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(dir, FileName(stem))
	if err := fs.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	return path, nil
}
