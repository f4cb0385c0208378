// Package sampler selects which decoded frames of a video are kept.
package sampler

import (
	"math"

	"github.com/user/droneframes/pkg/pipeline"
	"github.com/user/droneframes/pkg/ports"
)

// NoEnd marks a plan without an end index.
const NoEnd = -1

// Plan is the frame selection policy for one video.
type Plan struct {
	SourceFPS     float64 `json:"source_fps"`
	TargetFPS     float64 `json:"target_fps"`
	Interval      int     `json:"interval"`
	StartIndex    int     `json:"start_index"`
	EndIndex      int     `json:"end_index"` // exclusive, NoEnd if unbounded
	BoundsIgnored bool    `json:"bounds_ignored,omitempty"`
}

// NewPlan computes the sampling interval and frame range for a source.
func NewPlan(info ports.VideoInfo, cfg pipeline.ExtractionConfig) Plan {
	plan := Plan{
		SourceFPS:  info.FPS,
		TargetFPS:  cfg.FPS,
		Interval:   Interval(info.FPS, cfg.FPS),
		StartIndex: 0,
		EndIndex:   NoEnd,
	}

	hasBounds := cfg.StartTime > 0 || cfg.EndTime != nil
	if !hasBounds {
		return plan
	}
	if info.FPS <= 0 {
		// Without a frame rate, times cannot be mapped to indices.
		plan.BoundsIgnored = true
		return plan
	}

	plan.StartIndex = TimeToFrame(cfg.StartTime, info.FPS)
	if cfg.EndTime != nil {
		plan.EndIndex = TimeToFrame(*cfg.EndTime, info.FPS)
	}
	return plan
}

// Interval returns floor(sourceFPS / targetFPS), falling back to 1 whenever
// the division is undefined or yields less than one frame.
func Interval(sourceFPS, targetFPS float64) int {
	if targetFPS <= 0 || sourceFPS <= 0 {
		return 1
	}
	interval := int(math.Floor(sourceFPS / targetFPS))
	if interval <= 0 {
		return 1
	}
	return interval
}

// TimeToFrame converts seconds to a frame index using round(t * fps).
func TimeToFrame(seconds, fps float64) int {
	if seconds <= 0 || fps <= 0 {
		return 0
	}
	return int(math.Round(seconds * fps))
}

// InRange reports whether an absolute frame index lies inside the plan's range.
func (p Plan) InRange(index int) bool {
	if index < p.StartIndex {
		return false
	}
	return p.EndIndex == NoEnd || index < p.EndIndex
}

// Keep reports whether the frame at an absolute index is emitted.
func (p Plan) Keep(index int) bool {
	if !p.InRange(index) {
		return false
	}
	interval := p.Interval
	if interval <= 0 {
		interval = 1
	}
	return (index-p.StartIndex)%interval == 0
}

// FrameBudget returns the number of frames in range, or -1 when unknown.
func (p Plan) FrameBudget(frameCount int) int {
	end := p.EndIndex
	if end == NoEnd || (frameCount > 0 && frameCount < end) {
		end = frameCount
	}
	if end <= 0 {
		return -1
	}
	if end <= p.StartIndex {
		return 0
	}
	return end - p.StartIndex
}
