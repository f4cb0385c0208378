// Package extractor implements the per-video extraction stage shared by the
// extract and batch commands.
package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/user/droneframes/pkg/framewriter"
	"github.com/user/droneframes/pkg/metadata"
	"github.com/user/droneframes/pkg/pipeline"
	"github.com/user/droneframes/pkg/ports"
	"github.com/user/droneframes/pkg/sampler"
)

// Options tunes console output of the stage.
type Options struct {
	// Report logs the per-video summary lines at info level. Batch runs leave
	// it off so parallel workers do not interleave their reports.
	Report bool
}

// Stage opens a video, samples it and writes frames plus the metadata sidecar.
type Stage struct {
	opener   ports.VideoOpener
	encoder  ports.ImageEncoder
	fs       ports.FileSystem
	sink     ports.DebugSink
	progress ports.ProgressFactory
	logger   ports.Logger
	opts     Options
}

// New creates a new extraction stage.
func New(
	opener ports.VideoOpener,
	encoder ports.ImageEncoder,
	fs ports.FileSystem,
	sink ports.DebugSink,
	progress ports.ProgressFactory,
	logger ports.Logger,
	opts Options,
) *Stage {
	return &Stage{
		opener:   opener,
		encoder:  encoder,
		fs:       fs,
		sink:     sink,
		progress: progress,
		logger:   logger.WithComponent("extractor"),
		opts:     opts,
	}
}

// Execute extracts the frames of input.VideoPath into input.OutputDir.
func (s *Stage) Execute(ctx context.Context, input pipeline.ExtractInput) (pipeline.ExtractOutput, error) {
	output := pipeline.ExtractOutput{OutputDir: input.OutputDir}
	cfg := input.Config

	if err := cfg.Validate(); err != nil {
		return output, fmt.Errorf("invalid config: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return output, err
	}

	src, err := s.opener.Open(ctx, input.VideoPath)
	if err != nil {
		return output, fmt.Errorf("open video: %w", err)
	}
	defer func() {
		if err := src.Close(); err != nil {
			s.logger.Debug("Close %s: %v", input.VideoPath, err)
		}
	}()

	stem := pipeline.VideoStem(input.VideoPath)
	info := src.Info()
	plan := sampler.NewPlan(info, cfg)

	s.report("Processing: %s", input.VideoPath)
	s.report("Resolution: %dx%d", info.Width, info.Height)
	s.report("Duration: %.2f seconds", info.DurationSeconds())
	s.report("Original FPS: %.2f", info.FPS)
	if plan.BoundsIgnored {
		s.logger.Warn("Frame rate of %s is unknown; start and end times are ignored", input.VideoPath)
	}
	s.report("Extract every %d frames (%g FPS)", plan.Interval, cfg.FPS)
	s.report("Frame range: %d to %s", plan.StartIndex, endLabel(plan, info))
	s.report("Output format: %s", strings.ToUpper(cfg.Format))
	s.report("Quality: %d", cfg.Quality)

	s.saveDebug(stem, info, plan)

	bar := s.progress.New(plan.FrameBudget(info.FrameCount), "Extracting frames")
	defer bar.Finish()

	smp := sampler.New(src, plan)
	smp.OnFrame = func(int) { bar.Add(1) }

	writer := framewriter.New(s.fs, s.encoder, input.OutputDir, stem, cfg)
	seq := 0
	for smp.Next() {
		if err := ctx.Err(); err != nil {
			return output, err
		}
		frame := smp.Sample().Frame
		rec, err := writer.Write(frame.Image, seq, frame.Index, frame.TimestampMs)
		if err != nil {
			return output, err
		}
		output.Frames = append(output.Frames, rec)
		seq++
	}
	if err := smp.Err(); err != nil {
		return output, err
	}
	s.logger.Debug("Saved %d frames of %s", seq, input.VideoPath)

	meta := metadata.New(input.VideoPath, info, cfg, seq)
	path, err := metadata.Write(s.fs, input.OutputDir, stem, meta)
	if err != nil {
		return output, err
	}
	output.MetadataPath = path

	s.report("Extraction complete!")
	s.report("Frames saved: %d", seq)
	s.report("Output directory: %s", input.OutputDir)
	s.report("Metadata saved: %s", path)

	return output, nil
}

func (s *Stage) report(msg string, args ...interface{}) {
	if s.opts.Report {
		s.logger.Info(msg, args...)
	} else {
		s.logger.Debug(msg, args...)
	}
}

func (s *Stage) saveDebug(stem string, info ports.VideoInfo, plan sampler.Plan) {
	if !s.sink.Enabled() {
		return
	}
	if data, err := json.MarshalIndent(info, "", "  "); err == nil {
		if err := s.sink.SaveProbeJSON(stem, data); err != nil {
			s.logger.Warn("Failed to save debug output: %v", err)
		}
	}
	if data, err := json.MarshalIndent(plan, "", "  "); err == nil {
		if err := s.sink.SavePlanJSON(stem, data); err != nil {
			s.logger.Warn("Failed to save debug output: %v", err)
		}
	}
}

func endLabel(plan sampler.Plan, info ports.VideoInfo) string {
	if plan.EndIndex != sampler.NoEnd {
		return fmt.Sprint(plan.EndIndex)
	}
	if info.FrameCount > 0 {
		return fmt.Sprint(info.FrameCount)
	}
	return "end"
}

// Ensure Stage implements pipeline.Stage
var _ pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractOutput] = (*Stage)(nil)
