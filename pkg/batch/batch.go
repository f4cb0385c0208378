// Package batch runs the extraction stage over many videos, sequentially or
// through a fixed pool of workers, and records one result per video.
package batch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/user/droneframes/pkg/pipeline"
	"github.com/user/droneframes/pkg/ports"
	"github.com/user/droneframes/pkg/summarizer"
)

// ErrOutputClash is reported for a video whose output directory is already
// claimed by an earlier video of the same batch, e.g. clip.MP4 and clip.mov.
var ErrOutputClash = errors.New("batch: output directory already used")

// Orchestrator coordinates a batch run.
type Orchestrator struct {
	extract  pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractOutput]
	fs       ports.FileSystem
	progress ports.ProgressFactory
	logger   ports.Logger
	workers  int
	now      func() time.Time
}

// New creates a new Orchestrator. Workers below 1 are treated as 1.
func New(
	extract pipeline.Stage[pipeline.ExtractInput, pipeline.ExtractOutput],
	fs ports.FileSystem,
	progress ports.ProgressFactory,
	logger ports.Logger,
	workers int,
) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{
		extract:  extract,
		fs:       fs,
		progress: progress,
		logger:   logger.WithComponent("batch"),
		workers:  workers,
		now:      time.Now,
	}
}

// Workers returns the effective number of workers.
func (o *Orchestrator) Workers() int {
	return o.workers
}

// OutputDir returns the directory the frames of video are written to.
func OutputDir(outputRoot, video string) string {
	return filepath.Join(outputRoot, pipeline.VideoStem(video))
}

// Run extracts every video and returns exactly one result per input.
// With one worker, results follow the input order; otherwise they are
// collected in completion order. A failing or panicking video never stops
// the batch. The only error returned is failing to create outputRoot.
func (o *Orchestrator) Run(ctx context.Context, videos []string, outputRoot string, cfg pipeline.ExtractionConfig) ([]pipeline.ExtractionResult, error) {
	if err := o.fs.MkdirAll(outputRoot); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	bar := o.progress.New(len(videos), "Overall progress")
	defer bar.Finish()

	clashes := outputClashes(videos, outputRoot)
	process := func(video string) pipeline.ExtractionResult {
		if first, ok := clashes[video]; ok {
			dir := OutputDir(outputRoot, video)
			o.logger.Warn("Skipping %s: %s is already the output directory of %s", video, dir, first)
			return pipeline.FailureResult(video, dir, fmt.Errorf("%w: %s is also the output of %s", ErrOutputClash, dir, first))
		}
		return o.runOne(ctx, video, outputRoot, cfg)
	}

	if o.workers == 1 || len(videos) <= 1 {
		o.logger.Info("Processing %d videos sequentially...", len(videos))
		return o.runSequential(videos, process, bar), nil
	}

	o.logger.Info("Processing %d videos in parallel with %d workers...", len(videos), o.workers)
	return o.runParallel(videos, process, bar), nil
}

// outputClashes maps every video whose output directory was already claimed
// by an earlier entry of videos to that earlier video.
func outputClashes(videos []string, outputRoot string) map[string]string {
	owners := make(map[string]string, len(videos))
	clashes := make(map[string]string)
	for _, video := range videos {
		dir := OutputDir(outputRoot, video)
		if first, ok := owners[dir]; ok {
			clashes[video] = first
			continue
		}
		owners[dir] = video
	}
	return clashes
}

func (o *Orchestrator) runSequential(videos []string, process func(string) pipeline.ExtractionResult, bar ports.Progress) []pipeline.ExtractionResult {
	results := make([]pipeline.ExtractionResult, 0, len(videos))
	for _, video := range videos {
		results = append(results, process(video))
		bar.Add(1)
	}
	return results
}

func (o *Orchestrator) runParallel(videos []string, process func(string) pipeline.ExtractionResult, bar ports.Progress) []pipeline.ExtractionResult {
	numWorkers := o.workers
	if numWorkers > len(videos) {
		numWorkers = len(videos)
	}

	jobs := make(chan string, len(videos))
	results := make(chan pipeline.ExtractionResult, len(videos))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go worker(&wg, process, jobs, results)
	}

	for _, video := range videos {
		jobs <- video
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	collected := make([]pipeline.ExtractionResult, 0, len(videos))
	for result := range results {
		collected = append(collected, result)
		bar.Add(1)
	}
	return collected
}

// worker processes videos from the jobs channel. Every job yields a result,
// including after cancellation.
func worker(
	wg *sync.WaitGroup,
	process func(string) pipeline.ExtractionResult,
	jobs <-chan string,
	results chan<- pipeline.ExtractionResult,
) {
	defer wg.Done()

	for video := range jobs {
		results <- process(video)
	}
}

// runOne converts every outcome of a single video, panics included, into a result.
func (o *Orchestrator) runOne(ctx context.Context, video, outputRoot string, cfg pipeline.ExtractionConfig) (result pipeline.ExtractionResult) {
	outputDir := OutputDir(outputRoot, video)

	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("Panic while processing %s: %v", video, r)
			result = pipeline.FailureResult(video, outputDir, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := ctx.Err(); err != nil {
		return pipeline.FailureResult(video, outputDir, err)
	}

	o.logger.Debug("Extracting %s into %s", video, outputDir)
	out, err := o.extract.Execute(ctx, pipeline.ExtractInput{
		VideoPath: video,
		OutputDir: outputDir,
		Config:    cfg,
	})
	if err != nil {
		o.logger.Debug("Failed %s: %v", video, err)
		return pipeline.FailureResult(video, outputDir, err)
	}
	return pipeline.SuccessResult(video, outputDir, len(out.Frames))
}

// WriteSummary persists the results as batch_summary_{timestamp}.json in
// outputRoot and returns the summary together with its path.
func (o *Orchestrator) WriteSummary(outputRoot string, cfg pipeline.ExtractionConfig, results []pipeline.ExtractionResult) (*summarizer.BatchSummary, string, error) {
	summary := summarizer.NewBuilder(o.now()).
		WithSettings(summarizer.SettingsFrom(cfg, o.workers)).
		WithResults(results).
		Build()

	path, err := summarizer.WriteJSON(o.fs, outputRoot, summary)
	if err != nil {
		return summary, "", err
	}
	return summary, path, nil
}

// Succeeded reports whether no result is a failure.
func Succeeded(results []pipeline.ExtractionResult) bool {
	for _, r := range results {
		if !r.Succeeded() {
			return false
		}
	}
	return true
}
