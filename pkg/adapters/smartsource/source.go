// Package smartsource picks a video decoder and prober for each file based on
// its container.
package smartsource

import (
	"context"
	"fmt"

	"github.com/user/droneframes/pkg/adapters/ffmpegsource"
	"github.com/user/droneframes/pkg/adapters/ffprobe"
	"github.com/user/droneframes/pkg/adapters/mp4probe"
	"github.com/user/droneframes/pkg/adapters/mpegsource"
	"github.com/user/droneframes/pkg/ports"
)

// Backend represents the decoding backend used for a file.
type Backend string

const (
	// BackendMPEG decodes MPEG-1 program streams in-process.
	BackendMPEG Backend = "mpeg"
	// BackendFFmpeg streams frames from an ffmpeg child process.
	BackendFFmpeg Backend = "ffmpeg"
)

// Options configures the smart source behavior.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
}

// BackendFor returns the backend that decodes path.
func BackendFor(path string) Backend {
	if mpegsource.Supports(path) {
		return BackendMPEG
	}
	return BackendFFmpeg
}

// Opener implements ports.VideoOpener by delegating to a per-file backend.
type Opener struct {
	mpeg   ports.VideoOpener
	ffmpeg ports.VideoOpener
	logger ports.Logger
}

// New creates an Opener with the default backends.
func New(opts Options, logger ports.Logger) *Opener {
	if opts.FFmpegPath != "" {
		ffmpegsource.SetFFmpegPath(opts.FFmpegPath)
	}
	prober := NewProber(mp4probe.New(), ffprobe.New(), logger)
	return NewWithBackends(mpegsource.NewOpener(), ffmpegsource.NewOpener(prober, logger), logger)
}

// NewWithBackends creates an Opener with explicit backends.
func NewWithBackends(mpeg, ffmpeg ports.VideoOpener, logger ports.Logger) *Opener {
	return &Opener{mpeg: mpeg, ffmpeg: ffmpeg, logger: logger.WithComponent("ffmpeg")}
}

// Open opens path with the backend chosen by BackendFor.
func (o *Opener) Open(ctx context.Context, path string) (ports.VideoSource, error) {
	backend := BackendFor(path)
	o.logger.Debug("Opening %s with %s backend", path, backend)

	switch backend {
	case BackendMPEG:
		return o.mpeg.Open(ctx, path)
	default:
		return o.ffmpeg.Open(ctx, path)
	}
}

// Prober reads ISO-BMFF headers directly and falls back to ffprobe for other
// containers or when the headers cannot be parsed.
type Prober struct {
	mp4      ports.VideoProber
	fallback ports.VideoProber
	logger   ports.Logger
}

// NewProber creates a Prober.
func NewProber(mp4, fallback ports.VideoProber, logger ports.Logger) *Prober {
	return &Prober{mp4: mp4, fallback: fallback, logger: logger.WithComponent("ffmpeg")}
}

func (p *Prober) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	if mp4probe.Supports(path) {
		info, err := p.mp4.Probe(ctx, path)
		if err == nil && info.FPS > 0 && info.FrameCount > 0 {
			return info, nil
		}
		if err != nil {
			p.logger.Debug("MP4 probe failed for %s, falling back to ffprobe: %v", path, err)
		}
	}

	info, err := p.fallback.Probe(ctx, path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("probe: %w", err)
	}
	return info, nil
}

// Ensure types implement the ports
var (
	_ ports.VideoOpener = (*Opener)(nil)
	_ ports.VideoProber = (*Prober)(nil)
)
