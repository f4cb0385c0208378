// Package ffprobe reads video stream properties through ffprobe, for
// containers that mp4probe cannot parse (AVI, Matroska, MPEG-PS, ...).
package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/user/droneframes/pkg/ports"
)

// ErrNoVideoStream is returned when ffprobe reports no video stream.
var ErrNoVideoStream = errors.New("ffprobe: no video stream found")

// ProbeFunc runs ffprobe on a file and returns its JSON report.
type ProbeFunc func(path string) (string, error)

// Prober implements ports.VideoProber using ffprobe.
type Prober struct {
	probe ProbeFunc
}

// New creates a Prober that runs the ffprobe binary found in PATH.
func New() *Prober {
	return &Prober{probe: func(path string) (string, error) {
		return ffmpeg.Probe(path)
	}}
}

// NewWithFunc creates a Prober backed by a custom probe function.
func NewWithFunc(fn ProbeFunc) *Prober {
	return &Prober{probe: fn}
}

// Probe returns the properties of the first video stream in path.
func (p *Prober) Probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	if err := ctx.Err(); err != nil {
		return ports.VideoInfo{}, err
	}

	out, err := p.probe(path)
	if err != nil {
		return ports.VideoInfo{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return Parse([]byte(out))
}

type report struct {
	Streams []stream `json:"streams"`
	Format  struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
	} `json:"format"`
}

type stream struct {
	CodecType    string `json:"codec_type"`
	CodecName    string `json:"codec_name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	NbFrames     string `json:"nb_frames"`
	Duration     string `json:"duration"`
	Tags         struct {
		// Matroska stores the frame count as a statistics tag.
		NumberOfFrames string `json:"NUMBER_OF_FRAMES"`
	} `json:"tags"`
}

// Parse converts an ffprobe JSON report (-show_format -show_streams) to VideoInfo.
func Parse(data []byte) (ports.VideoInfo, error) {
	var r report
	if err := json.Unmarshal(data, &r); err != nil {
		return ports.VideoInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	for _, s := range r.Streams {
		if s.CodecType != "video" {
			continue
		}
		// Cover art is exposed as a single-frame video stream without a rate.
		if s.CodecName == "mjpeg" || s.CodecName == "png" {
			if rate(s.AvgFrameRate) == 0 && rate(s.RFrameRate) == 0 {
				continue
			}
		}

		info := ports.VideoInfo{
			Width:     s.Width,
			Height:    s.Height,
			Codec:     s.CodecName,
			Container: firstName(r.Format.FormatName),
		}

		info.FPS = rate(s.AvgFrameRate)
		if info.FPS == 0 {
			info.FPS = rate(s.RFrameRate)
		}

		info.FrameCount = atoi(s.NbFrames)
		if info.FrameCount == 0 {
			info.FrameCount = atoi(s.Tags.NumberOfFrames)
		}
		if info.FrameCount == 0 && info.FPS > 0 {
			dur := atof(s.Duration)
			if dur == 0 {
				dur = atof(r.Format.Duration)
			}
			info.FrameCount = int(math.Round(dur * info.FPS))
		}

		return info, nil
	}

	return ports.VideoInfo{}, ErrNoVideoStream
}

// rate parses "num/den" or a plain number. Returns 0 for "0/0" or garbage.
func rate(s string) float64 {
	num, den, found := strings.Cut(s, "/")
	if !found {
		return atof(s)
	}
	n, d := atof(num), atof(den)
	if d == 0 {
		return 0
	}
	return n / d
}

func atof(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// firstName returns "matroska" for "matroska,webm".
func firstName(formatName string) string {
	name, _, _ := strings.Cut(formatName, ",")
	return name
}

// Ensure Prober implements ports.VideoProber
var _ ports.VideoProber = (*Prober)(nil)
