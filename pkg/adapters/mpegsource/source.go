// Package mpegsource decodes MPEG-1 program streams (.mpg, .mpeg) in-process
// with a pure Go decoder, so no ffmpeg install is required for them.
package mpegsource

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/gen2brain/mpeg"

	"github.com/user/droneframes/pkg/ports"
)

// ErrNoVideoStream is returned when the stream carries no decodable video.
var ErrNoVideoStream = errors.New("mpegsource: no video stream found")

// Supports reports whether path has an MPEG-1 program stream extension.
func Supports(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".mpg") || strings.HasSuffix(lower, ".mpeg")
}

// Opener implements ports.VideoOpener for MPEG-1 files.
type Opener struct{}

// NewOpener creates an Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open parses the stream headers of path.
func (o *Opener) Open(ctx context.Context, path string) (ports.VideoSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	src, err := newSource(ctx, f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return src, nil
}

// videoDecoder is the part of *mpeg.MPEG used after the headers are read.
type videoDecoder interface {
	HasEnded() bool
	DecodeVideo() *mpeg.Frame
}

// Source implements ports.VideoSource over a gen2brain/mpeg decoder.
type Source struct {
	ctx    context.Context
	closer io.Closer
	mpg    videoDecoder
	info   ports.VideoInfo
	next   int
	closed bool
}

func newSource(ctx context.Context, rc io.ReadCloser) (src *Source, err error) {
	// The decoder panics on some malformed headers.
	defer func() {
		if r := recover(); r != nil {
			src, err = nil, fmt.Errorf("decode mpeg headers: %v", r)
		}
	}()

	mpg, err := mpeg.New(bufio.NewReader(rc))
	if err != nil {
		return nil, fmt.Errorf("decode mpeg headers: %w", err)
	}
	if mpg.Width() <= 0 || mpg.Height() <= 0 {
		return nil, ErrNoVideoStream
	}
	mpg.SetAudioEnabled(false)

	fps := mpg.Framerate()
	info := ports.VideoInfo{
		FPS:       fps,
		Width:     mpg.Width(),
		Height:    mpg.Height(),
		Codec:     "mpeg1video",
		Container: "mpeg",
	}
	if fps > 0 {
		info.FrameCount = int(math.Round(mpg.Duration().Seconds() * fps))
	}

	return &Source{ctx: ctx, closer: rc, mpg: mpg, info: info}, nil
}

func (s *Source) Info() ports.VideoInfo {
	return s.info
}

// Seek is not supported; frames before the start are decoded and discarded.
func (s *Source) Seek(frameIndex int) error {
	return ports.ErrSeekUnsupported
}

// Next decodes the next picture. A corrupt picture ends the stream with an
// error instead of a panic.
func (s *Source) Next() (ports.VideoFrame, error) {
	if s.closed {
		return ports.VideoFrame{}, io.EOF
	}
	if err := s.ctx.Err(); err != nil {
		return ports.VideoFrame{}, err
	}

	frame, err := s.decode()
	if err != nil {
		s.closed = true
		_ = s.closer.Close()
		return ports.VideoFrame{}, err
	}
	if frame == nil {
		return ports.VideoFrame{}, io.EOF
	}

	idx := s.next
	s.next++

	return ports.VideoFrame{
		Image:       frame.YCbCr(),
		Index:       idx,
		TimestampMs: int(math.Round(frame.Time * 1000)),
	}, nil
}

func (s *Source) decode() (frame *mpeg.Frame, err error) {
	defer func() {
		if r := recover(); r != nil {
			frame, err = nil, fmt.Errorf("decode frame %d: %v", s.next, r)
		}
	}()

	if s.mpg.HasEnded() {
		return nil, nil
	}
	return s.mpg.DecodeVideo(), nil
}

func (s *Source) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.closer.Close()
}

// Ensure types implement the ports
var (
	_ ports.VideoOpener = (*Opener)(nil)
	_ ports.VideoSource = (*Source)(nil)
)
