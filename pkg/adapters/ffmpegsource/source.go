// Package ffmpegsource decodes video files by streaming raw RGB frames out of
// an ffmpeg child process.
package ffmpegsource

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"sync"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"github.com/user/droneframes/pkg/ports"
)

// Opener implements ports.VideoOpener. Stream properties come from prober;
// frames are decoded by ffmpeg.
type Opener struct {
	prober ports.VideoProber
	logger ports.Logger
}

// NewOpener creates an Opener.
func NewOpener(prober ports.VideoProber, logger ports.Logger) *Opener {
	return &Opener{prober: prober, logger: logger.WithComponent("ffmpeg")}
}

// Open probes path and returns a Source. ffmpeg is not started until the
// first frame is requested.
func (o *Opener) Open(ctx context.Context, path string) (ports.VideoSource, error) {
	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		return nil, err
	}

	info, err := o.prober.Probe(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("probe %s: %w", path, err)
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoVideoStream, path)
	}

	return &Source{
		ctx:        ctx,
		ffmpegPath: ffmpegPath,
		path:       path,
		info:       info,
		logger:     o.logger,
	}, nil
}

// Source implements ports.VideoSource over an ffmpeg rawvideo pipe.
type Source struct {
	ctx        context.Context
	ffmpegPath string
	path       string
	info       ports.VideoInfo
	logger     ports.Logger

	mu      sync.Mutex
	start   int
	next    int
	cmd     *exec.Cmd
	stdout  io.ReadCloser
	reader  *bufio.Reader
	stderr  bytes.Buffer
	buf     []byte
	started bool
	ended   bool
	closed  bool
}

func (s *Source) Info() ports.VideoInfo {
	return s.info
}

// Seek sets the first frame ffmpeg will emit. The index is converted to a
// time offset and passed to ffmpeg as an input seek.
func (s *Source) Seek(frameIndex int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrAlreadyStarted
	}
	if s.info.FPS <= 0 {
		return ports.ErrSeekUnsupported
	}
	if frameIndex < 0 {
		frameIndex = 0
	}
	s.start = frameIndex
	s.next = frameIndex
	return nil
}

// Args returns the ffmpeg command line used to decode from startIndex.
func (s *Source) Args() []string {
	input := ffmpeg.KwArgs{"noautorotate": ""}
	if s.start > 0 && s.info.FPS > 0 {
		input["ss"] = strconv.FormatFloat(float64(s.start)/s.info.FPS, 'f', 6, 64)
	}

	return ffmpeg.Input(s.path, input).
		Output("pipe:", ffmpeg.KwArgs{
			"map":     "0:v:0",
			"an":      "",
			"sn":      "",
			"f":       "rawvideo",
			"pix_fmt": "rgb24",
			"vsync":   "passthrough",
		}).
		GlobalArgs("-nostdin", "-hide_banner", "-loglevel", "error").
		GetArgs()
}

func (s *Source) startProcess() error {
	args := s.Args()
	s.logger.Debug("ffmpeg %v", args)

	s.cmd = exec.CommandContext(s.ctx, s.ffmpegPath, args...)
	s.cmd.Stderr = &s.stderr

	stdout, err := s.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to get stdout pipe: %w", err)
	}
	s.stdout = stdout

	if err := s.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start ffmpeg: %w", err)
	}

	s.reader = bufio.NewReaderSize(stdout, 1<<20)
	s.buf = make([]byte, s.info.Width*s.info.Height*3)
	return nil
}

// Next reads one frame from ffmpeg. The returned image shares a buffer that
// is overwritten by the following call.
func (s *Source) Next() (ports.VideoFrame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.ended {
		return ports.VideoFrame{}, io.EOF
	}
	if !s.started {
		s.started = true
		if err := s.startProcess(); err != nil {
			s.ended = true
			return ports.VideoFrame{}, err
		}
	}

	_, err := io.ReadFull(s.reader, s.buf)
	if errors.Is(err, io.EOF) {
		s.ended = true
		if werr := s.wait(); werr != nil {
			return ports.VideoFrame{}, werr
		}
		return ports.VideoFrame{}, io.EOF
	}
	if err != nil {
		s.ended = true
		if werr := s.wait(); werr != nil {
			return ports.VideoFrame{}, werr
		}
		return ports.VideoFrame{}, fmt.Errorf("read frame %d: %w", s.next, err)
	}

	idx := s.next
	s.next++

	ts := 0
	if s.info.FPS > 0 {
		ts = int(float64(idx) * 1000 / s.info.FPS)
	}
	return ports.VideoFrame{
		Image:       NewRGB24(s.buf, s.info.Width, s.info.Height),
		Index:       idx,
		TimestampMs: ts,
	}, nil
}

func (s *Source) wait() error {
	if err := s.cmd.Wait(); err != nil {
		if ctxErr := s.ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("ffmpeg decoding failed: %w\nstderr: %s", err, s.stderr.String())
	}
	return nil
}

// Close stops ffmpeg if it is still running.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if s.cmd == nil || s.cmd.Process == nil || s.ended {
		return nil
	}
	// Stopped early (end bound or error): the pipe is still full.
	_ = s.cmd.Process.Kill()
	_ = s.cmd.Wait()
	return nil
}

// Ensure types implement the ports
var (
	_ ports.VideoOpener = (*Opener)(nil)
	_ ports.VideoSource = (*Source)(nil)
)
