// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"errors"
	"image"
)

// ErrSeekUnsupported is returned by VideoSource.Seek when the source can only
// be read from its first frame.
var ErrSeekUnsupported = errors.New("ports: seek not supported")

// VideoInfo describes a video stream as reported by its container or probe.
type VideoInfo struct {
	FPS        float64 // Frames per second (0 if unknown)
	FrameCount int     // Total number of frames (0 if unknown)
	Width      int
	Height     int
	Codec      string // e.g. "h264", "hevc", "mpeg1video"
	Container  string // e.g. "mp4", "matroska"
}

// DurationSeconds returns FrameCount / FPS, or 0 when the frame rate is unknown.
func (i VideoInfo) DurationSeconds() float64 {
	if i.FPS <= 0 {
		return 0
	}
	return float64(i.FrameCount) / i.FPS
}

// VideoFrame represents a decoded video frame with timing information.
type VideoFrame struct {
	Image       image.Image
	Index       int // Absolute frame index within the stream
	TimestampMs int // Presentation time in milliseconds
}

// VideoSource is a sequential, read-only video stream.
// A source is owned by a single caller and must be closed after use.
type VideoSource interface {
	// Info returns stream properties known before decoding starts.
	Info() VideoInfo

	// Seek positions the stream so the next frame read has the given index.
	// It must be called before the first call to Next.
	// Returns ErrSeekUnsupported if the source cannot seek.
	Seek(frameIndex int) error

	// Next decodes the next frame. Returns io.EOF at the end of the stream.
	// The frame's image is only valid until the following call to Next.
	Next() (VideoFrame, error)

	// Close releases decoder resources.
	Close() error
}

// VideoOpener opens video files as VideoSources.
type VideoOpener interface {
	Open(ctx context.Context, path string) (VideoSource, error)
}

// VideoProber reads stream properties without decoding frames.
type VideoProber interface {
	Probe(ctx context.Context, path string) (VideoInfo, error)
}
