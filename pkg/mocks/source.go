package mocks

import (
	"context"
	"fmt"
	"image"
	"io"
	"sync"

	"github.com/user/droneframes/pkg/ports"
)

// VideoSource is a mock implementation of ports.VideoSource that produces
// FrameCount blank frames at the configured frame rate.
type VideoSource struct {
	VideoInfo ports.VideoInfo
	CanSeek   bool

	// FailAt makes Next return an error when reaching this index (-1 disables).
	FailAt int
	// PanicAt makes Next panic when reaching this index (-1 disables).
	PanicAt int

	next   int
	Reads  int
	Seeked int
	Closed bool
}

// NewVideoSource creates a mock source with frameCount frames of 8x6 pixels.
func NewVideoSource(fps float64, frameCount int) *VideoSource {
	return &VideoSource{
		VideoInfo: ports.VideoInfo{
			FPS:        fps,
			FrameCount: frameCount,
			Width:      8,
			Height:     6,
			Codec:      "mock",
		},
		FailAt:  -1,
		PanicAt: -1,
		Seeked:  -1,
	}
}

func (m *VideoSource) Info() ports.VideoInfo {
	return m.VideoInfo
}

func (m *VideoSource) Seek(frameIndex int) error {
	if !m.CanSeek {
		return ports.ErrSeekUnsupported
	}
	m.Seeked = frameIndex
	m.next = frameIndex
	return nil
}

func (m *VideoSource) Next() (ports.VideoFrame, error) {
	if m.next >= m.VideoInfo.FrameCount {
		return ports.VideoFrame{}, io.EOF
	}
	if m.next == m.FailAt {
		return ports.VideoFrame{}, fmt.Errorf("corrupt packet at frame %d", m.next)
	}
	if m.next == m.PanicAt {
		panic(fmt.Sprintf("decoder crashed at frame %d", m.next))
	}

	idx := m.next
	m.next++
	m.Reads++

	ts := 0
	if m.VideoInfo.FPS > 0 {
		ts = int(float64(idx) * 1000 / m.VideoInfo.FPS)
	}
	return ports.VideoFrame{
		Image:       image.NewRGBA(image.Rect(0, 0, m.VideoInfo.Width, m.VideoInfo.Height)),
		Index:       idx,
		TimestampMs: ts,
	}, nil
}

func (m *VideoSource) Close() error {
	m.Closed = true
	return nil
}

var _ ports.VideoSource = (*VideoSource)(nil)

// VideoOpener is a mock implementation of ports.VideoOpener.
// Sources are looked up by path; unknown paths fail to open.
type VideoOpener struct {
	mu      sync.Mutex
	Sources map[string]*VideoSource
	Errors  map[string]error
	Opened  []string
}

// NewVideoOpener creates an empty mock opener.
func NewVideoOpener() *VideoOpener {
	return &VideoOpener{
		Sources: make(map[string]*VideoSource),
		Errors:  make(map[string]error),
	}
}

// Add registers a source for path.
func (m *VideoOpener) Add(path string, src *VideoSource) *VideoOpener {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sources[path] = src
	return m
}

func (m *VideoOpener) Open(ctx context.Context, path string) (ports.VideoSource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Opened = append(m.Opened, path)
	if err, ok := m.Errors[path]; ok {
		return nil, err
	}
	src, ok := m.Sources[path]
	if !ok {
		return nil, fmt.Errorf("open %s: invalid data found when processing input", path)
	}
	return src, nil
}

var _ ports.VideoOpener = (*VideoOpener)(nil)
