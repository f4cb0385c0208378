package ffmpegsource

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/user/droneframes/pkg/adapters/logger"
	"github.com/user/droneframes/pkg/adapters/mp4probe"
	"github.com/user/droneframes/pkg/ports"
)

// createTestVideo renders a lavfi test pattern to an MP4 file.
func createTestVideo(t *testing.T, seconds, fps int) string {
	t.Helper()

	ffmpegPath, err := FindFFmpeg()
	if err != nil {
		t.Skip("ffmpeg not available")
	}

	path := filepath.Join(t.TempDir(), "testsrc.mp4")
	cmd := exec.Command(ffmpegPath, "-y", "-hide_banner", "-loglevel", "error",
		"-f", "lavfi", "-i", "testsrc=size=64x48:rate="+strconv.Itoa(fps),
		"-t", strconv.Itoa(seconds), "-pix_fmt", "yuv420p", path)
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Skipf("cannot create test video: %v: %s", err, out)
	}
	return path
}

func openTestVideo(t *testing.T, path string) ports.VideoSource {
	t.Helper()
	opener := NewOpener(mp4probe.New(), logger.NewNoop())
	src, err := opener.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { src.Close() })
	return src
}

func TestSource_ReadsAllFrames(t *testing.T) {
	path := createTestVideo(t, 2, 10)
	src := openTestVideo(t, path)

	info := src.Info()
	if info.Width != 64 || info.Height != 48 {
		t.Errorf("size = %dx%d, want 64x48", info.Width, info.Height)
	}

	count := 0
	for {
		frame, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if frame.Index != count {
			t.Errorf("frame %d has index %d", count, frame.Index)
		}
		if frame.Image.Bounds().Dx() != 64 {
			t.Errorf("unexpected frame width %d", frame.Image.Bounds().Dx())
		}
		count++
	}

	if count != 20 {
		t.Errorf("decoded %d frames, want 20", count)
	}
}

func TestSource_SeekStartsAtIndex(t *testing.T) {
	path := createTestVideo(t, 3, 10)
	src := openTestVideo(t, path)

	if err := src.Seek(15); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}

	frame, err := src.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if frame.Index != 15 {
		t.Errorf("first index after seek = %d, want 15", frame.Index)
	}
	if frame.TimestampMs != 1500 {
		t.Errorf("timestamp = %d, want 1500", frame.TimestampMs)
	}

	if err := src.Seek(20); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("expected ErrAlreadyStarted, got %v", err)
	}
}

func TestSource_CloseBeforeEnd(t *testing.T) {
	path := createTestVideo(t, 3, 10)
	src := openTestVideo(t, path)

	if _, err := src.Next(); err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF after Close, got %v", err)
	}
}

func TestOpener_CorruptFile(t *testing.T) {
	if !IsFFmpegAvailable() {
		t.Skip("ffmpeg not available")
	}
	opener := NewOpener(mp4probe.New(), logger.NewNoop())
	if _, err := opener.Open(context.Background(), "/nonexistent/flight.mp4"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestSource_Args(t *testing.T) {
	src := &Source{
		path: "/videos/flight.mp4",
		info: ports.VideoInfo{FPS: 30, Width: 64, Height: 48},
	}
	if err := src.Seek(45); err != nil {
		t.Fatalf("Seek failed: %v", err)
	}

	args := strings.Join(src.Args(), " ")
	for _, want := range []string{
		"-ss 1.500000",
		"-i /videos/flight.mp4",
		"-f rawvideo",
		"-pix_fmt rgb24",
		"-map 0:v:0",
		"pipe:",
	} {
		if !strings.Contains(args, want) {
			t.Errorf("args %q missing %q", args, want)
		}
	}
	if strings.Index(args, "-ss") > strings.Index(args, "-i ") {
		t.Error("-ss must be an input option")
	}
}

func TestSource_SeekWithoutFPS(t *testing.T) {
	src := &Source{info: ports.VideoInfo{Width: 64, Height: 48}}
	if err := src.Seek(10); !errors.Is(err, ports.ErrSeekUnsupported) {
		t.Errorf("expected ErrSeekUnsupported, got %v", err)
	}
}

func TestSource_StartFailureEndsStream(t *testing.T) {
	src := &Source{
		ctx:        context.Background(),
		ffmpegPath: filepath.Join(t.TempDir(), "missing-ffmpeg"),
		path:       "clip.mp4",
		info:       ports.VideoInfo{FPS: 30, FrameCount: 30, Width: 64, Height: 48},
		logger:     logger.NewNoop(),
	}

	if _, err := src.Next(); err == nil || errors.Is(err, io.EOF) {
		t.Fatalf("expected start error, got %v", err)
	}
	if _, err := src.Next(); !errors.Is(err, io.EOF) {
		t.Errorf("expected io.EOF after a failed start, got %v", err)
	}
	if err := src.Close(); err != nil {
		t.Errorf("Close after failed start: %v", err)
	}
}

func TestFindFFmpeg_CustomPathMissing(t *testing.T) {
	SetFFmpegPath("/nonexistent/ffmpeg")
	defer SetFFmpegPath("")

	if _, err := FindFFmpeg(); !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound, got %v", err)
	}
}

func TestFindFFmpeg_EnvPathMissing(t *testing.T) {
	t.Setenv("FFMPEG_PATH", "/nonexistent/ffmpeg")

	if _, err := FindFFmpeg(); !errors.Is(err, ErrFFmpegNotFound) {
		t.Errorf("expected ErrFFmpegNotFound, got %v", err)
	}
}
