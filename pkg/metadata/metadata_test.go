package metadata

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/user/droneframes/pkg/mocks"
	"github.com/user/droneframes/pkg/pipeline"
	"github.com/user/droneframes/pkg/ports"
)

func TestNew(t *testing.T) {
	info := ports.VideoInfo{FPS: 30, FrameCount: 5400, Width: 3840, Height: 2160}
	cfg := pipeline.DefaultExtractionConfig()

	m := New("/videos/DJI_0001.MP4", info, cfg, 180)

	if m.Filename != "DJI_0001.MP4" {
		t.Errorf("Filename = %q", m.Filename)
	}
	if m.DurationSeconds != 180 {
		t.Errorf("DurationSeconds = %v, want 180", m.DurationSeconds)
	}
	if m.ExtractionInfo.FramesSaved != 180 || m.ExtractionInfo.OutputFormat != "jpg" {
		t.Errorf("unexpected extraction info %+v", m.ExtractionInfo)
	}
}

func TestNew_UnknownFPS(t *testing.T) {
	m := New("a.avi", ports.VideoInfo{FrameCount: 100}, pipeline.DefaultExtractionConfig(), 0)
	if m.DurationSeconds != 0 {
		t.Errorf("DurationSeconds = %v, want 0", m.DurationSeconds)
	}
}

func TestWrite(t *testing.T) {
	fs := mocks.NewFileSystem()
	end := 60.0
	cfg := pipeline.DefaultExtractionConfig()
	cfg.StartTime = 10
	cfg.EndTime = &end

	m := New("/videos/flight.mp4", ports.VideoInfo{FPS: 30, FrameCount: 900, Width: 1920, Height: 1080}, cfg, 50)
	path, err := Write(fs, "/out/flight", "flight", m)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if path != "/out/flight/flight_metadata.json" {
		t.Errorf("path = %q", path)
	}

	data, _ := fs.GetFile(path)
	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"filename", "fps", "frame_count", "width", "height", "duration_seconds", "extraction_info"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	ei := decoded["extraction_info"].(map[string]interface{})
	if ei["end_time"] != 60.0 || ei["start_time"] != 10.0 || ei["frames_saved"] != 50.0 {
		t.Errorf("unexpected extraction_info %v", ei)
	}
}

func TestWrite_NullEndTime(t *testing.T) {
	fs := mocks.NewFileSystem()
	m := New("a.mp4", ports.VideoInfo{FPS: 30}, pipeline.DefaultExtractionConfig(), 0)

	path, err := Write(fs, "/out", "a", m)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, _ := fs.GetFile(path)
	var decoded struct {
		ExtractionInfo map[string]json.RawMessage `json:"extraction_info"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatal(err)
	}
	if string(decoded.ExtractionInfo["end_time"]) != "null" {
		t.Errorf("end_time = %s, want null", decoded.ExtractionInfo["end_time"])
	}
}

func TestWrite_Overwrites(t *testing.T) {
	fs := mocks.NewFileSystem()
	for _, frames := range []int{3, 7} {
		m := New("a.mp4", ports.VideoInfo{FPS: 30}, pipeline.DefaultExtractionConfig(), frames)
		if _, err := Write(fs, "/out", "a", m); err != nil {
			t.Fatal(err)
		}
	}

	data, _ := fs.GetFile("/out/a_metadata.json")
	var m VideoMetadata
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatal(err)
	}
	if m.ExtractionInfo.FramesSaved != 7 {
		t.Errorf("FramesSaved = %d, want 7", m.ExtractionInfo.FramesSaved)
	}
}

func TestWrite_Error(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(path string, data []byte) error {
		return errors.New("disk full")
	}

	if _, err := Write(fs, "/out", "a", VideoMetadata{}); err == nil {
		t.Error("expected error")
	}
}
