package filesink

import (
	"path/filepath"
	"testing"

	"github.com/user/droneframes/pkg/mocks"
)

// testBaseDir is a platform-independent base directory for tests
var testBaseDir = filepath.Join("debug")

func TestSink_Enabled(t *testing.T) {
	sink := New(testBaseDir, mocks.NewFileSystem())

	if !sink.Enabled() {
		t.Error("expected Enabled to return true")
	}
}

func TestSink_SaveProbeJSON(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs)

	data := []byte(`{"fps": 29.97}`)
	if err := sink.SaveProbeJSON("DJI_0001", data); err != nil {
		t.Fatalf("SaveProbeJSON failed: %v", err)
	}

	expectedPath := filepath.Join(testBaseDir, "DJI_0001", "probe.json")
	saved, ok := fs.GetFile(expectedPath)
	if !ok {
		t.Fatalf("expected file to be saved at %s", expectedPath)
	}
	if string(saved) != string(data) {
		t.Errorf("expected %q, got %q", data, saved)
	}
}

func TestSink_SavePlanJSONPerVideo(t *testing.T) {
	fs := mocks.NewFileSystem()
	sink := New(testBaseDir, fs)

	sink.SavePlanJSON("a", []byte(`{"interval": 30}`))
	sink.SavePlanJSON("b", []byte(`{"interval": 15}`))

	for stem, want := range map[string]string{"a": `{"interval": 30}`, "b": `{"interval": 15}`} {
		saved, ok := fs.GetFile(filepath.Join(testBaseDir, stem, "plan.json"))
		if !ok {
			t.Fatalf("expected plan for %s", stem)
		}
		if string(saved) != want {
			t.Errorf("plan for %s: expected %q, got %q", stem, want, saved)
		}
	}
}
