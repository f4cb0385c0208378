package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "droneframes.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.FPS != 1 || cfg.Format != "jpg" || cfg.Quality != 95 || cfg.Workers != 1 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
fps: 2
format: png
workers: 4
extensions: [".mp4", "mkv"]
ffmpeg_path: /opt/ffmpeg/bin/ffmpeg
max_dimension: 1920
`)

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.FPS != 2 || cfg.Format != "png" || cfg.Workers != 4 || cfg.MaxDimension != 1920 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Quality != 95 {
		t.Errorf("missing keys should keep defaults, got quality %d", cfg.Quality)
	}
	if !reflect.DeepEqual(cfg.Extensions, []string{".mp4", "mkv"}) {
		t.Errorf("Extensions = %v", cfg.Extensions)
	}
	if cfg.FFmpegPath != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("FFmpegPath = %q", cfg.FFmpegPath)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	tests := map[string]string{
		"bad yaml":      "fps: [1, 2",
		"bad format":    "format: gif",
		"bad quality":   "quality: 101",
		"bad workers":   "workers: 0",
		"bad log level": "log_level: verbose",
		"negative dim":  "max_dimension: -1",
		"nan fps":       "fps: .nan",
		"infinite fps":  "fps: .inf",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFromFile(writeConfig(t, content)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadFromFile_Missing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/droneframes.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestToExtractionConfig(t *testing.T) {
	cfg := Defaults()
	cfg.MaxDimension = 1024
	end := 12.5

	ext := cfg.ToExtractionConfig(2, &end)
	if ext.FPS != 1 || ext.Format != "jpg" || ext.Quality != 95 || ext.MaxDimension != 1024 {
		t.Errorf("unexpected extraction config %+v", ext)
	}
	if ext.StartTime != 2 || ext.EndTime == nil || *ext.EndTime != 12.5 {
		t.Errorf("unexpected bounds %+v", ext)
	}
	if err := ext.Validate(); err != nil {
		t.Errorf("expected valid config: %v", err)
	}
}
