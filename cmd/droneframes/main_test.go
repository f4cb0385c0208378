package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/user/droneframes/pkg/config"
)

// runSettings parses args with the extraction flags and returns the merged settings.
func runSettings(t *testing.T, args ...string) (config.Config, *float64, error) {
	t.Helper()

	var (
		cfg    config.Config
		end    *float64
		cfgErr error
	)
	app := &cli.App{
		Name: "droneframes",
		Commands: []*cli.Command{{
			Name:  "settings",
			Flags: append(extractionFlags(), &cli.IntFlag{Name: "workers", Value: 1}, &cli.StringSliceFlag{Name: "extensions"}),
			Action: func(c *cli.Context) error {
				cfg, cfgErr = settings(c)
				_, end = timeBounds(c)
				return nil
			},
		}},
	}
	if err := app.Run(append([]string{"droneframes", "settings"}, args...)); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return cfg, end, cfgErr
}

func TestSettings_Defaults(t *testing.T) {
	cfg, end, err := runSettings(t)
	if err != nil {
		t.Fatalf("settings() error = %v", err)
	}
	if cfg.FPS != 1.0 || cfg.Format != "jpg" || cfg.Quality != 95 || cfg.Workers != 1 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.DebugDir != defaultDebugDir {
		t.Errorf("DebugDir = %q, want %q", cfg.DebugDir, defaultDebugDir)
	}
	if end != nil {
		t.Errorf("end = %v, want nil", *end)
	}
}

func TestSettings_FlagsOverrideConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "droneframes.yaml")
	yaml := "fps: 2\nformat: png\nquality: 80\nworkers: 3\n"
	if err := os.WriteFile(path, []byte(yaml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, end, err := runSettings(t, "--config", path, "--quality", "60", "--end", "12.5")
	if err != nil {
		t.Fatalf("settings() error = %v", err)
	}
	if cfg.FPS != 2 || cfg.Format != "png" || cfg.Workers != 3 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.Quality != 60 {
		t.Errorf("Quality = %d, want flag value 60", cfg.Quality)
	}
	if end == nil || *end != 12.5 {
		t.Errorf("end = %v, want 12.5", end)
	}
}

func TestSettings_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"format", []string{"--format", "gif"}},
		{"quality too high", []string{"--quality", "101"}},
		{"quality zero", []string{"--quality", "0"}},
		{"log level", []string{"--log-level", "verbose"}},
		{"negative max dimension", []string{"--max-dimension", "-1"}},
		{"nan fps", []string{"--fps", "NaN"}},
		{"infinite fps", []string{"--fps", "Inf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := runSettings(t, tt.args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSettings_UppercaseFormat(t *testing.T) {
	cfg, _, err := runSettings(t, "--format", "PNG")
	if err != nil {
		t.Fatalf("settings() error = %v", err)
	}
	if cfg.Format != "png" {
		t.Errorf("Format = %q, want png", cfg.Format)
	}
}

func runApp(t *testing.T, args ...string) (int, string) {
	t.Helper()

	code := 0
	oldExiter, oldErrWriter := cli.OsExiter, cli.ErrWriter
	cli.OsExiter = func(c int) { code = c }
	var stderr bytes.Buffer
	cli.ErrWriter = &stderr
	t.Cleanup(func() {
		cli.OsExiter, cli.ErrWriter = oldExiter, oldErrWriter
	})

	app := newApp()
	var stdout bytes.Buffer
	app.Writer = &stdout
	err := app.Run(append([]string{"droneframes"}, args...))

	var exitErr cli.ExitCoder
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	} else if err != nil {
		code = 1
	}
	return code, stdout.String()
}

func TestBatch_MissingDirectory(t *testing.T) {
	out := t.TempDir()
	code, _ := runApp(t, "batch", "-i", filepath.Join(out, "missing"), "-o", out, "--quiet")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}

	entries, _ := os.ReadDir(out)
	if len(entries) != 0 {
		t.Errorf("expected no summary to be written, found %d entries", len(entries))
	}
}

func TestBatch_NoVideos(t *testing.T) {
	in := t.TempDir()
	if err := os.WriteFile(filepath.Join(in, "notes.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(t.TempDir(), "frames")

	code, _ := runApp(t, "batch", "-i", in, "-o", out, "--quiet")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("output directory should not be created when no videos are found")
	}
}

func TestBatch_FailedVideoWritesSummary(t *testing.T) {
	in := t.TempDir()
	if err := os.WriteFile(filepath.Join(in, "broken.mp4"), []byte("not a video"), 0644); err != nil {
		t.Fatal(err)
	}
	out := t.TempDir()

	code, _ := runApp(t, "batch", "-i", in, "-o", out, "--quiet")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}

	matches, _ := filepath.Glob(filepath.Join(out, "batch_summary_*.json"))
	if len(matches) != 1 {
		t.Errorf("expected one summary file, found %v", matches)
	}
}

func TestExtract_MissingInput(t *testing.T) {
	out := t.TempDir()
	code, _ := runApp(t, "extract", "-i", filepath.Join(out, "missing.mp4"), "-o", out, "--quiet")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestExtract_EndBeforeStart(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(video, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	code, _ := runApp(t, "extract", "-i", video, "-o", dir, "--start", "5", "--end", "2", "--quiet")
	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
}

func TestVersion(t *testing.T) {
	code, out := runApp(t, "version")
	if code != 0 {
		t.Errorf("exit code = %d, want 0", code)
	}
	if out == "" {
		t.Error("expected version output")
	}
}
