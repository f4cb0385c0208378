package logger

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/user/droneframes/pkg/ports"
)

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(ports.LevelWarn, &buf)

	log.Debug("debug %d", 1)
	log.Info("info %d", 2)
	log.Warn("warn %d", 3)
	log.Error("error %d", 4)

	out := buf.String()
	if strings.Contains(out, "debug 1") || strings.Contains(out, "info 2") {
		t.Errorf("expected debug and info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "warn 3") || !strings.Contains(out, "error 4") {
		t.Errorf("expected warn and error lines, got %q", out)
	}
}

func TestConsoleLogger_WithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(ports.LevelDebug, &buf).WithComponent("sampler")

	log.Debug("Interval %d", 30)

	if got := strings.TrimSpace(buf.String()); got != "[sampler] Interval 30" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestConsoleLogger_ConcurrentLinesDoNotInterleave(t *testing.T) {
	var buf bytes.Buffer
	root := NewWriter(ports.LevelInfo, &buf)

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			log := root.WithComponent("worker")
			for i := 0; i < 50; i++ {
				log.Info("video %d frame %d", id, i)
			}
		}(w)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 400 {
		t.Fatalf("expected 400 lines, got %d", len(lines))
	}
	for _, line := range lines {
		if !strings.HasPrefix(line, "[worker] video ") {
			t.Fatalf("malformed line %q", line)
		}
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, name := range []string{"debug", "info", "warn", "error", "quiet"} {
		level, err := ports.ParseLogLevel(name)
		if err != nil {
			t.Fatalf("ParseLogLevel(%q) failed: %v", name, err)
		}
		if level.String() != name {
			t.Errorf("round trip of %q gave %q", name, level.String())
		}
	}
	if _, err := ports.ParseLogLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}
