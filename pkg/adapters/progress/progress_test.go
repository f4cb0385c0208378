package progress

import (
	"bytes"
	"strings"
	"testing"
)

func TestBarFactory_RendersCount(t *testing.T) {
	var buf bytes.Buffer
	p := NewBarFactory(&buf).New(4, "flight.mp4")

	p.Add(1)
	p.Add(1)

	out := buf.String()
	if !strings.Contains(out, "flight.mp4") {
		t.Errorf("expected description in output, got %q", out)
	}
	if !strings.Contains(out, "2/4") {
		t.Errorf("expected count 2/4 in output, got %q", out)
	}
	p.Finish()
}

func TestBarFactory_UnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	p := NewBarFactory(&buf).New(0, "scanning")

	p.Add(3)
	p.Finish()

	if buf.Len() == 0 {
		t.Error("expected spinner output")
	}
}

func TestNoop(t *testing.T) {
	p := NewNoop().New(10, "x")
	p.Add(5)
	p.Finish()
}

func TestForStderr_Quiet(t *testing.T) {
	if _, ok := ForStderr(true).(NoopFactory); !ok {
		t.Error("quiet mode should disable progress bars")
	}
}
