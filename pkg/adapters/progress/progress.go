// Package progress renders terminal progress bars for frame and video counts.
package progress

import (
	"io"
	"os"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/user/droneframes/pkg/ports"
)

// BarFactory implements ports.ProgressFactory with progressbar.
type BarFactory struct {
	out io.Writer
}

// NewBarFactory creates a factory writing to out.
func NewBarFactory(out io.Writer) *BarFactory {
	return &BarFactory{out: out}
}

// New creates a bar with a translated description. A total <= 0 renders
// an indeterminate spinner.
func (f *BarFactory) New(total int, description string) ports.Progress {
	if total <= 0 {
		total = -1
	}
	return &bar{pb: progressbar.NewOptions(total,
		progressbar.OptionSetWriter(f.out),
		progressbar.OptionSetDescription(l10n.T(description)),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)}
}

type bar struct {
	pb *progressbar.ProgressBar
}

func (b *bar) Add(n int) {
	_ = b.pb.Add(n)
}

func (b *bar) Finish() {
	_ = b.pb.Finish()
}

// NoopFactory creates reporters that draw nothing.
type NoopFactory struct{}

// NewNoop creates a NoopFactory.
func NewNoop() NoopFactory {
	return NoopFactory{}
}

func (NoopFactory) New(total int, description string) ports.Progress {
	return noop{}
}

type noop struct{}

func (noop) Add(int) {}
func (noop) Finish() {}

// ForStderr returns a bar factory when stderr is a terminal and quiet is
// false, and a no-op factory otherwise.
func ForStderr(quiet bool) ports.ProgressFactory {
	fd := os.Stderr.Fd()
	if quiet || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		return NewNoop()
	}
	return NewBarFactory(os.Stderr)
}

// Ensure types implement the ports
var (
	_ ports.ProgressFactory = (*BarFactory)(nil)
	_ ports.ProgressFactory = NoopFactory{}
)
