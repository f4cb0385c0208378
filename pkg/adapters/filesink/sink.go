// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"path/filepath"

	"github.com/user/droneframes/pkg/ports"
)

// Sink saves debug output to files under baseDir/<video stem>/.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveProbeJSON saves the probed stream properties.
func (s *Sink) SaveProbeJSON(stem string, data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, stem, "probe.json"), data)
}

// SavePlanJSON saves the sampling plan.
func (s *Sink) SavePlanJSON(stem string, data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, stem, "plan.json"), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
