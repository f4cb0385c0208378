// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"github.com/user/droneframes/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
type Sink struct{}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveProbeJSON does nothing.
func (s *Sink) SaveProbeJSON(stem string, data []byte) error {
	return nil
}

// SavePlanJSON does nothing.
func (s *Sink) SavePlanJSON(stem string, data []byte) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
