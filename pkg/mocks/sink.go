package mocks

import (
	"sync"

	"github.com/user/droneframes/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink.
type DebugSink struct {
	mu sync.RWMutex

	enabled bool

	Probes map[string][]byte
	Plans  map[string][]byte
}

// NewDebugSink creates a new mock DebugSink.
func NewDebugSink(enabled bool) *DebugSink {
	return &DebugSink{
		enabled: enabled,
		Probes:  make(map[string][]byte),
		Plans:   make(map[string][]byte),
	}
}

func (m *DebugSink) Enabled() bool {
	return m.enabled
}

func (m *DebugSink) SaveProbeJSON(stem string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Probes[stem] = data
	return nil
}

func (m *DebugSink) SavePlanJSON(stem string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Plans[stem] = data
	return nil
}

// GetPlan returns the saved plan for a video stem.
func (m *DebugSink) GetPlan(stem string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.Plans[stem]
	return data, ok
}

var _ ports.DebugSink = (*DebugSink)(nil)
