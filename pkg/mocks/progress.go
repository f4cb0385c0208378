package mocks

import (
	"sync"

	"github.com/user/droneframes/pkg/ports"
)

// Progress is a mock implementation of ports.Progress and ports.ProgressFactory.
type Progress struct {
	mu       sync.Mutex
	Total    int
	Count    int
	Finished bool
	Created  int
}

func (m *Progress) New(total int, description string) ports.Progress {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Created++
	m.Total = total
	return m
}

func (m *Progress) Add(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Count += n
}

func (m *Progress) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Finished = true
}

var (
	_ ports.Progress        = (*Progress)(nil)
	_ ports.ProgressFactory = (*Progress)(nil)
)
