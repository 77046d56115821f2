package credentials

import (
	"context"
	"sync"

	"github.com/apexfit/apexfit-go/internal/client/models"
)

// MemoryBackend keeps the pair in process memory. Used in tests and as a
// secondary backend when no durable location is configured.
type MemoryBackend struct {
	mu    sync.Mutex
	creds *models.Credentials

	// Fail, when set, makes every operation return it. Test hook for the
	// store's swallow-and-log behavior.
	Fail error
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (m *MemoryBackend) Name() string { return "memory" }

func (m *MemoryBackend) Get(_ context.Context) (*models.Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return nil, m.Fail
	}
	if m.creds == nil {
		return nil, nil
	}
	c := *m.creds
	return &c, nil
}

func (m *MemoryBackend) Set(_ context.Context, creds models.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.creds = &creds
	return nil
}

func (m *MemoryBackend) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.creds = nil
	return nil
}
