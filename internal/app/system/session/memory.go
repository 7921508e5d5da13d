package session

import (
	"context"
	"sync"
)

// MemoryScope keeps the token in process memory. It is the ephemeral scope:
// the token disappears with the device's provider.
type MemoryScope struct {
	mu    sync.Mutex
	token string
}

func NewMemoryScope() *MemoryScope { return &MemoryScope{} }

func (m *MemoryScope) Load(context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token, nil
}

func (m *MemoryScope) Save(_ context.Context, token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryScope) Clear(context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}
