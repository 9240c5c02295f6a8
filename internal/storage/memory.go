package storage

import (
	"context"
	"sync"
)

// Memory is an in-process Store used in tests and as a fallback when the
// configured backend cannot be opened.
type Memory struct {
	mu     sync.RWMutex
	data   map[string][]byte
	putErr error
	puts   int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

// Get returns a copy of the stored value.
func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Put stores a copy of value, or returns the injected failure.
func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.putErr != nil {
		return m.putErr
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.data[key] = v
	m.puts++
	return nil
}

// FailPuts makes every subsequent Put return err; nil restores normal writes.
func (m *Memory) FailPuts(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putErr = err
}

// Puts returns the number of successful writes.
func (m *Memory) Puts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.puts
}
