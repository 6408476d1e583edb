package storage

import (
	"sync"

	"careerhub/internal/hub"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Values are copied on the way in and out, so callers may reuse buffers.
// This implementation is safe for concurrent use.
type MemoryStorage struct {
	values map[string][]byte
	mu     sync.RWMutex
}

// NewMemoryStorage creates a new, empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (m *MemoryStorage) Get(key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

// Set stores a copy of value under key, replacing any previous value.
func (m *MemoryStorage) Set(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Keys returns the stored keys in no particular order.
func (m *MemoryStorage) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		keys = append(keys, k)
	}
	return keys
}

// ValidateSetup always succeeds for in-memory storage.
func (m *MemoryStorage) ValidateSetup() error {
	return nil
}

func (m *MemoryStorage) Close() error {
	return nil
}

// Compile-time check that MemoryStorage implements hub.Storage interface
var _ hub.Storage = (*MemoryStorage)(nil)
