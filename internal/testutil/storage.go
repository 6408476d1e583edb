package testutil

import (
	"errors"
	"sync"

	"careerhub/internal/hub"
	"careerhub/internal/storage"
)

// ErrStorageUnavailable is returned by FailingStorage.
var ErrStorageUnavailable = errors.New("storage unavailable")

// NewTestStorage creates a new in-memory storage for testing.
func NewTestStorage() *storage.MemoryStorage {
	return storage.NewMemoryStorage()
}

// FailingStorage wraps a MemoryStorage and fails reads and writes on demand.
type FailingStorage struct {
	*storage.MemoryStorage

	mu        sync.Mutex
	failGet   bool
	failSet   bool
	writeKeys []string
}

// NewFailingStorage creates a FailingStorage that fails Set from the start.
func NewFailingStorage() *FailingStorage {
	return &FailingStorage{MemoryStorage: NewTestStorage(), failSet: true}
}

// FailGets controls whether Get returns ErrStorageUnavailable.
func (f *FailingStorage) FailGets(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failGet = fail
}

// FailSets controls whether Set returns ErrStorageUnavailable.
func (f *FailingStorage) FailSets(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSet = fail
}

func (f *FailingStorage) Get(key string) ([]byte, bool, error) {
	f.mu.Lock()
	fail := f.failGet
	f.mu.Unlock()
	if fail {
		return nil, false, ErrStorageUnavailable
	}
	return f.MemoryStorage.Get(key)
}

func (f *FailingStorage) Set(key string, value []byte) error {
	f.mu.Lock()
	f.writeKeys = append(f.writeKeys, key)
	fail := f.failSet
	f.mu.Unlock()
	if fail {
		return ErrStorageUnavailable
	}
	return f.MemoryStorage.Set(key, value)
}

// Writes returns the keys passed to Set, in call order.
func (f *FailingStorage) Writes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.writeKeys...)
}

var _ hub.Storage = (*FailingStorage)(nil)
