package testutil

import (
	"testing"

	"careerhub/internal/hub"
)

// TestStore bundles a store with the collaborators tests usually poke at.
type TestStore struct {
	*hub.Store
	Storage hub.Storage
	Clock   *StubClock
	IDs     *StubIDGenerator
}

// NewTestStore creates an initialized store over s with seed, a FixedClock,
// and sequential IDs. A nil s gets fresh in-memory storage. The store is
// disposed when the test completes.
func NewTestStore(t *testing.T, s hub.Storage, seed hub.Seed, opts hub.Options) *TestStore {
	t.Helper()

	if s == nil {
		s = NewTestStorage()
	}
	clock := FixedClock()
	ids := NewStubIDGenerator()

	store := hub.NewStore(s, seed, hub.NewNopLogger(), clock, ids, opts)
	store.Init()
	t.Cleanup(store.Dispose)

	return &TestStore{Store: store, Storage: s, Clock: clock, IDs: ids}
}
