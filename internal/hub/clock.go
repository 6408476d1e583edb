package hub

import (
	"sync"
	"time"
)

// Clock abstracts time retrieval so store logic is deterministic in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator abstracts numeric ID generation for records the store creates
// on behalf of callers (counsellor and mentor applications).
type IDGenerator interface {
	Next() int64
}

// MonotonicIDGenerator derives IDs from the clock's Unix milliseconds but
// never hands out the same value twice: when two calls land in the same
// millisecond the second ID is bumped past the first.
// This implementation is safe for concurrent use.
type MonotonicIDGenerator struct {
	clock Clock
	mu    sync.Mutex
	last  int64
}

// NewMonotonicIDGenerator creates a generator reading time from clock.
func NewMonotonicIDGenerator(clock Clock) *MonotonicIDGenerator {
	return &MonotonicIDGenerator{clock: clock}
}

// Observe records an ID that is already in use so later IDs sort after it.
// The store calls this for every application loaded from storage.
func (g *MonotonicIDGenerator) Observe(id int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if id > g.last {
		g.last = id
	}
}

func (g *MonotonicIDGenerator) Next() int64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.clock.Now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}

// idObserver is implemented by generators that want to see pre-existing IDs.
type idObserver interface {
	Observe(id int64)
}
