package hub

import (
	"sort"
	"sync"
)

// DefaultUserID is the current user when Options.UserID is unset.
const DefaultUserID int64 = 1

// DefaultFollowingSeed is the following set a user starts with.
var DefaultFollowingSeed = []int64{2, 4}

// Options tunes a Store.
type Options struct {
	// UserID is the user on whose behalf likes, saves, follows, and mutes are recorded.
	UserID int64

	// FollowingSeed is the following set for a user with no persisted value.
	// nil means DefaultFollowingSeed; an empty non-nil slice means nobody.
	FollowingSeed []int64

	// PersistFeed also persists posts and notifications. When false they reset
	// to the seed on every start.
	PersistFeed bool
}

// Collection names a group of state that changed.
type Collection string

const (
	CollectionPosts                  Collection = "posts"
	CollectionLikes                  Collection = "likes"
	CollectionSaves                  Collection = "saves"
	CollectionFollowing              Collection = "following"
	CollectionMuted                  Collection = "muted"
	CollectionNotifications          Collection = "notifications"
	CollectionCounsellorApplications Collection = "counsellor_applications"
	CollectionMentorApplications     Collection = "mentor_applications"
)

// Change is delivered to subscribers after a mutation completes.
// IDs lists the affected entity IDs when the operation targets specific ones.
type Change struct {
	Collection Collection
	IDs        []int64
}

type idSet map[int64]struct{}

func newIDSet(ids []int64) idSet {
	s := make(idSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s idSet) has(id int64) bool {
	_, ok := s[id]
	return ok
}

// toggle flips membership of id and reports whether it is now a member.
func (s idSet) toggle(id int64) bool {
	if s.has(id) {
		delete(s, id)
		return false
	}
	s[id] = struct{}{}
	return true
}

func (s idSet) sorted() []int64 {
	out := make([]int64, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// userSets holds the per-user membership sets.
type userSets struct {
	liked     idSet
	saved     idSet
	following idSet
	muted     idSet
}

// Store is the single source of truth for cross-view state. Every write goes
// through one of its operations, which update memory, persist the affected
// keys, and then notify subscribers. This implementation is safe for
// concurrent use.
type Store struct {
	storage Storage
	logger  Logger
	clock   Clock
	idgen   IDGenerator
	opts    Options

	mu             sync.RWMutex
	posts          []Post
	notifications  []Notification
	counsellorApps []CounsellorApplication
	mentorApps     []MentorApplication
	users          map[int64]*userSets
	user           int64
	postIDFloor    int64 // highest post ID ever referenced, even if since removed
	initialized    bool
	closed         bool
	persistErr     error

	subMu   sync.Mutex
	subs    map[int]func(Change)
	nextSub int
}

// NewStore creates a Store seeded from seed. Call Init to overlay persisted
// state before handing the store to consumers, and Dispose when done.
func NewStore(storage Storage, seed Seed, logger Logger, clock Clock, idgen IDGenerator, opts Options) *Store {
	if opts.UserID == 0 {
		opts.UserID = DefaultUserID
	}
	if opts.FollowingSeed == nil {
		opts.FollowingSeed = DefaultFollowingSeed
	}
	if logger == nil {
		logger = NewNopLogger()
	}
	if clock == nil {
		clock = RealClock{}
	}
	if idgen == nil {
		idgen = NewMonotonicIDGenerator(clock)
	}

	s := &Store{
		storage: storage,
		logger:  logger,
		clock:   clock,
		idgen:   idgen,
		opts:    opts,
		users:   make(map[int64]*userSets),
		user:    opts.UserID,
		subs:    make(map[int]func(Change)),
	}

	s.setsLocked(s.user)

	s.posts = make([]Post, 0, len(seed.Posts))
	for _, p := range seed.Posts {
		s.posts = append(s.posts, sanitizePost(p.clone()))
	}
	s.normalizePins()

	s.notifications = make([]Notification, 0, len(seed.Notifications))
	for _, n := range seed.Notifications {
		s.notifications = append(s.notifications, n.clone())
	}
	return s
}

// Init loads every persisted key once. Missing or unparsable values fall
// back to the seed or empty defaults; Init never fails.
func (s *Store) Init() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return
	}
	s.loadLocked()
	s.initialized = true
	s.logger.Info("store initialized",
		"user", s.user,
		"posts", len(s.posts),
		"notifications", len(s.notifications),
		"counsellor_applications", len(s.counsellorApps),
		"mentor_applications", len(s.mentorApps),
	)
}

// Dispose detaches all subscribers. Mutations after Dispose are ignored.
func (s *Store) Dispose() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.subMu.Lock()
	s.subs = make(map[int]func(Change))
	s.subMu.Unlock()
}

// PersistError returns the most recent persistence failure, or nil.
// The in-memory state stays authoritative when writes fail.
func (s *Store) PersistError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistErr
}

// CurrentUser returns the ID of the user the per-user sets belong to.
func (s *Store) CurrentUser() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// SetCurrentUser switches the user whose sets later operations act on.
func (s *Store) SetCurrentUser(userID int64) {
	s.mu.Lock()
	s.user = userID
	s.setsLocked(userID)
	s.mu.Unlock()

	s.publish([]Change{
		{Collection: CollectionLikes},
		{Collection: CollectionSaves},
		{Collection: CollectionFollowing},
		{Collection: CollectionMuted},
	})
}

// Subscribe registers fn to receive every Change. Listeners run on the
// goroutine that performed the mutation, after the store lock is released.
func (s *Store) Subscribe(fn func(Change)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) publish(changes []Change) {
	if len(changes) == 0 {
		return
	}
	s.subMu.Lock()
	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]func(Change), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, s.subs[id])
	}
	s.subMu.Unlock()

	for _, c := range changes {
		for _, fn := range fns {
			fn(c)
		}
	}
}

// mutate runs fn under the write lock, persists every collection fn reports
// as changed, and publishes the changes once the lock is released.
// It reports false without running fn when the store is disposed.
func (s *Store) mutate(op string, fn func() []Change) bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.logger.Warn("mutation on disposed store ignored", "op", op)
		return false
	}
	changes := fn()
	persisted := make(map[Collection]bool, len(changes))
	for _, c := range changes {
		if persisted[c.Collection] {
			continue
		}
		persisted[c.Collection] = true
		s.persistLocked(c.Collection)
	}
	s.mu.Unlock()

	if len(changes) > 0 {
		s.logger.Debug("state changed", "op", op, "collections", len(persisted))
	}
	s.publish(changes)
	return true
}

// setsLocked returns the sets of userID, creating defaults on first use.
func (s *Store) setsLocked(userID int64) *userSets {
	u, ok := s.users[userID]
	if !ok {
		u = &userSets{
			liked:     idSet{},
			saved:     idSet{},
			following: newIDSet(s.opts.FollowingSeed),
			muted:     idSet{},
		}
		s.users[userID] = u
	}
	return u
}

func (s *Store) currentLocked() *userSets {
	return s.setsLocked(s.user)
}
