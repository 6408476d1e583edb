package hub_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"careerhub/internal/hub"
	"careerhub/internal/testutil"
)

var seedTime = time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

// testSeed returns a small feed: user 1 follows 2 and 4 by default.
//
//	id author visibility  notes
//	1  2      public
//	2  3      public      likes=5
//	3  4      followers   poll A/B
//	4  3      followers
//	5  1      private
//	6  9      private
//	7  4      public      likes=5
func testSeed() hub.Seed {
	post := func(id, author int64, v hub.Visibility, likes int) hub.Post {
		return hub.Post{
			ID:         id,
			AuthorID:   author,
			Content:    fmt.Sprintf("post %d", id),
			Timestamp:  seedTime.Add(-time.Duration(id) * time.Hour),
			Likes:      likes,
			Visibility: v,
		}
	}
	posts := []hub.Post{
		post(1, 2, hub.VisibilityPublic, 0),
		post(2, 3, hub.VisibilityPublic, 5),
		post(3, 4, hub.VisibilityFollowers, 0),
		post(4, 3, hub.VisibilityFollowers, 0),
		post(5, 1, hub.VisibilityPrivate, 0),
		post(6, 9, hub.VisibilityPrivate, 0),
		post(7, 4, hub.VisibilityPublic, 5),
	}
	posts[2].Poll = &hub.Poll{Options: []string{"A", "B"}, Votes: []int{0, 0}}

	content := "nice post"
	return hub.Seed{
		Posts: posts,
		Notifications: []hub.Notification{
			{ID: 1, Type: hub.NotificationLike, Username: "priya", Action: "liked your post", Content: &content, Timestamp: seedTime},
			{ID: 2, Type: hub.NotificationFollow, Username: "arjun", Action: "started following you", Timestamp: seedTime},
			{ID: 3, Type: hub.NotificationComment, Username: "neha", Action: "commented", Timestamp: seedTime, Read: true},
		},
	}
}

func newStore(t *testing.T) *testutil.TestStore {
	t.Helper()
	return testutil.NewTestStore(t, nil, testSeed(), hub.Options{})
}

func newStoreWithSeed(t *testing.T, seed hub.Seed) *testutil.TestStore {
	t.Helper()
	return testutil.NewTestStore(t, nil, seed, hub.Options{})
}

func postIDs(posts []hub.Post) []int64 {
	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	return ids
}

func mustPost(t *testing.T, s *testutil.TestStore, id int64) hub.Post {
	t.Helper()
	p, ok := s.Post(id)
	if !ok {
		t.Fatalf("Post(%d) not found", id)
	}
	return p
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// recordingLogger keeps every message logged at info, warn or error.
type recordingLogger struct {
	hub.NopLogger
	mu     sync.Mutex
	infos  []string
	warns  []string
	errors []string
}

func (l *recordingLogger) Info(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *recordingLogger) Warn(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *recordingLogger) Error(msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}
