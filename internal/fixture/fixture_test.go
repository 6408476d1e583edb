package fixture

import (
	"os"
	"path/filepath"
	"testing"

	"careerhub/internal/hub"
)

func TestLoad(t *testing.T) {
	seed, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if len(seed.Posts) == 0 {
		t.Fatal("Load() returned no posts")
	}
	if len(seed.Notifications) == 0 {
		t.Fatal("Load() returned no notifications")
	}

	var pinned, polls int
	for _, p := range seed.Posts {
		if p.IsPinned {
			pinned++
		}
		if p.Poll != nil {
			polls++
		}
	}
	if pinned == 0 {
		t.Error("bundled posts have no pinned post")
	}
	if polls == 0 {
		t.Error("bundled posts have no poll")
	}
}

func TestLoadDir(t *testing.T) {
	t.Run("overrides posts only", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, postsFile, `[{"id":9,"authorId":2,"content":"override","timestamp":"2024-02-01T00:00:00Z","visibility":"public"}]`)

		seed, err := LoadDir(dir)
		if err != nil {
			t.Fatalf("LoadDir() error = %v", err)
		}
		if len(seed.Posts) != 1 || seed.Posts[0].ID != 9 {
			t.Errorf("Posts = %+v, want the single override post", seed.Posts)
		}

		bundled, _ := Load()
		if len(seed.Notifications) != len(bundled.Notifications) {
			t.Errorf("len(Notifications) = %d, want bundled %d", len(seed.Notifications), len(bundled.Notifications))
		}
	})

	t.Run("empty directory uses bundled", func(t *testing.T) {
		seed, err := LoadDir(t.TempDir())
		if err != nil {
			t.Fatalf("LoadDir() error = %v", err)
		}
		bundled, _ := Load()
		if len(seed.Posts) != len(bundled.Posts) {
			t.Errorf("len(Posts) = %d, want %d", len(seed.Posts), len(bundled.Posts))
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, notificationsFile, `{not json`)
		if _, err := LoadDir(dir); err == nil {
			t.Error("LoadDir() expected error for malformed notifications")
		}
	})
}

func TestValidatePosts(t *testing.T) {
	vote := func(i int) *int { return &i }

	tests := []struct {
		name    string
		posts   []hub.Post
		wantErr bool
	}{
		{name: "empty", posts: nil},
		{name: "valid", posts: []hub.Post{{ID: 1, Visibility: hub.VisibilityPublic}, {ID: 2}}},
		{name: "zero id", posts: []hub.Post{{ID: 0}}, wantErr: true},
		{name: "duplicate id", posts: []hub.Post{{ID: 1}, {ID: 1}}, wantErr: true},
		{name: "unknown visibility", posts: []hub.Post{{ID: 1, Visibility: "friends"}}, wantErr: true},
		{name: "negative likes", posts: []hub.Post{{ID: 1, Likes: -1}}, wantErr: true},
		{
			name:  "valid poll",
			posts: []hub.Post{{ID: 1, Poll: &hub.Poll{Options: []string{"A", "B"}, Votes: []int{1, 0}, HasVoted: true, UserVote: vote(0)}}},
		},
		{
			name:    "single option poll",
			posts:   []hub.Post{{ID: 1, Poll: &hub.Poll{Options: []string{"A"}, Votes: []int{0}}}},
			wantErr: true,
		},
		{
			name:    "votes length mismatch",
			posts:   []hub.Post{{ID: 1, Poll: &hub.Poll{Options: []string{"A", "B"}, Votes: []int{0}}}},
			wantErr: true,
		},
		{
			name:    "user vote out of range",
			posts:   []hub.Post{{ID: 1, Poll: &hub.Poll{Options: []string{"A", "B"}, Votes: []int{0, 0}, HasVoted: true, UserVote: vote(2)}}},
			wantErr: true,
		},
		{
			name:    "hasVoted without userVote",
			posts:   []hub.Post{{ID: 1, Poll: &hub.Poll{Options: []string{"A", "B"}, Votes: []int{0, 0}, HasVoted: true}}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePosts(tt.posts)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePosts() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateNotifications(t *testing.T) {
	tests := []struct {
		name    string
		notes   []hub.Notification
		wantErr bool
	}{
		{name: "valid", notes: []hub.Notification{{ID: 1, Type: hub.NotificationLike}, {ID: 2, Type: hub.NotificationShare}}},
		{name: "unknown type", notes: []hub.Notification{{ID: 1, Type: "poke"}}, wantErr: true},
		{name: "duplicate id", notes: []hub.Notification{{ID: 1, Type: hub.NotificationLike}, {ID: 1, Type: hub.NotificationFollow}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNotifications(tt.notes)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNotifications() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}
