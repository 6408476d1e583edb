package hub_test

import (
	"testing"

	"careerhub/internal/hub"
)

func TestStore_Feed(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(s *hub.Store)
		filter hub.FeedFilter
		want   []int64
	}{
		{
			name: "default visibility",
			want: []int64{1, 2, 3, 5, 7},
		},
		{
			name:  "muted author hidden",
			setup: func(s *hub.Store) { s.ToggleMuteUser(4) },
			want:  []int64{1, 2, 5},
		},
		{
			name:   "muted author included on request",
			setup:  func(s *hub.Store) { s.ToggleMuteUser(4) },
			filter: hub.FeedFilter{IncludeMuted: true},
			want:   []int64{1, 2, 3, 5, 7},
		},
		{
			name:   "following only",
			filter: hub.FeedFilter{FollowingOnly: true},
			want:   []int64{1, 3, 5, 7},
		},
		{
			name:  "followers-only unlocked by follow",
			setup: func(s *hub.Store) { s.ToggleFollow(3) },
			want:  []int64{1, 2, 3, 4, 5, 7},
		},
		{
			name:  "own posts never muted",
			setup: func(s *hub.Store) { s.ToggleMuteUser(1) },
			want:  []int64{1, 2, 3, 5, 7},
		},
		{
			name: "saved only",
			setup: func(s *hub.Store) {
				s.ToggleSave(7)
				s.ToggleSave(2)
				s.ToggleSave(6) // private post by someone else stays hidden
			},
			filter: hub.FeedFilter{SavedOnly: true},
			want:   []int64{2, 7},
		},
		{
			name:  "unfollow hides followers-only",
			setup: func(s *hub.Store) { s.ToggleFollow(4) },
			want:  []int64{1, 2, 5, 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newStore(t)
			if tt.setup != nil {
				tt.setup(s.Store)
			}
			if got := postIDs(s.Feed(tt.filter)); !equalIDs(got, tt.want) {
				t.Errorf("Feed(%+v) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestStore_Views_ReturnCopies(t *testing.T) {
	s := newStore(t)

	posts := s.Posts()
	posts[0].Content = "changed"
	posts[2].Poll.Votes[0] = 99
	if p := mustPost(t, s, 1); p.Content != "post 1" {
		t.Errorf("Content = %q, caller mutation leaked", p.Content)
	}
	if p := mustPost(t, s, 3); p.Poll.Votes[0] != 0 {
		t.Errorf("Votes = %v, caller mutation leaked", p.Poll.Votes)
	}

	notes := s.Notifications()
	*notes[0].Content = "changed"
	if got := *s.Notifications()[0].Content; got != "nice post" {
		t.Errorf("notification Content = %q, caller mutation leaked", got)
	}

	ids := s.FollowingIDs()
	ids[0] = 100
	if got := s.FollowingIDs(); !equalIDs(got, []int64{2, 4}) {
		t.Errorf("FollowingIDs() = %v, caller mutation leaked", got)
	}
}

func TestStore_Post_Unknown(t *testing.T) {
	s := newStore(t)
	if _, ok := s.Post(404); ok {
		t.Error("Post(404) found")
	}
}
