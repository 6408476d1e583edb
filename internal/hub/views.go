package hub

// Every view returns a copy; callers may modify the result freely.

// Posts returns the feed in display order: pinned posts first, most
// recently pinned first, then the rest newest first.
func (s *Store) Posts() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Post, len(s.posts))
	for i, p := range s.posts {
		out[i] = p.clone()
	}
	return out
}

// Post returns the post with the given ID.
func (s *Store) Post(id int64) (Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.postIndexLocked(id); i >= 0 {
		return s.posts[i].clone(), true
	}
	return Post{}, false
}

// FeedFilter narrows the posts returned by Feed.
type FeedFilter struct {
	// FollowingOnly keeps posts by followed users and the current user.
	FollowingOnly bool
	// SavedOnly keeps posts the current user has saved.
	SavedOnly bool
	// IncludeMuted keeps posts by muted users.
	IncludeMuted bool
}

// Feed returns the posts the current user may see, in display order.
// Private posts are visible to their author only; followers-only posts to
// the author and their followers.
func (s *Store) Feed(f FeedFilter) []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := s.users[s.user]

	out := make([]Post, 0, len(s.posts))
	for _, p := range s.posts {
		own := p.AuthorID == s.user
		switch p.Visibility {
		case VisibilityPrivate:
			if !own {
				continue
			}
		case VisibilityFollowers:
			if !own && !u.following.has(p.AuthorID) {
				continue
			}
		}
		if !f.IncludeMuted && !own && u.muted.has(p.AuthorID) {
			continue
		}
		if f.FollowingOnly && !own && !u.following.has(p.AuthorID) {
			continue
		}
		if f.SavedOnly && !u.saved.has(p.ID) {
			continue
		}
		out = append(out, p.clone())
	}
	return out
}

func (s *Store) userSet(pick func(*userSets) idSet) []int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.users[s.user]).sorted()
}

func (s *Store) userHas(pick func(*userSets) idSet, id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return pick(s.users[s.user]).has(id)
}

func pickLiked(u *userSets) idSet     { return u.liked }
func pickSaved(u *userSets) idSet     { return u.saved }
func pickFollowing(u *userSets) idSet { return u.following }
func pickMuted(u *userSets) idSet     { return u.muted }

// LikedPostIDs returns the posts the current user likes, ascending.
func (s *Store) LikedPostIDs() []int64 { return s.userSet(pickLiked) }

// SavedPostIDs returns the posts the current user saved, ascending.
func (s *Store) SavedPostIDs() []int64 { return s.userSet(pickSaved) }

// FollowingIDs returns the users the current user follows, ascending.
func (s *Store) FollowingIDs() []int64 { return s.userSet(pickFollowing) }

// MutedUserIDs returns the users the current user muted, ascending.
func (s *Store) MutedUserIDs() []int64 { return s.userSet(pickMuted) }

func (s *Store) IsLiked(postID int64) bool     { return s.userHas(pickLiked, postID) }
func (s *Store) IsSaved(postID int64) bool     { return s.userHas(pickSaved, postID) }
func (s *Store) IsFollowing(userID int64) bool { return s.userHas(pickFollowing, userID) }
func (s *Store) IsMuted(userID int64) bool     { return s.userHas(pickMuted, userID) }

// Notifications returns every notification in seed order.
func (s *Store) Notifications() []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Notification, len(s.notifications))
	for i, n := range s.notifications {
		out[i] = n.clone()
	}
	return out
}

// UnreadCount returns the number of unread notifications.
func (s *Store) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, note := range s.notifications {
		if !note.Read {
			n++
		}
	}
	return n
}

// CounsellorApplications returns counsellor applications in submission order.
func (s *Store) CounsellorApplications() []CounsellorApplication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]CounsellorApplication, len(s.counsellorApps))
	for i, a := range s.counsellorApps {
		out[i] = a.clone()
	}
	return out
}

// MentorApplications returns mentor applications in submission order.
func (s *Store) MentorApplications() []MentorApplication {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]MentorApplication, len(s.mentorApps))
	for i, a := range s.mentorApps {
		out[i] = a.clone()
	}
	return out
}
