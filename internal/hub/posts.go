package hub

import "fmt"

// sanitizePost restores the invariants of a post that came from fixtures or
// storage: non-negative counters, a known visibility, and a well-formed poll.
func sanitizePost(p Post) Post {
	if p.Likes < 0 {
		p.Likes = 0
	}
	if p.Comments < 0 {
		p.Comments = 0
	}
	if p.Shares < 0 {
		p.Shares = 0
	}
	if !p.Visibility.Valid() {
		p.Visibility = VisibilityPublic
	}
	if p.Poll != nil {
		poll := p.Poll
		if len(poll.Votes) != len(poll.Options) {
			votes := make([]int, len(poll.Options))
			copy(votes, poll.Votes)
			poll.Votes = votes
		}
		for i, v := range poll.Votes {
			if v < 0 {
				poll.Votes[i] = 0
			}
		}
		if poll.UserVote != nil && (*poll.UserVote < 0 || *poll.UserVote >= len(poll.Options)) {
			poll.UserVote = nil
		}
		poll.HasVoted = poll.UserVote != nil
	}
	return p
}

// normalizePins moves pinned posts to the front, keeping relative order.
func (s *Store) normalizePins() {
	pinned := make([]Post, 0)
	rest := make([]Post, 0, len(s.posts))
	for _, p := range s.posts {
		if p.IsPinned {
			pinned = append(pinned, p)
		} else {
			rest = append(rest, p)
		}
	}
	s.posts = append(pinned, rest...)
}

func (s *Store) postIndexLocked(id int64) int {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return i
		}
	}
	return -1
}

// pinnedCountLocked returns the length of the leading pinned block.
func (s *Store) pinnedCountLocked() int {
	n := 0
	for n < len(s.posts) && s.posts[n].IsPinned {
		n++
	}
	return n
}

func (s *Store) insertPostLocked(at int, p Post) {
	s.posts = append(s.posts, Post{})
	copy(s.posts[at+1:], s.posts[at:])
	s.posts[at] = p
}

func (s *Store) removePostLocked(i int) Post {
	p := s.posts[i]
	s.posts = append(s.posts[:i], s.posts[i+1:]...)
	return p
}

// AddPost creates a post from draft and places it at the head of the
// unpinned posts, which is the front of the feed when nothing is pinned.
// The new ID is one past the highest post ID this install has seen, in the
// feed, in any liked or saved set, or handed out before, so IDs of vanished
// posts are never reused.
func (s *Store) AddPost(draft PostDraft) Post {
	var created Post
	s.mutate("AddPost", func() []Change {
		maxID := s.postIDFloor
		for _, p := range s.posts {
			if p.ID > maxID {
				maxID = p.ID
			}
		}

		visibility := draft.Visibility
		if !visibility.Valid() {
			visibility = VisibilityPublic
		}
		created = Post{
			ID:         maxID + 1,
			AuthorID:   draft.AuthorID,
			Content:    draft.Content,
			Timestamp:  s.clock.Now().UTC(),
			Visibility: visibility,
		}
		if draft.AuthorID == 0 {
			created.AuthorID = s.user
		}
		if draft.Image != nil {
			img := *draft.Image
			created.Image = &img
		}
		if len(draft.PollOptions) > 0 {
			created.Poll = &Poll{
				Options: append([]string(nil), draft.PollOptions...),
				Votes:   make([]int, len(draft.PollOptions)),
			}
		}

		s.raisePostIDFloorLocked(created.ID)
		s.insertPostLocked(s.pinnedCountLocked(), created)
		return []Change{{Collection: CollectionPosts, IDs: []int64{created.ID}}}
	})
	return created.clone()
}

// UpdatePost replaces a post's content and applies image. Unknown IDs are ignored.
func (s *Store) UpdatePost(postID int64, content string, image ImageUpdate) {
	s.mutate("UpdatePost", func() []Change {
		i := s.postIndexLocked(postID)
		if i < 0 {
			return nil
		}
		s.posts[i].Content = content
		if image.set {
			s.posts[i].Image = image.value
		}
		return []Change{{Collection: CollectionPosts, IDs: []int64{postID}}}
	})
}

// DeletePost removes a post and drops its ID from every loaded user's liked
// and saved sets. Unknown IDs are ignored.
func (s *Store) DeletePost(postID int64) {
	s.mutate("DeletePost", func() []Change {
		i := s.postIndexLocked(postID)
		if i < 0 {
			return nil
		}
		s.removePostLocked(i)
		s.raisePostIDFloorLocked(postID)
		changes := []Change{{Collection: CollectionPosts, IDs: []int64{postID}}}

		var likes, saves bool
		for _, u := range s.users {
			if u.liked.has(postID) {
				delete(u.liked, postID)
				likes = true
			}
			if u.saved.has(postID) {
				delete(u.saved, postID)
				saves = true
			}
		}
		if likes {
			changes = append(changes, Change{Collection: CollectionLikes, IDs: []int64{postID}})
		}
		if saves {
			changes = append(changes, Change{Collection: CollectionSaves, IDs: []int64{postID}})
		}
		return changes
	})
}

// PinPost toggles a post's pinned flag. Pinned posts form a leading block,
// most recently pinned first; an unpinned post moves to the head of the
// remaining posts. Returns the new pinned state.
func (s *Store) PinPost(postID int64) bool {
	var pinned bool
	s.mutate("PinPost", func() []Change {
		i := s.postIndexLocked(postID)
		if i < 0 {
			return nil
		}
		p := s.removePostLocked(i)
		p.IsPinned = !p.IsPinned
		pinned = p.IsPinned
		if p.IsPinned {
			s.insertPostLocked(0, p)
		} else {
			s.insertPostLocked(s.pinnedCountLocked(), p)
		}
		return []Change{{Collection: CollectionPosts, IDs: []int64{postID}}}
	})
	return pinned
}

// UpdatePostVisibility sets a post's visibility. Any value may follow any
// other; only values outside the closed set are rejected.
func (s *Store) UpdatePostVisibility(postID int64, v Visibility) error {
	if !v.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidVisibility, v)
	}
	s.mutate("UpdatePostVisibility", func() []Change {
		i := s.postIndexLocked(postID)
		if i < 0 {
			return nil
		}
		s.posts[i].Visibility = v
		return []Change{{Collection: CollectionPosts, IDs: []int64{postID}}}
	})
	return nil
}

// ToggleCommentsStatus flips whether comments are disabled on a post and
// returns the new value.
func (s *Store) ToggleCommentsStatus(postID int64) bool {
	var disabled bool
	s.mutate("ToggleCommentsStatus", func() []Change {
		i := s.postIndexLocked(postID)
		if i < 0 {
			return nil
		}
		s.posts[i].CommentsDisabled = !s.posts[i].CommentsDisabled
		disabled = s.posts[i].CommentsDisabled
		return []Change{{Collection: CollectionPosts, IDs: []int64{postID}}}
	})
	return disabled
}

// VotePoll records a vote for optionIndex on a post's poll.
// Voting for the current choice retracts it, voting for another option moves
// the vote, and a first vote adds one. ok is false, and nothing changes, when
// the post is unknown, has no poll, or optionIndex is out of range.
func (s *Store) VotePoll(postID int64, optionIndex int) (poll Poll, ok bool) {
	s.mutate("VotePoll", func() []Change {
		i := s.postIndexLocked(postID)
		if i < 0 || s.posts[i].Poll == nil {
			return nil
		}
		p := s.posts[i].Poll
		if optionIndex < 0 || optionIndex >= len(p.Options) {
			return nil
		}

		switch {
		case p.UserVote != nil && *p.UserVote == optionIndex:
			p.Votes[optionIndex] = decrement(p.Votes[optionIndex])
			p.UserVote = nil
		case p.UserVote != nil:
			if old := *p.UserVote; old >= 0 && old < len(p.Votes) {
				p.Votes[old] = decrement(p.Votes[old])
			}
			p.Votes[optionIndex]++
			choice := optionIndex
			p.UserVote = &choice
		default:
			p.Votes[optionIndex]++
			choice := optionIndex
			p.UserVote = &choice
		}
		p.HasVoted = p.UserVote != nil

		poll, ok = *p.clone(), true
		return []Change{{Collection: CollectionPosts, IDs: []int64{postID}}}
	})
	return poll, ok
}

func decrement(n int) int {
	if n <= 0 {
		return 0
	}
	return n - 1
}
