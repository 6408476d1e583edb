package hub

// ToggleLike flips whether the current user likes a post and moves the
// post's like counter by one in the same step, so no observer ever sees one
// without the other. Unknown posts are ignored. Returns the new liked state.
func (s *Store) ToggleLike(postID int64) bool {
	var liked bool
	s.mutate("ToggleLike", func() []Change {
		i := s.postIndexLocked(postID)
		if i < 0 {
			s.logger.Debug("like on unknown post ignored", "post", postID)
			liked = s.currentLocked().liked.has(postID)
			return nil
		}
		liked = s.currentLocked().liked.toggle(postID)
		if liked {
			s.posts[i].Likes++
		} else {
			s.posts[i].Likes = decrement(s.posts[i].Likes)
		}
		ids := []int64{postID}
		return []Change{
			{Collection: CollectionLikes, IDs: ids},
			{Collection: CollectionPosts, IDs: ids},
		}
	})
	return liked
}

// ToggleSave flips whether the current user has saved a post.
// Returns the new saved state.
func (s *Store) ToggleSave(postID int64) bool {
	var saved bool
	s.mutate("ToggleSave", func() []Change {
		saved = s.currentLocked().saved.toggle(postID)
		return []Change{{Collection: CollectionSaves, IDs: []int64{postID}}}
	})
	return saved
}

// ToggleFollow flips whether the current user follows userID.
// Returns the new following state.
func (s *Store) ToggleFollow(userID int64) bool {
	var following bool
	s.mutate("ToggleFollow", func() []Change {
		following = s.currentLocked().following.toggle(userID)
		return []Change{{Collection: CollectionFollowing, IDs: []int64{userID}}}
	})
	return following
}

// ToggleMuteUser flips whether the current user has muted userID.
// Returns the new muted state.
func (s *Store) ToggleMuteUser(userID int64) bool {
	var muted bool
	s.mutate("ToggleMuteUser", func() []Change {
		muted = s.currentLocked().muted.toggle(userID)
		return []Change{{Collection: CollectionMuted, IDs: []int64{userID}}}
	})
	return muted
}
