package hub

import (
	"encoding/json"
	"fmt"
)

// Storage keys.
const (
	KeyLikedPosts             = "likedPosts"
	KeySavedPosts             = "savedPosts"
	KeyFollowingUsers         = "followingUsers"
	KeyMutedUsers             = "mutedUsers"
	KeyCounsellorApplications = "counsellorApplications"
	KeyMentorApplications     = "mentorApplications"
	KeyPosts                  = "posts"
	KeyNotifications          = "notifications"
	KeyPostIDFloor            = "postIdFloor"
)

// setKeys maps each per-user set collection to its storage key and accessor.
var setKeys = []struct {
	collection Collection
	key        string
	get        func(*userSets) idSet
	put        func(*userSets, idSet)
}{
	{CollectionLikes, KeyLikedPosts, func(u *userSets) idSet { return u.liked }, func(u *userSets, s idSet) { u.liked = s }},
	{CollectionSaves, KeySavedPosts, func(u *userSets) idSet { return u.saved }, func(u *userSets, s idSet) { u.saved = s }},
	{CollectionFollowing, KeyFollowingUsers, func(u *userSets) idSet { return u.following }, func(u *userSets, s idSet) { u.following = s }},
	{CollectionMuted, KeyMutedUsers, func(u *userSets) idSet { return u.muted }, func(u *userSets, s idSet) { u.muted = s }},
}

// EncodeUserSets renders per-user ID sets in the persisted layout, an
// object keyed by user ID: {"1":[3,7]}.
func EncodeUserSets(sets map[int64][]int64) ([]byte, error) {
	return json.Marshal(sets)
}

// DecodeUserSets parses a persisted set value. A bare array, the layout of a
// single-user install, is attributed to fallbackUser.
func DecodeUserSets(data []byte, fallbackUser int64) (map[int64][]int64, error) {
	var byUser map[int64][]int64
	if err := json.Unmarshal(data, &byUser); err == nil {
		if byUser == nil {
			byUser = map[int64][]int64{}
		}
		return byUser, nil
	}

	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decoding id sets: %w", err)
	}
	return map[int64][]int64{fallbackUser: ids}, nil
}

// readKey fetches and decodes key into a fresh T. ok is false when the key is
// missing or unusable; failures are logged and never returned.
func readKey[T any](s *Store, key string, decode func([]byte) (T, error)) (T, bool) {
	var zero T
	if s.storage == nil {
		return zero, false
	}
	data, ok, err := s.storage.Get(key)
	if err != nil {
		s.logger.Warn("reading persisted key failed, using default", "key", key, "error", err)
		return zero, false
	}
	if !ok {
		s.logger.Debug("persisted key missing, using default", "key", key)
		return zero, false
	}
	v, err := decode(data)
	if err != nil {
		s.logger.Warn("persisted key unparsable, using default", "key", key, "error", err)
		return zero, false
	}
	return v, true
}

func decodeJSON[T any](data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}

func (s *Store) loadLocked() {
	feedFromSeed := true
	if s.opts.PersistFeed {
		if posts, ok := readKey(s, KeyPosts, decodeJSON[[]Post]); ok {
			feedFromSeed = false
			s.posts = make([]Post, 0, len(posts))
			for _, p := range posts {
				s.posts = append(s.posts, sanitizePost(p))
			}
			s.normalizePins()
		}
		if notes, ok := readKey(s, KeyNotifications, decodeJSON[[]Notification]); ok {
			s.notifications = notes
		}
	}

	for _, sk := range setKeys {
		byUser, ok := readKey(s, sk.key, func(data []byte) (map[int64][]int64, error) {
			return DecodeUserSets(data, s.user)
		})
		if !ok {
			continue
		}
		for uid, ids := range byUser {
			sk.put(s.setsLocked(uid), newIDSet(ids))
		}
	}
	if floor, ok := readKey(s, KeyPostIDFloor, decodeJSON[int64]); ok {
		s.postIDFloor = floor
	}
	s.reconcileSetsLocked(feedFromSeed)

	if apps, ok := readKey(s, KeyCounsellorApplications, decodeJSON[[]CounsellorApplication]); ok {
		s.counsellorApps = apps
	}
	if apps, ok := readKey(s, KeyMentorApplications, decodeJSON[[]MentorApplication]); ok {
		s.mentorApps = apps
	}

	if obs, ok := s.idgen.(idObserver); ok {
		for _, a := range s.counsellorApps {
			obs.Observe(a.ID)
		}
		for _, a := range s.mentorApps {
			obs.Observe(a.ID)
		}
	}
}

// reconcileSetsLocked drops liked and saved IDs that no longer name a post
// in the feed, so a vanished post's ID can never mark a new post as liked.
// The highest dropped ID raises the post ID floor. When the feed came
// from the seed, its counters exclude the loaded users' likes, which are
// added back so each counter stays in step with the liked sets.
func (s *Store) reconcileSetsLocked(feedFromSeed bool) {
	index := make(map[int64]int, len(s.posts))
	for i, p := range s.posts {
		index[p.ID] = i
	}

	var highest int64
	prune := func(uid int64, set idSet, name string, onKept func(i int)) {
		for id := range set {
			i, ok := index[id]
			if !ok {
				highest = max(highest, id)
				delete(set, id)
				s.logger.Debug("dropping id of missing post", "set", name, "user", uid, "post", id)
				continue
			}
			if onKept != nil {
				onKept(i)
			}
		}
	}

	for uid, u := range s.users {
		var addLike func(int)
		if feedFromSeed {
			addLike = func(i int) { s.posts[i].Likes++ }
		}
		prune(uid, u.liked, KeyLikedPosts, addLike)
		prune(uid, u.saved, KeySavedPosts, nil)
	}
	s.raisePostIDFloorLocked(highest)
}

// persistLocked writes the storage key backing c. Failures are logged and
// remembered; the in-memory state is left as is.
func (s *Store) persistLocked(c Collection) {
	if s.storage == nil {
		return
	}

	var (
		key string
		v   any
	)
	switch c {
	case CollectionPosts:
		if !s.opts.PersistFeed {
			return
		}
		key, v = KeyPosts, s.posts
	case CollectionNotifications:
		if !s.opts.PersistFeed {
			return
		}
		key, v = KeyNotifications, s.notifications
	case CollectionCounsellorApplications:
		key, v = KeyCounsellorApplications, s.counsellorApps
	case CollectionMentorApplications:
		key, v = KeyMentorApplications, s.mentorApps
	default:
		for _, sk := range setKeys {
			if sk.collection != c {
				continue
			}
			byUser := make(map[int64][]int64, len(s.users))
			for uid, u := range s.users {
				byUser[uid] = sk.get(u).sorted()
			}
			key, v = sk.key, byUser
		}
	}
	if key == "" {
		return
	}
	s.writeKeyLocked(key, v)
}

// raisePostIDFloorLocked records that id has been handed out and persists the
// new floor, even when the feed itself is not persisted.
func (s *Store) raisePostIDFloorLocked(id int64) {
	if id <= s.postIDFloor {
		return
	}
	s.postIDFloor = id
	if s.storage != nil {
		s.writeKeyLocked(KeyPostIDFloor, id)
	}
}

func (s *Store) writeKeyLocked(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.recordPersistError(key, fmt.Errorf("encoding %s: %w", key, err))
		return
	}
	if err := s.storage.Set(key, data); err != nil {
		s.recordPersistError(key, fmt.Errorf("writing %s: %w", key, err))
	}
}

func (s *Store) recordPersistError(key string, err error) {
	s.persistErr = err
	s.logger.Error("persisting state failed, keeping in-memory value", "key", key, "error", err)
}
