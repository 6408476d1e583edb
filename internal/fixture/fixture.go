// Package fixture provides the bundled seed content the store starts from.
package fixture

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"careerhub/internal/hub"
)

//go:embed data/*.json
var bundled embed.FS

const (
	postsFile         = "posts.json"
	notificationsFile = "notifications.json"
)

// Load returns the bundled seed.
func Load() (hub.Seed, error) {
	sub, err := fs.Sub(bundled, "data")
	if err != nil {
		return hub.Seed{}, fmt.Errorf("opening bundled fixtures: %w", err)
	}
	return loadFS(sub)
}

// LoadDir reads posts.json and notifications.json from dir. A file missing
// from dir falls back to the bundled copy, so a directory may override just
// one of them.
func LoadDir(dir string) (hub.Seed, error) {
	seed, err := Load()
	if err != nil {
		return hub.Seed{}, err
	}
	override := os.DirFS(dir)

	posts, err := readPosts(override)
	switch {
	case err == nil:
		seed.Posts = posts
	case !errors.Is(err, fs.ErrNotExist):
		return hub.Seed{}, fmt.Errorf("loading fixtures from %s: %w", dir, err)
	}

	notes, err := readNotifications(override)
	switch {
	case err == nil:
		seed.Notifications = notes
	case !errors.Is(err, fs.ErrNotExist):
		return hub.Seed{}, fmt.Errorf("loading fixtures from %s: %w", dir, err)
	}
	return seed, nil
}

func loadFS(fsys fs.FS) (hub.Seed, error) {
	posts, err := readPosts(fsys)
	if err != nil {
		return hub.Seed{}, err
	}
	notes, err := readNotifications(fsys)
	if err != nil {
		return hub.Seed{}, err
	}
	return hub.Seed{Posts: posts, Notifications: notes}, nil
}

func readPosts(fsys fs.FS) ([]hub.Post, error) {
	data, err := fs.ReadFile(fsys, postsFile)
	if err != nil {
		return nil, err
	}
	var posts []hub.Post
	if err := json.Unmarshal(data, &posts); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", postsFile, err)
	}
	if err := ValidatePosts(posts); err != nil {
		return nil, fmt.Errorf("%s: %w", postsFile, err)
	}
	return posts, nil
}

func readNotifications(fsys fs.FS) ([]hub.Notification, error) {
	data, err := fs.ReadFile(fsys, notificationsFile)
	if err != nil {
		return nil, err
	}
	var notes []hub.Notification
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", notificationsFile, err)
	}
	if err := ValidateNotifications(notes); err != nil {
		return nil, fmt.Errorf("%s: %w", notificationsFile, err)
	}
	return notes, nil
}

// ValidatePosts checks that IDs are positive and unique, enum fields hold
// known values, and polls are well formed. An empty visibility is allowed and
// means public.
func ValidatePosts(posts []hub.Post) error {
	seen := make(map[int64]bool, len(posts))
	for i, p := range posts {
		if p.ID <= 0 {
			return fmt.Errorf("post %d: id must be positive, got %d", i, p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("post %d: duplicate id %d", i, p.ID)
		}
		seen[p.ID] = true

		if p.Visibility != "" && !p.Visibility.Valid() {
			return fmt.Errorf("post %d: %w: %q", p.ID, hub.ErrInvalidVisibility, p.Visibility)
		}
		if p.Likes < 0 || p.Comments < 0 || p.Shares < 0 {
			return fmt.Errorf("post %d: negative counter", p.ID)
		}
		if p.Poll == nil {
			continue
		}
		if len(p.Poll.Options) < 2 {
			return fmt.Errorf("post %d: poll needs at least two options", p.ID)
		}
		if len(p.Poll.Votes) != len(p.Poll.Options) {
			return fmt.Errorf("post %d: poll has %d vote counts for %d options", p.ID, len(p.Poll.Votes), len(p.Poll.Options))
		}
		for _, v := range p.Poll.Votes {
			if v < 0 {
				return fmt.Errorf("post %d: negative poll vote count", p.ID)
			}
		}
		if p.Poll.UserVote != nil && (*p.Poll.UserVote < 0 || *p.Poll.UserVote >= len(p.Poll.Options)) {
			return fmt.Errorf("post %d: poll userVote %d out of range", p.ID, *p.Poll.UserVote)
		}
		if p.Poll.HasVoted != (p.Poll.UserVote != nil) {
			return fmt.Errorf("post %d: poll hasVoted disagrees with userVote", p.ID)
		}
	}
	return nil
}

// ValidateNotifications checks that IDs are unique and types are known.
func ValidateNotifications(notes []hub.Notification) error {
	seen := make(map[int64]bool, len(notes))
	for i, n := range notes {
		if seen[n.ID] {
			return fmt.Errorf("notification %d: duplicate id %d", i, n.ID)
		}
		seen[n.ID] = true
		if !n.Type.Valid() {
			return fmt.Errorf("notification %d: unknown type %q", n.ID, n.Type)
		}
	}
	return nil
}
