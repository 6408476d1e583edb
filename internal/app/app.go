package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"careerhub/internal/config"
	"careerhub/internal/encryption"
	"careerhub/internal/fixture"
	"careerhub/internal/hub"
	"careerhub/internal/storage"
)

// PassphraseFunc supplies the private key passphrase, usually by prompting.
type PassphraseFunc func() (string, error)

// ApplicationKind selects counsellor or mentor applications.
type ApplicationKind string

const (
	KindCounsellor ApplicationKind = "counsellor"
	KindMentor     ApplicationKind = "mentor"
)

// CareerHubApp is the application layer between the CLI and the store.
// It constructs all dependencies from config, exposes operations that accept
// raw CLI values, and flushes and closes everything on Close.
type CareerHubApp struct {
	cfg     *config.Config
	storage hub.Storage
	store   *hub.Store
	session *Session
	logger  *slog.Logger
	logFile *os.File
}

// NewCareerHubApp creates a fully wired CareerHubApp from the given config.
// operation identifies the CLI command being run (e.g. "AddPost", "Feed").
// passphrase is consulted only when encryption is enabled and the env var
// named by the config is unset. The caller must call Close when done.
func NewCareerHubApp(cfg *config.Config, operation string, passphrase PassphraseFunc) (*CareerHubApp, error) {
	session := NewSession(operation, time.Now())
	logger, logFile, err := newLogger(cfg.LogDir, session.ID)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}

	a := &CareerHubApp{cfg: cfg, session: session, logger: logger, logFile: logFile}
	if err := a.open(passphrase); err != nil {
		a.closeResources()
		return nil, err
	}
	return a, nil
}

func (a *CareerHubApp) open(passphrase PassphraseFunc) error {
	st, err := storage.NewStorageFromConfig(a.cfg.Storage, a.cfg.InstanceID, hub.RealClock{})
	if err != nil {
		return fmt.Errorf("creating storage: %w", err)
	}
	a.storage = st

	if err := st.ValidateSetup(); err != nil {
		return fmt.Errorf("validating storage: %w", err)
	}

	enc, err := encryption.NewEncryptorFromConfig(a.cfg.Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}
	if enc != nil {
		if !enc.IsConfigured() {
			return errors.New("encryption enabled but keys not found (run 'careerhub keys init')")
		}
		pass, err := resolvePassphrase(a.cfg.Encryption, passphrase)
		if err != nil {
			return err
		}
		dec, err := enc.Unlock(pass)
		if err != nil {
			return fmt.Errorf("unlocking private key: %w", err)
		}
		wrapped, err := storage.NewEncryptedStorage(st, enc, dec)
		if err != nil {
			return err
		}
		a.storage = wrapped
	}

	seed, err := loadSeed(a.cfg.Store)
	if err != nil {
		return err
	}

	a.store = hub.NewStore(a.storage, seed, &slogAdapter{l: a.logger}, hub.RealClock{}, nil, hub.Options{
		UserID:        a.cfg.UserID,
		FollowingSeed: a.cfg.Store.FollowingSeed,
		PersistFeed:   a.cfg.Store.PersistFeed,
	})
	a.store.Init()
	a.logger.Debug("session started", "operation", a.session.Operation, "storage", a.cfg.Storage.Type)
	return nil
}

func loadSeed(cfg config.StoreConfig) (hub.Seed, error) {
	if cfg.FixturesDir == "" {
		seed, err := fixture.Load()
		if err != nil {
			return hub.Seed{}, fmt.Errorf("loading fixtures: %w", err)
		}
		return seed, nil
	}
	seed, err := fixture.LoadDir(cfg.FixturesDir)
	if err != nil {
		return hub.Seed{}, fmt.Errorf("loading fixtures: %w", err)
	}
	return seed, nil
}

// resolvePassphrase reads the passphrase from the configured env var, then
// falls back to prompt.
func resolvePassphrase(cfg config.EncryptionConfig, prompt PassphraseFunc) (string, error) {
	if cfg.PassphraseEnv != "" {
		if p := os.Getenv(cfg.PassphraseEnv); p != "" {
			return p, nil
		}
	}
	if prompt == nil {
		return "", errors.New("passphrase required but no prompt available")
	}
	p, err := prompt()
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return p, nil
}

// Store returns the application state store.
func (a *CareerHubApp) Store() *hub.Store {
	return a.store
}

// Feed returns the posts visible to the current user.
func (a *CareerHubApp) Feed(followingOnly, savedOnly bool) []hub.Post {
	return a.store.Feed(hub.FeedFilter{FollowingOnly: followingOnly, SavedOnly: savedOnly})
}

// AddPost creates a post by the current user. visibility may be empty for public.
func (a *CareerHubApp) AddPost(content, image, visibility string, pollOptions []string) (hub.Post, error) {
	if content == "" {
		return hub.Post{}, errors.New("post content must not be empty")
	}
	draft := hub.PostDraft{
		AuthorID:    a.store.CurrentUser(),
		Content:     content,
		Visibility:  hub.VisibilityPublic,
		PollOptions: pollOptions,
	}
	if visibility != "" {
		v, err := hub.ParseVisibility(visibility)
		if err != nil {
			return hub.Post{}, err
		}
		draft.Visibility = v
	}
	if image != "" {
		draft.Image = &image
	}
	if len(pollOptions) == 1 {
		return hub.Post{}, errors.New("a poll needs at least two options")
	}
	return a.store.AddPost(draft), nil
}

// EditPost replaces a post's content. A non-empty image replaces the image;
// clearImage removes it.
func (a *CareerHubApp) EditPost(id int64, content, image string, clearImage bool) error {
	if _, ok := a.store.Post(id); !ok {
		return fmt.Errorf("post %d not found", id)
	}
	update := hub.KeepImage()
	switch {
	case clearImage:
		update = hub.ClearImage()
	case image != "":
		update = hub.SetImage(image)
	}
	a.store.UpdatePost(id, content, update)
	return nil
}

// SetVisibility parses visibility and applies it to post id.
func (a *CareerHubApp) SetVisibility(id int64, visibility string) error {
	v, err := hub.ParseVisibility(visibility)
	if err != nil {
		return err
	}
	if _, ok := a.store.Post(id); !ok {
		return fmt.Errorf("post %d not found", id)
	}
	return a.store.UpdatePostVisibility(id, v)
}

// Vote casts, moves, or retracts the current user's vote on a post's poll.
func (a *CareerHubApp) Vote(postID int64, option int) (hub.Poll, error) {
	poll, ok := a.store.VotePoll(postID, option)
	if !ok {
		return hub.Poll{}, fmt.Errorf("post %d has no poll option %d", postID, option)
	}
	return poll, nil
}

// SetApplicationStatus parses status and applies it to the application of
// the given kind.
func (a *CareerHubApp) SetApplicationStatus(kind ApplicationKind, id int64, status string) error {
	st, err := hub.ParseApplicationStatus(status)
	if err != nil {
		return err
	}
	switch kind {
	case KindCounsellor:
		return a.store.UpdateApplicationStatus(id, st)
	case KindMentor:
		return a.store.UpdateMentorApplicationStatus(id, st)
	default:
		return fmt.Errorf("unknown application kind: %q", kind)
	}
}

// Fail marks the session as failed so Close records it.
func (a *CareerHubApp) Fail() {
	a.session.Fail()
}

// Close disposes the store and closes all resources. It returns the last
// persistence failure, if any, so the CLI can report unsaved state.
func (a *CareerHubApp) Close() error {
	var firstErr error

	if a.store != nil {
		a.store.Dispose()
		if err := a.store.PersistError(); err != nil {
			a.session.Fail()
			firstErr = fmt.Errorf("changes were not saved: %w", err)
		}
	}

	a.logger.Info("session finished",
		"operation", a.session.Operation,
		"status", a.session.Status,
		"duration", time.Since(a.session.StartedAt).Truncate(time.Millisecond),
	)

	if err := a.closeResources(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

func (a *CareerHubApp) closeResources() error {
	var firstErr error
	if a.storage != nil {
		if err := a.storage.Close(); err != nil {
			firstErr = fmt.Errorf("closing storage: %w", err)
		}
		a.storage = nil
	}
	if a.logFile != nil {
		a.logFile.Close()
		a.logFile = nil
	}
	return firstErr
}
