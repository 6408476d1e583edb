package testutil

import (
	"testing"

	"careerhub/internal/encryption"
	"careerhub/internal/hub"
	"careerhub/internal/storage"
)

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() hub.Encryptor {
	return encryption.NewTestEncryptor()
}

// NewEncryptedTestStorage wraps inner with the test encryptor, already unlocked.
func NewEncryptedTestStorage(t *testing.T, inner hub.Storage) hub.Storage {
	t.Helper()

	enc := encryption.NewTestEncryptor()
	dec, err := enc.Unlock("")
	if err != nil {
		t.Fatalf("unlocking test encryptor: %v", err)
	}
	s, err := storage.NewEncryptedStorage(inner, enc, dec)
	if err != nil {
		t.Fatalf("creating encrypted storage: %v", err)
	}
	return s
}
