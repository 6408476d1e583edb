package storage

import (
	"bytes"
	"errors"
	"fmt"

	"careerhub/internal/hub"
)

// EncryptedStorage encrypts values before handing them to an inner backend
// and decrypts them on the way back. Keys are stored in the clear.
type EncryptedStorage struct {
	inner hub.Storage
	enc   hub.Encryptor
	dec   hub.DecryptionContext
}

// NewEncryptedStorage wraps inner. dec comes from enc.Unlock and is required:
// a store that cannot read its own values would overwrite them with defaults.
func NewEncryptedStorage(inner hub.Storage, enc hub.Encryptor, dec hub.DecryptionContext) (*EncryptedStorage, error) {
	if inner == nil || enc == nil {
		return nil, errors.New("encrypted storage requires a backend and an encryptor")
	}
	if dec == nil {
		return nil, errors.New("encrypted storage requires an unlocked decryption context")
	}
	return &EncryptedStorage{inner: inner, enc: enc, dec: dec}, nil
}

func (s *EncryptedStorage) Get(key string) ([]byte, bool, error) {
	ciphertext, ok, err := s.inner.Get(key)
	if err != nil || !ok {
		return nil, ok, err
	}

	var plaintext bytes.Buffer
	if err := s.dec.Decrypt(bytes.NewReader(ciphertext), &plaintext); err != nil {
		return nil, false, fmt.Errorf("decrypting %s: %w", key, err)
	}
	return plaintext.Bytes(), true, nil
}

func (s *EncryptedStorage) Set(key string, value []byte) error {
	var ciphertext bytes.Buffer
	if err := s.enc.Encrypt(bytes.NewReader(value), &ciphertext); err != nil {
		return fmt.Errorf("encrypting %s: %w", key, err)
	}
	return s.inner.Set(key, ciphertext.Bytes())
}

// ValidateSetup validates the inner backend and checks that keys exist.
func (s *EncryptedStorage) ValidateSetup() error {
	if !s.enc.IsConfigured() {
		return errors.New("encryption keys not found (run 'careerhub keys init')")
	}
	return s.inner.ValidateSetup()
}

func (s *EncryptedStorage) Close() error {
	return s.inner.Close()
}

// Compile-time check that EncryptedStorage implements hub.Storage interface
var _ hub.Storage = (*EncryptedStorage)(nil)
