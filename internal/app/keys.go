package app

import (
	"errors"
	"fmt"

	"careerhub/internal/config"
	"careerhub/internal/encryption"
)

// SetupKeys generates the key pair configured in cfg, protecting the private
// key with passphrase.
func SetupKeys(cfg *config.Config, passphrase string) error {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}
	if enc == nil {
		return errors.New("encryption is disabled in config (set [encryption] type)")
	}
	if err := enc.Setup(passphrase); err != nil {
		return fmt.Errorf("setting up keys: %w", err)
	}
	return nil
}

// passphraseChanger is implemented by encryptors whose private key can be
// re-wrapped without changing the key pair.
type passphraseChanger interface {
	ChangePassphrase(oldPassphrase, newPassphrase string) error
}

// ChangePassphrase re-wraps the configured private key under newPassphrase.
func ChangePassphrase(cfg *config.Config, oldPassphrase, newPassphrase string) error {
	enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
	if err != nil {
		return fmt.Errorf("creating encryptor: %w", err)
	}
	c, ok := enc.(passphraseChanger)
	if !ok {
		return fmt.Errorf("encryption type %q does not support changing the passphrase", cfg.Encryption.Type)
	}
	if err := c.ChangePassphrase(oldPassphrase, newPassphrase); err != nil {
		return fmt.Errorf("changing passphrase: %w", err)
	}
	return nil
}
