package storage

import (
	"errors"
	"fmt"
)

// ErrInvalidKey is returned for keys that cannot be mapped onto every backend.
var ErrInvalidKey = errors.New("invalid storage key")

// maxKeyLength bounds keys so they fit a filename and an S3 object name.
const maxKeyLength = 200

// ValidateKey reports whether key is usable as a storage key. Keys are
// non-empty runs of ASCII letters, digits, '-', '_' and '.', and may not
// start with '.'.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty", ErrInvalidKey)
	}
	if len(key) > maxKeyLength {
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidKey, maxKeyLength)
	}
	if key[0] == '.' {
		return fmt.Errorf("%w: %q starts with '.'", ErrInvalidKey, key)
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case c == '-', c == '_', c == '.':
		default:
			return fmt.Errorf("%w: %q contains %q", ErrInvalidKey, key, c)
		}
	}
	return nil
}
