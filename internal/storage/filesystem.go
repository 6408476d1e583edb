package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"careerhub/internal/hub"
)

// FileSystemStorage is a filesystem-based implementation of the Storage
// interface. name identifies the instance in errors. Each key is one file:
//
//	<root>/
//	  <key>.json
type FileSystemStorage struct {
	name string
	root string
}

// NewFileSystemStorage creates a new filesystem storage rooted at the given path.
func NewFileSystemStorage(name, root string) (*FileSystemStorage, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("filesystem storage %s: creating root: %w", name, err)
	}
	return &FileSystemStorage{name: name, root: root}, nil
}

func (s *FileSystemStorage) path(key string) string {
	return filepath.Join(s.root, key+".json")
}

// Get reads the file backing key. A missing file is reported as ok == false.
func (s *FileSystemStorage) Get(key string) ([]byte, bool, error) {
	if err := ValidateKey(key); err != nil {
		return nil, false, err
	}

	var buf bytes.Buffer
	found, err := readFile(s.path(key), &buf)
	if err != nil || !found {
		return nil, false, err
	}
	return buf.Bytes(), true, nil
}

// Set replaces the file backing key using an atomic write.
func (s *FileSystemStorage) Set(key string, value []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	return writeFile(s.path(key), bytes.NewReader(value), int64(len(value)))
}

// ValidateSetup verifies that the storage root is an accessible directory.
func (s *FileSystemStorage) ValidateSetup() error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("filesystem storage %s: root not accessible: %w", s.name, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("filesystem storage %s: root is not a directory: %s", s.name, s.root)
	}
	return nil
}

func (s *FileSystemStorage) Close() error {
	return nil
}

// writeFile writes data from r to destPath using atomic write (temp file + rename).
func writeFile(destPath string, r io.Reader, expectedSize int64) error {
	// Temp file in the same directory so the rename stays on one filesystem
	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if written != expectedSize {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", expectedSize, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// readFile copies srcPath into w. found is false when the file does not exist.
func readFile(srcPath string, w io.Writer) (found bool, err error) {
	f, err := os.Open(srcPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return false, fmt.Errorf("failed to read file: %w", err)
	}
	return true, nil
}

// Compile-time check that FileSystemStorage implements hub.Storage interface
var _ hub.Storage = (*FileSystemStorage)(nil)
