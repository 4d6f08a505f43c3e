// Package storage keeps ingested files on local disk under a configured
// root directory.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type LocalStore struct {
	root string
}

func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// Save writes data under a unique name derived from filename and returns
// the stored path. The caller is expected to pass a sanitized filename.
func (s *LocalStore) Save(filename string, data []byte) (string, error) {
	name := uuid.New().String() + "_" + filename
	path := filepath.Join(s.root, name)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return path, nil
}

func (s *LocalStore) Read(location string) ([]byte, error) {
	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// Remove deletes a stored file. Locations outside the store root (external
// URLs) are ignored.
func (s *LocalStore) Remove(location string) error {
	if !s.Owns(location) {
		return nil
	}

	if err := os.Remove(location); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove file: %w", err)
	}

	return nil
}

// Owns reports whether location is a path inside the store root.
func (s *LocalStore) Owns(location string) bool {
	return strings.HasPrefix(location, s.root+string(filepath.Separator)) ||
		strings.HasPrefix(location, filepath.Clean(s.root)+string(filepath.Separator))
}
