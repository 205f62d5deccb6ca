// Package storage maintains the blockchain document on disk.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store represents the serialization implementation for reading and
// storing the blockchain document as a single JSON file on disk.
type Store struct {
	path string
}

// New constructs a Store value for use, creating the directory for the
// document if it doesn't exist yet.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory: %w", err)
	}

	return &Store{path: path}, nil
}

// Load reads the blockchain document from disk.
func (s *Store) Load() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading blockchain document: %w", err)
	}

	return data, nil
}

// Save writes the blockchain document to disk. The write goes through a
// temporary file and a rename so a crash can't leave a torn document.
func (s *Store) Save(data []byte) error {
	tmp := s.path + ".tmp"

	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing blockchain document: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replacing blockchain document: %w", err)
	}

	return nil
}

// Exists reports whether a blockchain document has been saved before.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}
