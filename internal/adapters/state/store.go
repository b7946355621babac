// Package state persists the outcome of previous generation passes.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/riagen/internal/core/domain"
	"go.trai.ch/riagen/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultDir is the state directory used when none is configured.
const DefaultDir = ".riagen/state"

var _ ports.GenerationStore = (*Store)(nil)

// Store implements ports.GenerationStore with one JSON file per client project.
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore creates a store rooted at dir. The directory is created on first write.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, zerr.Wrap(domain.ErrStoreWriteFailed, "state directory must not be empty")
	}
	return &Store{dir: filepath.Clean(dir)}, nil
}

// path returns the record file of a project. Paths differing only in case share a file.
func (s *Store) path(project string) string {
	key := domain.NewProjectKey(project).String()
	return filepath.Join(s.dir, fmt.Sprintf("%016x.json", xxhash.Sum64String(key)))
}

// Get retrieves the record for a client project.
func (s *Store) Get(project string) (*domain.GenerationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := s.path(project)
	//nolint:gosec // Path is derived from the configured state directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "path", path)
	}

	var record domain.GenerationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrStoreReadFailed, err.Error()), "path", path)
	}
	return &record, nil
}

// Put stores the record, replacing the file atomically.
func (s *Store) Put(record domain.GenerationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return zerr.Wrap(domain.ErrStoreWriteFailed, err.Error())
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", s.dir)
	}

	path := s.path(record.Project)
	tmp, err := os.CreateTemp(s.dir, ".record-*")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Already renamed on success

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}
	return nil
}

// Delete removes the record for a client project. A missing record is not an error.
func (s *Store) Delete(project string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(project)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(domain.ErrStoreWriteFailed, err.Error()), "path", path)
	}
	return nil
}
