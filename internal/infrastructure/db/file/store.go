// Package file implements the snapshot store over a single JSON document.
//
// The document is read once and cached. Every Load hands out a deep copy of
// the cache; Save replaces the cache and rewrites the file. When the file
// cannot be written (read-only deployments) the new state is kept in memory
// and a warning is logged.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fichedesk/dashboard/internal/core/domain"
)

const filePerm = 0o644

type Store struct {
	path string
	log  zerolog.Logger

	mu     sync.RWMutex
	cache  *domain.Snapshot
	loaded bool
}

func NewStore(path string, log zerolog.Logger) *Store {
	return &Store{path: path, log: log}
}

// Load returns a copy of the current snapshot. A missing or unparsable file
// yields an empty snapshot.
func (s *Store) Load(_ context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	if s.loaded {
		snap := s.cache.Clone()
		s.mu.RUnlock()
		return snap, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoaded()
	return s.cache.Clone(), nil
}

// Save replaces the stored snapshot.
func (s *Store) Save(_ context.Context, snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(snap)
}

// Update runs fn on a copy of the snapshot and saves the result. The write
// lock is held throughout, so concurrent updates apply one after the other.
// If fn returns an error nothing is saved.
func (s *Store) Update(_ context.Context, fn func(*domain.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLoaded()
	snap := s.cache.Clone()
	if err := fn(snap); err != nil {
		return err
	}
	return s.persist(snap)
}

// ensureLoaded must be called with mu held for writing.
func (s *Store) ensureLoaded() {
	if s.loaded {
		return
	}
	s.loaded = true

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Warn().Err(err).Str("path", s.path).Msg("data file unreadable, starting empty")
		}
		s.cache = (*domain.Snapshot)(nil).Clone()
		return
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("data file is not valid JSON, starting empty")
		s.cache = (*domain.Snapshot)(nil).Clone()
		return
	}
	s.cache = snap.Clone()
	s.log.Debug().Int("users", len(snap.Users)).Int("fiches", len(snap.Fiches)).Msg("data file loaded")
}

// persist must be called with mu held for writing.
func (s *Store) persist(snap *domain.Snapshot) error {
	data, err := json.MarshalIndent(snap.Clone(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	s.cache = snap.Clone()
	s.loaded = true

	if err := writeAtomic(s.path, data); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("data file not writable, state kept in memory only")
	}
	return nil
}

// writeAtomic replaces path through a temp file in the same directory so a
// crash never leaves a half-written document behind.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".fichedesk-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
