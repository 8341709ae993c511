// Package docstore holds the single users+tasks document and serializes every
// load, mutate and commit cycle against it.
package docstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/smarttodo/tasks-api/internal/core/domain"
)

// CommitHook observes every commit attempt. err is nil on success.
type CommitHook func(backend string, size int, took time.Duration, err error)

// Option configures a Store.
type Option func(*Store)

// WithCommitHook registers h to be called after each commit attempt.
func WithCommitHook(h CommitHook) Option {
	return func(s *Store) { s.onCommit = h }
}

// Store owns the canonical snapshot. Writers hold the exclusive lock across
// the whole load→mutate→commit cycle, readers share the read lock, so a load
// observes either the state before a commit or the state after it.
type Store struct {
	mu       sync.RWMutex
	backend  Backend
	log      zerolog.Logger
	onCommit CommitHook
}

func NewStore(backend Backend, log zerolog.Logger, opts ...Option) *Store {
	s := &Store{backend: backend, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend returns the name of the persistence medium.
func (s *Store) Backend() string { return s.backend.Name() }

// Load returns a private copy of the current snapshot. When nothing has been
// persisted yet the empty default document is committed and returned.
func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	s.mu.RLock()
	snap, err := s.read(ctx)
	s.mu.RUnlock()
	if !errors.Is(err, ErrNoSnapshot) {
		return snap, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

// Commit replaces the persisted document with snap.
func (s *Store) Commit(ctx context.Context, snap *domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commitLocked(ctx, snap)
}

// Update runs fn against a fresh copy of the snapshot and commits the result.
// If fn returns an error nothing is committed and the error is returned as-is.
func (s *Store) Update(ctx context.Context, fn func(*domain.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	if err := fn(snap); err != nil {
		return err
	}
	return s.commitLocked(ctx, snap)
}

// Ping checks that the medium is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.backend.Ping(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

// loadLocked requires the write lock.
func (s *Store) loadLocked(ctx context.Context) (*domain.Snapshot, error) {
	snap, err := s.read(ctx)
	if !errors.Is(err, ErrNoSnapshot) {
		return snap, err
	}

	snap = domain.NewSnapshot()
	if err := s.commitLocked(ctx, snap); err != nil {
		return nil, err
	}
	s.log.Info().Str("backend", s.backend.Name()).Msg("initialized empty document")
	return snap, nil
}

func (s *Store) read(ctx context.Context) (*domain.Snapshot, error) {
	data, err := s.backend.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			return nil, ErrNoSnapshot
		}
		return nil, unavailable("read", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoSnapshot
	}
	snap, err := decode(data)
	if err != nil {
		return nil, unavailable("decode", err)
	}
	return snap, nil
}

func (s *Store) commitLocked(ctx context.Context, snap *domain.Snapshot) error {
	start := time.Now()
	data, err := json.Marshal(snap)
	if err == nil {
		err = s.backend.Write(ctx, data)
	}
	took := time.Since(start)

	if s.onCommit != nil {
		s.onCommit(s.backend.Name(), len(data), took, err)
	}
	if err != nil {
		s.log.Error().Err(err).Str("backend", s.backend.Name()).Msg("commit failed")
		return unavailable("commit", err)
	}

	s.log.Debug().
		Str("backend", s.backend.Name()).
		Int("bytes", len(data)).
		Dur("took", took).
		Msg("document committed")
	return nil
}

// decode parses a persisted document and normalizes absent collections to
// empty ones so callers never see nil slices.
func decode(data []byte) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if snap.Users == nil {
		snap.Users = []domain.User{}
	}
	if snap.Tasks == nil {
		snap.Tasks = []domain.Task{}
	}
	for i := range snap.Tasks {
		if snap.Tasks[i].Subtasks == nil {
			snap.Tasks[i].Subtasks = []domain.Subtask{}
		}
	}
	return &snap, nil
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", domain.ErrStoreUnavailable, op, err)
}
