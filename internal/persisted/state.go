// Package persisted keeps a typed in-memory value mirrored to a key-value store.
//
// A State never fails to produce a value: a missing or undecodable payload
// yields the default, and write failures leave the in-memory value updated
// while durability for that write is lost.
package persisted

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"folio/internal/kvstore"
	"folio/internal/metrics"
)

// State is a single key's value. It is safe for concurrent use; the last Set wins.
type State[T any] struct {
	mu       sync.RWMutex
	store    kvstore.Store
	key      string
	value    T
	fallback func() T
	logger   *slog.Logger
	// unsynced is set while the cache holds an edit whose write failed.
	unsynced bool
}

// New loads key from store, falling back to defaultValue().
// defaultValue is a constructor so each reset gets fresh slices.
func New[T any](ctx context.Context, store kvstore.Store, key string, defaultValue func() T, logger *slog.Logger) *State[T] {
	if logger == nil {
		logger = slog.Default()
	}
	s := &State[T]{
		store:    store,
		key:      key,
		fallback: defaultValue,
		logger:   logger.With(slog.String("key", key)),
	}
	s.value = s.load(ctx)
	return s
}

// Key returns the storage key.
func (s *State[T]) Key() string {
	return s.key
}

// Get returns the cached value. Callers must not mutate slices or maps inside it.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the cached value and writes it through.
func (s *State[T]) Set(ctx context.Context, value T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = value
	s.persist(ctx, value)
}

// Update applies fn to the current value under the write lock and persists the result.
func (s *State[T]) Update(ctx context.Context, fn func(current T) T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = fn(s.value)
	s.persist(ctx, s.value)
	return s.value
}

// Modify re-reads the store under the write lock, applies fn and persists
// the result. It is the read-modify-write used when other processes share
// the store. The cache is kept instead of the stored value when the read
// fails or when an earlier write failed. If fn returns an error nothing is
// written and the refreshed value stays cached.
func (s *State[T]) Modify(ctx context.Context, fn func(current T) (T, error)) (T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh(ctx)
	next, err := fn(s.value)
	if err != nil {
		return s.value, err
	}
	s.value = next
	s.persist(ctx, next)
	return next, nil
}

// Refresh picks up writes made by other processes. Unlike Reload it keeps
// the cached value when the store cannot be read or the cache holds an
// edit whose write failed.
func (s *State[T]) Refresh(ctx context.Context) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh(ctx)
	return s.value
}

// refresh must be called with s.mu held.
func (s *State[T]) refresh(ctx context.Context) {
	if s.unsynced {
		return
	}
	value, err := s.read(ctx)
	if err != nil {
		s.logger.Warn("refresh persisted state failed, using cached value", slog.Any("error", err))
		return
	}
	s.value = value
}

// Reset restores the default value and persists it.
func (s *State[T]) Reset(ctx context.Context) T {
	return s.Update(ctx, func(T) T { return s.fallback() })
}

// Reload discards the cached value and reads the store again.
func (s *State[T]) Reload(ctx context.Context) T {
	value := s.load(ctx)
	s.mu.Lock()
	s.value = value
	s.unsynced = false
	s.mu.Unlock()
	return value
}

func (s *State[T]) load(ctx context.Context) T {
	value, err := s.read(ctx)
	if err != nil {
		s.logger.Warn("read persisted state failed, using default", slog.Any("error", err))
		return s.fallback()
	}
	return value
}

// read decodes the stored payload. Absent and corrupt payloads yield the
// default; only a failing store returns an error.
func (s *State[T]) read(ctx context.Context) (T, error) {
	raw, err := s.store.Get(ctx, s.key)
	switch {
	case errors.Is(err, kvstore.ErrNotFound):
		return s.fallback(), nil
	case err != nil:
		var zero T
		return zero, err
	}

	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return s.fallback(), nil
	}

	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		s.logger.Warn("persisted state is corrupt, using default", slog.Any("error", err))
		metrics.CorruptPayload(s.key)
		return s.fallback(), nil
	}
	return value, nil
}

// persist must be called with s.mu held.
func (s *State[T]) persist(ctx context.Context, value T) {
	raw, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("encode persisted state failed", slog.Any("error", err))
		metrics.PersistFailed(s.key)
		s.unsynced = true
		return
	}
	if err := s.store.Put(ctx, s.key, raw); err != nil {
		s.logger.Warn("write persisted state failed", slog.Any("error", err))
		metrics.PersistFailed(s.key)
		s.unsynced = true
		return
	}
	s.unsynced = false
}
