package kvstore

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrQuotaExceeded is what MemoryStore returns once FailWrites is set.
var ErrQuotaExceeded = errors.New("kvstore: quota exceeded")

// MemoryStore is a process-local Store. It backs the memory driver and tests.
type MemoryStore struct {
	mu         sync.RWMutex
	data       map[string][]byte
	failWrites bool
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

// FailWrites makes every subsequent Put and Delete fail with ErrQuotaExceeded.
func (s *MemoryStore) FailWrites(fail bool) {
	s.mu.Lock()
	s.failWrites = fail
	s.mu.Unlock()
}

// Raw stores value without going through Put, bypassing FailWrites.
func (s *MemoryStore) Raw(key string, value []byte) {
	s.mu.Lock()
	s.data[key] = append([]byte(nil), value...)
	s.mu.Unlock()
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return ErrQuotaExceeded
	}
	s.data[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return ErrQuotaExceeded
	}
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) Keys(_ context.Context, prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
