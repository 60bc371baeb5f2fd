package kvstore

import (
	"context"
	"errors"
	"time"

	"folio/internal/metrics"
)

// Instrumented records prometheus metrics for every call on the wrapped store.
type Instrumented struct {
	inner   Store
	backend string
}

// WithMetrics wraps inner; backend becomes the "backend" label value.
func WithMetrics(inner Store, backend string) Store {
	return &Instrumented{inner: inner, backend: backend}
}

func (s *Instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	value, err := s.inner.Get(ctx, key)
	s.observe("get", start, err)
	return value, err
}

func (s *Instrumented) Put(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := s.inner.Put(ctx, key, value)
	s.observe("put", start, err)
	return err
}

func (s *Instrumented) Delete(ctx context.Context, key string) error {
	start := time.Now()
	err := s.inner.Delete(ctx, key)
	s.observe("delete", start, err)
	return err
}

func (s *Instrumented) Keys(ctx context.Context, prefix string) ([]string, error) {
	start := time.Now()
	keys, err := s.inner.Keys(ctx, prefix)
	s.observe("keys", start, err)
	return keys, err
}

func (s *Instrumented) observe(op string, start time.Time, err error) {
	outcome := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		outcome = "miss"
	case err != nil:
		outcome = "error"
	}
	metrics.ObserveStoreOp(s.backend, op, outcome, time.Since(start))
}
