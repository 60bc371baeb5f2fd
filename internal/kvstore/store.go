// Package kvstore defines the durable key-value contract that backs every
// persisted portfolio section, and its implementations.
package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when nothing has ever been written under a key.
var ErrNotFound = errors.New("kvstore: key not found")

// Store persists opaque JSON payloads by key. There is no TTL and no eviction.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	// Keys lists stored keys starting with prefix, sorted ascending.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
