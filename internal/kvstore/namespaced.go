package kvstore

import (
	"context"
	"strings"
)

// Namespaced scopes every key under "<namespace>:" so several portfolios can
// share one backend, the way browser storage is scoped per origin.
type Namespaced struct {
	inner  Store
	prefix string
}

// WithNamespace wraps inner. An empty namespace returns inner unchanged.
func WithNamespace(inner Store, namespace string) Store {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return inner
	}
	return &Namespaced{inner: inner, prefix: namespace + ":"}
}

func (n *Namespaced) Get(ctx context.Context, key string) ([]byte, error) {
	return n.inner.Get(ctx, n.prefix+key)
}

func (n *Namespaced) Put(ctx context.Context, key string, value []byte) error {
	return n.inner.Put(ctx, n.prefix+key, value)
}

func (n *Namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}

// Keys returns keys with the namespace stripped.
func (n *Namespaced) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := n.inner.Keys(ctx, n.prefix+prefix)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, strings.TrimPrefix(k, n.prefix))
	}
	return out, nil
}
