package kvstore

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"folio/internal/database"
)

func newTestGormStore(t *testing.T) *GormStore {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewGormStore(db)
}

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client)
}

// exerciseStore runs the contract every backend must satisfy.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.Get(ctx, "ast_hero")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "ast_hero", []byte(`{"name":"A"}`)))
	got, err := s.Get(ctx, "ast_hero")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"A"}`, string(got))

	require.NoError(t, s.Put(ctx, "ast_hero", []byte(`{"name":"B"}`)))
	got, err = s.Get(ctx, "ast_hero")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"B"}`, string(got))

	require.NoError(t, s.Put(ctx, "ast_about", []byte(`{}`)))
	require.NoError(t, s.Put(ctx, "other", []byte(`[]`)))
	keys, err := s.Keys(ctx, "ast_")
	require.NoError(t, err)
	assert.Equal(t, []string{"ast_about", "ast_hero"}, keys)

	require.NoError(t, s.Delete(ctx, "ast_hero"))
	_, err = s.Get(ctx, "ast_hero")
	require.ErrorIs(t, err, ErrNotFound)

	// deleting a missing key is not an error
	require.NoError(t, s.Delete(ctx, "ast_hero"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestGormStore(t *testing.T) {
	exerciseStore(t, newTestGormStore(t))
}

func TestRedisStore(t *testing.T) {
	exerciseStore(t, newTestRedisStore(t))
}

func TestNamespacedStore(t *testing.T) {
	exerciseStore(t, WithNamespace(NewMemoryStore(), "site"))
}

func TestInstrumentedStore(t *testing.T) {
	exerciseStore(t, WithMetrics(NewMemoryStore(), "memory"))
}

func TestNamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	shared := NewMemoryStore()
	a := WithNamespace(shared, "a")
	b := WithNamespace(shared, "b")

	require.NoError(t, a.Put(ctx, "ast_hero", []byte(`"a"`)))
	_, err := b.Get(ctx, "ast_hero")
	require.ErrorIs(t, err, ErrNotFound)

	raw, err := shared.Get(ctx, "a:ast_hero")
	require.NoError(t, err)
	assert.Equal(t, `"a"`, string(raw))
}

func TestMemoryStoreFailWrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Put(ctx, "k", []byte(`1`)))

	s.FailWrites(true)
	require.ErrorIs(t, s.Put(ctx, "k", []byte(`2`)), ErrQuotaExceeded)

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `1`, string(got))
}

func TestRedisKeysEscapesGlob(t *testing.T) {
	ctx := context.Background()
	s := newTestRedisStore(t)
	require.NoError(t, s.Put(ctx, "a*b:1", []byte(`1`)))
	require.NoError(t, s.Put(ctx, "axb:2", []byte(`2`)))

	keys, err := s.Keys(ctx, "a*b:")
	require.NoError(t, err)
	assert.Equal(t, []string{"a*b:1"}, keys)
}
