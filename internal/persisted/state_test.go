package persisted

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"folio/internal/kvstore"
)

type card struct {
	ID    string   `json:"id"`
	Tags  []string `json:"tags"`
	Title string   `json:"title"`
}

func defaultCards() []card {
	return []card{{ID: "1", Title: "first", Tags: []string{"a"}}}
}

func TestNewUsesDefaultWhenAbsent(t *testing.T) {
	store := kvstore.NewMemoryStore()
	s := New(context.Background(), store, "cards", defaultCards, nil)

	assert.Equal(t, defaultCards(), s.Get())
	// loading alone does not write
	_, err := store.Get(context.Background(), "cards")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestNewUsesDefaultWhenCorrupt(t *testing.T) {
	for name, payload := range map[string]string{
		"garbage":    "{not json",
		"wrong type": `{"id":"x"}`,
		"null":       "null",
		"empty":      "",
	} {
		t.Run(name, func(t *testing.T) {
			store := kvstore.NewMemoryStore()
			store.Raw("cards", []byte(payload))

			s := New(context.Background(), store, "cards", defaultCards, nil)
			assert.Equal(t, defaultCards(), s.Get())
		})
	}
}

func TestSetWritesThrough(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	s := New(ctx, store, "cards", defaultCards, nil)

	next := append(defaultCards(), card{ID: "2", Title: "second", Tags: []string{"b", "c"}})
	s.Set(ctx, next)
	assert.Equal(t, next, s.Get())

	raw, err := store.Get(ctx, "cards")
	require.NoError(t, err)
	var decoded []card
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, next, decoded)

	reloaded := New(ctx, store, "cards", defaultCards, nil)
	assert.Equal(t, next, reloaded.Get())
}

func TestSetSwallowsWriteFailure(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	s := New(ctx, store, "cards", defaultCards, nil)
	s.Set(ctx, defaultCards())

	store.FailWrites(true)
	next := []card{{ID: "9", Title: "only in memory"}}
	s.Set(ctx, next)

	assert.Equal(t, next, s.Get(), "in-memory value must reflect the attempted change")

	store.FailWrites(false)
	assert.Equal(t, defaultCards(), s.Reload(ctx), "durable copy keeps the last successful write")
}

func TestResetRestoresFreshDefault(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	s := New(ctx, store, "cards", defaultCards, nil)

	got := s.Get()
	got[0].Tags[0] = "mutated"
	s.Set(ctx, got)

	reset := s.Reset(ctx)
	assert.Equal(t, defaultCards(), reset)
	assert.Equal(t, "a", s.Get()[0].Tags[0])
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	s := New(ctx, kvstore.NewMemoryStore(), "count", func() int { return 0 }, nil)
	for i := 0; i < 3; i++ {
		s.Update(ctx, func(n int) int { return n + 1 })
	}
	assert.Equal(t, 3, s.Get())
	assert.Equal(t, 3, s.Reload(ctx))
}

func TestModifyBuildsOnStoredValue(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	a := New(ctx, store, "count", func() int { return 0 }, nil)
	b := New(ctx, store, "count", func() int { return 0 }, nil)

	a.Set(ctx, 5)
	got, err := b.Modify(ctx, func(n int) (int, error) { return n + 1, nil })
	require.NoError(t, err)
	assert.Equal(t, 6, got)
	assert.Equal(t, 6, a.Reload(ctx))
}

func TestModifyErrorWritesNothing(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	s := New(ctx, store, "count", func() int { return 0 }, nil)
	boom := errors.New("boom")

	_, err := s.Modify(ctx, func(n int) (int, error) { return 9, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, s.Get())
	_, err = store.Get(ctx, "count")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
}

func TestModifyKeepsEditWhoseWriteFailed(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	store.Raw("count", []byte("1"))
	s := New(ctx, store, "count", func() int { return 0 }, nil)

	store.FailWrites(true)
	s.Set(ctx, 10)
	store.FailWrites(false)

	got, err := s.Modify(ctx, func(n int) (int, error) { return n + 1, nil })
	require.NoError(t, err)
	assert.Equal(t, 11, got)
	assert.Equal(t, 11, s.Reload(ctx))
}

func TestRefreshPicksUpOtherWriter(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	s := New(ctx, store, "cards", defaultCards, nil)

	store.Raw("cards", []byte(`[{"id":"7","title":"elsewhere"}]`))
	assert.Equal(t, []card{{ID: "7", Title: "elsewhere"}}, s.Refresh(ctx))
}
