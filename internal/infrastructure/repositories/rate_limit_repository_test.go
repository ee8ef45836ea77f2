package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tmocks "github.com/avatarctic/headless-blog/test/mocks"
)

func TestRateLimitRepository_IncrementWindow(t *testing.T) {
	store := tmocks.NewMemoryStore()
	repo := NewRateLimitRepository(store)
	fixed := time.Unix(1_700_000_030, 0)
	repo.now = func() time.Time { return fixed }
	ctx := context.Background()

	n, start, err := repo.IncrementWindow(ctx, "10.0.0.1", time.Minute, "ratelimit:client", 2*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, fixed.Truncate(time.Minute), start)

	n, _, err = repo.IncrementWindow(ctx, "10.0.0.1", time.Minute, "ratelimit:client", 2*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	key := "ratelimit:client:10.0.0.1:1699999980"
	raw, ok := store.Raw(key)
	require.True(t, ok)
	assert.Equal(t, "2", raw)
	assert.Equal(t, int64(120), store.TTL(ctx, key))
}

func TestRateLimitRepository_NewWindowResets(t *testing.T) {
	store := tmocks.NewMemoryStore()
	repo := NewRateLimitRepository(store)
	now := time.Unix(1_700_000_000, 0)
	repo.now = func() time.Time { return now }
	ctx := context.Background()

	_, _, _ = repo.IncrementWindow(ctx, "c", time.Minute, "rl", time.Hour)
	now = now.Add(time.Minute)
	n, _, err := repo.IncrementWindow(ctx, "c", time.Minute, "rl", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRateLimitRepository_StoreDown(t *testing.T) {
	store := tmocks.NewMemoryStore()
	store.SetDown(true)
	repo := NewRateLimitRepository(store)

	_, _, err := repo.IncrementWindow(context.Background(), "c", time.Minute, "rl", time.Minute)
	require.ErrorIs(t, err, ErrStoreUnavailable)
}
