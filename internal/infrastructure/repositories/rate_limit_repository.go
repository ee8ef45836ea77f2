package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/avatarctic/headless-blog/internal/core/ports"
)

// ErrStoreUnavailable is returned when the counter could not be updated.
var ErrStoreUnavailable = errors.New("rate limit store unavailable")

// RateLimitRepository keeps fixed-window request counters in the key-value store.
type RateLimitRepository struct {
	store ports.KeyValueStore
	now   func() time.Time
}

var _ ports.RateLimitRepository = (*RateLimitRepository)(nil)

func NewRateLimitRepository(store ports.KeyValueStore) *RateLimitRepository {
	return &RateLimitRepository{store: store, now: time.Now}
}

// IncrementWindow increments a per-client counter for a fixed window.
func (repo *RateLimitRepository) IncrementWindow(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	windowStart := repo.now().Truncate(window)
	key := fmt.Sprintf("%s:%s:%d", keyPrefix, clientKey, windowStart.Unix())
	n, ok := repo.store.IncrementWindow(ctx, key, ttl)
	if !ok {
		return 0, windowStart, ErrStoreUnavailable
	}
	return int(n), windowStart, nil
}
