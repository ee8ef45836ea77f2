package ports

import (
	"context"
	"time"
)

// ResultStatus distinguishes a legitimately absent key from an unreachable store.
type ResultStatus int

const (
	ResultOK ResultStatus = iota
	ResultMiss
	ResultUnavailable
)

func (s ResultStatus) String() string {
	switch s {
	case ResultOK:
		return "ok"
	case ResultMiss:
		return "miss"
	case ResultUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// KeyValueStore is the raw string store behind the cache.
// Every method returns a neutral value (empty/false/-1) instead of an error
// when the store cannot be reached.
type KeyValueStore interface {
	// Lookup returns the value together with the reason it may be missing.
	Lookup(ctx context.Context, key string) (string, ResultStatus)
	Get(ctx context.Context, key string) (string, bool)
	// Set stores value; ttl > 0 makes the store expire the key after ttl.
	Set(ctx context.Context, key, value string, ttl time.Duration) bool
	Delete(ctx context.Context, key string) bool
	// DeleteByPattern removes all keys matching a glob. No matches is a success.
	DeleteByPattern(ctx context.Context, pattern string) bool
	Exists(ctx context.Context, key string) bool
	// TTL returns remaining seconds, or -1 when there is no TTL, no key or no store.
	TTL(ctx context.Context, key string) int64
	// IncrementWindow increments a counter and makes sure it expires after ttl.
	IncrementWindow(ctx context.Context, key string, ttl time.Duration) (int64, bool)
	// Disconnect releases the connection; the next call reconnects lazily.
	Disconnect() error
}
