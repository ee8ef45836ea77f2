package ports

import (
	"context"
	"time"
)

// CacheOptions controls TTL and namespace of a single cache call.
type CacheOptions struct {
	// TTL of written entries; zero means the service default.
	TTL time.Duration
	// Prefix overrides the default key namespace.
	Prefix string
}

type CacheOption func(*CacheOptions)

func WithTTL(ttl time.Duration) CacheOption {
	return func(o *CacheOptions) { o.TTL = ttl }
}

func WithPrefix(prefix string) CacheOption {
	return func(o *CacheOptions) { o.Prefix = prefix }
}

// ApplyCacheOptions folds opts over the zero value.
func ApplyCacheOptions(opts []CacheOption) CacheOptions {
	var o CacheOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// CacheHealth is the result of a write/read/delete probe.
type CacheHealth struct {
	Status    string `json:"status"`
	Connected bool   `json:"connected"`
}

const (
	CacheHealthy   = "healthy"
	CacheUnhealthy = "unhealthy"
	CacheError     = "error"
)

// Cache is a namespaced, JSON-serializing cache over a KeyValueStore.
// Implementations never fail callers: store errors degrade to misses and false.
type Cache interface {
	// GenerateKey returns "{prefix}:{key}", using the default prefix when prefix is empty.
	GenerateKey(key, prefix string) string
	// GetRaw returns the serialized value for key. ok=false on miss or store failure.
	GetRaw(ctx context.Context, key string, opts ...CacheOption) ([]byte, bool)
	// Set serializes value and stores it with the configured TTL.
	Set(ctx context.Context, key string, value any, opts ...CacheOption) bool
	Delete(ctx context.Context, key string, opts ...CacheOption) bool
	// DeletePattern removes every key matching the glob pattern within the namespace.
	DeletePattern(ctx context.Context, pattern string, opts ...CacheOption) bool
	Exists(ctx context.Context, key string, opts ...CacheOption) bool
	HealthCheck(ctx context.Context) CacheHealth
}
