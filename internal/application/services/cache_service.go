package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/avatarctic/headless-blog/internal/core/ports"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	DefaultCachePrefix = "strapi"
	DefaultCacheTTL    = 300 * time.Second

	healthProbeKey = "health:check"
	healthProbeTTL = 10 * time.Second
)

// CacheServiceConfig groups configuration parameters for the cache service.
type CacheServiceConfig struct {
	Prefix     string
	DefaultTTL time.Duration
}

// CacheService implements ports.Cache: it namespaces keys, JSON-encodes values
// and swallows every store failure.
type CacheService struct {
	store      ports.KeyValueStore
	prefix     string
	defaultTTL time.Duration
	logger     *logrus.Logger
	ops        *prometheus.CounterVec
}

var _ ports.Cache = (*CacheService)(nil)

func NewCacheService(store ports.KeyValueStore, cfg *CacheServiceConfig, ops *prometheus.CounterVec, logger *logrus.Logger) *CacheService {
	prefix := DefaultCachePrefix
	ttl := DefaultCacheTTL
	if cfg != nil {
		if cfg.Prefix != "" {
			prefix = cfg.Prefix
		}
		if cfg.DefaultTTL > 0 {
			ttl = cfg.DefaultTTL
		}
	}
	return &CacheService{store: store, prefix: prefix, defaultTTL: ttl, logger: logger, ops: ops}
}

func (s *CacheService) GenerateKey(key, prefix string) string {
	if prefix == "" {
		prefix = s.prefix
	}
	return prefix + ":" + key
}

func (s *CacheService) fullKey(key string, opts []ports.CacheOption) string {
	return s.GenerateKey(key, ports.ApplyCacheOptions(opts).Prefix)
}

func (s *CacheService) record(op, result string) {
	if s.ops != nil {
		s.ops.WithLabelValues(op, result).Inc()
	}
}

func (s *CacheService) GetRaw(ctx context.Context, key string, opts ...ports.CacheOption) ([]byte, bool) {
	if s.store == nil {
		return nil, false
	}
	full := s.fullKey(key, opts)
	val, status := s.store.Lookup(ctx, full)
	switch status {
	case ports.ResultOK:
		s.record("get", "hit")
		if s.logger != nil {
			s.logger.WithField("key", full).Debug("cache hit")
		}
		return []byte(val), true
	case ports.ResultUnavailable:
		s.record("get", "unavailable")
		if s.logger != nil {
			s.logger.WithField("key", full).Warn("cache unavailable; treating as miss")
		}
	default:
		s.record("get", "miss")
		if s.logger != nil {
			s.logger.WithField("key", full).Debug("cache miss")
		}
	}
	return nil, false
}

func (s *CacheService) Set(ctx context.Context, key string, value any, opts ...ports.CacheOption) bool {
	if s.store == nil {
		return false
	}
	o := ports.ApplyCacheOptions(opts)
	full := s.GenerateKey(key, o.Prefix)
	ttl := o.TTL
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		s.record("set", "error")
		if s.logger != nil {
			s.logger.WithError(err).WithField("key", full).Error("cache: failed to serialize value")
		}
		return false
	}
	ok := s.store.Set(ctx, full, string(b), ttl)
	s.record("set", resultLabel(ok))
	return ok
}

func (s *CacheService) Delete(ctx context.Context, key string, opts ...ports.CacheOption) bool {
	if s.store == nil {
		return false
	}
	ok := s.store.Delete(ctx, s.fullKey(key, opts))
	s.record("delete", resultLabel(ok))
	return ok
}

func (s *CacheService) DeletePattern(ctx context.Context, pattern string, opts ...ports.CacheOption) bool {
	if s.store == nil {
		return false
	}
	full := s.fullKey(pattern, opts)
	ok := s.store.DeleteByPattern(ctx, full)
	s.record("delete_pattern", resultLabel(ok))
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"pattern": full, "ok": ok}).Info("cache pattern invalidated")
	}
	return ok
}

func (s *CacheService) Exists(ctx context.Context, key string, opts ...ports.CacheOption) bool {
	if s.store == nil {
		return false
	}
	return s.store.Exists(ctx, s.fullKey(key, opts))
}

// HealthCheck round-trips a throwaway value through the store.
func (s *CacheService) HealthCheck(ctx context.Context) ports.CacheHealth {
	probe := uuid.NewString()
	if !s.Set(ctx, healthProbeKey, probe, ports.WithTTL(healthProbeTTL)) {
		return ports.CacheHealth{Status: ports.CacheError, Connected: false}
	}
	got, ok := Get[string](ctx, s, healthProbeKey)
	s.Delete(ctx, healthProbeKey)
	if !ok || got != probe {
		return ports.CacheHealth{Status: ports.CacheUnhealthy, Connected: false}
	}
	return ports.CacheHealth{Status: ports.CacheHealthy, Connected: true}
}

func resultLabel(ok bool) string {
	if ok {
		return "ok"
	}
	return "failed"
}

// Get decodes the cached value for key. A miss, an unreachable store and an
// undecodable payload all report ok=false.
func Get[T any](ctx context.Context, c ports.Cache, key string, opts ...ports.CacheOption) (T, bool) {
	var v T
	if c == nil {
		return v, false
	}
	b, ok := c.GetRaw(ctx, key, opts...)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(b, &v); err != nil {
		var zero T
		return zero, false
	}
	return v, true
}

// Remember returns the cached value for key, or calls compute, caches its
// result and returns it. The write is best effort. Concurrent misses on the
// same key each call compute; the last write wins.
func Remember[T any](ctx context.Context, c ports.Cache, key string, compute func(ctx context.Context) (T, error), opts ...ports.CacheOption) (T, error) {
	if v, ok := Get[T](ctx, c, key, opts...); ok {
		return v, nil
	}
	fresh, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if c != nil {
		_ = c.Set(ctx, key, fresh, opts...)
	}
	return fresh, nil
}
