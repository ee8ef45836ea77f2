package redis

import (
	"context"
	"errors"
	"time"

	config "github.com/avatarctic/headless-blog/configs"
	"github.com/avatarctic/headless-blog/internal/core/ports"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Store implements ports.KeyValueStore on a lazily connected Redis client.
// No method returns an error: an unreachable store reads as a miss and
// writes report false.
type Store struct {
	conn           *connection
	commandTimeout time.Duration
	logger         *logrus.Logger
}

var _ ports.KeyValueStore = (*Store)(nil)

// NewStore creates a store for cfg without dialing; the first command connects.
func NewStore(cfg *config.RedisConfig, logger *logrus.Logger) *Store {
	return NewStoreWithOptions(NewRedisOptions(cfg), cfg.CommandTimeout, logger)
}

func NewStoreWithOptions(opts *redis.Options, commandTimeout time.Duration, logger *logrus.Logger) *Store {
	if commandTimeout <= 0 {
		commandTimeout = DefaultCommandTimeout
	}
	return &Store{
		conn:           newConnection(opts, logger),
		commandTimeout: commandTimeout,
		logger:         logger,
	}
}

// Connected reports whether a live handle is currently held.
func (s *Store) Connected() bool {
	return s.conn.connected()
}

// exec runs fn against the shared client and classifies the outcome.
func (s *Store) exec(ctx context.Context, op, key string, fn func(ctx context.Context, c *redis.Client) error) ports.ResultStatus {
	client, err := s.conn.get(ctx)
	if err != nil {
		s.logFailure(op, key, err)
		return ports.ResultUnavailable
	}

	cctx, cancel := context.WithTimeout(ctx, s.commandTimeout)
	defer cancel()

	err = fn(cctx, client)
	switch {
	case err == nil:
		return ports.ResultOK
	case errors.Is(err, redis.Nil):
		return ports.ResultMiss
	}
	// A caller whose own ctx ended says nothing about the transport.
	if ctx.Err() == nil && isConnectionError(err) {
		s.conn.drop(client)
	}
	s.logFailure(op, key, err)
	return ports.ResultUnavailable
}

func (s *Store) logFailure(op, key string, err error) {
	if s.logger == nil {
		return
	}
	s.logger.WithFields(logrus.Fields{"op": op, "key": key}).WithError(err).Warn("redis command failed")
}

func (s *Store) Lookup(ctx context.Context, key string) (string, ports.ResultStatus) {
	var val string
	status := s.exec(ctx, "get", key, func(ctx context.Context, c *redis.Client) error {
		v, err := c.Get(ctx, key).Result()
		val = v
		return err
	})
	if status != ports.ResultOK {
		return "", status
	}
	return val, status
}

func (s *Store) Get(ctx context.Context, key string) (string, bool) {
	val, status := s.Lookup(ctx, key)
	return val, status == ports.ResultOK
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) bool {
	if ttl < 0 {
		ttl = 0
	}
	return s.exec(ctx, "set", key, func(ctx context.Context, c *redis.Client) error {
		return c.Set(ctx, key, value, ttl).Err()
	}) == ports.ResultOK
}

func (s *Store) Delete(ctx context.Context, key string) bool {
	return s.exec(ctx, "del", key, func(ctx context.Context, c *redis.Client) error {
		return c.Del(ctx, key).Err()
	}) == ports.ResultOK
}

func (s *Store) DeleteByPattern(ctx context.Context, pattern string) bool {
	var matched int
	status := s.exec(ctx, "delpattern", pattern, func(ctx context.Context, c *redis.Client) error {
		keys, err := c.Keys(ctx, pattern).Result()
		if err != nil {
			return err
		}
		matched = len(keys)
		if matched == 0 {
			return nil
		}
		return c.Del(ctx, keys...).Err()
	})
	if status == ports.ResultOK && s.logger != nil {
		s.logger.WithFields(logrus.Fields{"pattern": pattern, "deleted": matched}).Debug("redis pattern delete")
	}
	return status == ports.ResultOK
}

func (s *Store) Exists(ctx context.Context, key string) bool {
	var n int64
	status := s.exec(ctx, "exists", key, func(ctx context.Context, c *redis.Client) error {
		v, err := c.Exists(ctx, key).Result()
		n = v
		return err
	})
	return status == ports.ResultOK && n == 1
}

func (s *Store) TTL(ctx context.Context, key string) int64 {
	var d time.Duration
	status := s.exec(ctx, "ttl", key, func(ctx context.Context, c *redis.Client) error {
		v, err := c.TTL(ctx, key).Result()
		d = v
		return err
	})
	// go-redis reports "no expiry" and "no key" as negative durations.
	if status != ports.ResultOK || d < 0 {
		return -1
	}
	return int64(d / time.Second)
}

func (s *Store) IncrementWindow(ctx context.Context, key string, ttl time.Duration) (int64, bool) {
	var count int64
	status := s.exec(ctx, "incr", key, func(ctx context.Context, c *redis.Client) error {
		pipe := c.TxPipeline()
		incr := pipe.Incr(ctx, key)
		pipe.Expire(ctx, key, ttl)
		if _, err := pipe.Exec(ctx); err != nil {
			return err
		}
		count = incr.Val()
		return nil
	})
	return count, status == ports.ResultOK
}

func (s *Store) Disconnect() error {
	return s.conn.close()
}
