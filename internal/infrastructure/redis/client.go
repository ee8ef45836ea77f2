package redis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"syscall"
	"time"

	config "github.com/avatarctic/headless-blog/configs"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// DefaultCommandTimeout bounds a single command when the config leaves it unset.
const DefaultCommandTimeout = 5 * time.Second

// NewRedisOptions maps the service config onto go-redis options.
func NewRedisOptions(cfg *config.RedisConfig) *redis.Options {
	return &redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		PoolTimeout:  cfg.PoolTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// connection owns the single process-wide client handle. The handle is created
// on first use, shared by all callers, and cleared when the transport fails or
// Disconnect is called; the next caller then dials again.
type connection struct {
	opts      *redis.Options
	logger    *logrus.Logger
	newClient func(*redis.Options) *redis.Client

	mu     sync.Mutex
	client *redis.Client
	group  singleflight.Group
}

func newConnection(opts *redis.Options, logger *logrus.Logger) *connection {
	return &connection{opts: opts, logger: logger, newClient: redis.NewClient}
}

// get returns the live client, dialing if needed. Concurrent callers share one
// in-flight dial; a caller whose ctx ends stops waiting but does not cancel it.
func (c *connection) get(ctx context.Context) (*redis.Client, error) {
	c.mu.Lock()
	client := c.client
	c.mu.Unlock()
	if client != nil {
		return client, nil
	}

	ch := c.group.DoChan("connect", func() (any, error) {
		return c.dial()
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*redis.Client), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *connection) dial() (*redis.Client, error) {
	c.mu.Lock()
	if c.client != nil {
		client := c.client
		c.mu.Unlock()
		return client, nil
	}
	c.mu.Unlock()

	timeout := c.opts.DialTimeout
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	client := c.newClient(c.opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if c.logger != nil {
			c.logger.WithError(err).WithField("addr", c.opts.Addr).Error("failed to connect to Redis")
		}
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	c.mu.Lock()
	c.client = client
	c.mu.Unlock()
	if c.logger != nil {
		c.logger.WithField("addr", c.opts.Addr).Info("Redis connected")
	}
	return client, nil
}

// drop clears the handle if it is still client, so a later call reconnects.
func (c *connection) drop(client *redis.Client) {
	c.mu.Lock()
	if c.client != client {
		c.mu.Unlock()
		return
	}
	c.client = nil
	c.mu.Unlock()
	_ = client.Close()
	if c.logger != nil {
		c.logger.WithField("addr", c.opts.Addr).Warn("Redis connection closed")
	}
}

func (c *connection) close() error {
	c.mu.Lock()
	client := c.client
	c.client = nil
	c.mu.Unlock()
	if client == nil {
		return nil
	}
	return client.Close()
}

func (c *connection) connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.client != nil
}

// isConnectionError reports whether err means the transport is gone rather
// than the command being rejected.
func isConnectionError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}
	if errors.Is(err, redis.ErrClosed) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
