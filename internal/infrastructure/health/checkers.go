package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/avatarctic/headless-blog/internal/core/ports"
)

// cacheHealthChecker runs the cache write/read probe.
type cacheHealthChecker struct{ cache ports.Cache }

func (c *cacheHealthChecker) Name() string   { return "redis" }
func (c *cacheHealthChecker) Optional() bool { return true }
func (c *cacheHealthChecker) Check(ctx context.Context) error {
	h := c.cache.HealthCheck(ctx)
	if !h.Connected {
		return fmt.Errorf("cache %s", h.Status)
	}
	return nil
}

// cmsHealthChecker asks the CMS for a single category.
type cmsHealthChecker struct{ cms ports.CMSClient }

func (c *cmsHealthChecker) Name() string { return "cms" }
func (c *cmsHealthChecker) Check(ctx context.Context) error {
	q := url.Values{}
	q.Set("pagination[pageSize]", "1")
	var raw json.RawMessage
	return c.cms.Get(ctx, "categories", q, &raw)
}

// NewCacheHealthChecker creates a health checker for the Redis-backed cache.
func NewCacheHealthChecker(cache ports.Cache) ports.HealthChecker {
	return &cacheHealthChecker{cache: cache}
}

// NewCMSHealthChecker creates a health checker for the CMS API.
func NewCMSHealthChecker(cms ports.CMSClient) ports.HealthChecker {
	return &cmsHealthChecker{cms: cms}
}
