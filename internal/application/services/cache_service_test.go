package services_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/headless-blog/internal/application/services"
	"github.com/avatarctic/headless-blog/internal/core/domain/content"
	"github.com/avatarctic/headless-blog/internal/core/ports"
	tmocks "github.com/avatarctic/headless-blog/test/mocks"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestCache(store ports.KeyValueStore) *services.CacheService {
	return services.NewCacheService(store, nil, nil, quietLogger())
}

type sample struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Tags  []string `json:"tags"`
}

func TestCacheService_GenerateKey(t *testing.T) {
	c := newTestCache(tmocks.NewMemoryStore())
	assert.Equal(t, "strapi:posts:vi:all", c.GenerateKey("posts:vi:all", ""))
	assert.Equal(t, "preview:posts:vi:all", c.GenerateKey("posts:vi:all", "preview"))

	custom := services.NewCacheService(tmocks.NewMemoryStore(), &services.CacheServiceConfig{Prefix: "blog"}, nil, nil)
	assert.Equal(t, "blog:x", custom.GenerateKey("x", ""))
}

func TestCacheService_SetThenGetRoundTrip(t *testing.T) {
	store := tmocks.NewMemoryStore()
	c := newTestCache(store)
	ctx := context.Background()

	in := sample{Name: "hello", Count: 3, Tags: []string{"a", "b"}}
	require.True(t, c.Set(ctx, "test:key", in))

	raw, ok := store.Raw("strapi:test:key")
	require.True(t, ok)
	assert.JSONEq(t, `{"name":"hello","count":3,"tags":["a","b"]}`, raw)

	out, ok := services.Get[sample](ctx, c, "test:key")
	require.True(t, ok)
	assert.Equal(t, in, out)
}

func TestCacheService_MissReturnsZero(t *testing.T) {
	c := newTestCache(tmocks.NewMemoryStore())
	v, ok := services.Get[sample](context.Background(), c, "nope")
	assert.False(t, ok)
	assert.Equal(t, sample{}, v)
}

func TestCacheService_DefaultAndCustomTTL(t *testing.T) {
	store := tmocks.NewMemoryStore()
	c := newTestCache(store)
	ctx := context.Background()

	require.True(t, c.Set(ctx, "a", 1))
	assert.Equal(t, int64(300), store.TTL(ctx, "strapi:a"))

	require.True(t, c.Set(ctx, "b", 1, ports.WithTTL(60*time.Second)))
	assert.Equal(t, int64(60), store.TTL(ctx, "strapi:b"))
}

func TestCacheService_EntryExpiresAfterTTL(t *testing.T) {
	store := tmocks.NewMemoryStore()
	c := newTestCache(store)
	ctx := context.Background()

	post := content.Post{Title: "Hello", Slug: "hello"}
	require.True(t, c.Set(ctx, content.PostKey("vi", "hello"), post, ports.WithTTL(60*time.Second)))

	store.Advance(30 * time.Second)
	got, ok := services.Get[content.Post](ctx, c, content.PostKey("vi", "hello"))
	require.True(t, ok)
	assert.Equal(t, "Hello", got.Title)

	store.Advance(31 * time.Second)
	_, ok = services.Get[content.Post](ctx, c, content.PostKey("vi", "hello"))
	assert.False(t, ok)
}

func TestCacheService_CorruptPayloadIsMiss(t *testing.T) {
	store := tmocks.NewMemoryStore()
	c := newTestCache(store)
	ctx := context.Background()

	require.True(t, store.Set(ctx, "strapi:bad", "{not json", 0))
	_, ok := services.Get[sample](ctx, c, "bad")
	assert.False(t, ok)
}

func TestCacheService_WithPrefix(t *testing.T) {
	store := tmocks.NewMemoryStore()
	c := newTestCache(store)
	ctx := context.Background()

	require.True(t, c.Set(ctx, "k", "v", ports.WithPrefix("other")))
	assert.True(t, store.Exists(ctx, "other:k"))
	assert.False(t, c.Exists(ctx, "k"))
	assert.True(t, c.Exists(ctx, "k", ports.WithPrefix("other")))

	require.True(t, c.Delete(ctx, "k", ports.WithPrefix("other")))
	assert.False(t, store.Exists(ctx, "other:k"))
}

func TestCacheService_DeletePatternStaysInNamespace(t *testing.T) {
	store := tmocks.NewMemoryStore()
	c := newTestCache(store)
	ctx := context.Background()

	for _, k := range []string{"posts:vi:all", "posts:en:all", "posts:featured", "pages:vi:all"} {
		require.True(t, c.Set(ctx, k, []int{1}))
	}
	require.True(t, store.Set(ctx, "other:posts:vi:all", "[]", 0))

	require.True(t, c.DeletePattern(ctx, content.AllPostListsPattern))

	assert.ElementsMatch(t, []string{"strapi:pages:vi:all", "other:posts:vi:all"}, store.Keys())
	assert.True(t, c.DeletePattern(ctx, "nothing:*"))
}

func TestCacheService_StoreDownFailsOpen(t *testing.T) {
	store := tmocks.NewMemoryStore()
	c := newTestCache(store)
	ctx := context.Background()
	require.True(t, c.Set(ctx, "k", "v"))

	store.SetDown(true)
	_, ok := services.Get[string](ctx, c, "k")
	assert.False(t, ok)
	assert.False(t, c.Set(ctx, "k", "v2"))
	assert.False(t, c.Delete(ctx, "k"))
	assert.False(t, c.DeletePattern(ctx, "*"))
	assert.False(t, c.Exists(ctx, "k"))
	assert.Equal(t, ports.CacheHealth{Status: ports.CacheError, Connected: false}, c.HealthCheck(ctx))

	store.SetDown(false)
	v, ok := services.Get[string](ctx, c, "k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestCacheService_NilStore(t *testing.T) {
	c := newTestCache(nil)
	ctx := context.Background()
	assert.False(t, c.Set(ctx, "k", 1))
	_, ok := c.GetRaw(ctx, "k")
	assert.False(t, ok)
	assert.False(t, c.HealthCheck(ctx).Connected)
}

func TestCacheService_HealthCheck(t *testing.T) {
	store := tmocks.NewMemoryStore()
	c := newTestCache(store)
	ctx := context.Background()

	h := c.HealthCheck(ctx)
	assert.Equal(t, ports.CacheHealthy, h.Status)
	assert.True(t, h.Connected)
	assert.False(t, store.Exists(ctx, "strapi:health:check"))
}

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, vec.WithLabelValues(labels...).Write(m))
	return m.GetCounter().GetValue()
}

func TestCacheService_RecordsOperations(t *testing.T) {
	ops := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_cache_ops"}, []string{"operation", "result"})
	store := tmocks.NewMemoryStore()
	c := services.NewCacheService(store, nil, ops, quietLogger())
	ctx := context.Background()

	_, _ = c.GetRaw(ctx, "k")
	c.Set(ctx, "k", 1)
	_, _ = c.GetRaw(ctx, "k")
	store.SetDown(true)
	_, _ = c.GetRaw(ctx, "k")

	assert.Equal(t, 1.0, counterValue(t, ops, "get", "miss"))
	assert.Equal(t, 1.0, counterValue(t, ops, "get", "hit"))
	assert.Equal(t, 1.0, counterValue(t, ops, "get", "unavailable"))
	assert.Equal(t, 1.0, counterValue(t, ops, "set", "ok"))
}

func TestRemember_ComputesOncePerTTL(t *testing.T) {
	store := tmocks.NewMemoryStore()
	c := newTestCache(store)
	ctx := context.Background()

	calls := 0
	compute := func(context.Context) (content.Post, error) {
		calls++
		return content.Post{Title: "Hello"}, nil
	}
	key := content.PostKey("vi", "hello")

	for i := 0; i < 3; i++ {
		p, err := services.Remember(ctx, c, key, compute, ports.WithTTL(60*time.Second))
		require.NoError(t, err)
		assert.Equal(t, "Hello", p.Title)
	}
	assert.Equal(t, 1, calls)

	store.Advance(61 * time.Second)
	_, err := services.Remember(ctx, c, key, compute, ports.WithTTL(60*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestRemember_ErrorIsNotCached(t *testing.T) {
	store := tmocks.NewMemoryStore()
	c := newTestCache(store)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := services.Remember(ctx, c, "k", func(context.Context) (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	assert.False(t, store.Exists(ctx, "strapi:k"))

	v, err := services.Remember(ctx, c, "k", func(context.Context) (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
}

func TestRemember_NilResultIsCached(t *testing.T) {
	store := tmocks.NewMemoryStore()
	c := newTestCache(store)
	ctx := context.Background()

	calls := 0
	compute := func(context.Context) (*content.Post, error) {
		calls++
		return nil, nil
	}
	for i := 0; i < 2; i++ {
		p, err := services.Remember(ctx, c, "post:vi:missing", compute)
		require.NoError(t, err)
		assert.Nil(t, p)
	}
	assert.Equal(t, 1, calls)
	raw, ok := store.Raw("strapi:post:vi:missing")
	require.True(t, ok)
	assert.Equal(t, "null", raw)
}

func TestRemember_StoreDownStillComputes(t *testing.T) {
	store := tmocks.NewMemoryStore()
	store.SetDown(true)
	c := newTestCache(store)

	calls := 0
	for i := 0; i < 2; i++ {
		v, err := services.Remember(context.Background(), c, "k", func(context.Context) (string, error) {
			calls++
			return "fresh", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "fresh", v)
	}
	assert.Equal(t, 2, calls)
}

func TestRemember_EvictionForcesRefetch(t *testing.T) {
	store := tmocks.NewMemoryStore()
	c := newTestCache(store)
	ctx := context.Background()
	key := content.PostKey("en", "hello")

	calls := 0
	fetch := func(context.Context) (map[string]string, error) {
		calls++
		return map[string]string{"title": "Hello"}, nil
	}

	v, err := services.Remember(ctx, c, key, fetch, ports.WithTTL(60*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "Hello", v["title"])
	assert.Equal(t, int64(60), store.TTL(ctx, "strapi:post:en:hello"))

	v, err = services.Remember(ctx, c, key, fetch, ports.WithTTL(60*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "Hello", v["title"])
	assert.Equal(t, 1, calls)

	require.True(t, c.Delete(ctx, key))
	_, err = services.Remember(ctx, c, key, fetch, ports.WithTTL(60*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}
