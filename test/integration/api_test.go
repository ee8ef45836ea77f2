package integration_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	config "github.com/avatarctic/headless-blog/configs"
	"github.com/avatarctic/headless-blog/internal/application/services"
	"github.com/avatarctic/headless-blog/internal/core/ports"
	"github.com/avatarctic/headless-blog/internal/infrastructure/health"
	"github.com/avatarctic/headless-blog/internal/infrastructure/httpserver"
	"github.com/avatarctic/headless-blog/internal/infrastructure/redis"
	"github.com/avatarctic/headless-blog/internal/infrastructure/repositories"
	"github.com/avatarctic/headless-blog/internal/infrastructure/strapi"
)

// IntegrationTestSuite wires the real services against miniredis and a fake CMS.
type IntegrationTestSuite struct {
	suite.Suite
	redis    *miniredis.Miniredis
	cms      *httptest.Server
	store    *redis.Store
	server   *httpserver.Server
	navCalls int32
	cmsCalls int32
}

func (s *IntegrationTestSuite) SetupTest() {
	s.redis = miniredis.RunT(s.T())
	atomic.StoreInt32(&s.navCalls, 0)
	atomic.StoreInt32(&s.cmsCalls, 0)

	s.cms = httptest.NewServer(http.HandlerFunc(s.serveCMS))
	s.T().Cleanup(s.cms.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s.store = redis.NewStoreWithOptions(&goredis.Options{Addr: s.redis.Addr(), MaxRetries: -1}, time.Second, logger)
	s.T().Cleanup(func() { _ = s.store.Disconnect() })

	cache := services.NewCacheService(s.store, nil, nil, logger)
	cms, err := strapi.NewClient(&config.CMSConfig{
		BaseURL:                 s.cms.URL + "/api",
		Timeout:                 time.Second,
		BreakerMinRequests:      100,
		BreakerFailureThreshold: 1,
	}, strapi.ClientDeps{Logger: logger})
	s.Require().NoError(err)

	s.server = httpserver.NewServer(&httpserver.ServerConfig{Host: "127.0.0.1", Port: "0"}, logger, httpserver.ServerDeps{
		ContentService:      services.NewContentService(cms, cache, "vi", logger),
		InvalidationService: services.NewInvalidationService(cache, "Navigation", logger),
		Cache:               cache,
		RateLimiterService:  services.NewRateLimiterService(repositories.NewRateLimitRepository(s.store), &services.RateLimiterConfig{RequestsPerMinute: 2, BurstMultiplier: 1, Window: time.Hour}, logger),
		HealthCheckers:      []ports.HealthChecker{health.NewCacheHealthChecker(cache), health.NewCMSHealthChecker(cms)},
		DefaultLocale:       "vi",
		SupportedLocales:    []string{"vi", "en"},
		NavigationName:      "Navigation",
	})
}

func (s *IntegrationTestSuite) serveCMS(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&s.cmsCalls, 1)
	w.Header().Set("Content-Type", "application/json")
	q := r.URL.Query()
	switch {
	case r.URL.Path == "/api/navigation/render/Navigation":
		atomic.AddInt32(&s.navCalls, 1)
		if q.Get("locale") == "vi" {
			_, _ = w.Write([]byte(`[{"id":1,"title":"About","path":"/","type":"INTERNAL","related":{"__type":"api::page.page","slug":"about"}}]`))
			return
		}
		_, _ = w.Write([]byte(`[]`))
	case r.URL.Path == "/api/posts" && q.Get("filters[slug][$eq]") == "hello":
		_, _ = w.Write([]byte(`{"data":[{"id":1,"title":"Hello","slug":"hello"}]}`))
	case r.URL.Path == "/api/posts":
		_, _ = w.Write([]byte(`{"data":[]}`))
	case r.URL.Path == "/api/categories":
		_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"News","slug":"news"}]}`))
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"not found"}`))
	}
}

func (s *IntegrationTestSuite) request(method, target, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.server.Echo().ServeHTTP(rec, req)
	var out map[string]interface{}
	_ = json.Unmarshal(rec.Body.Bytes(), &out)
	return rec, out
}

func (s *IntegrationTestSuite) TestHealthCheck() {
	rec, body := s.request(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("healthy", body["status"])
}

func (s *IntegrationTestSuite) TestPostIsServedFromCacheOnSecondRead() {
	rec, _ := s.request(http.MethodGet, "/api/vi/posts/hello", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	first := atomic.LoadInt32(&s.cmsCalls)

	rec, body := s.request(http.MethodGet, "/api/vi/posts/hello", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("Hello", body["data"].(map[string]interface{})["title"])
	s.Equal(first, atomic.LoadInt32(&s.cmsCalls))
	s.True(s.redis.Exists("strapi:post:vi:hello"))
	s.Equal(600*time.Second, s.redis.TTL("strapi:post:vi:hello"))
}

func (s *IntegrationTestSuite) TestMissingPostIsCachedAsNull() {
	rec, _ := s.request(http.MethodGet, "/api/vi/posts/ghost", "")
	s.Equal(http.StatusNotFound, rec.Code)
	raw, err := s.redis.Get("strapi:post:vi:ghost")
	s.Require().NoError(err)
	s.Equal("null", raw)
}

func (s *IntegrationTestSuite) TestNavigationFallbackThenWebhookInvalidation() {
	rec, body := s.request(http.MethodGet, "/api/en/navigation/Navigation", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	links := body["links"].([]interface{})
	s.Require().Len(links, 1)
	s.Equal("/page/about", links[0].(map[string]interface{})["href"])
	s.Equal(int32(2), atomic.LoadInt32(&s.navCalls))

	s.request(http.MethodGet, "/api/vi/navigation/Navigation", "")
	s.Equal(int32(3), atomic.LoadInt32(&s.navCalls))
	s.request(http.MethodGet, "/api/en/navigation/Navigation", "")
	s.Equal(int32(3), atomic.LoadInt32(&s.navCalls))

	rec, body = s.request(http.MethodPost, "/api/cache/invalidate", `{"type":"navigation","contentType":"page","slug":"about","title":"About"}`)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(true, body["success"])
	s.False(s.redis.Exists("strapi:navigation:Navigation:en"))
	s.False(s.redis.Exists("strapi:navigation:Navigation:vi"))

	s.request(http.MethodGet, "/api/vi/navigation/Navigation", "")
	s.Equal(int32(4), atomic.LoadInt32(&s.navCalls))
}

func (s *IntegrationTestSuite) TestWebhookIsRateLimited() {
	for i := 0; i < 2; i++ {
		rec, _ := s.request(http.MethodPost, "/api/cache/invalidate", `{"type":"navigation"}`)
		s.Require().Equal(http.StatusOK, rec.Code)
	}
	rec, _ := s.request(http.MethodPost, "/api/cache/invalidate", `{"type":"navigation"}`)
	s.Equal(http.StatusTooManyRequests, rec.Code)
}

func (s *IntegrationTestSuite) TestRedisOutageDegradesToCMS() {
	s.redis.Close()

	rec, body := s.request(http.MethodGet, "/api/categories", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Len(body["data"].([]interface{}), 1)

	rec, body = s.request(http.MethodGet, "/api/cache/status", "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal(false, body["redis"].(map[string]interface{})["connected"])

	rec, body = s.request(http.MethodGet, "/health", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Equal("degraded", body["status"])

	rec, _ = s.request(http.MethodPost, "/api/cache/invalidate", `{"type":"navigation"}`)
	s.Equal(http.StatusInternalServerError, rec.Code)
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
