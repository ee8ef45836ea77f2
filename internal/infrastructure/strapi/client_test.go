package strapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	config "github.com/avatarctic/headless-blog/configs"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc, mutate func(*config.CMSConfig)) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := &config.CMSConfig{
		BaseURL:                 srv.URL + "/api",
		Token:                   "secret",
		Timeout:                 time.Second,
		BreakerMinRequests:      100,
		BreakerFailureThreshold: 1,
	}
	if mutate != nil {
		mutate(cfg)
	}
	c, err := NewClient(cfg, ClientDeps{})
	require.NoError(t, err)
	return c
}

func TestClient_GetDecodesAndSendsToken(t *testing.T) {
	var gotAuth, gotPath, gotSlug string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		gotSlug = r.URL.Query().Get("filters[slug][$eq]")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"title":"Hello"}]}`))
	}, nil)

	var out struct {
		Data []struct {
			Title string `json:"title"`
		} `json:"data"`
	}
	q := url.Values{}
	q.Set("filters[slug][$eq]", "hello")
	require.NoError(t, c.Get(context.Background(), "/posts", q, &out))

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "/api/posts", gotPath)
	assert.Equal(t, "hello", gotSlug)
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Hello", out.Data[0].Title)
}

func TestClient_Non2xxReturnsAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"missing"}`, http.StatusNotFound)
	}, nil)

	err := c.Get(context.Background(), "navigation/render/Main", nil, nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestClient_MalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":`))
	}, nil)
	var out map[string]any
	require.Error(t, c.Get(context.Background(), "posts", nil, &out))
}

func TestClient_TimeoutIsBounded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}, func(cfg *config.CMSConfig) { cfg.Timeout = 50 * time.Millisecond })

	start := time.Now()
	err := c.Get(context.Background(), "posts", nil, nil)
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	var hits int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadGateway)
	}, func(cfg *config.CMSConfig) {
		cfg.BreakerMinRequests = 2
		cfg.BreakerFailureThreshold = 0.5
		cfg.BreakerTimeout = time.Minute
	})

	for i := 0; i < 2; i++ {
		require.Error(t, c.Get(context.Background(), "posts", nil, nil))
	}
	err := c.Get(context.Background(), "posts", nil, nil)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, func(cfg *config.CMSConfig) {
		cfg.BreakerMinRequests = 1
		cfg.BreakerFailureThreshold = 0.1
	})
	for i := 0; i < 5; i++ {
		err := c.Get(context.Background(), "posts", nil, nil)
		require.True(t, IsNotFound(err))
	}
}

func TestClient_MediaURL(t *testing.T) {
	c, err := NewClient(&config.CMSConfig{BaseURL: "http://cms.local:1337/api"}, ClientDeps{})
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/a.png", c.MediaURL("https://cdn.example.com/a.png"))
	assert.Equal(t, "http://cms.local:1337/uploads/a.png", c.MediaURL("/uploads/a.png"))
	assert.Equal(t, "http://cms.local:1337/uploads/b.png", c.MediaURL("uploads/b.png"))
	assert.Equal(t, "", c.MediaURL(""))
}

func TestResourceLabel(t *testing.T) {
	assert.Equal(t, "posts", resource("/posts"))
	assert.Equal(t, "navigation", resource("navigation/render/Main"))
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient(&config.CMSConfig{}, ClientDeps{})
	require.Error(t, err)
}
