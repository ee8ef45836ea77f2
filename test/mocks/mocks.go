package mocks

import (
	"context"
	"encoding/json"
	"net/url"
	"sync"
	"time"

	"github.com/avatarctic/headless-blog/internal/core/domain/content"
	"github.com/avatarctic/headless-blog/internal/core/ports"
)

// CMSCall records one CMSClientMock.Get invocation.
type CMSCall struct {
	Path  string
	Query url.Values
}

// CMSClientMock is a lightweight mock for ports.CMSClient that records calls.
type CMSClientMock struct {
	GetFn      func(ctx context.Context, path string, query url.Values, out any) error
	MediaURLFn func(path string) string

	mu    sync.Mutex
	calls []CMSCall
}

var _ ports.CMSClient = (*CMSClientMock)(nil)

func (m *CMSClientMock) Get(ctx context.Context, path string, query url.Values, out any) error {
	m.mu.Lock()
	q := url.Values{}
	for k, v := range query {
		q[k] = append([]string(nil), v...)
	}
	m.calls = append(m.calls, CMSCall{Path: path, Query: q})
	m.mu.Unlock()
	if m.GetFn != nil {
		return m.GetFn(ctx, path, query, out)
	}
	return nil
}

func (m *CMSClientMock) MediaURL(path string) string {
	if m.MediaURLFn != nil {
		return m.MediaURLFn(path)
	}
	return path
}

func (m *CMSClientMock) Calls() []CMSCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CMSCall(nil), m.calls...)
}

func (m *CMSClientMock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// DecodeInto unmarshals a canned JSON body into out, as the real client would.
func DecodeInto(body string, out any) error {
	if out == nil {
		return nil
	}
	return json.Unmarshal([]byte(body), out)
}

// ContentServiceMock is a lightweight mock for ports.ContentService.
type ContentServiceMock struct {
	GetPostsFn           func(ctx context.Context, locale string) content.PostsResponse
	GetPostBySlugFn      func(ctx context.Context, locale, slug string) *content.Post
	GetFeaturedPostsFn   func(ctx context.Context) content.PostsResponse
	GetPostsByCategoryFn func(ctx context.Context, categorySlug string) content.PostsResponse
	GetCategoriesFn      func(ctx context.Context) content.CategoriesResponse
	GetPagesFn           func(ctx context.Context, locale string, page int) content.PagesResponse
	GetPageBySlugFn      func(ctx context.Context, locale, slug string) *content.Page
	GetHomepageFn        func(ctx context.Context, locale string) *content.Page
	GetNavigationFn      func(ctx context.Context, name, locale string) content.NavigationTree
	ImageURLFn           func(url string) string
}

var _ ports.ContentService = (*ContentServiceMock)(nil)

func (m *ContentServiceMock) GetPosts(ctx context.Context, locale string) content.PostsResponse {
	if m.GetPostsFn != nil {
		return m.GetPostsFn(ctx, locale)
	}
	return content.EmptyEnvelope[content.Post]()
}
func (m *ContentServiceMock) GetPostBySlug(ctx context.Context, locale, slug string) *content.Post {
	if m.GetPostBySlugFn != nil {
		return m.GetPostBySlugFn(ctx, locale, slug)
	}
	return nil
}
func (m *ContentServiceMock) GetFeaturedPosts(ctx context.Context) content.PostsResponse {
	if m.GetFeaturedPostsFn != nil {
		return m.GetFeaturedPostsFn(ctx)
	}
	return content.EmptyEnvelope[content.Post]()
}
func (m *ContentServiceMock) GetPostsByCategory(ctx context.Context, categorySlug string) content.PostsResponse {
	if m.GetPostsByCategoryFn != nil {
		return m.GetPostsByCategoryFn(ctx, categorySlug)
	}
	return content.EmptyEnvelope[content.Post]()
}
func (m *ContentServiceMock) GetCategories(ctx context.Context) content.CategoriesResponse {
	if m.GetCategoriesFn != nil {
		return m.GetCategoriesFn(ctx)
	}
	return content.EmptyEnvelope[content.Category]()
}
func (m *ContentServiceMock) GetPages(ctx context.Context, locale string, page int) content.PagesResponse {
	if m.GetPagesFn != nil {
		return m.GetPagesFn(ctx, locale, page)
	}
	return content.EmptyEnvelope[content.Page]()
}
func (m *ContentServiceMock) GetPageBySlug(ctx context.Context, locale, slug string) *content.Page {
	if m.GetPageBySlugFn != nil {
		return m.GetPageBySlugFn(ctx, locale, slug)
	}
	return nil
}
func (m *ContentServiceMock) GetHomepage(ctx context.Context, locale string) *content.Page {
	if m.GetHomepageFn != nil {
		return m.GetHomepageFn(ctx, locale)
	}
	return nil
}
func (m *ContentServiceMock) GetNavigation(ctx context.Context, name, locale string) content.NavigationTree {
	if m.GetNavigationFn != nil {
		return m.GetNavigationFn(ctx, name, locale)
	}
	return content.NavigationTree{}
}
func (m *ContentServiceMock) ImageURL(url string) string {
	if m.ImageURLFn != nil {
		return m.ImageURLFn(url)
	}
	return url
}

// InvalidationServiceMock is a lightweight mock for ports.InvalidationService.
type InvalidationServiceMock struct {
	InvalidateNavigationFn func(ctx context.Context, name, locale string) bool
	InvalidatePostFn       func(ctx context.Context, locale, slug string) bool
	InvalidatePageFn       func(ctx context.Context, locale, slug string) bool
	InvalidateAllPostsFn   func(ctx context.Context) bool
	InvalidateAllPagesFn   func(ctx context.Context) bool
	InvalidateCategoriesFn func(ctx context.Context) bool
	HandleContentChangeFn  func(ctx context.Context, n content.ChangeNotification) (bool, error)
}

var _ ports.InvalidationService = (*InvalidationServiceMock)(nil)

func (m *InvalidationServiceMock) InvalidateNavigation(ctx context.Context, name, locale string) bool {
	if m.InvalidateNavigationFn != nil {
		return m.InvalidateNavigationFn(ctx, name, locale)
	}
	return true
}
func (m *InvalidationServiceMock) InvalidatePost(ctx context.Context, locale, slug string) bool {
	if m.InvalidatePostFn != nil {
		return m.InvalidatePostFn(ctx, locale, slug)
	}
	return true
}
func (m *InvalidationServiceMock) InvalidatePage(ctx context.Context, locale, slug string) bool {
	if m.InvalidatePageFn != nil {
		return m.InvalidatePageFn(ctx, locale, slug)
	}
	return true
}
func (m *InvalidationServiceMock) InvalidateAllPosts(ctx context.Context) bool {
	if m.InvalidateAllPostsFn != nil {
		return m.InvalidateAllPostsFn(ctx)
	}
	return true
}
func (m *InvalidationServiceMock) InvalidateAllPages(ctx context.Context) bool {
	if m.InvalidateAllPagesFn != nil {
		return m.InvalidateAllPagesFn(ctx)
	}
	return true
}
func (m *InvalidationServiceMock) InvalidateCategories(ctx context.Context) bool {
	if m.InvalidateCategoriesFn != nil {
		return m.InvalidateCategoriesFn(ctx)
	}
	return true
}
func (m *InvalidationServiceMock) HandleContentChange(ctx context.Context, n content.ChangeNotification) (bool, error) {
	if m.HandleContentChangeFn != nil {
		return m.HandleContentChangeFn(ctx, n)
	}
	return true, nil
}

// CacheMock is a lightweight mock for ports.Cache; only HealthCheck is usually stubbed.
type CacheMock struct {
	HealthCheckFn func(ctx context.Context) ports.CacheHealth
}

var _ ports.Cache = (*CacheMock)(nil)

func (m *CacheMock) GenerateKey(key, prefix string) string {
	if prefix == "" {
		prefix = "strapi"
	}
	return prefix + ":" + key
}
func (m *CacheMock) GetRaw(context.Context, string, ...ports.CacheOption) ([]byte, bool) {
	return nil, false
}
func (m *CacheMock) Set(context.Context, string, any, ...ports.CacheOption) bool { return true }
func (m *CacheMock) Delete(context.Context, string, ...ports.CacheOption) bool { return true }
func (m *CacheMock) DeletePattern(context.Context, string, ...ports.CacheOption) bool { return true }
func (m *CacheMock) Exists(context.Context, string, ...ports.CacheOption) bool { return false }
func (m *CacheMock) HealthCheck(ctx context.Context) ports.CacheHealth {
	if m.HealthCheckFn != nil {
		return m.HealthCheckFn(ctx)
	}
	return ports.CacheHealth{Status: ports.CacheHealthy, Connected: true}
}

// RateLimiterServiceMock is a lightweight mock for ports.RateLimiterService.
type RateLimiterServiceMock struct {
	AllowFn func(ctx context.Context, clientKey string) (bool, int, int, time.Time, error)
}

var _ ports.RateLimiterService = (*RateLimiterServiceMock)(nil)

func (m *RateLimiterServiceMock) Allow(ctx context.Context, clientKey string) (bool, int, int, time.Time, error) {
	if m.AllowFn != nil {
		return m.AllowFn(ctx, clientKey)
	}
	return true, 1, 1, time.Now().Add(time.Minute), nil
}

// RateLimitRepositoryMock is a lightweight mock for ports.RateLimitRepository.
type RateLimitRepositoryMock struct {
	IncrementWindowFn func(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error)
}

var _ ports.RateLimitRepository = (*RateLimitRepositoryMock)(nil)

func (m *RateLimitRepositoryMock) IncrementWindow(ctx context.Context, clientKey string, window time.Duration, keyPrefix string, ttl time.Duration) (int, time.Time, error) {
	if m.IncrementWindowFn != nil {
		return m.IncrementWindowFn(ctx, clientKey, window, keyPrefix, ttl)
	}
	return 1, time.Now().Truncate(window), nil
}
