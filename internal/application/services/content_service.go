package services

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/avatarctic/headless-blog/internal/core/domain/content"
	"github.com/avatarctic/headless-blog/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// Cache lifetimes per resource.
const (
	PostsTTL         = 5 * time.Minute
	PostTTL          = 10 * time.Minute
	FeaturedPostsTTL = 10 * time.Minute
	CategoryPostsTTL = 10 * time.Minute
	CategoriesTTL    = 15 * time.Minute
	PagesTTL         = 10 * time.Minute
	PageTTL          = 10 * time.Minute
	HomepageTTL      = 10 * time.Minute
	NavigationTTL    = 30 * time.Minute
)

const publishedDesc = "publishedAt:desc"

// ContentService reads CMS content through the cache. Fetch failures are logged
// and replaced by empty results, and those results are cached like any other.
type ContentService struct {
	cms           ports.CMSClient
	cache         ports.Cache
	defaultLocale string
	logger        *logrus.Logger
}

var _ ports.ContentService = (*ContentService)(nil)

func NewContentService(cms ports.CMSClient, cache ports.Cache, defaultLocale string, logger *logrus.Logger) *ContentService {
	return &ContentService{cms: cms, cache: cache, defaultLocale: defaultLocale, logger: logger}
}

func (s *ContentService) locale(l string) string {
	if l == "" {
		return s.defaultLocale
	}
	return l
}

func (s *ContentService) logFetchError(resource string, fields logrus.Fields, err error) {
	if s.logger == nil {
		return
	}
	s.logger.WithField("resource", resource).WithFields(fields).WithError(err).Error("error fetching content")
}

// fetchList never fails: an unreachable CMS yields the empty envelope.
func fetchList[T any](ctx context.Context, s *ContentService, resource, path string, q url.Values) content.Envelope[T] {
	var env content.Envelope[T]
	if err := s.cms.Get(ctx, path, q, &env); err != nil {
		s.logFetchError(resource, logrus.Fields{"query": q.Encode()}, err)
		return content.EmptyEnvelope[T]()
	}
	if env.Data == nil {
		env.Data = []T{}
	}
	return env
}

func rememberList[T any](ctx context.Context, s *ContentService, key string, ttl time.Duration, resource, path string, q url.Values) content.Envelope[T] {
	env, _ := Remember(ctx, s.cache, key, func(ctx context.Context) (content.Envelope[T], error) {
		return fetchList[T](ctx, s, resource, path, q), nil
	}, ports.WithTTL(ttl))
	if env.Data == nil {
		env.Data = []T{}
	}
	return env
}

// rememberFirst caches the first match of a filtered collection query, or nil.
func rememberFirst[T any](ctx context.Context, s *ContentService, key string, ttl time.Duration, resource, path string, q url.Values) *T {
	v, _ := Remember(ctx, s.cache, key, func(ctx context.Context) (*T, error) {
		var env content.Envelope[T]
		if err := s.cms.Get(ctx, path, q, &env); err != nil {
			s.logFetchError(resource, logrus.Fields{"query": q.Encode()}, err)
			return nil, nil
		}
		return env.First(), nil
	}, ports.WithTTL(ttl))
	return v
}

func postsQuery(locale string) url.Values {
	q := url.Values{}
	q.Set("populate", "*")
	if locale != "" {
		q.Set("locale", locale)
	}
	return q
}

func (s *ContentService) GetPosts(ctx context.Context, locale string) content.PostsResponse {
	locale = s.locale(locale)
	q := postsQuery(locale)
	q.Set("sort", publishedDesc)
	return rememberList[content.Post](ctx, s, content.PostsKey(locale), PostsTTL, "posts", "posts", q)
}

func (s *ContentService) GetPostBySlug(ctx context.Context, locale, slug string) *content.Post {
	locale = s.locale(locale)
	q := postsQuery(locale)
	q.Set("filters[slug][$eq]", slug)
	return rememberFirst[content.Post](ctx, s, content.PostKey(locale, slug), PostTTL, "post", "posts", q)
}

func (s *ContentService) GetFeaturedPosts(ctx context.Context) content.PostsResponse {
	q := postsQuery("")
	q.Set("filters[isFeatured][$eq]", "true")
	q.Set("sort", publishedDesc)
	return rememberList[content.Post](ctx, s, content.FeaturedPostsKey, FeaturedPostsTTL, "featured posts", "posts", q)
}

func (s *ContentService) GetPostsByCategory(ctx context.Context, categorySlug string) content.PostsResponse {
	q := postsQuery("")
	q.Set("filters[categories][slug][$eq]", categorySlug)
	q.Set("sort", publishedDesc)
	return rememberList[content.Post](ctx, s, content.PostsByCategoryKey(categorySlug), CategoryPostsTTL, "posts by category", "posts", q)
}

func (s *ContentService) GetCategories(ctx context.Context) content.CategoriesResponse {
	return rememberList[content.Category](ctx, s, content.CategoriesKey, CategoriesTTL, "categories", "categories", nil)
}

func (s *ContentService) GetPages(ctx context.Context, locale string, page int) content.PagesResponse {
	locale = s.locale(locale)
	q := postsQuery(locale)
	if page > 0 {
		q.Set("pagination[page]", strconv.Itoa(page))
	}
	return rememberList[content.Page](ctx, s, content.PagesKey(locale, page), PagesTTL, "pages", "pages", q)
}

func (s *ContentService) GetPageBySlug(ctx context.Context, locale, slug string) *content.Page {
	locale = s.locale(locale)
	q := postsQuery(locale)
	q.Set("filters[slug][$eq]", slug)
	return rememberFirst[content.Page](ctx, s, content.PageKey(locale, slug), PageTTL, "page", "pages", q)
}

func (s *ContentService) GetHomepage(ctx context.Context, locale string) *content.Page {
	locale = s.locale(locale)
	q := postsQuery(locale)
	q.Set("filters[isHomepage][$eq]", "true")
	return rememberFirst[content.Page](ctx, s, content.HomepageKey(locale), HomepageTTL, "homepage", "pages", q)
}

func (s *ContentService) fetchNavigation(ctx context.Context, name, locale string) (content.NavigationTree, error) {
	q := url.Values{}
	q.Set("type", "TREE")
	q.Set("populate", "*")
	q.Set("locale", locale)
	var tree content.NavigationTree
	if err := s.cms.Get(ctx, "navigation/render/"+url.PathEscape(name), q, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}

func (s *ContentService) GetNavigation(ctx context.Context, name, locale string) content.NavigationTree {
	locale = s.locale(locale)
	tree, _ := Remember(ctx, s.cache, content.NavigationKey(name, locale), func(ctx context.Context) (content.NavigationTree, error) {
		t := withLocaleFallback(ctx, s, locale, func(t content.NavigationTree) bool { return len(t) == 0 },
			func(ctx context.Context, l string) (content.NavigationTree, error) {
				return s.fetchNavigation(ctx, name, l)
			})
		if t == nil {
			t = content.NavigationTree{}
		}
		return t, nil
	}, ports.WithTTL(NavigationTTL))
	if tree == nil {
		tree = content.NavigationTree{}
	}
	return tree
}

// withLocaleFallback fetches for locale and, when that fails or comes back
// empty, retries exactly once with the default locale. Failures of the
// default-locale fetch are final and yield the zero value.
func withLocaleFallback[T any](ctx context.Context, s *ContentService, locale string, empty func(T) bool, fetch func(ctx context.Context, locale string) (T, error)) T {
	v, err := fetch(ctx, locale)
	if err == nil && !empty(v) {
		return v
	}
	if err != nil {
		s.logFetchError("navigation", logrus.Fields{"locale": locale}, err)
	}
	if locale == s.defaultLocale {
		if err != nil {
			var zero T
			return zero
		}
		return v
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"locale": locale, "fallback": s.defaultLocale}).Info("falling back to default locale")
	}
	fb, err := fetch(ctx, s.defaultLocale)
	if err != nil {
		s.logFetchError("navigation", logrus.Fields{"locale": s.defaultLocale}, err)
		var zero T
		return zero
	}
	return fb
}

func (s *ContentService) ImageURL(u string) string {
	return s.cms.MediaURL(u)
}
