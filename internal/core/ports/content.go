package ports

import (
	"context"

	"github.com/avatarctic/headless-blog/internal/core/domain/content"
)

// ContentService is the cached read side of the CMS. List methods always return a
// well-formed envelope; single-entity methods return nil when nothing is found.
type ContentService interface {
	GetPosts(ctx context.Context, locale string) content.PostsResponse
	GetPostBySlug(ctx context.Context, locale, slug string) *content.Post
	GetFeaturedPosts(ctx context.Context) content.PostsResponse
	GetPostsByCategory(ctx context.Context, categorySlug string) content.PostsResponse
	GetCategories(ctx context.Context) content.CategoriesResponse
	// GetPages lists pages; page <= 0 requests the unpaginated list.
	GetPages(ctx context.Context, locale string, page int) content.PagesResponse
	GetPageBySlug(ctx context.Context, locale, slug string) *content.Page
	GetHomepage(ctx context.Context, locale string) *content.Page
	// GetNavigation falls back to the default locale once when locale yields nothing.
	GetNavigation(ctx context.Context, name, locale string) content.NavigationTree
	ImageURL(url string) string
}
