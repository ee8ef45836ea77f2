package ports

import (
	"context"

	"github.com/avatarctic/headless-blog/internal/core/domain/content"
)

// InvalidationService evicts cached content. It never recomputes entries.
type InvalidationService interface {
	// InvalidateNavigation drops one locale when locale is set, otherwise every locale.
	InvalidateNavigation(ctx context.Context, name, locale string) bool
	InvalidatePost(ctx context.Context, locale, slug string) bool
	InvalidatePage(ctx context.Context, locale, slug string) bool
	InvalidateAllPosts(ctx context.Context) bool
	InvalidateAllPages(ctx context.Context) bool
	InvalidateCategories(ctx context.Context) bool
	// HandleContentChange applies a CMS webhook notification.
	HandleContentChange(ctx context.Context, n content.ChangeNotification) (bool, error)
}
