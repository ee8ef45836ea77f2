package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/avatarctic/headless-blog/internal/core/domain/content"
	"github.com/avatarctic/headless-blog/internal/core/ports"
	"github.com/sirupsen/logrus"
)

// ErrUnsupportedNotification is returned for webhook payloads the service does not act on.
var ErrUnsupportedNotification = errors.New("only navigation cache invalidation is supported")

// InvalidationService evicts cache entries; the next read repopulates them.
type InvalidationService struct {
	cache          ports.Cache
	navigationName string
	logger         *logrus.Logger
}

var _ ports.InvalidationService = (*InvalidationService)(nil)

func NewInvalidationService(cache ports.Cache, navigationName string, logger *logrus.Logger) *InvalidationService {
	return &InvalidationService{cache: cache, navigationName: navigationName, logger: logger}
}

func (s *InvalidationService) log(msg string, fields logrus.Fields, ok bool) {
	if s.logger == nil {
		return
	}
	entry := s.logger.WithFields(fields).WithField("ok", ok)
	if ok {
		entry.Info(msg)
	} else {
		entry.Error(msg)
	}
}

func (s *InvalidationService) InvalidateNavigation(ctx context.Context, name, locale string) bool {
	var ok bool
	if locale != "" {
		ok = s.cache.Delete(ctx, content.NavigationKey(name, locale))
	} else {
		ok = s.cache.DeletePattern(ctx, content.NavigationPattern(name))
	}
	s.log("navigation cache invalidated", logrus.Fields{"name": name, "locale": locale}, ok)
	return ok
}

func (s *InvalidationService) InvalidatePost(ctx context.Context, locale, slug string) bool {
	var ok bool
	if locale != "" {
		ok = s.cache.Delete(ctx, content.PostKey(locale, slug))
	} else {
		ok = s.cache.DeletePattern(ctx, content.PostSlugPattern(slug))
	}
	s.log("post cache invalidated", logrus.Fields{"slug": slug, "locale": locale}, ok)
	return ok
}

func (s *InvalidationService) InvalidatePage(ctx context.Context, locale, slug string) bool {
	var ok bool
	if locale != "" {
		ok = s.cache.Delete(ctx, content.PageKey(locale, slug))
	} else {
		ok = s.cache.DeletePattern(ctx, content.PageSlugPattern(slug))
	}
	s.log("page cache invalidated", logrus.Fields{"slug": slug, "locale": locale}, ok)
	return ok
}

// InvalidateAllPosts drops post lists and single posts.
func (s *InvalidationService) InvalidateAllPosts(ctx context.Context) bool {
	lists := s.cache.DeletePattern(ctx, content.AllPostListsPattern)
	single := s.cache.DeletePattern(ctx, content.AllPostsPattern)
	s.log("all posts cache invalidated", nil, lists && single)
	return lists && single
}

func (s *InvalidationService) InvalidateAllPages(ctx context.Context) bool {
	lists := s.cache.DeletePattern(ctx, content.AllPageListsPattern)
	single := s.cache.DeletePattern(ctx, content.AllPagesPattern)
	s.log("all pages cache invalidated", nil, lists && single)
	return lists && single
}

func (s *InvalidationService) InvalidateCategories(ctx context.Context) bool {
	ok := s.cache.DeletePattern(ctx, content.AllCategoriesPattern)
	s.log("categories cache invalidated", nil, ok)
	return ok
}

// HandleContentChange evicts the configured navigation in every locale. Any
// other notification type yields ErrUnsupportedNotification.
func (s *InvalidationService) HandleContentChange(ctx context.Context, n content.ChangeNotification) (bool, error) {
	if n.Type != content.NotificationNavigation {
		return false, fmt.Errorf("%w: got %q", ErrUnsupportedNotification, n.Type)
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"content_type": n.ContentType,
			"subject":      n.Subject(),
			"source":       n.Source,
		}).Info("navigation cache invalidation triggered")
	}
	return s.InvalidateNavigation(ctx, s.navigationName, ""), nil
}
