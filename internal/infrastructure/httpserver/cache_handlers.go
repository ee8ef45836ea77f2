package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/headless-blog/internal/core/domain/content"
)

const (
	msgNavigationOnly       = "This endpoint only handles navigation cache invalidation"
	msgNavigationInvalidate = "Failed to invalidate navigation cache"
)

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func errorJSON(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// invalidateCache handles the CMS webhook.
func (s *Server) invalidateCache(c echo.Context) error {
	var n content.ChangeNotification
	if err := c.Bind(&n); err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Warn("invalid cache invalidation payload")
		}
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&n); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": msgNavigationOnly, "details": err.Error()})
	}

	ok, err := s.invalidation.HandleContentChange(c.Request().Context(), n)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("type", n.Type).Info("ignoring cache invalidation request")
		}
		return errorJSON(c, http.StatusBadRequest, msgNavigationOnly)
	}
	if !ok {
		return errorJSON(c, http.StatusInternalServerError, msgNavigationInvalidate)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Navigation cache invalidated",
		"trigger": map[string]string{
			"contentType": n.ContentType,
			"slug":        n.Slug,
			"title":       n.Title,
		},
		"timestamp": timestamp(),
	})
}

func (s *Server) invalidateUsage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":     "Navigation Cache Invalidation API",
		"description": "Automatically triggered when Posts/Pages change in the CMS",
		"methods":     []string{http.MethodPost},
		"usage":       `POST /api/cache/invalidate { "type": "navigation", "contentType": "post|page", "slug": "content-slug", "title": "Content Title" }`,
	})
}

func (s *Server) cacheStatus(c echo.Context) error {
	health := s.cache.HealthCheck(c.Request().Context())
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "Cache Status Check",
		"redis":  health,
		"endpoints": map[string]string{
			"invalidate": "/api/cache/invalidate (POST)",
			"test":       "/api/cache/test (GET)",
			"status":     "/api/cache/status (GET)",
		},
		"timestamp": timestamp(),
	})
}

func (s *Server) cacheTest(c echo.Context) error {
	ok := s.invalidation.InvalidateNavigation(c.Request().Context(), s.navigationName, "")
	result := "success"
	if !ok {
		result = "failed"
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"name": s.navigationName, "result": result}).Info("navigation cache invalidation test")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message":     "Navigation cache invalidation test",
		"result":      result,
		"description": "This simulates what happens when you update a Post/Page in the CMS",
		"timestamp":   timestamp(),
	})
}

func (s *Server) cacheTestUsage(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"message": "Use GET method to test navigation cache invalidation",
	})
}
