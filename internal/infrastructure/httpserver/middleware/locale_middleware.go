package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/headless-blog/internal/infrastructure/httpserver/helpers"
)

type LocaleMiddleware struct {
	defaultLocale string
	supported     []string
	logger        *logrus.Logger
}

func NewLocaleMiddleware(defaultLocale string, supported []string, logger *logrus.Logger) *LocaleMiddleware {
	return &LocaleMiddleware{defaultLocale: defaultLocale, supported: supported, logger: logger}
}

// ResolveLocale stores the request locale in the context. An explicit :locale
// path segment must be supported; otherwise ?locale=, then Accept-Language,
// then the default locale are tried.
func (m *LocaleMiddleware) ResolveLocale() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if p := c.Param("locale"); p != "" {
				l, ok := helpers.SupportsLocale(m.supported, p)
				if !ok {
					return echo.NewHTTPError(http.StatusNotFound, "unsupported locale")
				}
				helpers.SetLocale(c, l)
				helpers.SetLocaleFallback(c, false)
				return next(c)
			}
			if q := c.QueryParam("locale"); q != "" {
				if l, ok := helpers.SupportsLocale(m.supported, q); ok {
					helpers.SetLocale(c, l)
					helpers.SetLocaleFallback(c, false)
					return next(c)
				}
			}
			if l, ok := helpers.MatchAcceptLanguage(c.Request().Header.Get("Accept-Language"), m.supported); ok {
				helpers.SetLocale(c, l)
				helpers.SetLocaleFallback(c, false)
				return next(c)
			}
			helpers.SetLocale(c, m.defaultLocale)
			helpers.SetLocaleFallback(c, true)
			if m.logger != nil {
				m.logger.WithField("path", c.Path()).Debug("no locale in request; using default")
			}
			return next(c)
		}
	}
}
