package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/headless-blog/internal/infrastructure/httpserver/helpers"
)

type LoggingMiddleware struct {
	logger *logrus.Logger
}

func NewLoggingMiddleware(logger *logrus.Logger) *LoggingMiddleware {
	return &LoggingMiddleware{logger: logger}
}

// RequestLogging logs every request once it completes. Server errors log at
// Error, client errors at Warn, everything else at Debug.
func (m *LoggingMiddleware) RequestLogging() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m.logger == nil {
				return next(c)
			}
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := logrus.Fields{
				"method":     c.Request().Method,
				"route":      c.Path(),
				"uri":        c.Request().RequestURI,
				"status":     c.Response().Status,
				"latency_ms": time.Since(start).Milliseconds(),
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
			}
			if locale, ok := helpers.GetLocaleRaw(c); ok {
				fields["locale"] = locale
			}
			entry := m.logger.WithFields(fields)
			switch status := c.Response().Status; {
			case status >= 500:
				entry.Error("request failed")
			case status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Debug("request served")
			}
			return nil
		}
	}
}
