package helpers

import (
	"github.com/labstack/echo/v4"
)

type ctxKey string

const (
	keyLocale         ctxKey = "locale"
	keyLocaleFallback ctxKey = "locale_fallback"
)

func SetLocale(c echo.Context, locale string) { c.Set(string(keyLocale), locale) }
func GetLocaleRaw(c echo.Context) (string, bool) {
	v := c.Get(string(keyLocale))
	l, ok := v.(string)
	return l, ok && l != ""
}

// SetLocaleFallback records that the locale came from defaults rather than the request.
func SetLocaleFallback(c echo.Context, fallback bool) { c.Set(string(keyLocaleFallback), fallback) }
func GetLocaleFallbackRaw(c echo.Context) (bool, bool) {
	v := c.Get(string(keyLocaleFallback))
	b, ok := v.(bool)
	return b, ok
}
