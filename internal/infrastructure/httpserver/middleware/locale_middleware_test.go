package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/avatarctic/headless-blog/internal/infrastructure/httpserver/helpers"
	"github.com/avatarctic/headless-blog/internal/infrastructure/httpserver/middleware"
)

func runLocale(t *testing.T, target string, pathLocale string, headers map[string]string) (string, bool, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c := e.NewContext(req, httptest.NewRecorder())
	if pathLocale != "" {
		c.SetParamNames("locale")
		c.SetParamValues(pathLocale)
	}
	var locale string
	var fallback bool
	m := middleware.NewLocaleMiddleware("vi", []string{"vi", "en", "fr"}, nil)
	err := m.ResolveLocale()(func(c echo.Context) error {
		locale, _ = helpers.GetLocaleRaw(c)
		fallback, _ = helpers.GetLocaleFallbackRaw(c)
		return c.NoContent(http.StatusOK)
	})(c)
	return locale, fallback, err
}

func TestLocaleMiddleware_PathParam(t *testing.T) {
	l, fb, err := runLocale(t, "/", "fr", nil)
	require.NoError(t, err)
	require.Equal(t, "fr", l)
	require.False(t, fb)
}

func TestLocaleMiddleware_UnsupportedPathParamIs404(t *testing.T) {
	_, _, err := runLocale(t, "/", "de", nil)
	require.Error(t, err)
	htErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusNotFound, htErr.Code)
}

func TestLocaleMiddleware_QueryThenHeaderThenDefault(t *testing.T) {
	l, _, err := runLocale(t, "/?locale=en", "", map[string]string{"Accept-Language": "fr"})
	require.NoError(t, err)
	require.Equal(t, "en", l)

	l, _, err = runLocale(t, "/?locale=xx", "", map[string]string{"Accept-Language": "fr-CA"})
	require.NoError(t, err)
	require.Equal(t, "fr", l)

	l, fb, err := runLocale(t, "/", "", nil)
	require.NoError(t, err)
	require.Equal(t, "vi", l)
	require.True(t, fb)
}

func TestLocaleMiddleware_AcceptLanguageHonoursWeights(t *testing.T) {
	l, _, err := runLocale(t, "/", "", map[string]string{"Accept-Language": "fr;q=0, en;q=0.9, vi;q=0.1"})
	require.NoError(t, err)
	require.Equal(t, "en", l)

	l, _, err = runLocale(t, "/", "", map[string]string{"Accept-Language": "en;q=0, fr;q=0"})
	require.NoError(t, err)
	require.Equal(t, "vi", l)
}
