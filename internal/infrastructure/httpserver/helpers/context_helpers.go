package helpers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

func GetLocaleFromContext(c echo.Context) (string, error) {
	l, ok := GetLocaleRaw(c)
	if !ok {
		return "", echo.NewHTTPError(http.StatusInternalServerError, "missing locale context")
	}
	return l, nil
}

// SupportsLocale reports whether locale is one of supported (case-insensitive).
func SupportsLocale(supported []string, locale string) (string, bool) {
	for _, s := range supported {
		if strings.EqualFold(s, locale) {
			return s, true
		}
	}
	return "", false
}

// MatchAcceptLanguage picks the highest-weighted supported language from an
// Accept-Language header, comparing base languages only. Entries with q=0 are
// never chosen.
func MatchAcceptLanguage(header string, supported []string) (string, bool) {
	if strings.TrimSpace(header) == "" {
		return "", false
	}
	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return "", false
	}
	for _, tag := range tags {
		want, _ := tag.Base()
		for _, s := range supported {
			st, err := language.Parse(s)
			if err != nil {
				continue
			}
			if have, _ := st.Base(); have == want {
				return s, true
			}
		}
	}
	return "", false
}

// WildcardPath returns the unescaped "*" route parameter without leading or trailing slashes.
func WildcardPath(c echo.Context) string {
	return strings.Trim(c.Param("*"), "/")
}
