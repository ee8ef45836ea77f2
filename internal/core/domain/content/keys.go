package content

import "strconv"

// Logical cache keys; the cache service adds the namespace prefix.
func PostsKey(locale string) string         { return "posts:" + locale + ":all" }
func PostKey(locale, slug string) string    { return "post:" + locale + ":" + slug }
func PageKey(locale, slug string) string    { return "page:" + locale + ":" + slug }
func HomepageKey(locale string) string      { return "page:" + locale + ":homepage" }
func PostsByCategoryKey(slug string) string { return "posts:category:" + slug }

const (
	CategoriesKey    = "categories:all"
	FeaturedPostsKey = "posts:featured"
)

// PagesKey uses "all" when no pagination page is requested.
func PagesKey(locale string, page int) string {
	p := "all"
	if page > 0 {
		p = strconv.Itoa(page)
	}
	return "pages:" + locale + ":" + p
}

func NavigationKey(name, locale string) string { return "navigation:" + name + ":" + locale }

// Invalidation patterns.
const (
	AllPostListsPattern  = "posts:*"
	AllPostsPattern      = "post:*"
	AllPageListsPattern  = "pages:*"
	AllPagesPattern      = "page:*"
	AllCategoriesPattern = "categories:*"
)

func NavigationPattern(name string) string { return "navigation:" + name + ":*" }
func PostSlugPattern(slug string) string   { return "post:*:" + slug }
func PageSlugPattern(slug string) string   { return "page:*:" + slug }
