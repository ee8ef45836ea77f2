package httpserver

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/avatarctic/headless-blog/internal/core/domain/content"
	"github.com/avatarctic/headless-blog/internal/infrastructure/httpserver/helpers"
)

type entityResponse struct {
	Data     interface{}      `json:"data"`
	Metadata content.Metadata `json:"metadata"`
}

type notFoundResponse struct {
	Error    string           `json:"error"`
	Metadata content.Metadata `json:"metadata"`
}

type navigationLink struct {
	Title       string `json:"title"`
	Href        string `json:"href"`
	Depth       int    `json:"depth"`
	HasChildren bool   `json:"hasChildren"`
}

type navigationResponse struct {
	Name   string                 `json:"name"`
	Locale string                 `json:"locale"`
	Data   content.NavigationTree `json:"data"`
	Links  []navigationLink       `json:"links"`
}

func notFound(c echo.Context, what string) error {
	return c.JSON(http.StatusNotFound, notFoundResponse{Error: what + " not found", Metadata: content.NotFoundMetadata})
}

func (s *Server) getPosts(c echo.Context) error {
	locale, err := helpers.GetLocaleFromContext(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.contentSvc.GetPosts(c.Request().Context(), locale))
}

func (s *Server) getPost(c echo.Context) error {
	locale, err := helpers.GetLocaleFromContext(c)
	if err != nil {
		return err
	}
	post := s.contentSvc.GetPostBySlug(c.Request().Context(), locale, c.Param("slug"))
	if post == nil {
		return notFound(c, "Post")
	}
	return c.JSON(http.StatusOK, entityResponse{Data: post, Metadata: post.Metadata()})
}

func (s *Server) getFeaturedPosts(c echo.Context) error {
	return c.JSON(http.StatusOK, s.contentSvc.GetFeaturedPosts(c.Request().Context()))
}

func (s *Server) getPostsByCategory(c echo.Context) error {
	return c.JSON(http.StatusOK, s.contentSvc.GetPostsByCategory(c.Request().Context(), c.Param("slug")))
}

func (s *Server) getCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, s.contentSvc.GetCategories(c.Request().Context()))
}

func (s *Server) getPages(c echo.Context) error {
	locale, err := helpers.GetLocaleFromContext(c)
	if err != nil {
		return err
	}
	page := 0
	if raw := c.QueryParam("page"); raw != "" {
		page, err = strconv.Atoi(raw)
		if err != nil || page < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid page")
		}
	}
	return c.JSON(http.StatusOK, s.contentSvc.GetPages(c.Request().Context(), locale, page))
}

// getPage serves /pages/* so nested slugs such as "about/team" resolve.
func (s *Server) getPage(c echo.Context) error {
	locale, err := helpers.GetLocaleFromContext(c)
	if err != nil {
		return err
	}
	slug := helpers.WildcardPath(c)
	if slug == "" {
		return notFound(c, "Page")
	}
	page := s.contentSvc.GetPageBySlug(c.Request().Context(), locale, slug)
	if page == nil {
		return notFound(c, "Page")
	}
	return c.JSON(http.StatusOK, entityResponse{Data: page, Metadata: page.Metadata()})
}

func (s *Server) getHomepage(c echo.Context) error {
	locale, err := helpers.GetLocaleFromContext(c)
	if err != nil {
		return err
	}
	page := s.contentSvc.GetHomepage(c.Request().Context(), locale)
	if page == nil {
		return notFound(c, "Homepage")
	}
	return c.JSON(http.StatusOK, entityResponse{Data: page, Metadata: page.Metadata()})
}

func (s *Server) getNavigation(c echo.Context) error {
	locale, err := helpers.GetLocaleFromContext(c)
	if err != nil {
		return err
	}
	name := c.Param("name")
	tree := s.contentSvc.GetNavigation(c.Request().Context(), name, locale)
	links := make([]navigationLink, 0, len(tree))
	tree.Walk(func(item content.NavigationItem, depth int) {
		links = append(links, navigationLink{
			Title:       item.Title,
			Href:        item.Href(),
			Depth:       depth,
			HasChildren: item.HasChildren(),
		})
	})
	return c.JSON(http.StatusOK, navigationResponse{Name: name, Locale: locale, Data: tree, Links: links})
}
