package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/avatarctic/headless-blog/internal/core/domain/content"
	"github.com/avatarctic/headless-blog/internal/infrastructure/httpserver/helpers"
)

const (
	debugDefaultPost = "bai-viet-1"
	debugDefaultPage = "ve-chung-toi-1222"
)

type debugPage struct {
	ID               int    `json:"id"`
	DocumentID       string `json:"documentId"`
	Title            string `json:"title"`
	Slug             string `json:"slug"`
	HasFeaturedImage bool   `json:"hasFeaturedImage"`
	FeaturedImageURL string `json:"featuredImageUrl"`
}

type debugMatch struct {
	Found            bool   `json:"found"`
	Title            string `json:"title,omitempty"`
	HasFeaturedImage bool   `json:"hasFeaturedImage"`
	FeaturedImageURL string `json:"featuredImageUrl,omitempty"`
}

func (s *Server) imageURL(m *content.Media) string {
	if m == nil {
		return ""
	}
	return s.contentSvc.ImageURL(m.URL)
}

func (s *Server) debugPages(c echo.Context) error {
	pages := s.contentSvc.GetPages(c.Request().Context(), "", 0)
	out := make([]debugPage, 0, len(pages.Data))
	for i := range pages.Data {
		p := &pages.Data[i]
		out = append(out, debugPage{
			ID:               p.ID,
			DocumentID:       p.DocumentID,
			Title:            p.Title,
			Slug:             p.Slug,
			HasFeaturedImage: p.FeaturedImage != nil,
			FeaturedImageURL: s.imageURL(p.FeaturedImage),
		})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":    "Debug: All pages in the CMS",
		"totalPages": len(out),
		"pages":      out,
		"timestamp":  timestamp(),
	})
}

// debugCompare looks up a post and a page side by side.
func (s *Server) debugCompare(c echo.Context) error {
	locale, err := helpers.GetLocaleFromContext(c)
	if err != nil {
		return err
	}
	postSlug := c.QueryParam("post")
	if postSlug == "" {
		postSlug = debugDefaultPost
	}
	pageSlug := c.QueryParam("page")
	if pageSlug == "" {
		pageSlug = debugDefaultPage
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"post": postSlug, "page": pageSlug, "locale": locale}).Debug("comparing post and page lookups")
	}

	ctx := c.Request().Context()
	var postRes, pageRes debugMatch
	if post := s.contentSvc.GetPostBySlug(ctx, locale, postSlug); post != nil {
		postRes = debugMatch{Found: true, Title: post.Title, HasFeaturedImage: post.FeaturedImage != nil, FeaturedImageURL: s.imageURL(post.FeaturedImage)}
	}
	if page := s.contentSvc.GetPageBySlug(ctx, locale, pageSlug); page != nil {
		pageRes = debugMatch{Found: true, Title: page.Title, HasFeaturedImage: page.FeaturedImage != nil, FeaturedImageURL: s.imageURL(page.FeaturedImage)}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message":  "API Comparison",
		"postSlug": postSlug,
		"pageSlug": pageSlug,
		"locale":   locale,
		"results": map[string]debugMatch{
			"post": postRes,
			"page": pageRes,
		},
		"timestamp": timestamp(),
	})
}
