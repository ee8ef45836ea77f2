package content

import "time"

type SEO struct {
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	Keywords        string `json:"keywords,omitempty"`
	MetaRobots      string `json:"metaRobots,omitempty"`
	CanonicalURL    string `json:"canonicalURL,omitempty"`
}

type Page struct {
	ID            int        `json:"id"`
	DocumentID    string     `json:"documentId"`
	Title         string     `json:"title"`
	Slug          string     `json:"slug"`
	Content       string     `json:"content"`
	IsHomepage    bool       `json:"isHomepage"`
	FeaturedImage *Media     `json:"featuredImage,omitempty"`
	SEO           *SEO       `json:"seo,omitempty"`
	Locale        string     `json:"locale,omitempty"`
	PublishedAt   *time.Time `json:"publishedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Metadata is the resolved set of head tags for a rendered page.
type Metadata struct {
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Keywords     string `json:"keywords,omitempty"`
	Robots       string `json:"robots,omitempty"`
	CanonicalURL string `json:"canonical,omitempty"`
}

// NotFoundMetadata is used when the requested entity does not exist.
var NotFoundMetadata = Metadata{Title: "Page Not Found"}

func metadataFrom(title string, seo *SEO) Metadata {
	md := Metadata{Title: title}
	if seo == nil {
		return md
	}
	if seo.MetaTitle != "" {
		md.Title = seo.MetaTitle
	}
	md.Description = seo.MetaDescription
	md.Keywords = seo.Keywords
	md.Robots = seo.MetaRobots
	md.CanonicalURL = seo.CanonicalURL
	return md
}

// Metadata prefers the SEO component and falls back to the page title.
func (p *Page) Metadata() Metadata {
	if p == nil {
		return NotFoundMetadata
	}
	return metadataFrom(p.Title, p.SEO)
}

func (p *Post) Metadata() Metadata {
	if p == nil {
		return NotFoundMetadata
	}
	md := metadataFrom(p.Title, p.SEO)
	if md.Description == "" {
		md.Description = p.Excerpt
	}
	return md
}
