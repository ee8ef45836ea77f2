package content

import "time"

type PostStatus string

const (
	PostStatusDraft     PostStatus = "draft"
	PostStatusPublished PostStatus = "published"
	PostStatusArchived  PostStatus = "archived"
)

// Label returns the display form of the status.
func (s PostStatus) Label() string {
	switch s {
	case PostStatusDraft:
		return "Draft"
	case PostStatusPublished:
		return "Published"
	case PostStatusArchived:
		return "Archived"
	default:
		return "Unknown"
	}
}

type Author struct {
	Username string `json:"username"`
}

type CategoryRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type Post struct {
	ID            int           `json:"id"`
	DocumentID    string        `json:"documentId"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Excerpt       string        `json:"excerpt,omitempty"`
	Content       string        `json:"content"`
	PublishedAt   *time.Time    `json:"publishedAt"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	FeaturedImage *Media        `json:"featuredImage,omitempty"`
	Author        *Author       `json:"author,omitempty"`
	Categories    []CategoryRef `json:"categories,omitempty"`
	Tags          []string      `json:"tags"`
	Status        PostStatus    `json:"post_status,omitempty"`
	ViewCount     int           `json:"viewCount"`
	ReadingTime   int           `json:"readingTime"`
	IsFeatured    bool          `json:"isFeatured"`
	Locale        string        `json:"locale,omitempty"`
	SEO           *SEO          `json:"seo,omitempty"`
}

type Category struct {
	ID          int       `json:"id"`
	DocumentID  string    `json:"documentId"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
