package ports

import (
	"context"
	"net/url"
)

// CMSClient performs JSON GET requests against the headless CMS API.
type CMSClient interface {
	// Get requests path (relative to the API base URL) and decodes the body into out.
	Get(ctx context.Context, path string, query url.Values, out any) error
	// MediaURL turns a CMS-relative upload path into an absolute URL.
	MediaURL(path string) string
}
