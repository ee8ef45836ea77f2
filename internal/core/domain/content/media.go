package content

import "time"

type ImageFormat struct {
	Ext         string  `json:"ext"`
	URL         string  `json:"url"`
	Hash        string  `json:"hash"`
	Mime        string  `json:"mime"`
	Name        string  `json:"name"`
	Path        *string `json:"path,omitempty"`
	Size        float64 `json:"size"`
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	SizeInBytes int     `json:"sizeInBytes"`
}

type Media struct {
	ID              int                    `json:"id"`
	DocumentID      string                 `json:"documentId"`
	Name            string                 `json:"name"`
	AlternativeText string                 `json:"alternativeText,omitempty"`
	Caption         string                 `json:"caption,omitempty"`
	Width           int                    `json:"width"`
	Height          int                    `json:"height"`
	Formats         map[string]ImageFormat `json:"formats,omitempty"`
	Hash            string                 `json:"hash"`
	Ext             string                 `json:"ext"`
	Mime            string                 `json:"mime"`
	Size            float64                `json:"size"`
	URL             string                 `json:"url"`
	PreviewURL      string                 `json:"previewUrl,omitempty"`
	Provider        string                 `json:"provider"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
	PublishedAt     *time.Time             `json:"publishedAt,omitempty"`
}

// Format returns the named rendition (thumbnail, small, ...) when the CMS generated one.
func (m *Media) Format(name string) (ImageFormat, bool) {
	if m == nil || m.Formats == nil {
		return ImageFormat{}, false
	}
	f, ok := m.Formats[name]
	return f, ok
}
