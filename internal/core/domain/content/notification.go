package content

// NotificationNavigation is the only change type the webhook acts upon.
const NotificationNavigation = "navigation"

// ChangeNotification is the payload the CMS webhook posts when content changes.
type ChangeNotification struct {
	Type        string `json:"type" validate:"required"`
	ContentType string `json:"contentType,omitempty"`
	Slug        string `json:"slug,omitempty"`
	Title       string `json:"title,omitempty"`
	Source      string `json:"source,omitempty"`
}

// Subject names the changed entry for log lines.
func (n ChangeNotification) Subject() string {
	switch {
	case n.Title != "":
		return n.Title
	case n.Slug != "":
		return n.Slug
	default:
		return "unknown"
	}
}
