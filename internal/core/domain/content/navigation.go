package content

type NavigationType string

const (
	NavigationInternal NavigationType = "INTERNAL"
	NavigationExternal NavigationType = "EXTERNAL"
)

// Content-type discriminators used by the navigation plugin.
const (
	RelatedPage = "api::page.page"
	RelatedPost = "api::post.post"
)

type NavigationRelated struct {
	DocumentID string `json:"documentId"`
	Type       string `json:"__type"`
	Title      string `json:"title"`
	Slug       string `json:"slug"`
	Content    string `json:"content,omitempty"`
	Excerpt    string `json:"excerpt,omitempty"`
}

type NavigationItem struct {
	ID          int                `json:"id"`
	Title       string             `json:"title"`
	Path        string             `json:"path,omitempty"`
	Type        NavigationType     `json:"type"`
	UIRouterKey string             `json:"uiRouterKey,omitempty"`
	Related     *NavigationRelated `json:"related,omitempty"`
	Items       []NavigationItem   `json:"items,omitempty"`
}

// NavigationTree is the ordered list of root nodes of a rendered menu.
type NavigationTree []NavigationItem

// Href resolves the link target of a node.
func (n NavigationItem) Href() string {
	if n.Path != "" && n.Path != "/" {
		return n.Path
	}
	if n.Type == NavigationInternal && n.Related != nil && n.Related.Slug != "" {
		switch n.Related.Type {
		case RelatedPage:
			return "/page/" + n.Related.Slug
		case RelatedPost:
			return "/posts/" + n.Related.Slug
		default:
			return "/" + n.Related.Slug
		}
	}
	if n.Type == NavigationExternal && n.Path != "" {
		return n.Path
	}
	return "#"
}

func (n NavigationItem) HasChildren() bool {
	return len(n.Items) > 0
}

// Walk visits every node depth first; depth is 0 for root nodes.
func (t NavigationTree) Walk(fn func(item NavigationItem, depth int)) {
	var visit func(items []NavigationItem, depth int)
	visit = func(items []NavigationItem, depth int) {
		for _, it := range items {
			fn(it, depth)
			visit(it.Items, depth+1)
		}
	}
	visit(t, 0)
}
