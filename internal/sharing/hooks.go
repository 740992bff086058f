package sharing

import (
	"strings"

	"github.com/neboloop/socialshare/internal/settings"
)

// View is the kind of page the host is rendering.
type View string

const (
	ViewSingular View = "singular"
	ViewArchive  View = "archive"
	ViewHome     View = "home"
	ViewOther    View = "other"
)

// ParseView maps unknown values to ViewOther.
func ParseView(s string) View {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case ViewSingular, ViewArchive, ViewHome:
		return v
	}
	return ViewOther
}

// Site is the host site as a whole.
type Site struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// Item is the single post or page being viewed.
type Item struct {
	Permalink    string `json:"permalink"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// ContextFor derives the page context for a view. Archives and the blog
// index share the site itself; single views share the item. Any other view
// is not shareable.
func ContextFor(view View, site Site, item *Item) PageContext {
	switch view {
	case ViewHome, ViewArchive:
		return PageContext{URL: site.URL, Title: site.Name}
	case ViewSingular:
		if item == nil {
			return PageContext{}
		}
		return PageContext{URL: item.Permalink, Title: item.Title, ThumbnailURL: item.ThumbnailURL}
	}
	return PageContext{}
}

// InjectContent splices the above- and below-content button lists around a
// rendered body. Only the main query of a single view is touched.
func InjectContent(body string, view View, mainQuery bool, values settings.Values, ctx PageContext) string {
	if view != ViewSingular || !mainQuery {
		return body
	}

	buttons := BuildButtons(values, ctx)
	return RenderPlacement(buttons, AboveContent, values) + body + RenderPlacement(buttons, BelowContent, values)
}

// Footer renders the floating sidebar for singular, archive and home views.
func Footer(view View, values settings.Values, ctx PageContext) string {
	switch view {
	case ViewSingular, ViewArchive, ViewHome:
	default:
		return ""
	}
	return RenderPlacement(BuildButtons(values, ctx), Sidebar, values)
}
