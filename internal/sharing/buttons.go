// Package sharing turns resolved settings and a page context into share
// buttons and the markup injected into pages.
//
// Everything here is a pure function of its inputs: no I/O, no clocks, no
// package state that changes after init. Identical inputs give
// byte-identical output.
package sharing

import (
	"strings"

	"github.com/neboloop/socialshare/internal/settings"
)

// PageContext describes the page being shared. It is built per request by
// the host and never stored.
type PageContext struct {
	URL          string `json:"url"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// Shareable reports whether the context has a concrete URL.
func (c PageContext) Shareable() bool {
	return strings.TrimSpace(c.URL) != ""
}

// ShareButton is one rendered sharing destination.
type ShareButton struct {
	Network string `json:"network"`
	URL     string `json:"url"`
	Title   string `json:"title"`
}

// Buttons is an ordered mapping of network key to button, in catalog order.
type Buttons []ShareButton

// Len returns the number of buttons.
func (b Buttons) Len() int { return len(b) }

// Keys returns the network keys in order.
func (b Buttons) Keys() []string {
	keys := make([]string, len(b))
	for i, btn := range b {
		keys[i] = btn.Network
	}
	return keys
}

// Get returns the button for a network key.
func (b Buttons) Get(key string) (ShareButton, bool) {
	for _, btn := range b {
		if btn.Network == key {
			return btn, true
		}
	}
	return ShareButton{}, false
}

// BuildButtons returns a button for every network enabled in settings, in
// catalog order. A non-shareable context yields no buttons.
func BuildButtons(values settings.Values, ctx PageContext) Buttons {
	if !ctx.Shareable() {
		return nil
	}

	pageURL := encode(strings.TrimSpace(ctx.URL))
	title := encode(ctx.Title)

	var buttons Buttons
	for _, n := range catalog {
		if !values.Checked(KeyNetworks, n.Key) {
			continue
		}
		media := ""
		if n.Key == "pinterest" && ctx.ThumbnailURL != "" {
			media = encode(ctx.ThumbnailURL)
		}
		buttons = append(buttons, ShareButton{
			Network: n.Key,
			URL:     n.link(pageURL, title, media),
			Title:   n.Title,
		})
	}
	return buttons
}
