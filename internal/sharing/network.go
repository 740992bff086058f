package sharing

import (
	"net/url"
	"strings"
)

// Network is a sharing destination with a fixed URL template.
type Network struct {
	Key   string
	Title string
	link  func(pageURL, title, thumbnail string) string
}

// catalog is the display order of the supported networks. The order is part
// of the rendered output and must stay stable.
var catalog = []Network{
	{Key: "facebook", Title: "Facebook", link: func(u, t, _ string) string {
		return "https://www.facebook.com/sharer/sharer.php?u=" + u + "&t=" + t
	}},
	{Key: "twitter", Title: "Twitter", link: func(u, t, _ string) string {
		return "https://twitter.com/intent/tweet?text=" + t + "&url=" + u
	}},
	{Key: "whatsapp", Title: "WhatsApp", link: func(u, t, _ string) string {
		return "https://wa.me/?text=" + t + "%3A%20" + u
	}},
	{Key: "telegram", Title: "Telegram", link: func(u, t, _ string) string {
		return "https://telegram.me/share/url?url=" + u + "&text=" + t
	}},
	{Key: "buffer", Title: "Buffer", link: func(u, t, _ string) string {
		return "https://bufferapp.com/add?url=" + u + "&text=" + t
	}},
	{Key: "pinterest", Title: "Pinterest", link: func(u, t, media string) string {
		link := "https://pinterest.com/pin/create/button/?url=" + u
		if media != "" {
			link += "&media=" + media
		}
		return link + "&description=" + t
	}},
	{Key: "linkedin", Title: "LinkedIn", link: func(u, t, _ string) string {
		return "https://www.linkedin.com/shareArticle?mini=true&url=" + u + "&title=" + t
	}},
	{Key: "xing", Title: "Xing", link: func(u, _, _ string) string {
		return "https://www.xing.com/app/user?op=share;url=" + u
	}},
	{Key: "email", Title: "Email", link: func(u, t, _ string) string {
		return "mailto:?subject=" + t + "&body=" + u
	}},
}

// encode percent-encodes a value for use inside a share URL. Spaces become
// %20 rather than '+' so mailto: subjects read correctly.
func encode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
