package share

import (
	"github.com/neboloop/socialshare/internal/sharing"
	"github.com/neboloop/socialshare/internal/types"
)

func pageContext(p types.PageContext) sharing.PageContext {
	return sharing.PageContext{URL: p.Url, Title: p.Title, ThumbnailURL: p.ThumbnailUrl}
}

func item(i *types.ShareItem) *sharing.Item {
	if i == nil {
		return nil
	}
	return &sharing.Item{Permalink: i.Permalink, Title: i.Title, ThumbnailURL: i.ThumbnailUrl}
}

func toButtons(buttons sharing.Buttons) []types.ShareButton {
	out := make([]types.ShareButton, 0, len(buttons))
	for _, b := range buttons {
		out = append(out, types.ShareButton{Network: b.Network, Url: b.URL, Title: b.Title})
	}
	return out
}
