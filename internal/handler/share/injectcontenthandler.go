package share

import (
	"net/http"

	"github.com/neboloop/socialshare/internal/httputil"
	"github.com/neboloop/socialshare/internal/sharing"
	"github.com/neboloop/socialshare/internal/svc"
	"github.com/neboloop/socialshare/internal/types"
)

// InjectContentHandler wraps a rendered post body with the content button lists.
func InjectContentHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.InjectContentRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		view := sharing.ParseView(req.View)
		ctx := sharing.ContextFor(view, svcCtx.Site(), item(req.Item))
		out := sharing.InjectContent(req.Body, view, req.MainQuery, svcCtx.Settings.Get(), ctx)
		httputil.OkJSON(w, &types.HtmlResponse{Html: out})
	}
}
