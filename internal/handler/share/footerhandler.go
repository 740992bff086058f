package share

import (
	"net/http"

	"github.com/neboloop/socialshare/internal/httputil"
	"github.com/neboloop/socialshare/internal/sharing"
	"github.com/neboloop/socialshare/internal/svc"
	"github.com/neboloop/socialshare/internal/types"
)

// FooterHandler renders the floating sidebar for the page footer.
func FooterHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.FooterRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		view := sharing.ParseView(req.View)
		ctx := sharing.ContextFor(view, svcCtx.Site(), item(req.Item))
		httputil.OkJSON(w, &types.HtmlResponse{Html: sharing.Footer(view, svcCtx.Settings.Get(), ctx)})
	}
}
