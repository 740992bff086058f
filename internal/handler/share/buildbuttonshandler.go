package share

import (
	"net/http"

	"github.com/neboloop/socialshare/internal/httputil"
	"github.com/neboloop/socialshare/internal/sharing"
	"github.com/neboloop/socialshare/internal/svc"
	"github.com/neboloop/socialshare/internal/types"
)

// BuildButtonsHandler returns the enabled share buttons for a page.
func BuildButtonsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.BuildButtonsRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		buttons := sharing.BuildButtons(svcCtx.Settings.Get(), pageContext(req.Page))
		httputil.OkJSON(w, &types.BuildButtonsResponse{Buttons: toButtons(buttons)})
	}
}
