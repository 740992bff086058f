package share

import (
	"fmt"
	"net/http"

	"github.com/neboloop/socialshare/internal/httputil"
	"github.com/neboloop/socialshare/internal/sharing"
	"github.com/neboloop/socialshare/internal/svc"
	"github.com/neboloop/socialshare/internal/types"
)

// RenderPlacementHandler renders the button list for one placement.
func RenderPlacementHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RenderPlacementRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		placement, ok := sharing.ParsePlacement(req.Placement)
		if !ok {
			httputil.Error(w, fmt.Errorf("unknown placement %q", req.Placement))
			return
		}

		values := svcCtx.Settings.Get()
		buttons := sharing.BuildButtons(values, pageContext(req.Page))
		out := sharing.RenderPlacement(buttons, placement, values)

		resp := &types.RenderPlacementResponse{Placement: string(placement), Html: out}
		if out != "" {
			resp.Class = sharing.ContainerClass(placement, sharing.ParseStyle(values.String(sharing.KeyStyle)), buttons.Len())
		}
		httputil.OkJSON(w, resp)
	}
}
