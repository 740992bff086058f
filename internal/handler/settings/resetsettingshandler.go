package settings

import (
	"net/http"

	"github.com/neboloop/socialshare/internal/httputil"
	"github.com/neboloop/socialshare/internal/logging"
	"github.com/neboloop/socialshare/internal/svc"
	"github.com/neboloop/socialshare/internal/types"
)

// ResetSettingsHandler restores every field to its default.
func ResetSettingsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		values, err := svcCtx.Settings.Reset(r.Context())
		if err != nil {
			logging.Errorf("Failed to reset settings: %v", err)
			httputil.InternalError(w, "failed to reset settings")
			return
		}
		httputil.OkJSON(w, &types.SettingsResponse{Settings: values})
	}
}
