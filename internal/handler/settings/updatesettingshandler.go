package settings

import (
	"net/http"

	"github.com/neboloop/socialshare/internal/httputil"
	"github.com/neboloop/socialshare/internal/logging"
	"github.com/neboloop/socialshare/internal/settings"
	"github.com/neboloop/socialshare/internal/svc"
	"github.com/neboloop/socialshare/internal/types"
)

// UpdateSettingsHandler applies a partial update. With ?replace=true the body
// is treated as a complete form submission, so omitted checkboxes turn off.
func UpdateSettingsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.UpdateSettingsRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}
		if req.Settings == nil {
			req.Settings = map[string]any{}
		}

		var (
			values settings.Values
			err    error
		)
		if req.Replace {
			values, err = svcCtx.Settings.Save(r.Context(), req.Settings, svcCtx.SanitizeOptions())
		} else {
			values, err = svcCtx.Settings.Patch(r.Context(), req.Settings, svcCtx.SanitizeOptions())
		}
		if err != nil {
			logging.Errorf("Failed to update settings: %v", err)
			httputil.InternalError(w, "failed to save settings")
			return
		}

		httputil.OkJSON(w, &types.SettingsResponse{Settings: values})
	}
}
