package handler

import (
	"net/http"

	"github.com/neboloop/socialshare/internal/httputil"
	"github.com/neboloop/socialshare/internal/logging"
	"github.com/neboloop/socialshare/internal/svc"
	"github.com/neboloop/socialshare/internal/updater"
)

// UpdateCheckHandler returns the current version and whether the store offers a newer one.
func UpdateCheckHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := updater.Check(r.Context(), svcCtx.HTTPClient, svcCtx.UpdateSource(), svcCtx.License.Key(), svcCtx.Version)
		if err != nil {
			logging.Debugf("update check failed: %v", err)
			// Non-fatal: return current version with available=false
			httputil.OkJSON(w, &updater.Result{
				Available:      false,
				CurrentVersion: svcCtx.Version,
			})
			return
		}
		httputil.OkJSON(w, result)
	}
}
