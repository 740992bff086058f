package license

import (
	"net/http"

	"github.com/neboloop/socialshare/internal/httputil"
	"github.com/neboloop/socialshare/internal/svc"
	"github.com/neboloop/socialshare/internal/types"
)

// ActivateLicenseHandler activates the submitted key, or the stored one.
func ActivateLicenseHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.LicenseActionRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		status, err := svcCtx.License.Activate(r.Context(), req.LicenseKey)
		respond(w, status, err)
	}
}
