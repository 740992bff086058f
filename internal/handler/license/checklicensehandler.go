package license

import (
	"net/http"

	"github.com/neboloop/socialshare/internal/svc"
)

// CheckLicenseHandler asks the store for the current status, at most once a day.
func CheckLicenseHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := svcCtx.License.Check(r.Context())
		respond(w, status, err)
	}
}
