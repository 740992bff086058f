package license

import (
	"net/http"

	"github.com/neboloop/socialshare/internal/httputil"
	"github.com/neboloop/socialshare/internal/svc"
	"github.com/neboloop/socialshare/internal/types"
)

func GetLicenseHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := svcCtx.License.Info()
		httputil.OkJSON(w, &types.LicenseResponse{
			HasKey: info.HasKey,
			Status: string(info.Status),
			Notice: info.Notice,
		})
	}
}
