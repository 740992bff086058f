package admin

import (
	"bytes"
	"net/http"

	"github.com/neboloop/socialshare/internal/admin"
	"github.com/neboloop/socialshare/internal/httputil"
	"github.com/neboloop/socialshare/internal/logging"
	"github.com/neboloop/socialshare/internal/svc"
)

// renderPage writes the settings page with a freshly issued nonce.
func renderPage(w http.ResponseWriter, svcCtx *svc.ServiceContext, status int, notices ...admin.Notice) {
	if info := svcCtx.License.Info(); info.Notice != "" {
		notices = append(notices, admin.Notice{Kind: "info", Message: info.Notice})
	}

	var buf bytes.Buffer
	err := svcCtx.AdminPage.Render(&buf, admin.View{
		Values:        svcCtx.Settings.Get(),
		LicenseStatus: svcCtx.Settings.LicenseStatus(),
		Nonce:         svcCtx.Nonces.Issue(),
		Notices:       notices,
	})
	if err != nil {
		logging.Errorf("Failed to render settings page: %v", err)
		httputil.InternalError(w, "failed to render settings page")
		return
	}
	httputil.WriteHTML(w, status, buf.String())
}
