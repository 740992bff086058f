package admin

import (
	"net/http"

	"github.com/neboloop/socialshare/internal/svc"
)

// SettingsPageHandler renders the settings form.
func SettingsPageHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, svcCtx, http.StatusOK)
	}
}
