package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/neboloop/socialshare/internal/admin"
	"github.com/neboloop/socialshare/internal/httputil"
	"github.com/neboloop/socialshare/internal/license"
	"github.com/neboloop/socialshare/internal/logging"
	"github.com/neboloop/socialshare/internal/svc"
)

// SaveSettingsPageHandler handles a settings form submission. The whole form
// is saved first; a pressed license button then runs its action with the
// submitted key.
func SaveSettingsPageHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, httputil.MaxBodyBytes)
		if err := r.ParseForm(); err != nil {
			renderPage(w, svcCtx, http.StatusBadRequest, admin.Notice{Kind: "error", Message: "The form could not be read."})
			return
		}

		if !svcCtx.Nonces.Consume(r.PostForm.Get(admin.NonceField)) {
			logging.Warnw("settings form rejected", "reason", "invalid nonce")
			renderPage(w, svcCtx, http.StatusForbidden, admin.Notice{Kind: "error", Message: "The link you followed has expired. Please try again."})
			return
		}

		raw := admin.ParseForm(r.PostForm)
		if _, err := svcCtx.Settings.Save(r.Context(), raw, svcCtx.SanitizeOptions()); err != nil {
			logging.Errorf("Failed to save settings: %v", err)
			renderPage(w, svcCtx, http.StatusInternalServerError, admin.Notice{Kind: "error", Message: "Settings could not be saved."})
			return
		}

		notices := []admin.Notice{{Kind: "success", Message: "Settings saved."}}

		key, _ := raw[license.KeyLicenseKey].(string)
		key = strings.TrimSpace(key)

		switch admin.PressedLicenseAction(r.PostForm) {
		case admin.ActivateLicense:
			status, err := svcCtx.License.Activate(r.Context(), key)
			notices = append(notices, licenseNotice("activated", status, err))
		case admin.DeactivateLicense:
			status, err := svcCtx.License.Deactivate(r.Context(), key)
			notices = append(notices, licenseNotice("deactivated", status, err))
		}

		renderPage(w, svcCtx, http.StatusOK, notices...)
	}
}

func licenseNotice(action string, status license.Status, err error) admin.Notice {
	switch {
	case errors.Is(err, license.ErrNoLicenseKey):
		return admin.Notice{Kind: "error", Message: "Please enter a license key."}
	case err != nil:
		return admin.Notice{Kind: "error", Message: "The license server could not be reached. Please try again later."}
	case action == "activated" && status != license.StatusValid:
		return admin.Notice{Kind: "error", Message: "The license key could not be activated (" + string(status) + ")."}
	}
	return admin.Notice{Kind: "success", Message: "License " + action + "."}
}
