package admin

import (
	"net/http"

	"github.com/neboloop/socialshare/internal/httputil"
	"github.com/neboloop/socialshare/internal/middleware"
	"github.com/neboloop/socialshare/internal/svc"
)

// LoginHandler exchanges ?token= for the session cookie and redirects to the
// settings page, so a token printed by the CLI can be opened in a browser.
func LoginHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := httputil.QueryString(r, "token", "")
		claims, err := middleware.ValidateToken(token, svcCtx.AccessSecret)
		if err != nil {
			httputil.Unauthorized(w, "invalid token")
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     middleware.TokenCookie,
			Value:    token,
			Path:     "/",
			Expires:  claims.ExpiresAt.Time,
			HttpOnly: true,
			SameSite: http.SameSiteStrictMode,
		})
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	}
}
