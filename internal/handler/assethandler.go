package handler

import (
	"bytes"
	"net/http"
	"time"

	"github.com/neboloop/socialshare/internal/sharing"
	"github.com/neboloop/socialshare/internal/svc"
)

// PopupScriptPath is where the share popup script is served.
const PopupScriptPath = "/assets/social-sharing.js"

var assetModTime = time.Now()

// PopupScriptHandler serves the script that opens share links in a popup window.
func PopupScriptHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=86400")
		http.ServeContent(w, r, "social-sharing.js", assetModTime, bytes.NewReader(sharing.PopupScript()))
	}
}
