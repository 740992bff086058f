package license

import (
	"errors"
	"net/http"

	"github.com/neboloop/socialshare/internal/httputil"
	"github.com/neboloop/socialshare/internal/license"
	"github.com/neboloop/socialshare/internal/types"
)

// respond maps a manager result onto the HTTP reply. A missing key is the
// caller's fault; anything else means the store could not be reached and
// the stored status was left as it was.
func respond(w http.ResponseWriter, status license.Status, err error) {
	switch {
	case errors.Is(err, license.ErrNoLicenseKey):
		httputil.Error(w, err)
	case err != nil:
		httputil.ErrorWithCode(w, http.StatusBadGateway, err.Error())
	default:
		httputil.OkJSON(w, &types.LicenseActionResponse{Status: string(status)})
	}
}
