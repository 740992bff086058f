package sharing

import _ "embed"

//go:embed assets/social-sharing.js
var popupScript []byte

// PopupScript returns the click handler that re-opens share links in a
// centered 550x450 popup window.
func PopupScript() []byte {
	return popupScript
}
