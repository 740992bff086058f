package license

import (
	"net/url"
	"strconv"

	"github.com/neboloop/socialshare/internal/settings"
)

const (
	// KeyLicenseKey is the settings key holding the user's license key.
	KeyLicenseKey = "license_key"
	// SectionLicense groups the license field on the admin page.
	SectionLicense = "license"
)

// Field returns the license key schema entry.
func Field() settings.Field {
	return settings.Field{
		Key:     KeyLicenseKey,
		Name:    "License Key",
		Desc:    "An active license key is needed for automatic plugin updates and [support](https://themezee.com/support/).",
		Section: SectionLicense,
		Type:    settings.TypeLicense,
		Default: "",
		Size:    "regular",
	}
}

// RenewalURL is the store checkout link for renewing an expired key.
func RenewalURL(key string, itemID int) string {
	q := url.Values{}
	q.Set("edd_license_key", key)
	q.Set("download_id", strconv.Itoa(itemID))
	return "https://themezee.com/checkout?" + q.Encode()
}

// Notice is the reminder shown while no license key is stored.
func Notice(productName string) string {
	return "Please enter your license key for the " + productName + " add-on in order to receive updates and support."
}
