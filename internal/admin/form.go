package admin

import (
	"net/url"
	"strings"
)

// ParseForm extracts the tzss_settings[...] entries of a posted form into the
// raw mapping Sanitize expects. tzss_settings[key] becomes a string and
// tzss_settings[key][sub] a nested mapping. Other fields are ignored.
func ParseForm(form url.Values) map[string]any {
	raw := make(map[string]any)

	for name, vals := range form {
		if len(vals) == 0 {
			continue
		}
		path, ok := splitName(name)
		if !ok {
			continue
		}
		value := vals[len(vals)-1]

		switch len(path) {
		case 1:
			raw[path[0]] = value
		case 2:
			sub, ok := raw[path[0]].(map[string]any)
			if !ok {
				sub = make(map[string]any)
				raw[path[0]] = sub
			}
			sub[path[1]] = value
		}
	}
	return raw
}

// splitName turns "tzss_settings[a][b]" into ["a", "b"]. Deeper nesting is
// rejected.
func splitName(name string) ([]string, bool) {
	rest, ok := strings.CutPrefix(name, FormName+"[")
	if !ok || !strings.HasSuffix(rest, "]") {
		return nil, false
	}
	parts := strings.Split(strings.TrimSuffix(rest, "]"), "][")
	if len(parts) > 2 {
		return nil, false
	}
	for _, p := range parts {
		if p == "" || strings.ContainsAny(p, "[]") {
			return nil, false
		}
	}
	return parts, true
}

// LicenseAction is the license button a form submission pressed.
type LicenseAction int

const (
	NoLicenseAction LicenseAction = iota
	ActivateLicense
	DeactivateLicense
)

// PressedLicenseAction reports which license button, if any, submitted form.
func PressedLicenseAction(form url.Values) LicenseAction {
	switch {
	case form.Has(DeactivateButton):
		return DeactivateLicense
	case form.Has(ActivateButton):
		return ActivateLicense
	}
	return NoLicenseAction
}
