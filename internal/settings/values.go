package settings

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// LicenseStatusKey is the bookkeeping entry holding the last known license
// status. It lives in the persisted blob but is not part of the schema.
const LicenseStatusKey = "license_status"

// IsBookkeepingKey reports whether key is reserved for implementation
// bookkeeping and may not be set through a form submission.
func IsBookkeepingKey(key string) bool {
	return key == LicenseStatusKey
}

// Values is a resolved settings record. Every value is a bool, string,
// float64 or map[string]bool (multicheck).
type Values map[string]any

// Bool returns the boolean stored at key, false when absent or not a bool.
func (v Values) Bool(key string) bool {
	b, ok := v[key].(bool)
	return ok && b
}

// String returns the string stored at key.
func (v Values) String(key string) string {
	s, _ := v[key].(string)
	return s
}

// Float returns the number stored at key.
func (v Values) Float(key string) float64 {
	f, _ := v[key].(float64)
	return f
}

// Multi returns the multicheck sub-mapping stored at key.
func (v Values) Multi(key string) map[string]bool {
	m, _ := v[key].(map[string]bool)
	return m
}

// Checked reports whether sub-option sub of multicheck key is explicitly true.
func (v Values) Checked(key, sub string) bool {
	return v.Multi(key)[sub]
}

// Clone returns a deep copy.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		if m, ok := val.(map[string]bool); ok {
			cp := make(map[string]bool, len(m))
			for sk, sv := range m {
				cp[sk] = sv
			}
			out[k] = cp
			continue
		}
		out[k] = val
	}
	return out
}

// DecodeValues parses a persisted JSON blob. Nested objects are returned as
// map[string]any; Resolve normalizes them.
func DecodeValues(data []byte) (Values, error) {
	if len(data) == 0 {
		return Values{}, nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("settings: decode values: %w", err)
	}
	if raw == nil {
		return Values{}, nil
	}
	return Values(raw), nil
}

// Encode serializes the values for persistence.
func (v Values) Encode() ([]byte, error) {
	data, err := json.Marshal(map[string]any(v))
	if err != nil {
		return nil, fmt.Errorf("settings: encode values: %w", err)
	}
	return data, nil
}

// truthy mirrors form semantics: missing, false, zero, "", "0", "false" and
// "off" are false; everything else is true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "", "0", "false", "off", "no":
			return false
		}
		return true
	case float64:
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case []string:
		return len(t) > 0 && truthy(t[len(t)-1])
	case []any:
		return len(t) > 0 && truthy(t[len(t)-1])
	case map[string]any:
		return len(t) > 0
	case map[string]bool:
		return len(t) > 0
	}
	return true
}

var leadingFloat = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// toFloat converts a submitted value to a number. Strings are parsed by
// their leading numeric prefix, so "3.5px" is 3.5 and "abc" is 0.
func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case bool:
		if t {
			return 1
		}
		return 0
	case json.Number:
		f, _ := t.Float64()
		return f
	case string:
		m := leadingFloat.FindString(strings.TrimSpace(t))
		if m == "" {
			return 0
		}
		f, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0
		}
		return f
	case []string:
		if len(t) > 0 {
			return toFloat(t[len(t)-1])
		}
	case []any:
		if len(t) > 0 {
			return toFloat(t[len(t)-1])
		}
	}
	return 0
}

// toString flattens scalar submissions to a string. ok is false for values
// that have no sensible string form (maps).
func toString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []string:
		if len(t) == 0 {
			return "", true
		}
		return t[len(t)-1], true
	case []any:
		if len(t) == 0 {
			return "", true
		}
		return toString(t[len(t)-1])
	case bool:
		if t {
			return "1", true
		}
		return "", true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case json.Number:
		return t.String(), true
	case nil:
		return "", true
	}
	return "", false
}

// subValues returns the sub-mapping of a multicheck submission regardless
// of how it was decoded.
func subValues(v any) map[string]any {
	switch t := v.(type) {
	case map[string]any:
		return t
	case map[string]bool:
		out := make(map[string]any, len(t))
		for k, b := range t {
			out[k] = b
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(t))
		for k, s := range t {
			out[k] = s
		}
		return out
	case []string:
		// A list of checked option keys.
		out := make(map[string]any, len(t))
		for _, k := range t {
			out[k] = true
		}
		return out
	case []any:
		out := make(map[string]any, len(t))
		for _, k := range t {
			if s, ok := k.(string); ok {
				out[s] = true
			}
		}
		return out
	}
	return nil
}
