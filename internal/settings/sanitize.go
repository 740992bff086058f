package settings

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// strictPolicy strips every tag. Its output is entity-escaped, so callers
	// storing plain text go through plainText.
	strictPolicy = bluemonday.StrictPolicy()
	// postPolicy allows the markup a post author may use.
	postPolicy = bluemonday.UGCPolicy()

	whitespaceRun = regexp.MustCompile(`\s+`)
)

// SanitizeOptions carries host policy that affects sanitization.
type SanitizeOptions struct {
	// UnfilteredHTML lets textarea_html fields keep raw markup. Hosts set it
	// for users allowed to post arbitrary HTML.
	UnfilteredHTML bool
}

// Sanitize coerces a raw form submission into typed values and merges the
// result onto previous. Only keys present in raw are rewritten, except that
// every checkbox and every multicheck option in the schema always receives
// an explicit bool (absent means off). Unregistered and bookkeeping keys are
// ignored. Sanitize never fails: bad values degrade to the field default.
func (s *Schema) Sanitize(raw map[string]any, previous Values, opts SanitizeOptions) Values {
	input := make(Values, len(s.fields))

	for key, value := range raw {
		f, ok := s.Field(key)
		if !ok {
			continue
		}
		switch f.Type {
		case TypeCheckbox, TypeMulticheck:
			// Normalized below together with absent keys.
		default:
			input[key] = sanitizeValue(f, value, opts)
		}
	}

	for _, f := range s.fields {
		switch f.Type {
		case TypeCheckbox:
			input[f.Key] = truthy(raw[f.Key])
		case TypeMulticheck:
			sub := subValues(raw[f.Key])
			m := make(map[string]bool, len(f.Options))
			for _, o := range f.Options {
				m[o.Key] = truthy(sub[o.Key])
			}
			input[f.Key] = m
		}
	}

	out := previous.Clone()
	if out == nil {
		out = Values{}
	}
	for k, v := range input {
		out[k] = v
	}
	return out
}

// Patch applies a partial change set on top of current. Unlike Sanitize,
// checkboxes and multicheck options missing from changes keep their current
// value, which suits API and CLI updates that only name what changes.
func (s *Schema) Patch(current Values, changes map[string]any, opts SanitizeOptions) Values {
	raw := make(map[string]any, len(current)+len(changes))
	for _, f := range s.fields {
		if v, ok := current[f.Key]; ok {
			raw[f.Key] = v
		}
	}
	for k, v := range changes {
		f, ok := s.Field(k)
		if ok && f.Type == TypeMulticheck {
			merged := make(map[string]any)
			for sk, sv := range subValues(raw[k]) {
				merged[sk] = sv
			}
			for sk, sv := range subValues(v) {
				merged[sk] = sv
			}
			raw[k] = merged
			continue
		}
		raw[k] = v
	}
	return s.Sanitize(raw, current, opts)
}

// sanitizeValue applies the type-specific coercion of one non-checkbox field.
func sanitizeValue(f Field, value any, opts SanitizeOptions) any {
	switch f.Type {
	case TypeText, TypeLicense:
		str, _ := toString(value)
		return sanitizeTextField(str)

	case TypeRadio, TypeSelect:
		if str, ok := formString(value); ok && f.HasOption(str) {
			return str
		}
		return defaultFor(f)

	case TypeNumber:
		return toFloat(value)

	case TypeTextarea:
		str, _ := toString(value)
		return plainText(str)

	case TypeTextareaHTML:
		str, _ := toString(value)
		if opts.UnfilteredHTML {
			return str
		}
		return postPolicy.Sanitize(str)
	}

	// Unknown field types are stored as plain text.
	str, _ := toString(value)
	return plainText(str)
}

// sanitizeTextField strips markup, folds line breaks and runs of whitespace
// into single spaces and trims the result.
func sanitizeTextField(str string) string {
	str = plainText(str)
	str = whitespaceRun.ReplaceAllString(str, " ")
	return strings.TrimSpace(str)
}

// maxStripPasses bounds plainText; each pass can only shorten the input.
const maxStripPasses = 8

// plainText strips markup and returns unescaped text. Ampersands are
// escaped before parsing so entities the user typed, such as "&lt;b&gt;",
// stay literal text instead of turning into markup. Values are escaped
// again when rendered.
func plainText(str string) string {
	for i := 0; i < maxStripPasses; i++ {
		next := html.UnescapeString(strictPolicy.Sanitize(strings.ReplaceAll(str, "&", "&amp;")))
		if next == str {
			break
		}
		str = next
	}
	return str
}

// formString accepts the string shapes a select or radio submission can
// take. Enum membership is checked against the raw string only.
func formString(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case []string:
		if len(t) > 0 {
			return t[len(t)-1], true
		}
	}
	return "", false
}
