package admin

import (
	"fmt"
	"html"
	"html/template"
	"strconv"
	"strings"

	"github.com/neboloop/socialshare/internal/license"
	"github.com/neboloop/socialshare/internal/markdown"
	"github.com/neboloop/socialshare/internal/settings"
)

// FormName is the form array every setting is posted under.
const FormName = "tzss_settings"

// Submit button names for the license field.
const (
	ActivateButton   = "tzss_activate_license"
	DeactivateButton = "tzss_deactivate_license"
)

// UnsupportedFieldError reports a field whose type has no renderer.
type UnsupportedFieldError struct {
	Key  string
	Type settings.FieldType
}

func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("admin: no renderer for field %q of type %q", e.Key, e.Type)
}

// fieldInput is everything a renderer needs for one field.
type fieldInput struct {
	Field         settings.Field
	Value         any
	LicenseStatus string
	ItemID        int
}

type renderFunc func(in fieldInput) string

var renderers = map[settings.FieldType]renderFunc{
	settings.TypeText:         renderText,
	settings.TypeLicense:      renderLicense,
	settings.TypeCheckbox:     renderCheckbox,
	settings.TypeMulticheck:   renderMulticheck,
	settings.TypeRadio:        renderRadio,
	settings.TypeSelect:       renderSelect,
	settings.TypeNumber:       renderNumber,
	settings.TypeTextarea:     renderTextarea,
	settings.TypeTextareaHTML: renderTextarea,
}

// RenderField renders the form control for f with its current value.
func RenderField(f settings.Field, values settings.Values, licenseStatus string, itemID int) (template.HTML, error) {
	render, ok := renderers[f.Type]
	if !ok {
		return "", &UnsupportedFieldError{Key: f.Key, Type: f.Type}
	}
	return template.HTML(render(fieldInput{
		Field:         f,
		Value:         values[f.Key],
		LicenseStatus: licenseStatus,
		ItemID:        itemID,
	})), nil
}

func inputName(key string, sub ...string) string {
	name := FormName + "[" + key + "]"
	for _, s := range sub {
		name += "[" + s + "]"
	}
	return html.EscapeString(name)
}

// attr escapes a stored plain-text value for an attribute.
func attr(v string) string {
	return html.EscapeString(v)
}

func sizeClass(f settings.Field) string {
	size := f.Size
	if size == "" {
		size = "regular"
	}
	return html.EscapeString(size) + "-text"
}

func description(f settings.Field) string {
	return `<p class="description">` + markdown.RenderInline(f.Desc) + `</p>`
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		if t {
			return "1"
		}
		return ""
	}
	return ""
}

func checked(on bool) string {
	if on {
		return ` checked="checked"`
	}
	return ""
}

func renderText(in fieldInput) string {
	name := inputName(in.Field.Key)
	return `<input type="text" class="` + sizeClass(in.Field) + `" id="` + name + `" name="` + name + `" value="` + attr(stringValue(in.Value)) + `"/>` +
		description(in.Field)
}

func renderLicense(in fieldInput) string {
	name := inputName(in.Field.Key)
	key := strings.TrimSpace(stringValue(in.Value))

	var b strings.Builder
	b.WriteString(`<input type="text" class="` + sizeClass(in.Field) + `" id="` + name + `" name="` + name + `" value="` + attr(key) + `"/><br/><br/>`)

	activate := `<input type="submit" class="button" name="` + ActivateButton + `" value="Activate License"/>`
	switch {
	case key != "" && in.LicenseStatus == string(license.StatusValid):
		b.WriteString(`<input type="submit" class="button" name="` + DeactivateButton + `" value="Deactivate License"/>`)
		b.WriteString(`<span class="tzss-license-status tzss-license-valid">&nbsp;Your license is valid!</span>`)
	case key != "" && in.LicenseStatus == string(license.StatusExpired):
		b.WriteString(`<a href="` + html.EscapeString(license.RenewalURL(key, in.ItemID)) + `" class="button-primary">Renew Your License</a>`)
		b.WriteString(`<br/><span class="tzss-license-status tzss-license-expired">&nbsp;Your license has expired, renew today to continue getting updates and support!</span>`)
	case key != "" && in.LicenseStatus == string(license.StatusInvalid):
		b.WriteString(activate)
		b.WriteString(`<span class="tzss-license-status tzss-license-invalid">&nbsp;Your license is invalid!</span>`)
	default:
		b.WriteString(activate)
	}

	b.WriteString(description(in.Field))
	return b.String()
}

func renderCheckbox(in fieldInput) string {
	name := inputName(in.Field.Key)
	on, _ := in.Value.(bool)
	return `<input type="checkbox" id="` + name + `" name="` + name + `" value="1"` + checked(on) + `/>` +
		`<label for="` + name + `"> ` + markdown.RenderInline(in.Field.Desc) + `</label>`
}

func renderMulticheck(in fieldInput) string {
	current, _ := in.Value.(map[string]bool)

	var b strings.Builder
	for _, o := range in.Field.Options {
		name := inputName(in.Field.Key, o.Key)
		b.WriteString(`<input name="` + name + `" id="` + name + `" type="checkbox" value="1"` + checked(current[o.Key]) + `/>&nbsp;`)
		b.WriteString(`<label for="` + name + `">` + html.EscapeString(o.Label) + `</label><br/>`)
	}
	b.WriteString(description(in.Field))
	return b.String()
}

func renderRadio(in fieldInput) string {
	current := stringValue(in.Value)
	name := inputName(in.Field.Key)

	var b strings.Builder
	for _, o := range in.Field.Options {
		id := inputName(in.Field.Key, o.Key)
		b.WriteString(`<input name="` + name + `" id="` + id + `" type="radio" value="` + html.EscapeString(o.Key) + `"` + checked(current == o.Key) + `/>&nbsp;`)
		b.WriteString(`<label for="` + id + `">` + html.EscapeString(o.Label) + `</label><br/>`)
	}
	b.WriteString(description(in.Field))
	return b.String()
}

func renderSelect(in fieldInput) string {
	current := stringValue(in.Value)
	name := inputName(in.Field.Key)

	var b strings.Builder
	b.WriteString(`<select id="` + name + `" name="` + name + `">`)
	for _, o := range in.Field.Options {
		selected := ""
		if current == o.Key {
			selected = ` selected="selected"`
		}
		b.WriteString(`<option value="` + html.EscapeString(o.Key) + `"` + selected + `>` + html.EscapeString(o.Label) + `</option>`)
	}
	b.WriteString(`</select>`)
	b.WriteString(description(in.Field))
	return b.String()
}

func renderNumber(in fieldInput) string {
	name := inputName(in.Field.Key)
	bound := func(p *float64, def float64) string {
		if p != nil {
			def = *p
		}
		return strconv.FormatFloat(def, 'f', -1, 64)
	}
	return `<input type="number" step="` + bound(in.Field.Step, 1) + `" max="` + bound(in.Field.Max, 999999) + `" min="` + bound(in.Field.Min, 0) +
		`" class="` + sizeClass(in.Field) + `" id="` + name + `" name="` + name + `" value="` + attr(stringValue(in.Value)) + `"/>` +
		description(in.Field)
}

func renderTextarea(in fieldInput) string {
	name := inputName(in.Field.Key)
	value := stringValue(in.Value)
	return `<textarea class="` + sizeClass(in.Field) + `" cols="20" rows="5" id="` + FormName + `_` + html.EscapeString(in.Field.Key) + `" name="` + name + `">` +
		html.EscapeString(value) + `</textarea>` +
		description(in.Field)
}
