// Package admin renders the settings page and parses its submissions.
package admin

import (
	"errors"
	"html/template"
	"io"

	"github.com/neboloop/socialshare/internal/license"
	"github.com/neboloop/socialshare/internal/logging"
	"github.com/neboloop/socialshare/internal/markdown"
	"github.com/neboloop/socialshare/internal/settings"
	"github.com/neboloop/socialshare/internal/sharing"
)

// Section is a titled group of fields. Intro is Markdown.
type Section struct {
	Key   string
	Title string
	Intro string
}

// DefaultSections returns the built-in sections in display order.
func DefaultSections() []Section {
	return []Section{
		{Key: sharing.SectionGeneral, Title: "General", Intro: "Configure the Social Sharing."},
		{Key: license.SectionLicense, Title: "License", Intro: "Please enter your license key. An active license key is needed for automatic plugin updates and [support](https://themezee.com/support/)."},
	}
}

// Notice is a message shown above the form.
type Notice struct {
	Kind    string // success, error or info
	Message string
}

// View is the per-request state of the page.
type View struct {
	Values        settings.Values
	LicenseStatus string
	Nonce         string
	Notices       []Notice
}

// Page renders the settings form for a schema.
type Page struct {
	schema   *settings.Schema
	sections []Section
	title    string
	version  string
	itemID   int
}

// NewPage creates a page. Fields whose section is not listed are shown in
// an extra section named after the section key.
func NewPage(schema *settings.Schema, title, version string, itemID int, sections ...Section) *Page {
	if len(sections) == 0 {
		sections = DefaultSections()
	}
	return &Page{schema: schema, sections: sections, title: title, version: version, itemID: itemID}
}

type rowData struct {
	Label   string
	Control template.HTML
	Missing string
}

type sectionData struct {
	Title string
	Intro template.HTML
	Rows  []rowData
}

type pageData struct {
	Title     string
	Version   string
	NonceName string
	Nonce     string
	Notices   []Notice
	Sections  []sectionData
}

// Render writes the full settings page.
func (p *Page) Render(w io.Writer, v View) error {
	data := pageData{
		Title:     p.title,
		Version:   p.version,
		NonceName: NonceField,
		Nonce:     v.Nonce,
		Notices:   v.Notices,
	}

	bySection := make(map[string][]settings.Field)
	for _, f := range p.schema.Fields() {
		bySection[f.Section] = append(bySection[f.Section], f)
	}

	sections := append([]Section(nil), p.sections...)
	known := make(map[string]bool, len(p.sections))
	for _, s := range p.sections {
		known[s.Key] = true
	}
	// Sections registered by extensions follow the built-in ones.
	for _, key := range p.schema.Sections() {
		if !known[key] {
			sections = append(sections, Section{Key: key, Title: key})
		}
	}

	for _, s := range sections {
		sd := sectionData{Title: s.Title, Intro: template.HTML(markdown.Render(s.Intro))}
		for _, f := range bySection[s.Key] {
			row := rowData{Label: f.Name}
			control, err := RenderField(f, v.Values, v.LicenseStatus, p.itemID)
			var unsupported *UnsupportedFieldError
			if errors.As(err, &unsupported) {
				logging.Warnw("settings field has no renderer", "key", f.Key, "type", f.Type)
				row.Missing = f.Key
			}
			row.Control = control
			sd.Rows = append(sd.Rows, row)
		}
		data.Sections = append(data.Sections, sd)
	}

	return pageTemplate.Execute(w, data)
}

var pageTemplate = template.Must(template.New("settings").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<div id="tzss-settings" class="tzss-settings-wrap">
<h1>{{.Title}}{{if .Version}} <span class="tzss-version">Version {{.Version}}</span>{{end}}</h1>
{{range .Notices}}<div class="notice notice-{{.Kind}}"><p>{{.Message}}</p></div>
{{end}}<form class="tzss-settings-form" method="post" action="">
<input type="hidden" name="{{.NonceName}}" value="{{.Nonce}}"/>
{{range .Sections}}<h2>{{.Title}}</h2>
{{.Intro}}
<table class="form-table" role="presentation">
{{range .Rows}}<tr><th scope="row">{{.Label}}</th><td>{{if .Missing}}The callback function used for the <strong>{{.Missing}}</strong> setting is missing.{{else}}{{.Control}}{{end}}</td></tr>
{{end}}</table>
{{end}}<p class="submit"><input type="submit" name="submit" id="submit" class="button button-primary" value="Save Changes"/></p>
</form>
</div>
</body>
</html>
`))
