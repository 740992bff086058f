package sharing

import (
	"html"
	"strconv"
	"strings"

	"github.com/neboloop/socialshare/internal/settings"
)

// Placement is a location on the page where buttons can be injected.
type Placement string

const (
	AboveContent Placement = "above_content"
	BelowContent Placement = "below_content"
	Sidebar      Placement = "sidebar"
)

// Placements lists every placement in settings order.
func Placements() []Placement {
	return []Placement{AboveContent, BelowContent, Sidebar}
}

// ParsePlacement accepts both the setting key and the CSS slug form.
func ParsePlacement(s string) (Placement, bool) {
	p := Placement(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	switch p {
	case AboveContent, BelowContent, Sidebar:
		return p, true
	}
	return "", false
}

// Slug is the CSS form of the placement, e.g. "above-content".
func (p Placement) Slug() string {
	return strings.ReplaceAll(string(p), "_", "-")
}

// Style controls whether icons, labels or both are shown.
type Style string

const (
	StyleIcons  Style = "icons"
	StyleLabels Style = "labels"
	StyleBoth   Style = "both"
)

// ParseStyle maps unknown or empty values to StyleBoth.
func ParseStyle(s string) Style {
	switch Style(s) {
	case StyleIcons, StyleLabels:
		return Style(s)
	}
	return StyleBoth
}

// ContainerClass composes the wrapper classes for a placement. The column
// class tracks the number of buttons so stylesheets can lay them out as a grid.
func ContainerClass(placement Placement, style Style, count int) string {
	columns := "tzss-" + strconv.Itoa(count) + "-columns"

	// The floating sidebar ignores the global style.
	if placement == Sidebar {
		return "tzss-sidebar tzss-socicons " + columns
	}

	classes := []string{"tzss-content", "tzss-" + placement.Slug()}
	switch style {
	case StyleIcons:
		classes = append(classes, "tzss-style-icons", "tzss-socicons")
	case StyleLabels:
		classes = append(classes, "tzss-style-labels")
	default:
		classes = append(classes, "tzss-style-icons-labels", "tzss-socicons")
	}
	classes = append(classes, columns)
	return strings.Join(classes, " ")
}

// RenderPlacement renders the button list for one placement. It returns ""
// when there are no buttons or the placement is switched off.
func RenderPlacement(buttons Buttons, placement Placement, values settings.Values) string {
	if len(buttons) == 0 {
		return ""
	}
	if !values.Checked(KeyLocations, string(placement)) {
		return ""
	}
	return renderList(buttons, placement, ParseStyle(values.String(KeyStyle)))
}

func renderList(buttons Buttons, placement Placement, style Style) string {
	var b strings.Builder

	b.WriteString(`<div class="themezee-social-sharing `)
	b.WriteString(html.EscapeString(ContainerClass(placement, style, len(buttons))))
	b.WriteString(`">`)
	b.WriteString(`<ul class="tzss-share-buttons-list">`)

	for _, btn := range buttons {
		b.WriteString(`<li class="tzss-share-item">`)
		b.WriteString(`<span class="tzss-button tzss-` + html.EscapeString(btn.Network) + `">`)
		b.WriteString(`<a class="tzss-link" href="` + html.EscapeString(btn.URL) + `" target="_blank" rel="noopener noreferrer">`)
		b.WriteString(icon(placement, style))
		b.WriteString(buttonText(placement, style, btn.Title))
		b.WriteString(`</a></span></li>`)
	}

	b.WriteString(`</ul></div>`)
	return b.String()
}

func icon(placement Placement, style Style) string {
	if style == StyleLabels && placement != Sidebar {
		return ""
	}
	return `<span class="tzss-icon"></span>`
}

func buttonText(placement Placement, style Style, title string) string {
	title = html.EscapeString(title)
	switch {
	case style == StyleIcons || placement == Sidebar:
		return `<span class="tzss-text screen-reader-text">` + title + `</span>`
	case style == StyleLabels:
		return title
	default:
		return `<span class="tzss-text">` + title + `</span>`
	}
}
