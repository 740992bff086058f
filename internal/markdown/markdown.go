// Package markdown renders the short Markdown snippets used for admin page
// section intros and field descriptions.
package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	md = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // tables, strikethrough, autolinks, task lists
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	// Descriptions come from extension fields too, so the output is filtered.
	policy = bluemonday.UGCPolicy()
)

// Render converts markdown content to sanitized HTML with external links
// opening in a new tab.
func Render(content string) string {
	if content == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return ""
	}

	return processExternalLinks(policy.Sanitize(buf.String()))
}

// RenderInline renders a single paragraph without the wrapping <p>, for
// descriptions placed next to form controls.
func RenderInline(content string) string {
	out := strings.TrimSpace(Render(content))
	if strings.Count(out, "<p>") == 1 && strings.HasPrefix(out, "<p>") && strings.HasSuffix(out, "</p>") {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "<p>"), "</p>")
	}
	return out
}

// processExternalLinks adds target="_blank" rel="noopener noreferrer" to external links.
var linkRe = regexp.MustCompile(`<a href="(https?://[^"]*)"( rel="[^"]*")?`)

func processExternalLinks(s string) string {
	return linkRe.ReplaceAllStringFunc(s, func(match string) string {
		sub := linkRe.FindStringSubmatch(match)
		return `<a href="` + sub[1] + `" target="_blank" rel="noopener noreferrer"`
	})
}
