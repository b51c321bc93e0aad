// Package renderer turns desk data into markdown, and markdown into HTML for
// publishing. Rendering is presentation only: all figures arrive preformatted
// in view structs.
package renderer

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed *.md
var templates embed.FS

// WatchlistMarkdown renders a watchlist view to a markdown table.
func WatchlistMarkdown(v *WatchlistView) string {
	return renderTemplate("watchlist", "watchlist.md", v)
}

// PortfolioMarkdown renders a portfolio view to a markdown table.
func PortfolioMarkdown(v *PortfolioView) string {
	return renderTemplate("portfolio", "portfolio.md", v)
}

// PendingMarkdown renders the tracked generation jobs to a markdown table.
func PendingMarkdown(v *PendingView) string {
	return renderTemplate("pending", "pending.md", v)
}

// renderTemplate is a small utility to render one embedded template.
func renderTemplate(templateName, file string, data any) string {
	content, err := templates.ReadFile(file)
	if err != nil {
		return fmt.Sprintf("error reading template %q: %v", file, err)
	}
	tmpl, err := template.New(templateName).Parse(string(content))
	if err != nil {
		return fmt.Sprintf("error parsing template %q: %v", file, err)
	}
	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
