package renderer

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// md converts GitHub-flavored markdown, so the tables the other renderers
// emit survive the conversion.
var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML converts a markdown document into an HTML fragment for publishing.
func HTML(markdown string) ([]byte, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(markdown), &buf); err != nil {
		return nil, fmt.Errorf("could not convert markdown to HTML: %w", err)
	}
	return buf.Bytes(), nil
}
