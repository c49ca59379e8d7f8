package render

// The HTML renderer turns the converted markdown back into a standalone
// HTML preview via goldmark. Useful for eyeballing conversion fidelity
// next to the page the generator published.

import (
	"bytes"
	"fmt"
	stdhtml "html"

	"github.com/cabify/techdocs/core"
	"github.com/yuin/goldmark"
)

// HTMLRenderer produces an HTML preview of the converted markdown.
type HTMLRenderer struct {
	md goldmark.Markdown
}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{md: goldmark.New()}
}

// Render converts the page markdown into a standalone HTML document.
func (r *HTMLRenderer) Render(page *core.Page) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>%s</title></head>\n<body>\n",
		stdhtml.EscapeString(page.Meta.Title))

	if err := r.md.Convert([]byte(page.Markdown), &buf); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}

	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}
