// Package render provides output renderers for converted documentation
// pages. This file implements the Markdown renderer, which is a simple
// passthrough since markdown is already the canonical pipeline format.
package render

import (
	"github.com/cabify/techdocs/core"
)

// MarkdownRenderer writes the converted markdown as-is.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the markdown as bytes (passthrough).
func (r *MarkdownRenderer) Render(page *core.Page) ([]byte, error) {
	return []byte(page.Markdown), nil
}

// Extension returns the file extension for markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
