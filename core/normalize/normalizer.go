// Package normalize converts arbitrary HTML into markdown using
// html-to-markdown. It is the fallback path for pages that are not
// TechDocs-shaped: when the structural converter reports no content
// container, the connector degrades to this generic conversion instead
// of dropping the document.
package normalize

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/cabify/techdocs/core/convert"
)

// GenericNormalizer converts HTML to markdown without assuming any
// documentation-generator structure.
type GenericNormalizer struct{}

// New creates a GenericNormalizer.
func New() *GenericNormalizer {
	return &GenericNormalizer{}
}

// Normalize converts an HTML document into markdown and runs the same
// post-processing pass as the structural converter, so both paths emit
// a consistent shape.
func (n *GenericNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return convert.CleanMarkdown(markdown), nil
}
