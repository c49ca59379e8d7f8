// Package connector ingests TechDocs static sites published to a blob
// bucket. Each documentation page is stored as an index.html object;
// the connector converts it to markdown, splits it into anchored
// sections and hands documents to the caller in batches.
package connector

import (
	"strings"
)

// DefaultDocsBaseURL is where the documentation portal publishes pages.
const DefaultDocsBaseURL = "https://backstage.cabify.tools/docs"

// IsDocPage reports whether a key is a documentation page. Only
// index.html files count; directory markers and assets are skipped.
func IsDocPage(key string) bool {
	return !strings.HasSuffix(key, "/") && strings.HasSuffix(key, "index.html")
}

// DocPath is the directory portion of an object key, which mirrors the
// page's path on the documentation portal.
func DocPath(key string) string {
	if i := strings.LastIndex(key, "/"); i >= 0 {
		return key[:i]
	}
	return ""
}

// PageURL builds the published URL for a documentation page from its
// object key.
func PageURL(docsBaseURL, key string) string {
	base := strings.TrimSuffix(docsBaseURL, "/")
	if base == "" {
		base = DefaultDocsBaseURL
	}
	return base + "/" + DocPath(key)
}
