// Package core defines the shared types and stage interfaces for the
// techdocs pipeline. Each stage is a clean, testable interface.
package core

import (
	"context"
	"time"
)

// HeaderInfo describes a single markdown header found during parsing.
// LineNumber is 1-based within the generated markdown.
type HeaderInfo struct {
	Title      string
	Level      int
	AnchorID   string
	LineNumber int
}

// MarkdownSection is a header-delimited slice of a converted document.
// StartLine/EndLine are 1-based line numbers within the markdown.
type MarkdownSection struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	Level     int    `json:"level"`
	AnchorID  string `json:"anchor_id"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// PageMeta holds metadata about a converted documentation page.
type PageMeta struct {
	Path        string `json:"path"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	ConvertedAt string `json:"converted_at"` // ISO8601
}

// Page is a fully converted documentation page: the markdown text plus
// its sections, ready for rendering.
type Page struct {
	Meta     PageMeta
	Markdown string
	Sections []MarkdownSection
}

// TextSection is one addressable chunk of an ingested document.
// Link resolves to the section's anchor on the published page.
type TextSection struct {
	Link string `json:"link"`
	Text string `json:"text"`
}

// Document is the unit the connector hands to the ingestion pipeline.
type Document struct {
	ID                 string            `json:"id"`
	Sections           []TextSection     `json:"sections"`
	Source             string            `json:"source"`
	SemanticIdentifier string            `json:"semantic_identifier"`
	UpdatedAt          time.Time         `json:"doc_updated_at"`
	Metadata           map[string]string `json:"metadata"`
}

// ObjectInfo identifies a stored blob and when it last changed.
type ObjectInfo struct {
	Key          string
	LastModified time.Time
}

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Converter turns documentation HTML into markdown. It never fails to
// the caller: on unrecoverable errors it returns a degraded result.
type Converter interface {
	Convert(html string) string
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Renderer converts a Page into a final output format.
type Renderer interface {
	Render(page *Page) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

// BlobSource lists and downloads objects from a storage backend.
type BlobSource interface {
	List(ctx context.Context, prefix string) ([]ObjectInfo, error)
	Download(ctx context.Context, key string) ([]byte, error)
}
