package render

// The JSON renderer emits the full ingestion view of a page: metadata,
// the converted markdown, every section with its resolved anchor URL,
// and structure counts useful to downstream indexing.

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/cabify/techdocs/core"
	"github.com/cabify/techdocs/core/split"
)

// JSONRenderer produces structured JSON output for a converted page.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// sectionJSON is a MarkdownSection with its resolved URL attached.
type sectionJSON struct {
	core.MarkdownSection
	URL string `json:"url"`
}

type structureJSON struct {
	Sections   int `json:"sections"`
	Links      int `json:"links"`
	CodeBlocks int `json:"code_blocks"`
	Lists      int `json:"lists"`
}

type pageJSON struct {
	Meta      core.PageMeta `json:"metadata"`
	Markdown  string        `json:"markdown"`
	Sections  []sectionJSON `json:"sections"`
	Structure structureJSON `json:"structure"`
}

// Render converts a page into the structured JSON document.
func (r *JSONRenderer) Render(page *core.Page) ([]byte, error) {
	sections := make([]sectionJSON, 0, len(page.Sections))
	for _, s := range page.Sections {
		sections = append(sections, sectionJSON{
			MarkdownSection: s,
			URL:             split.SectionURL(page.Meta.URL, s.AnchorID),
		})
	}

	out := pageJSON{
		Meta:     page.Meta,
		Markdown: page.Markdown,
		Sections: sections,
		Structure: structureJSON{
			Sections:   len(page.Sections),
			Links:      countLinks(page.Markdown),
			CodeBlocks: countCodeBlocks(page.Markdown),
			Lists:      countLists(page.Markdown),
		},
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// --- markdown structure counters ---

// linkRegex matches markdown links [text](url).
var linkRegex = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)

func countLinks(md string) int {
	return len(linkRegex.FindAllString(md, -1))
}

// countCodeBlocks counts fenced code blocks (``` delimited).
func countCodeBlocks(md string) int {
	return strings.Count(md, "```") / 2
}

// countLists counts list items (lines starting with -, * or N.).
var listItemRegex = regexp.MustCompile(`(?m)^[\s]*[-*]\s|^[\s]*\d+\.\s`)

func countLists(md string) int {
	return len(listItemRegex.FindAllString(md, -1))
}
