package split

import (
	"fmt"
	"strings"

	"github.com/cabify/techdocs/core"
)

// Mode selects how section boundaries relate to heading levels.
type Mode int

const (
	// Hierarchical sections run until the next sibling-or-shallower
	// header, so a parent's content includes all of its subsections.
	Hierarchical Mode = iota
	// NonHierarchical sections are disjoint: each ends at the next
	// header regardless of level.
	NonHierarchical
)

func (m Mode) String() string {
	if m == Hierarchical {
		return "hierarchical"
	}
	return "non_hierarchical"
}

// ParseMode converts a CLI/config spelling into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "hierarchical":
		return Hierarchical, nil
	case "non_hierarchical", "non-hierarchical", "flat":
		return NonHierarchical, nil
	default:
		return Hierarchical, fmt.Errorf("unknown splitting mode %q", s)
	}
}

// Splitter partitions markdown into sections. The mode is fixed at
// construction; a Splitter holds no per-call state and is safe for
// concurrent use.
type Splitter struct {
	mode Mode
}

// New creates a Splitter with the given mode.
func New(mode Mode) *Splitter {
	return &Splitter{mode: mode}
}

// Mode returns the configured splitting mode.
func (s *Splitter) Mode() Mode {
	return s.mode
}

// SplitDocument is the full pipeline for one page: extract the anchor
// map from the original HTML, parse headers out of the markdown, and
// split. Any internal failure degrades to a single whole-document
// section rather than surfacing an error.
func (s *Splitter) SplitDocument(markdown, htmlContent string) (sections []core.MarkdownSection) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("section splitting failed, using whole document")
			sections = []core.MarkdownSection{wholeDocument(markdown)}
		}
	}()

	anchors := map[string]string{}
	if htmlContent != "" {
		anchors = ExtractAnchors(htmlContent)
	}
	return s.Split(markdown, ParseHeaders(markdown, anchors))
}

// Split partitions markdown along the given headers. With no headers
// the entire document becomes a single section.
func (s *Splitter) Split(markdown string, headers []core.HeaderInfo) []core.MarkdownSection {
	if len(headers) == 0 {
		return []core.MarkdownSection{wholeDocument(markdown)}
	}

	lines := strings.Split(markdown, "\n")
	sections := make([]core.MarkdownSection, 0, len(headers))

	for i, h := range headers {
		end := len(lines)
		if s.mode == NonHierarchical {
			if i+1 < len(headers) {
				end = headers[i+1].LineNumber - 1
			}
		} else {
			for j := i + 1; j < len(headers); j++ {
				if headers[j].Level <= h.Level {
					end = headers[j].LineNumber - 1
					break
				}
			}
		}

		content := strings.TrimSpace(strings.Join(lines[h.LineNumber-1:end], "\n"))
		sections = append(sections, core.MarkdownSection{
			Title:     h.Title,
			Content:   content,
			Level:     h.Level,
			AnchorID:  h.AnchorID,
			StartLine: h.LineNumber,
			EndLine:   end,
		})
	}
	return sections
}

func wholeDocument(markdown string) core.MarkdownSection {
	return core.MarkdownSection{
		Title:     "Document",
		Content:   strings.TrimSpace(markdown),
		Level:     1,
		AnchorID:  "document",
		StartLine: 1,
		EndLine:   len(strings.Split(markdown, "\n")),
	}
}

// SectionURL appends the anchor fragment to a document's base URL.
// Sections without an anchor resolve to the page itself.
func SectionURL(baseURL, anchorID string) string {
	if anchorID == "" {
		return baseURL
	}
	return baseURL + "/#" + anchorID
}
