package split

import (
	"regexp"
	"sort"
	"strings"

	"github.com/cabify/techdocs/core"
)

var (
	headerRe    = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	nonWordRe   = regexp.MustCompile(`[^\w\s-]`)
	hyphenRunRe = regexp.MustCompile(`[-\s]+`)
)

// ParseHeaders scans markdown line by line and returns every header in
// document order, resolving each to an anchor id from the HTML anchor
// map. Lines inside fenced code blocks (``` or ~~~, closed only by the
// same marker) and indented code are never treated as headers.
func ParseHeaders(markdown string, anchors map[string]string) []core.HeaderInfo {
	var headers []core.HeaderInfo

	inFence := false
	fenceMarker := ""

	for i, line := range strings.Split(markdown, "\n") {
		stripped := strings.TrimSpace(line)

		if strings.HasPrefix(stripped, "```") || strings.HasPrefix(stripped, "~~~") {
			if !inFence {
				inFence = true
				fenceMarker = stripped[:3]
			} else if strings.HasPrefix(stripped, fenceMarker) {
				inFence = false
				fenceMarker = ""
			}
			continue
		}
		if inFence {
			continue
		}
		if strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t") {
			continue
		}

		m := headerRe.FindStringSubmatch(stripped)
		if m == nil {
			continue
		}
		title := strings.TrimSpace(m[2])

		anchor := anchors[title]
		if anchor == "" {
			anchor = resolveAnchor(title, anchors)
		}

		headers = append(headers, core.HeaderInfo{
			Title:      title,
			Level:      len(m[1]),
			AnchorID:   anchor,
			LineNumber: i + 1,
		})
	}
	return headers
}

// resolveAnchor finds an anchor for a title that missed the exact map
// lookup: case-insensitive match first, then substring match in either
// direction (first match in sorted key order, so ties are stable), and
// finally a slug generated from the title itself.
func resolveAnchor(title string, anchors map[string]string) string {
	lower := strings.ToLower(title)

	keys := make([]string, 0, len(anchors))
	for k := range anchors {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if strings.ToLower(k) == lower {
			return anchors[k]
		}
	}
	for _, k := range keys {
		kl := strings.ToLower(k)
		if strings.Contains(kl, lower) || strings.Contains(lower, kl) {
			return anchors[k]
		}
	}
	return Slug(title)
}

// Slug derives a URL-safe anchor from a title following the usual
// markdown-to-HTML conventions: lowercase, drop everything outside
// word/space/hyphen characters, collapse runs to single hyphens.
func Slug(title string) string {
	s := nonWordRe.ReplaceAllString(strings.ToLower(title), "")
	s = hyphenRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
