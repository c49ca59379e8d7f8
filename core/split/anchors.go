// Package split partitions converted markdown into addressable sections.
// Headers found in the markdown are correlated back to the anchor ids
// the site generator assigned in the original HTML, so every section
// resolves to a stable URL fragment.
package split

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "split")

// ExtractAnchors maps each heading's visible text to the anchor id the
// generator assigned to it. Permalink anchors are removed before the
// text is read. Later headings with duplicate text overwrite earlier
// ones. Malformed HTML yields an empty map, never an error.
func ExtractAnchors(htmlContent string) map[string]string {
	anchors := make(map[string]string)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		log.WithError(err).Warn("parsing HTML for anchors failed")
		return anchors
	}

	for level := 1; level <= 6; level++ {
		doc.Find(fmt.Sprintf("h%d[id]", level)).Each(func(_ int, h *goquery.Selection) {
			id := h.AttrOr("id", "")
			if id == "" {
				return
			}
			clone := h.Clone()
			clone.Find("a.headerlink").Remove()
			if text := strings.TrimSpace(clone.Text()); text != "" {
				anchors[text] = id
			}
		})
	}
	return anchors
}
