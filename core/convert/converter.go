// Package convert turns MkDocs/TechDocs generated HTML back into clean
// markdown. It locates the main content region, walks the content tree
// as a pure recursive function (each subtree yields its own lines), and
// post-processes the result to strip syntax-highlighter artifacts.
//
// Convert never fails to the caller: a page with no recognizable content
// container yields the NoContent sentinel string, and any unrecoverable
// parse problem falls back to returning the input HTML verbatim.
package convert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/html"
)

var log = logrus.WithField("component", "convert")

// NoContent is returned when the HTML has no recognizable content
// container. Callers must check for it; it is a result, not an error.
const NoContent = "Error: Could not extract content from HTML."

// Outcome reports which path produced a conversion result, so callers
// and tests can tell a clean conversion from a degraded fallback.
type Outcome int

const (
	// OutcomeOK means the content region was found and converted.
	OutcomeOK Outcome = iota
	// OutcomeNoContent means no content container was found; the
	// markdown is the NoContent sentinel.
	OutcomeNoContent
	// OutcomeRawHTML means conversion failed entirely; the markdown
	// field carries the unmodified input HTML.
	OutcomeRawHTML
)

// Result is a conversion outcome paired with its markdown text.
type Result struct {
	Markdown string
	Outcome  Outcome
}

// contentSelectors are tried in order to locate the main content region.
// MkDocs Material wraps page content in the typeset article.
var contentSelectors = []string{
	"article.md-content__inner.md-typeset",
	"div.md-content",
	"main",
	"body",
}

// skipClassFragments mark navigation, sidebar and other chrome elements
// that contribute nothing to page content. Matching is by substring on
// the joined class attribute, so "md-nav" also catches "md-nav__list".
var skipClassFragments = []string{
	"md-nav", "md-sidebar", "md-header", "md-footer",
	"md-search", "headerlink", "md-content__button",
	"linenos", "linenodiv", "md-source-file",
}

// Converter converts TechDocs HTML pages to markdown. It holds no
// per-call state; a single instance is safe for concurrent use.
type Converter struct{}

// New creates a Converter.
func New() *Converter {
	return &Converter{}
}

// Convert returns the markdown for a full HTML document. See
// ConvertResult for the degraded-result semantics.
func (c *Converter) Convert(htmlContent string) string {
	return c.ConvertResult(htmlContent).Markdown
}

// ConvertResult converts a full HTML document to markdown and reports
// which fallback path, if any, produced the result.
func (c *Converter) ConvertResult(htmlContent string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("conversion failed, returning raw HTML")
			res = Result{Markdown: htmlContent, Outcome: OutcomeRawHTML}
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		log.WithError(err).Error("parsing HTML failed, returning raw HTML")
		return Result{Markdown: htmlContent, Outcome: OutcomeRawHTML}
	}

	content := findContent(doc)
	if content == nil {
		return Result{Markdown: NoContent, Outcome: OutcomeNoContent}
	}

	lines := c.renderNode(content)
	return Result{Markdown: CleanMarkdown(strings.Join(lines, "\n")), Outcome: OutcomeOK}
}

// findContent locates the main content region, trying the documentation
// generator's article class first, then progressively generic containers.
// The parser synthesizes <main>/<body> even for fragments, so those two
// only count when they actually carry content.
func findContent(doc *goquery.Document) *html.Node {
	for _, selector := range contentSelectors {
		sel := doc.Find(selector)
		if sel.Length() == 0 {
			continue
		}
		first := sel.First()
		if selector == "main" || selector == "body" {
			if strings.TrimSpace(first.Text()) == "" && first.Children().Length() == 0 {
				continue
			}
		}
		return first.Nodes[0]
	}
	return nil
}

// nodeKind is the closed set of element categories the walk handles.
// Unrecognized tags land in kindContainer and have their children walked.
type nodeKind int

const (
	kindText nodeKind = iota
	kindSkip
	kindHeading
	kindParagraph
	kindList
	kindListItem
	kindCode
	kindImage
	kindLink
	kindStrong
	kindEmphasis
	kindInlineCode
	kindContainer
)

// classify maps an HTML node onto its element category.
func classify(n *html.Node) nodeKind {
	switch n.Type {
	case html.TextNode:
		return kindText
	case html.ElementNode:
	default:
		return kindSkip // comments, doctype, etc.
	}

	cls := attrVal(n, "class")
	for _, fragment := range skipClassFragments {
		if strings.Contains(cls, fragment) {
			return kindSkip
		}
	}

	switch n.Data {
	case "aside":
		// Asides carry source-file metadata, not content.
		return kindSkip
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return kindHeading
	case "p":
		return kindParagraph
	case "ul", "ol":
		return kindList
	case "li":
		return kindListItem
	case "pre":
		return kindCode
	case "div":
		if hasClassToken(n, "highlight") {
			return kindCode
		}
		return kindContainer
	case "table":
		if hasClassToken(n, "highlighttable") {
			return kindCode
		}
		return kindContainer
	case "img":
		return kindImage
	case "a":
		return kindLink
	case "strong", "b":
		return kindStrong
	case "em", "i":
		return kindEmphasis
	case "code":
		return kindInlineCode
	default:
		return kindContainer
	}
}

// renderNode converts one subtree into markdown lines. It is pure: the
// caller concatenates the returned lines. A panic while processing a
// node skips that node and continues with the rest of the document.
func (c *Converter) renderNode(n *html.Node) (lines []string) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(logrus.Fields{"panic": r, "node": n.Data}).Warn("skipping element after processing error")
			lines = nil
		}
	}()

	switch classify(n) {
	case kindSkip:
		return nil

	case kindText:
		if text := strings.TrimSpace(n.Data); text != "" {
			return []string{text}
		}
		return nil

	case kindHeading:
		level := int(n.Data[1] - '0')
		return []string{strings.Repeat("#", level) + " " + headingText(n), ""}

	case kindParagraph:
		return c.renderParagraph(n)

	case kindList:
		return append(c.renderList(n, n.Data == "ol", 0), "")

	case kindListItem:
		// Reached only for orphan items; renderList handles list children.
		return nil

	case kindCode:
		return renderCodeBlock(n)

	case kindImage:
		return renderImage(n)

	case kindLink:
		if s := inlineLink(n); s != "" {
			return []string{s}
		}
		return nil

	case kindStrong:
		if text := strings.TrimSpace(textContent(n)); text != "" {
			return []string{"**" + text + "**"}
		}
		return nil

	case kindEmphasis:
		if text := strings.TrimSpace(textContent(n)); text != "" {
			return []string{"*" + text + "*"}
		}
		return nil

	case kindInlineCode:
		if text := strings.TrimSpace(textContent(n)); text != "" {
			return []string{"`" + text + "`"}
		}
		return nil

	default: // kindContainer
		var out []string
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			out = append(out, c.renderNode(child)...)
		}
		return out
	}
}

// renderParagraph handles <p> elements, including the invalid-but-common
// cases TechDocs produces: images wrapped in paragraphs and highlighter
// blocks nested inside them.
func (c *Converter) renderParagraph(n *html.Node) []string {
	if img := findFirst(n, func(nd *html.Node) bool {
		return nd.Type == html.ElementNode && nd.Data == "img"
	}); img != nil {
		return renderImage(img)
	}

	if block := findFirst(n, isHighlightBlock); block != nil {
		// Text before the embedded code block is emitted first.
		var before strings.Builder
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			if child == block {
				break
			}
			switch child.Type {
			case html.TextNode:
				before.WriteString(strings.TrimSpace(child.Data))
			case html.ElementNode:
				before.WriteString(strings.TrimSpace(textContent(child)))
			}
		}
		var out []string
		if text := strings.TrimSpace(before.String()); text != "" {
			out = append(out, text)
		}
		return append(out, renderCodeBlock(block)...)
	}

	text := inlineText(n)
	if text == "" {
		return nil
	}

	// A paragraph directly before a code block stays adjacent to it.
	// Highlighter line numbers sometimes pollute the label text; the
	// literal "Request Body:" label is restored in that position.
	if next := nextElementSibling(n); next != nil && isHighlightBlock(next) {
		if strings.Contains(text, "Request Body:") {
			return []string{"Request Body:"}
		}
		return []string{text}
	}
	return []string{text, ""}
}

// renderList emits markdown list items with two-space-per-level
// indentation, recursing into nested lists.
func (c *Converter) renderList(list *html.Node, ordered bool, indent int) []string {
	var out []string
	pad := strings.Repeat("  ", indent)
	idx := 0

	for item := list.FirstChild; item != nil; item = item.NextSibling {
		if item.Type != html.ElementNode || item.Data != "li" {
			continue
		}
		idx++

		prefix := "- "
		if ordered {
			prefix = strconv.Itoa(idx) + ". "
		}

		nested := directLists(item)
		if len(nested) == 0 {
			if text := inlineText(item); text != "" {
				out = append(out, pad+prefix+text)
			}
			continue
		}

		// The item's own text is extracted without its nested lists,
		// which are then rendered one indent level deeper.
		out = append(out, pad+prefix+inlineTextExcludingLists(item))
		for _, sub := range nested {
			out = append(out, c.renderList(sub, sub.Data == "ol", indent+1)...)
		}
	}
	return out
}

// directLists returns the list item's direct child lists, which render
// one indent level deeper than the item itself.
func directLists(item *html.Node) []*html.Node {
	var lists []*html.Node
	for c := item.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "ul" || c.Data == "ol") {
			lists = append(lists, c)
		}
	}
	return lists
}

// renderImage emits image syntax, skipping images without a source.
func renderImage(img *html.Node) []string {
	src := attrVal(img, "src")
	if src == "" {
		return nil
	}
	return []string{fmt.Sprintf("![%s](%s)", attrVal(img, "alt"), src), ""}
}

// inlineLink renders an <a> element found at block level. Headerlinks
// and links without text are dropped entirely.
func inlineLink(n *html.Node) string {
	text := textContent(n)
	if strings.Contains(attrVal(n, "class"), "headerlink") || strings.TrimSpace(text) == "" {
		return ""
	}
	if href := attrVal(n, "href"); href != "" {
		return "[" + text + "](" + href + ")"
	}
	if name := attrVal(n, "name"); name != "" {
		return `<a name="` + name + `"></a>`
	}
	return text
}

// headingText extracts a heading's visible text with permalink anchors
// stripped and named anchors preserved as inline anchor tags.
func headingText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(nd *html.Node) {
		switch nd.Type {
		case html.TextNode:
			b.WriteString(nd.Data)
		case html.ElementNode:
			if nd.Data == "a" {
				if strings.Contains(attrVal(nd, "class"), "headerlink") {
					return
				}
				if name := attrVal(nd, "name"); name != "" {
					fmt.Fprintf(&b, ` <a name=%q></a>`, name)
					return
				}
			}
			for c := nd.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return strings.TrimSpace(b.String())
}

// inlineText renders an element's children preserving inline formatting
// (bold, italic, inline code, links).
func inlineText(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(inlineNode(c, false))
	}
	return strings.TrimSpace(b.String())
}

// inlineTextExcludingLists is inlineText with nested lists removed, used
// for list items whose text must not swallow their sublists.
func inlineTextExcludingLists(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(inlineNode(c, true))
	}
	return strings.TrimSpace(b.String())
}

func inlineNode(nd *html.Node, skipLists bool) string {
	switch nd.Type {
	case html.TextNode:
		return nd.Data
	case html.ElementNode:
	default:
		return ""
	}

	if skipLists && (nd.Data == "ul" || nd.Data == "ol") {
		return ""
	}

	switch nd.Data {
	case "code":
		return "`" + textContent(nd) + "`"
	case "strong", "b":
		return "**" + textContent(nd) + "**"
	case "em", "i":
		return "*" + textContent(nd) + "*"
	case "a":
		if href := attrVal(nd, "href"); href != "" {
			return "[" + textContent(nd) + "](" + href + ")"
		}
		if name := attrVal(nd, "name"); name != "" {
			return `<a name="` + name + `"></a>`
		}
		return textContent(nd)
	default:
		var b strings.Builder
		for c := nd.FirstChild; c != nil; c = c.NextSibling {
			b.WriteString(inlineNode(c, skipLists))
		}
		return b.String()
	}
}

// --- node helpers ---

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasClassToken reports whether the class attribute contains the exact
// class name (token match, unlike the substring-based chrome skip).
func hasClassToken(n *html.Node, name string) bool {
	for _, cls := range strings.Fields(attrVal(n, "class")) {
		if cls == name {
			return true
		}
	}
	return false
}

// textContent concatenates all text nodes under n.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(nd *html.Node) {
		if nd.Type == html.TextNode {
			b.WriteString(nd.Data)
		}
		for c := nd.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

// findFirst returns the first descendant (document order) matching the
// predicate, or nil.
func findFirst(n *html.Node, match func(*html.Node) bool) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if match(c) {
			return c
		}
		if found := findFirst(c, match); found != nil {
			return found
		}
	}
	return nil
}

func nextElementSibling(n *html.Node) *html.Node {
	for s := n.NextSibling; s != nil; s = s.NextSibling {
		if s.Type == html.ElementNode {
			return s
		}
	}
	return nil
}

func isHighlightBlock(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	return (n.Data == "div" && hasClassToken(n, "highlight")) ||
		(n.Data == "table" && hasClassToken(n, "highlighttable"))
}
