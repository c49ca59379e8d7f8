package convert

import (
	stdhtml "html"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	pureNumberRe     = regexp.MustCompile(`^\s*\d+\s*$`)
	leadingNumberRe  = regexp.MustCompile(`^\s*\d+\s+`)
	isolatedNumberRe = regexp.MustCompile(`\n\s*\d+\s*\n`)
	leadingNumLineRe = regexp.MustCompile(`^\s*\d+\s*\n`)
	numBracketRe     = regexp.MustCompile(`^(\d+)([{\[])`)
)

// renderCodeBlock extracts code from a <pre> or highlighter wrapper
// (div.highlight / table.highlighttable), strips line-number artifacts
// and emits a fenced block.
func renderCodeBlock(block *html.Node) []string {
	language := ""
	for _, cls := range strings.Fields(attrVal(block, "class")) {
		if strings.HasPrefix(cls, "language-") {
			language = strings.TrimPrefix(cls, "language-")
			break
		}
	}

	content := stripLineNumbers(stdhtml.UnescapeString(extractCodeText(block)))
	if content == "" {
		return nil
	}
	return []string{"```" + language, content, "```", ""}
}

// extractCodeText pulls the raw code text out of a highlighter structure.
// Highlighted blocks with line numbers put the code in a dedicated table
// cell; the gutter cell holds only numbers and is never used.
func extractCodeText(block *html.Node) string {
	if cell := findFirst(block, func(nd *html.Node) bool {
		return nd.Type == html.ElementNode && nd.Data == "td" && hasClassToken(nd, "code")
	}); cell != nil {
		if code := findFirst(cell, isTag("code")); code != nil {
			return textContent(code)
		}
		return textContent(cell)
	}

	// No code cell: use the first <code> element outside a gutter.
	var found *html.Node
	var search func(*html.Node)
	search = func(nd *html.Node) {
		if found != nil {
			return
		}
		if nd.Type == html.ElementNode && nd.Data == "code" && !insideGutter(nd, block) {
			found = nd
			return
		}
		for c := nd.FirstChild; c != nil; c = c.NextSibling {
			search(c)
		}
	}
	search(block)
	if found != nil {
		return textContent(found)
	}

	return gutterFreeText(block)
}

// insideGutter reports whether the node has a line-number container
// between itself and root.
func insideGutter(n, root *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && (hasClassToken(p, "linenos") || hasClassToken(p, "linenodiv")) {
			return true
		}
		if p == root {
			break
		}
	}
	return false
}

// gutterFreeText collects all text under n, skipping line-number subtrees.
func gutterFreeText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(nd *html.Node) {
		if nd.Type == html.ElementNode && (hasClassToken(nd, "linenos") || hasClassToken(nd, "linenodiv")) {
			return
		}
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

// stripLineNumbers removes line-number artifacts from extracted code:
// lines that are nothing but a number, leading numeric prefixes on
// content lines, and stray numbers glued to an opening bracket.
func stripLineNumbers(raw string) string {
	var cleaned []string
	for _, line := range strings.Split(raw, "\n") {
		if pureNumberRe.MatchString(line) {
			continue
		}
		line = leadingNumberRe.ReplaceAllString(line, "")
		if pureNumberRe.MatchString(line) {
			continue
		}
		cleaned = append(cleaned, line)
	}

	content := strings.TrimSpace(strings.Join(cleaned, "\n"))
	content = isolatedNumberRe.ReplaceAllString(content, "\n")
	content = leadingNumLineRe.ReplaceAllString(content, "")

	var final []string
	for _, line := range strings.Split(content, "\n") {
		if pureNumberRe.MatchString(strings.TrimSpace(line)) {
			continue
		}
		final = append(final, numBracketRe.ReplaceAllString(line, "$2"))
	}
	return strings.TrimSpace(strings.Join(final, "\n"))
}

func isTag(name string) func(*html.Node) bool {
	return func(nd *html.Node) bool {
		return nd.Type == html.ElementNode && nd.Data == name
	}
}
