package render

// The PDF renderer converts a page into a styled PDF using gofpdf:
// title and source, a section outline built from the split sections,
// then the markdown body with headings, paragraphs, code blocks and
// lists.

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/cabify/techdocs/core"
	"github.com/jung-kurt/gofpdf"
)

// PDFRenderer renders a converted page as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts a page into PDF bytes.
func (r *PDFRenderer) Render(page *core.Page) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	if page.Meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, page.Meta.Title, "", "L", false)
		pdf.Ln(4)
	}

	source := page.Meta.URL
	if source == "" {
		source = page.Meta.Path
	}
	if source != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, "Source: "+source, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	renderOutline(pdf, page.Sections)
	renderBody(pdf, page.Markdown)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderOutline writes a contents list from the page sections, indented
// by heading level and annotated with each section's anchor.
func renderOutline(pdf *gofpdf.Fpdf, sections []core.MarkdownSection) {
	if len(sections) < 2 {
		return
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.MultiCell(0, 6, "Contents", "", "L", false)
	pdf.Ln(1)

	pdf.SetFont("Helvetica", "", 9)
	for _, s := range sections {
		indent := strings.Repeat("   ", s.Level-1)
		line := indent + s.Title
		if s.AnchorID != "" {
			line += "  (#" + s.AnchorID + ")"
		}
		pdf.MultiCell(0, 4.5, line, "", "L", false)
	}
	pdf.Ln(6)
}

// renderBody walks the markdown line by line, switching fonts for
// headings, code blocks and list items.
func renderBody(pdf *gofpdf.Fpdf, markdown string) {
	inCodeBlock := false

	for _, line := range strings.Split(markdown, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}

		if inCodeBlock {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, line, "", "L", true)
			continue
		}

		if strings.TrimSpace(line) == "" {
			pdf.Ln(3)
			continue
		}

		if strings.HasPrefix(line, "#") {
			level := 0
			for _, ch := range line {
				if ch != '#' {
					break
				}
				level++
			}
			renderHeading(pdf, strings.TrimSpace(strings.TrimLeft(line, "# ")), level)
			continue
		}

		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, cleanInlineMarkdown("• "+strings.TrimSpace(trimmed[2:])), "", "L", false)
			continue
		}
		if numberedItemRe.MatchString(trimmed) {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, cleanInlineMarkdown(trimmed), "", "L", false)
			continue
		}

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, cleanInlineMarkdown(line), "", "L", false)
	}
}

var (
	numberedItemRe = regexp.MustCompile(`^\d+\.\s`)
	italicRe       = regexp.MustCompile(`(?:^|\s)\*([^*]+)\*(?:\s|$)`)
	inlineCodeRe   = regexp.MustCompile("`([^`]+)`")
)

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, cleanInlineMarkdown(text), "", "L", false)
	pdf.Ln(2)
}

// cleanInlineMarkdown strips inline markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "__", "")
	text = italicRe.ReplaceAllString(text, " $1 ")
	text = inlineCodeRe.ReplaceAllString(text, "$1")
	text = linkRegex.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
