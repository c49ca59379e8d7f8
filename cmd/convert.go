package cmd

// The convert command runs the conversion pipeline on a single page:
// read the input from a file or URL, convert it to markdown, split it
// into sections and write the rendered output.

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/cabify/techdocs/core"
	"github.com/cabify/techdocs/core/convert"
	"github.com/cabify/techdocs/core/fetch"
	"github.com/cabify/techdocs/core/normalize"
	"github.com/cabify/techdocs/core/output"
	"github.com/cabify/techdocs/core/render"
	"github.com/cabify/techdocs/core/split"
)

// Flag variables.
var (
	flagMarkdown  bool
	flagJSON      bool
	flagHTML      bool
	flagPDF       bool
	flagSections  bool
	flagGeneric   bool
	flagMode      string
	flagBaseURL   string
	flagOutputDir string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file.html|url>",
	Short: "Convert a TechDocs HTML page to the specified output format",
	Long: `Convert reads a TechDocs HTML page from a file or URL, converts it to
markdown, splits it into anchored sections, and writes the selected output.

Examples:
  techdocs convert index.html --markdown
  techdocs convert index.html --json --base-url https://backstage.cabify.tools/docs/my-service
  techdocs convert https://docs.example.com/guide/ --sections --mode flat
  techdocs convert index.html --pdf --output_dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Output format flags (mutually exclusive; markdown is the default).
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output markdown (default)")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")
	convertCmd.Flags().BoolVar(&flagHTML, "html", false, "Output an HTML preview")
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	convertCmd.Flags().BoolVar(&flagSections, "sections", false, "Write one markdown file per section")

	convertCmd.Flags().BoolVar(&flagGeneric, "generic", false, "Use the generic converter (non-TechDocs HTML)")
	convertCmd.Flags().StringVar(&flagMode, "mode", "hierarchical", "Splitting mode: hierarchical or flat")
	convertCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Base URL used to build section links")
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}
	mode, err := split.ParseMode(flagMode)
	if err != nil {
		return err
	}

	htmlContent, err := readInput(input)
	if err != nil {
		return err
	}

	markdown, err := convertPage(htmlContent)
	if err != nil {
		return err
	}

	splitter := split.New(mode)
	sections := splitter.SplitDocument(markdown, htmlContent)

	page := &core.Page{
		Meta: core.PageMeta{
			Path:        input,
			Title:       extractTitle(htmlContent),
			URL:         flagBaseURL,
			ConvertedAt: time.Now().UTC().Format(time.RFC3339),
		},
		Markdown: markdown,
		Sections: sections,
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	name := output.Name(input)

	if flagSections {
		paths, err := writer.WriteSections(name, sections)
		if err != nil {
			return err
		}
		for _, path := range paths {
			fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
		}
		return nil
	}

	data, err := renderer.Render(page)
	if err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	path, err := writer.WritePage(name, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "✓ Written: %s\n", path)
	return nil
}

// convertPage runs the selected converter and surfaces the structural
// sentinel as a CLI error instead of writing it to disk.
func convertPage(htmlContent string) (string, error) {
	if flagGeneric {
		markdown, err := normalize.New().Normalize(htmlContent)
		if err != nil {
			return "", fmt.Errorf("generic conversion: %w", err)
		}
		return markdown, nil
	}

	res := convert.New().ConvertResult(htmlContent)
	if res.Outcome == convert.OutcomeNoContent {
		return "", fmt.Errorf("no content container found (try --generic for non-TechDocs pages)")
	}
	return res.Markdown, nil
}

// readInput loads the page HTML from a local file or, for http(s)
// arguments, over the network.
func readInput(input string) (string, error) {
	if strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://") {
		result, err := fetch.New().Fetch(context.Background(), input)
		if err != nil {
			return "", fmt.Errorf("fetch: %w", err)
		}
		return result.HTML, nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", input, err)
	}
	return string(data), nil
}

// extractTitle pulls the <title> content from raw HTML.
func extractTitle(html string) string {
	start := strings.Index(html, "<title>")
	if start == -1 {
		return ""
	}
	start += len("<title>")
	end := strings.Index(html[start:], "</title>")
	if end == -1 {
		return ""
	}
	return strings.TrimSpace(html[start : start+end])
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	count := 0
	for _, f := range []bool{flagMarkdown, flagJSON, flagHTML, flagPDF, flagSections} {
		if f {
			count++
		}
	}
	if count > 1 {
		return nil, fmt.Errorf("only one output format allowed per run (got %d)", count)
	}

	switch {
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagHTML:
		return render.NewHTMLRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return render.NewMarkdownRenderer(), nil
	}
}
