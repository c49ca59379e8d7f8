// Package output handles file naming and writing for CLI outputs.
// Page outputs get a flat filename derived from the input path or URL;
// --sections mode writes one file per section under a directory of the
// same name.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cabify/techdocs/core"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WritePage writes one rendered page. The name should come from Name.
func (w *Writer) WritePage(name string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, name+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteSections writes one markdown file per section under a directory
// named after the page: <name>/<NN>-<anchor>.md.
func (w *Writer) WriteSections(name string, sections []core.MarkdownSection) ([]string, error) {
	dir := filepath.Join(w.OutputDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	paths := make([]string, 0, len(sections))
	for i, s := range sections {
		anchor := s.AnchorID
		if anchor == "" {
			anchor = "section"
		}
		path := filepath.Join(dir, fmt.Sprintf("%02d-%s.md", i+1, sanitize(anchor)))
		if err := os.WriteFile(path, []byte(s.Content+"\n"), 0644); err != nil {
			return nil, fmt.Errorf("writing file %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Name converts an input path or URL into a flat filename.
// Example: https://example.com/docs/intro → example_com_docs_intro
func Name(input string) string {
	if parsed, err := url.Parse(input); err == nil && parsed.Scheme != "" && parsed.Host != "" {
		parts := []string{sanitize(parsed.Host)}
		for _, seg := range strings.Split(strings.Trim(parsed.Path, "/"), "/") {
			if seg != "" {
				parts = append(parts, sanitize(seg))
			}
		}
		return strings.Join(parts, "_")
	}

	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." {
		return "document"
	}
	return sanitize(base)
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
