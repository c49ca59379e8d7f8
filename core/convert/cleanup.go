package convert

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	glyphLineRe = regexp.MustCompile(`^\s*[¶&;]+\s*$`)
	dateLineRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// CleanMarkdown post-processes assembled markdown: permalink glyphs,
// stray line numbers, bare date stamps and comma artifacts are dropped,
// blank-line runs collapse to one, and the result ends with exactly one
// trailing newline. The pass is idempotent.
func CleanMarkdown(content string) string {
	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))

	prevEmpty := false
	for _, line := range lines {
		line = strings.TrimRightFunc(line, unicode.IsSpace)

		switch {
		case line == "¶" || line == "&para;" || glyphLineRe.MatchString(line):
		case pureNumberRe.MatchString(line):
		case dateLineRe.MatchString(line):
		case line == ",":
		case line == "":
			if !prevEmpty {
				cleaned = append(cleaned, line)
			}
			prevEmpty = true
		default:
			cleaned = append(cleaned, line)
			prevEmpty = false
		}
	}

	for len(cleaned) > 0 && cleaned[len(cleaned)-1] == "" {
		cleaned = cleaned[:len(cleaned)-1]
	}
	return strings.Join(cleaned, "\n") + "\n"
}
