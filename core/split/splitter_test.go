package split

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `# Overview
Intro paragraph.

## Install
Run the installer.

### Requirements
Disk space.

## Configure
Edit the file.

# Appendix
Extra notes.`

func TestSplitNonHierarchicalCoversDocument(t *testing.T) {
	s := New(NonHierarchical)
	headers := ParseHeaders(sampleDoc, nil)
	sections := s.Split(sampleDoc, headers)
	require.Len(t, sections, 5)

	// Disjoint sections: each ends where the next begins, and together
	// they reconstruct the whole document.
	for i := 1; i < len(sections); i++ {
		assert.Equal(t, sections[i-1].EndLine+1, sections[i].StartLine)
	}

	parts := make([]string, len(sections))
	for i, sec := range sections {
		parts[i] = sec.Content
	}
	assert.Equal(t, strings.TrimSpace(sampleDoc), strings.Join(parts, "\n\n"))
}

func TestSplitHierarchicalParentsContainChildren(t *testing.T) {
	s := New(Hierarchical)
	headers := ParseHeaders(sampleDoc, nil)
	sections := s.Split(sampleDoc, headers)
	require.Len(t, sections, 5)

	bytitle := map[string]string{}
	for _, sec := range sections {
		bytitle[sec.Title] = sec.Content
	}

	// Overview runs until Appendix and so contains all of its subsections.
	assert.Contains(t, bytitle["Overview"], "Run the installer.")
	assert.Contains(t, bytitle["Overview"], "Disk space.")
	assert.Contains(t, bytitle["Overview"], "Edit the file.")
	assert.NotContains(t, bytitle["Overview"], "Extra notes.")

	// Install (h2) contains its h3 but stops at the sibling h2.
	assert.Contains(t, bytitle["Install"], "Disk space.")
	assert.NotContains(t, bytitle["Install"], "Edit the file.")

	// A leaf section is identical in both modes.
	assert.Equal(t, "### Requirements\nDisk space.", bytitle["Requirements"])
}

func TestSplitNoHeadersYieldsWholeDocument(t *testing.T) {
	markdown := "\njust some text\nwith no headers\n"
	sections := New(Hierarchical).Split(markdown, nil)
	require.Len(t, sections, 1)

	assert.Equal(t, "Document", sections[0].Title)
	assert.Equal(t, "document", sections[0].AnchorID)
	assert.Equal(t, 1, sections[0].Level)
	assert.Equal(t, "just some text\nwith no headers", sections[0].Content)
}

func TestSplitDocumentResolvesAnchorsFromHTML(t *testing.T) {
	html := `<html><body>
<h1 id="overview-anchor">Overview<a class="headerlink" href="#overview-anchor">&para;</a></h1>
<h2 id="install-anchor">Install</h2>
</body></html>`
	markdown := "# Overview\ntext\n## Install\nmore\n"

	sections := New(NonHierarchical).SplitDocument(markdown, html)
	require.Len(t, sections, 2)
	assert.Equal(t, "overview-anchor", sections[0].AnchorID)
	assert.Equal(t, "install-anchor", sections[1].AnchorID)
}

func TestSplitDocumentEmptyMarkdown(t *testing.T) {
	sections := New(Hierarchical).SplitDocument("", "")
	require.Len(t, sections, 1)
	assert.Equal(t, "Document", sections[0].Title)
	assert.Equal(t, "", sections[0].Content)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("hierarchical")
	require.NoError(t, err)
	assert.Equal(t, Hierarchical, m)

	for _, spelling := range []string{"non_hierarchical", "non-hierarchical", "flat", "FLAT"} {
		m, err = ParseMode(spelling)
		require.NoError(t, err)
		assert.Equal(t, NonHierarchical, m)
	}

	_, err = ParseMode("bogus")
	assert.Error(t, err)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "hierarchical", Hierarchical.String())
	assert.Equal(t, "non_hierarchical", NonHierarchical.String())
}

func TestSectionURL(t *testing.T) {
	assert.Equal(t, "https://docs.example.com/svc/#setup", SectionURL("https://docs.example.com/svc", "setup"))
	assert.Equal(t, "https://docs.example.com/svc", SectionURL("https://docs.example.com/svc", ""))
}
