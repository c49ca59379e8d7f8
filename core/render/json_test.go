package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabify/techdocs/core"
)

func samplePageForRender() *core.Page {
	return &core.Page{
		Meta: core.PageMeta{
			Title: "Payments Service",
			URL:   "https://portal.example.com/docs/payments",
		},
		Markdown: "# Payments Service\n\nSee [the API](https://example.com/api).\n\n- item one\n- item two\n\n```go\nfmt.Println(\"x\")\n```\n",
		Sections: []core.MarkdownSection{
			{Title: "Payments Service", Content: "# Payments Service\n\nbody", Level: 1, AnchorID: "payments-service", StartLine: 1, EndLine: 8},
		},
	}
}

func TestJSONRenderer(t *testing.T) {
	data, err := NewJSONRenderer().Render(samplePageForRender())
	require.NoError(t, err)

	var out struct {
		Meta struct {
			Title string `json:"title"`
		} `json:"metadata"`
		Markdown string `json:"markdown"`
		Sections []struct {
			Title    string `json:"title"`
			AnchorID string `json:"anchor_id"`
			URL      string `json:"url"`
		} `json:"sections"`
		Structure struct {
			Sections   int `json:"sections"`
			Links      int `json:"links"`
			CodeBlocks int `json:"code_blocks"`
			Lists      int `json:"lists"`
		} `json:"structure"`
	}
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "Payments Service", out.Meta.Title)
	require.Len(t, out.Sections, 1)
	assert.Equal(t, "https://portal.example.com/docs/payments/#payments-service", out.Sections[0].URL)

	assert.Equal(t, 1, out.Structure.Sections)
	assert.Equal(t, 1, out.Structure.Links)
	assert.Equal(t, 1, out.Structure.CodeBlocks)
	assert.Equal(t, 2, out.Structure.Lists)
}

func TestMarkdownRendererPassthrough(t *testing.T) {
	page := samplePageForRender()
	r := NewMarkdownRenderer()

	data, err := r.Render(page)
	require.NoError(t, err)
	assert.Equal(t, page.Markdown, string(data))
	assert.Equal(t, ".md", r.Extension())
}

func TestHTMLRendererEscapesTitle(t *testing.T) {
	page := samplePageForRender()
	page.Meta.Title = `Payments <script>"x"</script>`
	r := NewHTMLRenderer()

	data, err := r.Render(page)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "<!DOCTYPE html>")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "<h1")
	assert.Equal(t, ".html", r.Extension())
}

func TestPDFRendererProducesDocument(t *testing.T) {
	page := samplePageForRender()
	r := NewPDFRenderer()

	data, err := r.Render(page)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
	assert.Equal(t, ".pdf", r.Extension())
}
