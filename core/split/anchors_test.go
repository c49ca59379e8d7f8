package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractAnchors(t *testing.T) {
	html := `<html><body>
<h1 id="getting-started">Getting Started<a class="headerlink" href="#getting-started">&para;</a></h1>
<h2 id="setup">Setup</h2>
<h3 id="advanced-config">Advanced <em>Config</em></h3>
<h2>No ID Here</h2>
</body></html>`

	anchors := ExtractAnchors(html)
	assert.Equal(t, map[string]string{
		"Getting Started": "getting-started",
		"Setup":           "setup",
		"Advanced Config": "advanced-config",
	}, anchors)
}

func TestExtractAnchorsDuplicateTextLastWins(t *testing.T) {
	html := `<html><body>
<h2 id="setup">Setup</h2>
<h2 id="setup_1">Setup</h2>
</body></html>`

	anchors := ExtractAnchors(html)
	assert.Equal(t, "setup_1", anchors["Setup"])
}

func TestExtractAnchorsSkipsEmptyHeadings(t *testing.T) {
	html := `<h2 id="only-permalink"><a class="headerlink" href="#only-permalink">&para;</a></h2>`

	anchors := ExtractAnchors(html)
	assert.Empty(t, anchors)
}

func TestExtractAnchorsMalformedHTML(t *testing.T) {
	assert.NotPanics(t, func() {
		anchors := ExtractAnchors("<<<h2 id=>>>")
		assert.NotNil(t, anchors)
	})
}
