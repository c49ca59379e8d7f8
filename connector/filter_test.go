package connector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cabify/techdocs/core"
)

func docNamed(id string) core.Document {
	return core.Document{ID: id}
}

func TestIsDocPage(t *testing.T) {
	assert.True(t, IsDocPage("index.html"))
	assert.True(t, IsDocPage("payments/index.html"))
	assert.True(t, IsDocPage("a/b/c/index.html"))

	assert.False(t, IsDocPage("payments/index.html/"))
	assert.False(t, IsDocPage("payments/page.html"))
	assert.False(t, IsDocPage("payments/assets/app.css"))
	assert.False(t, IsDocPage("payments/search/search_index.json"))
	assert.False(t, IsDocPage(""))
}

func TestDocPath(t *testing.T) {
	assert.Equal(t, "payments", DocPath("payments/index.html"))
	assert.Equal(t, "a/b/c", DocPath("a/b/c/index.html"))
	assert.Equal(t, "", DocPath("index.html"))
}

func TestPageURL(t *testing.T) {
	assert.Equal(t, "https://portal.example.com/docs/payments",
		PageURL("https://portal.example.com/docs", "payments/index.html"))
	assert.Equal(t, "https://portal.example.com/docs/payments",
		PageURL("https://portal.example.com/docs/", "payments/index.html"))
	assert.Equal(t, DefaultDocsBaseURL+"/payments",
		PageURL("", "payments/index.html"))
}

func TestBatcher(t *testing.T) {
	b := newBatcher(2)

	assert.Nil(t, b.Add("k1", docNamed("k1")))
	assert.False(t, b.Seen("k2"))
	assert.True(t, b.Seen("k1"))

	full := b.Add("k2", docNamed("k2"))
	assert.Len(t, full, 2)

	assert.Nil(t, b.Add("k1", docNamed("k1 again")))
	assert.Nil(t, b.Add("k3", docNamed("k3")))

	rest := b.Flush()
	assert.Len(t, rest, 1)
	assert.Equal(t, "k3", rest[0].ID)
	assert.Empty(t, b.Flush())
}

func TestBatcherDefaultSize(t *testing.T) {
	b := newBatcher(0)
	for i := 0; i < defaultBatchSize-1; i++ {
		assert.Nil(t, b.Add(string(rune('a'+i)), docNamed("x")))
	}
	assert.Len(t, b.Add("last", docNamed("last")), defaultBatchSize)
}
