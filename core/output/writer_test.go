package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cabify/techdocs/core"
)

func TestName(t *testing.T) {
	assert.Equal(t, "example_com_docs_intro", Name("https://example.com/docs/intro"))
	assert.Equal(t, "example_com", Name("https://example.com/"))
	assert.Equal(t, "page", Name("/tmp/page.html"))
	assert.Equal(t, "index", Name("docs/payments/index.html"))
	assert.Equal(t, "document", Name(""))
}

func TestWritePage(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.WritePage("page", []byte("# hi\n"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "page.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# hi\n", string(data))
}

func TestWriteSections(t *testing.T) {
	dir := t.TempDir()
	w, err := New(dir)
	require.NoError(t, err)

	sections := []core.MarkdownSection{
		{Title: "Overview", Content: "# Overview\nbody", AnchorID: "overview"},
		{Title: "No Anchor", Content: "text", AnchorID: ""},
	}

	paths, err := w.WriteSections("page", sections)
	require.NoError(t, err)
	require.Len(t, paths, 2)

	assert.Equal(t, filepath.Join(dir, "page", "01-overview.md"), paths[0])
	assert.Equal(t, filepath.Join(dir, "page", "02-section.md"), paths[1])

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Equal(t, "# Overview\nbody\n", string(data))
}

func TestNewCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
