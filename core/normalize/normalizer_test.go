package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	html := `<html><body><h1>Title</h1><p>Some <strong>bold</strong> text.</p></body></html>`

	md, err := New().Normalize(html)
	require.NoError(t, err)

	assert.Contains(t, md, "# Title")
	assert.Contains(t, md, "**bold**")
	assert.True(t, strings.HasSuffix(md, "\n"))
}

func TestNormalizeEmptyInput(t *testing.T) {
	md, err := New().Normalize("")
	require.NoError(t, err)
	assert.Equal(t, "\n", md)
}
