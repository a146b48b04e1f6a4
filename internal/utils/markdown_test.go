package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdownStripsScripts(t *testing.T) {
	out := string(RenderMarkdown("Привет<script>alert(1)</script>"))
	assert.Contains(t, out, "Привет")
	assert.NotContains(t, out, "<script>")
}

func TestRenderMarkdownKeepsLineBreaks(t *testing.T) {
	out := string(RenderMarkdown("первая\nвторая"))
	assert.Contains(t, out, "<br")
}

func TestEnhanceHTMLContentMarksImagesLazy(t *testing.T) {
	out := string(EnhanceHTMLContent(`<p><img src="/media/posts/a.gif"></p><a href="https://example.com">x</a>`))
	assert.Contains(t, out, `loading="lazy"`)
	assert.True(t, strings.Contains(out, `rel="nofollow noopener noreferrer"`))
	assert.NotContains(t, out, "<body>")
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, uint(42), id)

	for _, bad := range []string{"", "0", "-1", "abc", "1.5"} {
		_, ok := ParseID(bad)
		assert.False(t, ok, bad)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	assert.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
