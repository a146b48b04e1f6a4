package handlers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateByParagraph(t *testing.T) {
	html := "<p>one</p>\n<p>two</p>\n<h2>three</h2>\n<p>four</p>"
	assert.Equal(t, "<p>one</p>\n<p>two</p>\n<h2>three</h2>", truncateByParagraph(html, 3))

	long := strings.Repeat("я", 350)
	got := truncateByParagraph(long, 3)
	assert.Equal(t, 303, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))

	assert.Equal(t, "short", truncateByParagraph("short", 3))
}

func TestSafeNext(t *testing.T) {
	tests := map[string]string{
		"":                    "/",
		"/create/":            "/create/",
		"/posts/1/?page=2":    "/posts/1/?page=2",
		"//evil.example.com":  "/",
		"/\\evil.example.com": "/",
		"https://evil.com/":   "/",
	}
	for next, want := range tests {
		assert.Equal(t, want, safeNext(next), next)
	}
}
