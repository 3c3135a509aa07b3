package tui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, wordCount(""))
	assert.Equal(t, 0, wordCount("   \n\t"))
	assert.Equal(t, 3, wordCount("one two three"))
	assert.Equal(t, 4, wordCount("spread\nacross\n\nseveral  lines"))
}

func TestRenderMarkdownKeepsPlainText(t *testing.T) {
	out := renderMarkdown("just a sentence", 60)
	assert.Contains(t, out, "just a sentence")
}

func TestRenderMarkdownListMarkers(t *testing.T) {
	out := renderMarkdown("1. first\n2. second", 60)
	assert.Contains(t, out, "1. first")
	assert.Contains(t, out, "2. second")

	out = renderMarkdown("- alpha\n- beta", 60)
	assert.Contains(t, out, "• alpha")
	assert.Contains(t, out, "• beta")
}

func TestRenderMarkdownCodeBlockVerbatim(t *testing.T) {
	out := renderMarkdown("```go\nfmt.Println(\"hi\")\n```", 60)
	assert.Contains(t, out, `fmt.Println("hi")`)
}

func TestRenderMarkdownRuleSpansWidth(t *testing.T) {
	out := renderMarkdown("---", 30)
	assert.True(t, strings.Contains(out, strings.Repeat("─", 30)))
}
