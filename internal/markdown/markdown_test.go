package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_PlainTextSingleParagraph(t *testing.T) {
	input := "just an ordinary sentence with no formatting"

	nodes := Render(input)

	require.Len(t, nodes, 1)
	assert.Equal(t, NodeParagraph, nodes[0].Kind)
	require.Len(t, nodes[0].Spans, 1)
	assert.Equal(t, SpanText, nodes[0].Spans[0].Kind)
	assert.Equal(t, input, nodes[0].Spans[0].Text)
}

func TestParseInline_BoldAndCode(t *testing.T) {
	spans := ParseInline("**bold** and `code`")

	require.Len(t, spans, 3)
	assert.Equal(t, Span{Kind: SpanBold, Text: "bold"}, spans[0])
	assert.Equal(t, Span{Kind: SpanText, Text: " and "}, spans[1])
	assert.Equal(t, Span{Kind: SpanCode, Text: "code"}, spans[2])
}

func TestParseInline_Variants(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Span
	}{
		{
			name:  "italic with underscores",
			input: "_lean_",
			want:  []Span{{Kind: SpanItalic, Text: "lean"}},
		},
		{
			name:  "bold with underscores",
			input: "__heavy__",
			want:  []Span{{Kind: SpanBold, Text: "heavy"}},
		},
		{
			name:  "link",
			input: "see [docs](https://example.com) here",
			want: []Span{
				{Kind: SpanText, Text: "see "},
				{Kind: SpanLink, Text: "docs", URL: "https://example.com"},
				{Kind: SpanText, Text: " here"},
			},
		},
		{
			name:  "unmatched asterisk stays literal",
			input: "a * b",
			want:  []Span{{Kind: SpanText, Text: "a * b"}},
		},
		{
			name:  "greedy overlap resolves leftmost-first",
			input: "**bold *and* italic**",
			want: []Span{
				{Kind: SpanBold, Text: "bold *and* italic"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInline(tt.input))
		})
	}
}

func TestRender_ListThenBlank(t *testing.T) {
	nodes := Render("- item1\n- item2\n")

	require.Len(t, nodes, 2)
	assert.Equal(t, NodeList, nodes[0].Kind)
	assert.False(t, nodes[0].Ordered)
	require.Len(t, nodes[0].Items, 2)
	assert.Equal(t, "item1", PlainText(nodes[0].Items[0]))
	assert.Equal(t, "item2", PlainText(nodes[0].Items[1]))
	assert.Equal(t, NodeSpacer, nodes[1].Kind)
}

func TestRender_ListKindSwitchFlushes(t *testing.T) {
	nodes := Render("- a\n- b\n1. one\n2. two")

	require.Len(t, nodes, 2)
	assert.Equal(t, NodeList, nodes[0].Kind)
	assert.False(t, nodes[0].Ordered)
	assert.Len(t, nodes[0].Items, 2)
	assert.Equal(t, NodeList, nodes[1].Kind)
	assert.True(t, nodes[1].Ordered)
	assert.Len(t, nodes[1].Items, 2)
}

func TestRender_Headings(t *testing.T) {
	nodes := Render("# one\n## two\n### three\n#### four\n##### five")

	require.Len(t, nodes, 5)
	for i := 0; i < 4; i++ {
		assert.Equal(t, NodeHeading, nodes[i].Kind)
		assert.Equal(t, i+1, nodes[i].Level)
	}
	// Five hashes is not a heading we support; it falls through to a paragraph.
	assert.Equal(t, NodeParagraph, nodes[4].Kind)
}

func TestRender_CodeBlock(t *testing.T) {
	nodes := Render("```go\nfunc main() {}\n**not bold**\n```\nafter")

	require.Len(t, nodes, 2)
	assert.Equal(t, NodeCodeBlock, nodes[0].Kind)
	assert.Equal(t, "go", nodes[0].Lang)
	assert.Equal(t, "func main() {}\n**not bold**", nodes[0].Code)
	assert.Equal(t, NodeParagraph, nodes[1].Kind)
}

func TestRender_UnterminatedCodeBlock(t *testing.T) {
	nodes := Render("```\npartial output")

	require.Len(t, nodes, 1)
	assert.Equal(t, NodeCodeBlock, nodes[0].Kind)
	assert.Equal(t, "", nodes[0].Lang)
	assert.Equal(t, "partial output", nodes[0].Code)
}

func TestRender_HorizontalRules(t *testing.T) {
	for _, line := range []string{"---", "*****", "___"} {
		nodes := Render(line)
		require.Len(t, nodes, 1, line)
		assert.Equal(t, NodeRule, nodes[0].Kind, line)
	}

	// A two-character run is not a rule.
	nodes := Render("--")
	require.Len(t, nodes, 1)
	assert.Equal(t, NodeParagraph, nodes[0].Kind)
}

func TestRender_BlockquotesStaySeparate(t *testing.T) {
	nodes := Render("> first\n> second")

	require.Len(t, nodes, 2)
	assert.Equal(t, NodeQuote, nodes[0].Kind)
	assert.Equal(t, NodeQuote, nodes[1].Kind)
	assert.Equal(t, "first", PlainText(nodes[0].Spans))
	assert.Equal(t, "second", PlainText(nodes[1].Spans))
}
