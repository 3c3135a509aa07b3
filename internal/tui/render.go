package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/reaxo/reaxo/internal/markdown"
)

var (
	boldSpan   = lipgloss.NewStyle().Bold(true)
	italicSpan = lipgloss.NewStyle().Italic(true)
	codeSpan   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("213")).
			Background(lipgloss.Color("236"))
	linkSpan = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Underline(true)
	codeBlockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("235")).
			Padding(0, 1)
	quoteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
	headingStyles = map[int]lipgloss.Style{
		1: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")).Underline(true),
		2: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("81")),
		3: lipgloss.NewStyle().Bold(true),
		4: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("245")),
	}
)

// renderMarkdown turns model output into styled terminal text.
func renderMarkdown(text string, width int) string {
	if width < 10 {
		width = 10
	}

	var b strings.Builder
	for i, node := range markdown.Render(text) {
		if i > 0 {
			b.WriteString("\n")
		}
		switch node.Kind {
		case markdown.NodeHeading:
			style, ok := headingStyles[node.Level]
			if !ok {
				style = boldSpan
			}
			b.WriteString(style.Render(renderSpans(node.Spans)))
		case markdown.NodeCodeBlock:
			b.WriteString(codeBlockStyle.Width(width).Render(node.Code))
		case markdown.NodeRule:
			b.WriteString(mutedStyle.Render(strings.Repeat("─", width)))
		case markdown.NodeQuote:
			b.WriteString(quoteStyle.Render("│ " + renderSpans(node.Spans)))
		case markdown.NodeList:
			for j, item := range node.Items {
				if j > 0 {
					b.WriteString("\n")
				}
				marker := "• "
				if node.Ordered {
					marker = fmt.Sprintf("%d. ", j+1)
				}
				b.WriteString(marker + renderSpans(item))
			}
		case markdown.NodeSpacer:
			// The joining newline is the spacing.
		default:
			b.WriteString(renderSpans(node.Spans))
		}
	}
	return b.String()
}

func renderSpans(spans []markdown.Span) string {
	var b strings.Builder
	for _, s := range spans {
		switch s.Kind {
		case markdown.SpanBold:
			b.WriteString(boldSpan.Render(s.Text))
		case markdown.SpanItalic:
			b.WriteString(italicSpan.Render(s.Text))
		case markdown.SpanCode:
			b.WriteString(codeSpan.Render(s.Text))
		case markdown.SpanLink:
			b.WriteString(linkSpan.Render(s.Text))
		default:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// wordCount counts whitespace-separated words in raw model output.
func wordCount(text string) int {
	return len(strings.Fields(text))
}
