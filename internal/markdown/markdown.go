// Package markdown converts streamed model output into display nodes with a
// single left-to-right pass over lines. It covers the subset the dashboard
// renders: fenced code, headers, rules, blockquotes, flat lists and a small
// set of inline forms. No escaping and no nesting; consecutive quoted lines
// stay separate nodes.
package markdown

import (
	"regexp"
	"strings"
)

type NodeKind int

const (
	NodeParagraph NodeKind = iota
	NodeHeading
	NodeCodeBlock
	NodeRule
	NodeQuote
	NodeList
	NodeSpacer
)

// Node is one block-level display element.
type Node struct {
	Kind NodeKind

	// Heading level 1-4; Paragraph/Heading/Quote text as inline spans.
	Level int
	Spans []Span

	// Code block payload, captured verbatim.
	Lang string
	Code string

	// List payload: one inline-parsed entry per item.
	Ordered bool
	Items   [][]Span
}

var (
	headingRe = regexp.MustCompile(`^(#{1,4}) (.+)$`)
	ruleRe    = regexp.MustCompile(`^(-{3,}|\*{3,}|_{3,})$`)
	quoteRe   = regexp.MustCompile(`^> (.+)$`)
	bulletRe  = regexp.MustCompile(`^[*\-+] (.+)$`)
	numberRe  = regexp.MustCompile(`^\d+\. (.+)$`)
)

type listState int

const (
	listNone listState = iota
	listUnordered
	listOrdered
)

// Render converts text into an ordered sequence of display nodes.
func Render(text string) []Node {
	lines := strings.Split(text, "\n")
	var nodes []Node

	inCode := false
	var codeLines []string
	codeLang := ""

	list := listNone
	var items [][]Span

	flushList := func() {
		if list == listNone || len(items) == 0 {
			list = listNone
			items = nil
			return
		}
		nodes = append(nodes, Node{
			Kind:    NodeList,
			Ordered: list == listOrdered,
			Items:   items,
		})
		list = listNone
		items = nil
	}

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			if !inCode {
				flushList()
				inCode = true
				codeLang = strings.TrimSpace(line[3:])
				codeLines = nil
			} else {
				nodes = append(nodes, Node{Kind: NodeCodeBlock, Lang: codeLang, Code: strings.Join(codeLines, "\n")})
				inCode = false
				codeLines = nil
				codeLang = ""
			}
			continue
		}

		if inCode {
			codeLines = append(codeLines, line)
			continue
		}

		if m := headingRe.FindStringSubmatch(line); m != nil {
			flushList()
			nodes = append(nodes, Node{Kind: NodeHeading, Level: len(m[1]), Spans: ParseInline(m[2])})
			continue
		}

		if ruleRe.MatchString(line) {
			flushList()
			nodes = append(nodes, Node{Kind: NodeRule})
			continue
		}

		if m := quoteRe.FindStringSubmatch(line); m != nil {
			flushList()
			nodes = append(nodes, Node{Kind: NodeQuote, Spans: ParseInline(m[1])})
			continue
		}

		if m := bulletRe.FindStringSubmatch(line); m != nil {
			if list != listUnordered {
				flushList()
				list = listUnordered
			}
			items = append(items, ParseInline(m[1]))
			continue
		}

		if m := numberRe.FindStringSubmatch(line); m != nil {
			if list != listOrdered {
				flushList()
				list = listOrdered
			}
			items = append(items, ParseInline(m[1]))
			continue
		}

		if strings.TrimSpace(line) == "" {
			flushList()
			nodes = append(nodes, Node{Kind: NodeSpacer})
			continue
		}

		flushList()
		nodes = append(nodes, Node{Kind: NodeParagraph, Spans: ParseInline(line)})
	}

	flushList()

	// An unterminated fence still emits whatever was captured.
	if inCode && len(codeLines) > 0 {
		nodes = append(nodes, Node{Kind: NodeCodeBlock, Lang: codeLang, Code: strings.Join(codeLines, "\n")})
	}

	return nodes
}
