package markdown

import "strings"

type SpanKind int

const (
	SpanText SpanKind = iota
	SpanBold
	SpanItalic
	SpanCode
	SpanLink
)

// Span is one inline fragment of a line.
type Span struct {
	Kind SpanKind
	Text string
	URL  string // links only
}

// ParseInline scans a line greedily, trying bold, italic, code and link in
// that order against the unconsumed suffix; anything else is plain text.
// There is no backtracking, so ambiguous overlaps resolve to whichever
// pattern matches first at the leftmost position.
func ParseInline(text string) []Span {
	var spans []Span
	remaining := text

	appendText := func(s string) {
		if n := len(spans); n > 0 && spans[n-1].Kind == SpanText {
			spans[n-1].Text += s
			return
		}
		spans = append(spans, Span{Kind: SpanText, Text: s})
	}

	for len(remaining) > 0 {
		if inner, n, ok := matchDelimited(remaining, "**"); ok {
			spans = append(spans, Span{Kind: SpanBold, Text: inner})
			remaining = remaining[n:]
			continue
		}
		if inner, n, ok := matchDelimited(remaining, "__"); ok {
			spans = append(spans, Span{Kind: SpanBold, Text: inner})
			remaining = remaining[n:]
			continue
		}
		if inner, n, ok := matchDelimited(remaining, "*"); ok {
			spans = append(spans, Span{Kind: SpanItalic, Text: inner})
			remaining = remaining[n:]
			continue
		}
		if inner, n, ok := matchDelimited(remaining, "_"); ok {
			spans = append(spans, Span{Kind: SpanItalic, Text: inner})
			remaining = remaining[n:]
			continue
		}
		if inner, n, ok := matchDelimited(remaining, "`"); ok {
			spans = append(spans, Span{Kind: SpanCode, Text: inner})
			remaining = remaining[n:]
			continue
		}
		if label, url, n, ok := matchLink(remaining); ok {
			spans = append(spans, Span{Kind: SpanLink, Text: label, URL: url})
			remaining = remaining[n:]
			continue
		}

		// Plain text: a run up to the next special character, or a single
		// character when a special sits at the front without matching.
		next := strings.IndexAny(remaining, "*_`[")
		switch {
		case next == -1:
			appendText(remaining)
			remaining = ""
		case next == 0:
			appendText(remaining[:1])
			remaining = remaining[1:]
		default:
			appendText(remaining[:next])
			remaining = remaining[next:]
		}
	}

	return spans
}

// matchDelimited matches delim + non-empty content + delim at the start of s.
// The closer is the first occurrence of delim after the opener.
func matchDelimited(s, delim string) (inner string, n int, ok bool) {
	if !strings.HasPrefix(s, delim) {
		return "", 0, false
	}
	rest := s[len(delim):]
	i := strings.Index(rest, delim)
	if i <= 0 {
		return "", 0, false
	}
	return rest[:i], len(delim)*2 + i, true
}

// matchLink matches [label](url) with non-empty label and url.
func matchLink(s string) (label, url string, n int, ok bool) {
	if !strings.HasPrefix(s, "[") {
		return "", "", 0, false
	}
	close1 := strings.Index(s, "]")
	if close1 <= 1 {
		return "", "", 0, false
	}
	label = s[1:close1]
	if close1+1 >= len(s) || s[close1+1] != '(' {
		return "", "", 0, false
	}
	rest := s[close1+2:]
	close2 := strings.Index(rest, ")")
	if close2 <= 0 {
		return "", "", 0, false
	}
	url = rest[:close2]
	return label, url, close1 + 2 + close2 + 1, true
}

// PlainText flattens spans back to their visible text, used for word counts.
func PlainText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
