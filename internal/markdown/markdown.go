// Package markdown converts the restricted markdown subset produced by the
// content generator into renderable blocks. Only headings (#, ##, ###),
// flat bullet lists ("- ", "* ") and paragraphs with **bold** spans are
// recognised; everything else passes through as paragraph text.
package markdown

import (
	"regexp"
	"strings"
)

// Kind identifies a block node.
type Kind int

const (
	KindHeading Kind = iota
	KindList
	KindParagraph
)

func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindList:
		return "list"
	case KindParagraph:
		return "paragraph"
	default:
		return "unknown"
	}
}

// Span is a run of inline text. Bold spans have their ** delimiters stripped.
type Span struct {
	Text string
	Bold bool
}

// Block is one rendered node.
type Block struct {
	Kind  Kind
	Level int    // heading level 1-3
	Text  string // heading text
	Spans []Span // paragraph content
	Items [][]Span
}

var boldPattern = regexp.MustCompile(`\*\*.*?\*\*`)

// Render scans text line by line and returns its blocks in order.
// Empty input yields nil.
func Render(text string) []Block {
	if text == "" {
		return nil
	}

	var (
		blocks  []Block
		pending [][]Span
	)
	flush := func() {
		if len(pending) > 0 {
			blocks = append(blocks, Block{Kind: KindList, Items: pending})
			pending = nil
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "### "):
			flush()
			blocks = append(blocks, Block{Kind: KindHeading, Level: 3, Text: line[4:]})
		case strings.HasPrefix(line, "## "):
			flush()
			blocks = append(blocks, Block{Kind: KindHeading, Level: 2, Text: line[3:]})
		case strings.HasPrefix(line, "# "):
			flush()
			blocks = append(blocks, Block{Kind: KindHeading, Level: 1, Text: line[2:]})
		case strings.HasPrefix(line, "- "), strings.HasPrefix(line, "* "):
			pending = append(pending, Inline(line[2:]))
		case line == "":
			flush()
		default:
			flush()
			blocks = append(blocks, Block{Kind: KindParagraph, Spans: Inline(line)})
		}
	}
	flush()

	return blocks
}

// Inline splits text into alternating plain and bold spans, preserving order.
// Empty segments are dropped.
func Inline(text string) []Span {
	var spans []Span
	last := 0
	for _, loc := range boldPattern.FindAllStringIndex(text, -1) {
		if loc[0] > last {
			spans = append(spans, Span{Text: text[last:loc[0]]})
		}
		if inner := text[loc[0]+2 : loc[1]-2]; inner != "" {
			spans = append(spans, Span{Text: inner, Bold: true})
		}
		last = loc[1]
	}
	if last < len(text) {
		spans = append(spans, Span{Text: text[last:]})
	}
	return spans
}

// PlainText joins spans without any emphasis markers.
func PlainText(spans []Span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.Text)
	}
	return b.String()
}
