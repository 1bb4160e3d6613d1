package components

import (
	"strings"

	"github.com/muesli/reflow/wordwrap"

	"github.com/website1975/vatly12CTST/internal/markdown"
	"github.com/website1975/vatly12CTST/internal/ui/theme"
)

// Markdown renders generated lesson text for the terminal at width.
func Markdown(text string, width int) string {
	width = max(width, 20)
	var out []string

	for _, b := range markdown.Render(text) {
		switch b.Kind {
		case markdown.KindHeading:
			style := theme.Heading3
			switch b.Level {
			case 1:
				style = theme.Heading1
			case 2:
				style = theme.Heading2
			}
			out = append(out, "", style.Render(wordwrap.String(b.Text, width)))

		case markdown.KindList:
			for _, item := range b.Items {
				out = append(out, hangingIndent("• ", styleSpans(item), width))
			}

		case markdown.KindParagraph:
			out = append(out, wordwrap.String(styleSpans(b.Spans), width))
		}
	}

	return strings.TrimLeft(strings.Join(out, "\n"), "\n")
}

func styleSpans(spans []markdown.Span) string {
	var b strings.Builder
	for _, s := range spans {
		if s.Bold {
			b.WriteString(theme.Strong.Render(s.Text))
		} else {
			b.WriteString(theme.Body.Render(s.Text))
		}
	}
	return b.String()
}

// hangingIndent wraps text after bullet and aligns continuation lines
// under the first character of text.
func hangingIndent(bullet, text string, width int) string {
	pad := strings.Repeat(" ", len([]rune(bullet)))
	lines := strings.Split(wordwrap.String(text, width-len(pad)), "\n")
	for i := range lines {
		if i == 0 {
			lines[i] = theme.Heading3.Render(bullet) + lines[i]
		} else {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
