package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"github.com/website1975/vatly12CTST/internal/ui/theme"
)

// OptionLabels prefixes the options of a question.
var OptionLabels = []string{"A", "B", "C", "D", "E", "F"}

// MultiChoice renders one quiz question. It holds no input state: the
// caller passes the current selection and whether results are revealed.
type MultiChoice struct {
	Number      int
	Question    string
	Options     []string
	Correct     int
	Chosen      int // -1 when unanswered
	Focused     bool
	Revealed    bool
	Explanation string
}

// View renders the question wrapped to width.
func (m MultiChoice) View(width int) string {
	var b strings.Builder

	marker := "  "
	if m.Focused {
		marker = lipgloss.NewStyle().Foreground(theme.Accent).Render("▸ ")
	}
	question := wordwrap.String(fmt.Sprintf("Câu %d. %s", m.Number, m.Question), max(width-2, 10))
	b.WriteString(marker + lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(question))
	b.WriteString("\n")

	for i, opt := range m.Options {
		label := "?"
		if i < len(OptionLabels) {
			label = OptionLabels[i]
		}
		box := "( )"
		if i == m.Chosen {
			box = "(•)"
		}
		line := fmt.Sprintf("    %s %s. %s", box, label, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.Revealed && i == m.Correct:
			style = theme.Correct
			line += "  ✓"
		case m.Revealed && i == m.Chosen:
			style = theme.Incorrect
			line += "  ✗"
		case m.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Chosen:
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if m.Revealed && m.Explanation != "" {
		text := wordwrap.String("Giải thích: "+m.Explanation, max(width-6, 10))
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			PaddingLeft(4).
			Render(text))
		b.WriteString("\n")
	}

	return b.String()
}
