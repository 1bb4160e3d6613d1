package components

import (
	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"github.com/website1975/vatly12CTST/internal/ui/theme"
)

// Panel renders body under a title inside a rounded card of the given
// outer width. Body text is word-wrapped to fit.
func Panel(title, body string, width int) string {
	inner := max(width-6, 10)
	content := wordwrap.String(body, inner)
	if title != "" {
		content = theme.Heading2.Render(title) + "\n\n" + content
	}
	return theme.Card.Width(max(width-2, 12)).Render(content)
}

// Centered places a dimmed message in the middle of the area.
func Centered(msg string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Hint.Render(msg))
}
