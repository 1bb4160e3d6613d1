package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/website1975/vatly12CTST/internal/ui/theme"
)

// MenuItem is one row of a Menu. Header rows group the items below them
// and cannot be selected.
type MenuItem struct {
	ID     string
	Label  string
	Header bool
}

// Menu is a vertical list with a cursor over selectable items. Active
// marks the item currently in use, which may differ from the cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
	Active   string
}

// NewMenu creates a menu with the cursor on the first selectable item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Header {
			m.Selected = i
			break
		}
	}
	return m
}

// Up moves the cursor to the previous selectable item.
func (m *Menu) Up() {
	for i := m.Selected - 1; i >= 0; i-- {
		if !m.Items[i].Header {
			m.Selected = i
			return
		}
	}
}

// Down moves the cursor to the next selectable item.
func (m *Menu) Down() {
	for i := m.Selected + 1; i < len(m.Items); i++ {
		if !m.Items[i].Header {
			m.Selected = i
			return
		}
	}
}

// Current returns the item under the cursor.
func (m Menu) Current() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

// Focus moves the cursor to the item with id.
func (m *Menu) Focus(id string) {
	for i, item := range m.Items {
		if item.ID == id && !item.Header {
			m.Selected = i
			return
		}
	}
}

// View renders at most height rows, scrolled so the cursor stays visible.
// Labels are truncated to width.
func (m Menu) View(width, height int) string {
	start := 0
	if height > 0 && m.Selected >= height {
		start = m.Selected - height + 1
	}
	end := len(m.Items)
	if height > 0 && end-start > height {
		end = start + height
	}

	var lines []string
	for i := start; i < end; i++ {
		item := m.Items[i]
		switch {
		case item.Header:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Secondary).
				Bold(true).
				Render(Truncate(item.Label, width)))
		case i == m.Selected:
			lines = append(lines, theme.Selected.Render(Truncate("▸ "+item.Label, width)))
		case item.ID == m.Active:
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.Accent).
				Render(Truncate("• "+item.Label, width)))
		default:
			lines = append(lines, theme.Unselected.Render(Truncate("  "+item.Label, width)))
		}
	}
	return strings.Join(lines, "\n")
}

// Truncate shortens s to at most width cells, ending with an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 || lipgloss.Width(s) <= width {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > width {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}
