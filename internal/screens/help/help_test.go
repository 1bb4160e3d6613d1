package help

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/website1975/vatly12CTST/internal/router"
)

func TestViewListsFeatures(t *testing.T) {
	view := ansi.Strip(New().View(100, 40))
	for _, f := range features {
		assert.Contains(t, view, f.title)
	}
	assert.Contains(t, view, "Đã hiểu, bắt đầu học")
}

func TestCloseKeysPop(t *testing.T) {
	for _, code := range []rune{tea.KeyEnter, tea.KeyEscape, 'q', '?'} {
		h := New()
		_, cmd := h.Update(tea.KeyPressMsg{Code: code})
		require.NotNil(t, cmd, "key %q", code)
		_, ok := cmd().(router.PopScreenMsg)
		assert.True(t, ok)
	}
}

func TestOtherKeysIgnored(t *testing.T) {
	_, cmd := New().Update(tea.KeyPressMsg{Code: 'x'})
	assert.Nil(t, cmd)
}

func TestTitle(t *testing.T) {
	assert.True(t, strings.HasPrefix(New().Title(), "Hướng dẫn"))
}
