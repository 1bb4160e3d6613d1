package apikey

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/website1975/vatly12CTST/internal/credential"
	"github.com/website1975/vatly12CTST/internal/router"
)

type memRepo struct {
	mu     sync.Mutex
	values map[string]string
	setErr error
}

func (m *memRepo) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *memRepo) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}

func (m *memRepo) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func newScreen(t *testing.T) (*APIKeyScreen, *credential.Store, *memRepo) {
	t.Helper()
	repo := &memRepo{values: map[string]string{}}
	creds := credential.New(repo, credential.WithPrefix("AIza"))
	return New(creds, ProviderFor("gemini")), creds, repo
}

// collect runs cmd and flattens batched and sequenced commands into the
// messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	v := reflect.ValueOf(msg)
	if v.Kind() == reflect.Slice && v.Type().Elem() == reflect.TypeOf(tea.Cmd(nil)) {
		var out []tea.Msg
		for i := 0; i < v.Len(); i++ {
			out = append(out, collect(v.Index(i).Interface().(tea.Cmd))...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func typeKey(s *APIKeyScreen, text string) {
	s.Update(tea.PasteMsg{Content: text})
}

func enter(s *APIKeyScreen) tea.Cmd {
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	return cmd
}

func TestSubmitEmpty(t *testing.T) {
	s, _, _ := newScreen(t)
	assert.Nil(t, enter(s))
	assert.Equal(t, msgEmpty, s.input.Err)

	typeKey(s, "   ")
	assert.Nil(t, enter(s))
	assert.Equal(t, msgEmpty, s.input.Err)
}

func TestSubmitWrongPrefix(t *testing.T) {
	s, creds, _ := newScreen(t)
	typeKey(s, "sk-1234567890abcdef")

	assert.Nil(t, enter(s))
	assert.Equal(t, "API Key không hợp lệ (phải bắt đầu bằng AIza...)", s.input.Err)
	assert.Empty(t, creds.Read(context.Background()))
}

func TestSubmitSavesAndCloses(t *testing.T) {
	s, creds, _ := newScreen(t)
	typeKey(s, "AIzaSyD-test-key-123")

	msgs := collect(enter(s))
	require.Len(t, msgs, 1)
	saved, ok := msgs[0].(savedMsg)
	require.True(t, ok, "got %T", msgs[0])
	require.NoError(t, saved.err)
	assert.Equal(t, "AIzaSyD-test-key-123", creds.Read(context.Background()))

	_, cmd := s.Update(saved)
	msgs = collect(cmd)
	require.Len(t, msgs, 2)
	assert.IsType(t, router.PopScreenMsg{}, msgs[0])
	assert.Equal(t, ChangedMsg{}, msgs[1])
	assert.Empty(t, s.input.Value())
}

func TestSaveFailureKeepsOverlayOpen(t *testing.T) {
	s, _, repo := newScreen(t)
	repo.setErr = errors.New("disk full")
	typeKey(s, "AIzaSyD-test-key-123")

	msgs := collect(enter(s))
	require.Len(t, msgs, 1)
	_, cmd := s.Update(msgs[0])
	assert.Nil(t, cmd)
	assert.Equal(t, msgSaveFailed, s.input.Err)
}

func TestClearRemovesSavedKey(t *testing.T) {
	s, creds, _ := newScreen(t)
	require.NoError(t, creds.Save(context.Background(), "AIzaSyD-old-key-123"))

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'x', Mod: tea.ModCtrl})
	msgs := collect(cmd)
	require.Len(t, msgs, 1)

	_, cmd = s.Update(msgs[0])
	msgs = collect(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, ChangedMsg{Cleared: true}, msgs[0])
	assert.Empty(t, creds.Read(context.Background()))
	assert.Contains(t, ansi.Strip(s.View(100, 40)), "Đã xóa API Key đã lưu.")
}

func TestViewShowsMaskedCurrentKey(t *testing.T) {
	repo := &memRepo{values: map[string]string{credential.KeyUserAPIKey: "AIzaSyD-secret-9876"}}
	creds := credential.New(repo, credential.WithPrefix("AIza"))
	view := ansi.Strip(New(creds, ProviderFor("gemini")).View(100, 40))

	assert.Contains(t, view, "GOOGLE AI STUDIO KEY")
	assert.Contains(t, view, "AIza")
	assert.Contains(t, view, "9876")
	assert.NotContains(t, view, "secret")
	assert.Contains(t, view, "aistudio.google.com")
}
