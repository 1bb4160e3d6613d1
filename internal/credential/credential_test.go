package credential

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memRepo struct {
	data   map[string]string
	getErr error
}

func newMemRepo() *memRepo {
	return &memRepo{data: make(map[string]string)}
}

func (m *memRepo) Get(_ context.Context, key string) (string, bool, error) {
	if m.getErr != nil {
		return "", false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memRepo) Set(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func (m *memRepo) Delete(_ context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func TestSaveClearUsable(t *testing.T) {
	ctx := context.Background()
	keys := []string{
		"AIzaSyD-abcdefghijk",
		"01234567890",
		"sk-ant-api03-xyz",
	}
	for _, k := range keys {
		s := New(newMemRepo())
		require.NoError(t, s.Save(ctx, k))
		assert.True(t, s.IsUsable(ctx), "usable after save %q", k)
		require.NoError(t, s.Clear(ctx))
		assert.False(t, s.IsUsable(ctx), "unusable after clear %q", k)
		assert.Equal(t, SourceNone, s.Source(ctx))
	}
}

func TestReadPrefersUserValue(t *testing.T) {
	ctx := context.Background()
	s := New(newMemRepo(), WithDefault("  AIzaDefaultKey000  "))

	assert.Equal(t, "AIzaDefaultKey000", s.Read(ctx))
	assert.Equal(t, SourceDefault, s.Source(ctx))

	require.NoError(t, s.Save(ctx, "  AIzaUserKey11111 \n"))
	assert.Equal(t, "AIzaUserKey11111", s.Read(ctx))
	assert.Equal(t, SourceUser, s.Source(ctx))

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, "AIzaDefaultKey000", s.Read(ctx))
}

func TestReadIgnoresBlankSavedValue(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	repo.data[KeyUserAPIKey] = "   "
	s := New(repo, WithDefault("AIzaDefaultKey000"))
	assert.Equal(t, "AIzaDefaultKey000", s.Read(ctx))
}

func TestReadRepoErrorFallsBack(t *testing.T) {
	repo := newMemRepo()
	repo.getErr = errors.New("disk gone")
	s := New(repo, WithDefault("AIzaDefaultKey000"))
	assert.Equal(t, "AIzaDefaultKey000", s.Read(context.Background()))
}

func TestUsable(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", false},
		{"short", false},
		{"0123456789", false}, // exactly ten
		{"01234567890", true},
		{"your_api_key_here", false},
		{"  AIzaSyD-abcdefghijk  ", true},
	}
	for _, tt := range tests {
		if got := Usable(tt.in); got != tt.want {
			t.Errorf("Usable(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOnChangeHooks(t *testing.T) {
	ctx := context.Background()
	s := New(newMemRepo())
	calls := 0
	s.OnChange(func() { calls++ })

	require.NoError(t, s.Save(ctx, "AIzaSomething123"))
	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, 2, calls)
}

func TestValidateFormat(t *testing.T) {
	s := New(newMemRepo(), WithPrefix("AIza"))
	assert.ErrorIs(t, s.ValidateFormat("   "), ErrEmpty)
	assert.ErrorIs(t, s.ValidateFormat("sk-12345678901"), ErrInvalidFormat)
	assert.NoError(t, s.ValidateFormat(" AIzaSyD-abc "))

	open := New(newMemRepo())
	assert.NoError(t, open.ValidateFormat("anything"))
}

func TestHelpFlag(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	s := New(repo)

	assert.False(t, s.HelpSeen(ctx))
	require.NoError(t, s.MarkHelpSeen(ctx))
	assert.True(t, s.HelpSeen(ctx))
	assert.Equal(t, "true", repo.data[KeyHelpSeen])

	require.NoError(t, s.ResetHelp(ctx))
	assert.False(t, s.HelpSeen(ctx))
}

func TestMask(t *testing.T) {
	assert.Equal(t, "AIza*****7890", Mask("AIzaXXXXX7890"))
	assert.Equal(t, "****", Mask("abcd"))
}
