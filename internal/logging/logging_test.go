package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/website1975/vatly12CTST/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "vatly12.log")
	log, err := New(config.LogConfig{Level: "warn", Format: "json", File: path})
	require.NoError(t, err)

	log.Info("hidden")
	log.Warn("content generation failed", zap.String("op", "quiz"), zap.String("lesson", "l2"))
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"op":"quiz"`)
	assert.Contains(t, out, `"lesson":"l2"`)
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "verbose", File: Stderr})
	assert.Error(t, err)
}

func TestDefaultFile(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/var/state")
	assert.Equal(t, filepath.Join("/var/state", "vatly12", "vatly12.log"), DefaultFile())
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Error("dropped")
	assert.NoError(t, log.Close())
}
