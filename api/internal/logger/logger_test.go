package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vision-cli/api/internal/config"
)

func TestNewDiscardsWithoutFile(t *testing.T) {
	l, c, err := New(config.LogConfig{Level: "info", Format: "text"})
	require.NoError(t, err)
	l.Info("nothing")
	assert.NoError(t, c.Close())
}

func TestNewJSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vision.log")
	l, c, err := New(config.LogConfig{File: path, Level: "debug", Format: "json", MaxSizeMB: 1})
	require.NoError(t, err)

	l.WithField("backend", "stub").Info("analysis finished")
	require.NoError(t, c.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var rec struct {
		Fields  map[string]any `json:"fields"`
		Level   string         `json:"level"`
		Message string         `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &rec))
	assert.Equal(t, "analysis finished", rec.Message)
	assert.Equal(t, "info", rec.Level)
	assert.Equal(t, "stub", rec.Fields["backend"])
}

func TestNewTextFileRespectsLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vision.log")
	l, c, err := New(config.LogConfig{File: path, Level: "warn", Format: "text", MaxSizeMB: 1})
	require.NoError(t, err)

	l.Info("hidden")
	l.Warn("shown")
	require.NoError(t, c.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hidden")
	assert.Contains(t, string(raw), "shown")
}

func TestNewRejectsBadLevel(t *testing.T) {
	_, _, err := New(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
