package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEnv = []string{
	PathEnv,
	"VISION_BACKEND", "VISION_HTTP_TIMEOUT",
	"AZURE_VISION_API_VERSION", "AZURE_VISION_LANGUAGE",
	"GEMINI_MODEL", "OPENAI_MODEL",
	"VISION_LOG_FILE", "VISION_LOG_LEVEL", "VISION_LOG_FORMAT",
	"VISION_LOG_MAX_SIZE_MB", "VISION_LOG_MAX_BACKUPS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allEnv {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "azure", cfg.Backend)
	assert.Equal(t, 60*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "v3.2", cfg.Azure.APIVersion)
	assert.Equal(t, "en", cfg.Azure.Language)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Empty(t, cfg.Log.File)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("VISION_BACKEND", " Gemini ")
	t.Setenv("VISION_HTTP_TIMEOUT", "15s")
	t.Setenv("GEMINI_MODEL", "gemini-2.0-flash")
	t.Setenv("VISION_LOG_FORMAT", "JSON")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.Backend)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "vision.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend: openai
http_timeout: 5s
openai:
  model: gpt-4.1-mini
log:
  file: /tmp/vision.log
`), 0o600))
	t.Setenv(PathEnv, path)
	t.Setenv("VISION_HTTP_TIMEOUT", "9s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.Backend)
	assert.Equal(t, "gpt-4.1-mini", cfg.OpenAI.Model)
	assert.Equal(t, "/tmp/vision.log", cfg.Log.File)
	assert.Equal(t, 9*time.Second, cfg.HTTPTimeout, "environment overrides the file")
	assert.Equal(t, "v3.2", cfg.Azure.APIVersion)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("VISION_HTTP_TIMEOUT", "-1s")
	t.Setenv("VISION_LOG_FORMAT", "xml")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VISION_HTTP_TIMEOUT")
	assert.Contains(t, err.Error(), "VISION_LOG_FORMAT")
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv(PathEnv, filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
