package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/janhavi-28/SEO-Agent/internal/common/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	for _, key := range []string{"GEMINI_API_KEY", "GENAI_API_KEY", "GEMINI_MODEL_NAME", "SERPAPI_API_KEY", "WEB_SEARCH_API_KEY", "SERVER_ADDRESS", "ZEEBE_ADDRESS", "APP_ENVIRONMENT", "JAEGER_ENDPOINT"} {
		t.Setenv(key, "")
	}
}

func TestLoadFromFile_ExpandsAndDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("SERPAPI_API_KEY", "serp-key")

	path := writeConfig(t, `
apis:
  genai:
    api_key: ${GEMINI_API_KEY}
    model: ${GEMINI_MODEL_NAME}
  web_search:
    api_key: ${SERPAPI_API_KEY}
workers:
  marketing-seo-analyze:
    enabled: true
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "gem-key", cfg.APIs.GenAI.APIKey)
	assert.Equal(t, "gemini-2.5-flash", cfg.APIs.GenAI.Model)
	assert.Equal(t, float32(0.4), cfg.APIs.GenAI.Temperature)
	assert.Equal(t, int32(2048), cfg.APIs.GenAI.MaxOutputTokens)
	assert.Equal(t, 60*time.Second, GetDuration(cfg.APIs.GenAI.Timeout))

	assert.Equal(t, "serp-key", cfg.APIs.WebSearch.APIKey)
	assert.Equal(t, "https://serpapi.com/search.json", cfg.APIs.WebSearch.BaseURL)
	assert.Equal(t, 5, cfg.APIs.WebSearch.NumResults)
	assert.Equal(t, 15*time.Second, GetDuration(cfg.APIs.WebSearch.Timeout))

	assert.Equal(t, "Mozilla/5.0", cfg.APIs.PageFetch.UserAgent)
	assert.Equal(t, ":8000", cfg.Server.Address)

	worker := GetWorkerConfig(cfg, "marketing-seo-analyze")
	assert.Equal(t, 5, worker.MaxJobsActive)
	assert.Equal(t, 3, worker.MaxRetries)
	assert.True(t, IsWorkerEnabled(cfg, "marketing-seo-analyze"))
	assert.True(t, IsWorkerEnabled(cfg, "not-configured"))
}

func TestLoadFromFile_EnvFallbacks(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "from-env")
	t.Setenv("GEMINI_MODEL_NAME", "gemini-2.0-pro")
	t.Setenv("ZEEBE_ADDRESS", "zeebe:26500")

	cfg, err := LoadFromFile(writeConfig(t, "logging:\n  level: debug\n"))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.APIs.GenAI.APIKey)
	assert.Equal(t, "gemini-2.0-pro", cfg.APIs.GenAI.Model)
	assert.Equal(t, "", cfg.APIs.WebSearch.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.NoError(t, ValidateForWorkers(cfg))
}

func TestLoadFromFile_MissingGenAIKeyIsFatal(t *testing.T) {
	clearEnv(t)

	_, err := LoadFromFile(writeConfig(t, "apis:\n  genai:\n    api_key: ${GEMINI_API_KEY}\n"))
	assert.ErrorIs(t, err, ErrMissingGenAIKey)

	stdErr, ok := apperrors.AsStandardError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeGenAIConfigMissing, stdErr.Code)
	assert.False(t, stdErr.Retryable)
}

func TestLoadFromFile_RejectsBadTemperature(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "k")

	_, err := LoadFromFile(writeConfig(t, "apis:\n  genai:\n    temperature: 3.5\n"))
	assert.Error(t, err)
}

func TestValidateForWorkers(t *testing.T) {
	assert.Error(t, ValidateForWorkers(&Config{}))
}
