package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("PROXY_API_KEY", "key")

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.DefaultModel)
	assert.InDelta(t, 1.0, cfg.DefaultTemperature, 1e-9)
	assert.Equal(t, "ru", cfg.DefaultLanguage)
	assert.Equal(t, "data", cfg.HistoryDir)
	assert.False(t, cfg.ProxySupportsReasoning)
	assert.Equal(t, "https://api.proxyapi.ru/openai/v1", cfg.OpenAIBaseURL)
	assert.Equal(t, "https://api.proxyapi.ru/anthropic", cfg.AnthropicBaseURL)
	assert.Equal(t, "0 21 * * *", cfg.BackupCron)
}

func TestRequiredFields(t *testing.T) {
	// t.Setenv registers the restore; the vars must be absent, not empty,
	// for the required check to trip.
	t.Setenv("TELEGRAM_BOT_TOKEN", "x")
	t.Setenv("PROXY_API_KEY", "x")
	require.NoError(t, os.Unsetenv("TELEGRAM_BOT_TOKEN"))
	require.NoError(t, os.Unsetenv("PROXY_API_KEY"))

	_, err := New()
	assert.Error(t, err)
}

func TestOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("PROXY_API_KEY", "key")
	t.Setenv("DEFAULT_MODEL", "gpt-4o")
	t.Setenv("DEFAULT_TEMPERATURE", "0.4")
	t.Setenv("PROXY_SUPPORTS_REASONING", "true")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", cfg.DefaultModel)
	assert.InDelta(t, 0.4, cfg.DefaultTemperature, 1e-9)
	assert.True(t, cfg.ProxySupportsReasoning)
}
