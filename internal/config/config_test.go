package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFillsDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "test-token"
database:
  host: localhost
  port: "5432"
  user: bot
  name: cantaortak
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
	assert.Equal(t, 7, cfg.Marketplace.DefaultExpiryDays)
	assert.Equal(t, 24, cfg.Marketplace.SweepIntervalHours)
	assert.Equal(t, 60, cfg.Marketplace.SweepBackoffMinutes)
	assert.Equal(t, 10, cfg.Marketplace.ListPageSize)
	assert.Equal(t, "tr", cfg.Marketplace.FallbackLang)
	assert.Equal(t, "en", cfg.Marketplace.SecondaryLang)
}

func TestLoadRejectsMissingToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")
	path := writeConfig(t, `
telegram:
  run_mode: longpoll
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestNormalizeWebhookRequirements(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "t"
	cfg.Telegram.RunMode = "webhook"

	err := Normalize(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "webhook.url")

	cfg.Webhook.URL = "https://bot.example.com/hook"
	cfg.Webhook.Listen = "0.0.0.0"
	cfg.Webhook.Port = 8443
	require.NoError(t, Normalize(cfg))
}

func TestNormalizePollingAlias(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "t"
	cfg.Telegram.RunMode = "polling"
	require.NoError(t, Normalize(cfg))
	assert.Equal(t, RunModeLongpoll, cfg.Telegram.RunMode)
}

func TestNormalizeRejectsUnknownExclusion(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "t"
	cfg.RateLimit.ExcludeUpdates = []string{"inline_query"}
	require.Error(t, Normalize(cfg))
}

func TestIsAdmin(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.AdminIDs = []int64{1001, 1002}

	assert.True(t, cfg.IsAdmin(1001))
	assert.False(t, cfg.IsAdmin(42))
}
