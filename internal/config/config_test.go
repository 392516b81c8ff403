package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", `
ai:
  models:
    - id: test
      provider: openai
      model: gpt-4o-mini
      enabled: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, ":9980", cfg.App.HTTPAddr)
	assert.Equal(t, "1y", cfg.Market.Range)
	assert.Equal(t, 10, cfg.News.MaxItems)
	assert.Equal(t, 2000, cfg.News.MaxChars)
	assert.Equal(t, 60, cfg.AI.TimeoutSeconds)
	assert.Equal(t, 500, cfg.AI.MaxTokens)
	assert.Equal(t, 4, cfg.AI.Concurrency)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", `
app:
  log_level: debug
  http_addr: ":8080"
  analyze_on_start: [AAPL, MSFT]
news:
  max_items: 5
  max_chars: 800
ai:
  use_model: groq-llama
  timeout_seconds: 30
  models:
    - id: groq-llama
      provider: openai
      api_url: https://api.groq.com/openai/v1
      api_key: key
      model: llama-3.3-70b
      enabled: true
store:
  enabled: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, []string{"AAPL", "MSFT"}, cfg.App.AnalyzeOnStart)
	assert.Equal(t, 5, cfg.News.MaxItems)
	assert.Equal(t, "groq-llama", cfg.AI.UseModel)
	assert.Equal(t, 30, cfg.AI.TimeoutSeconds)
	require.Len(t, cfg.AI.Models, 1)
	assert.Equal(t, "llama-3.3-70b", cfg.AI.Models[0].Model)
	assert.Equal(t, "data/recommendations.db", cfg.Store.Path, "enabled store gets the default path")
}

func TestLoadWithIncludes(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "models.yaml", `
ai:
  models:
    - id: base
      provider: openai
      model: gpt-4o-mini
      enabled: true
`)
	path := writeConfig(t, dir, "config.yaml", `
include:
  - models.yaml
app:
  log_level: warn
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.App.LogLevel)
	require.Len(t, cfg.AI.Models, 1)
	assert.Equal(t, "base", cfg.AI.Models[0].ID)
}

func TestLoadIncludeOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "base.yaml", `
app:
  log_level: debug
  http_addr: ":7000"
ai:
  models:
    - id: m
      provider: openai
      model: x
      enabled: true
`)
	// The including file wins over the included fragment.
	path := writeConfig(t, dir, "config.yaml", `
include: [base.yaml]
app:
  log_level: error
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.App.LogLevel)
	assert.Equal(t, ":7000", cfg.App.HTTPAddr)
}

func TestLoadIncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "a.yaml", "include: [b.yaml]\n")
	path := writeConfig(t, dir, "b.yaml", "include: [a.yaml]\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include cycle")
}

func TestValidation(t *testing.T) {
	t.Run("no enabled model", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.yaml", `
ai:
  models:
    - id: off
      provider: openai
      model: x
      enabled: false
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "at least one enabled model")
	})

	t.Run("gemini requires api key", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.yaml", `
ai:
  models:
    - id: g
      provider: gemini
      model: gemini-2.0-flash
      enabled: true
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "api_key is required")
	})

	t.Run("use_model must match an enabled id", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.yaml", `
ai:
  use_model: missing
  models:
    - id: present
      provider: openai
      model: x
      enabled: true
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "does not match any enabled model")
	})

	t.Run("telegram needs token and chat id", func(t *testing.T) {
		path := writeConfig(t, t.TempDir(), "config.yaml", `
ai:
  models:
    - id: m
      provider: openai
      model: x
      enabled: true
notify:
  telegram:
    enabled: true
`)
		_, err := Load(path)
		assert.ErrorContains(t, err, "bot_token and chat_id")
	})
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
