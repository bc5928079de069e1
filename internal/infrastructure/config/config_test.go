package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 這些測試會修改環境變數，因此不使用 t.Parallel

func TestLoad_DefaultsWithoutEnvFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "recipe-grocery", cfg.App.Name)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.False(t, cfg.OpenRouter.Enabled)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.OpenRouter.BaseURL)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, 720*time.Hour, cfg.Redis.ListTTL)
	assert.Equal(t, 5, cfg.Queue.Workers)
	assert.Equal(t, int64(1<<20), cfg.Request.MaxBodyBytes)
	assert.InDelta(t, 0.6, cfg.Ingredient.LowConfidence, 1e-9)
	assert.Equal(t, time.Second, cfg.DedupWindow)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_QUEUE_WORKERS", "9")
	t.Setenv("APP_INGREDIENT_LOW_CONFIDENCE", "0.75")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 9, cfg.Queue.Workers)
	assert.InDelta(t, 0.75, cfg.Ingredient.LowConfidence, 1e-9)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "redis:6380", cfg.Redis.Addr)
	assert.Equal(t, 30*time.Second, cfg.RateLimit.Window)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	content := "APP_QUEUE_MAX_SIZE=42\nOPENROUTER_MODEL=test/model\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644))
	t.Cleanup(func() {
		os.Unsetenv("APP_QUEUE_MAX_SIZE")
		os.Unsetenv("OPENROUTER_MODEL")
	})

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 42, cfg.Queue.MaxSize)
	assert.Equal(t, "test/model", cfg.OpenRouter.Model)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "openrouter without key", env: map[string]string{"OPENROUTER_ENABLED": "true"}},
		{name: "zero workers", env: map[string]string{"APP_QUEUE_WORKERS": "0"}},
		{name: "bad port", env: map[string]string{"PORT": "70000"}},
		{name: "confidence out of range", env: map[string]string{"APP_INGREDIENT_LOW_CONFIDENCE": "1.5"}},
		{name: "cache without size", env: map[string]string{"APP_CACHE_MAX_SIZE": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(t.TempDir())
			assert.ErrorContains(t, err, "invalid config")
		})
	}
}

func TestMaskAPIKey(t *testing.T) {
	assert.Equal(t, "****", MaskAPIKey("short"))
	assert.Equal(t, "sk-o...cdef", MaskAPIKey("sk-or-v1-0123456789abcdef"))
}
