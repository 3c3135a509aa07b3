package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	os.Clearenv()

	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "gemini-2.5-flash", cfg.Upstream.DefaultModel)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.Analytics.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	os.Clearenv()
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_ENV", "production")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("UPSTREAM_DEFAULT_MODEL", "gpt-5-mini")

	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "production", cfg.Server.Env)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "gpt-5-mini", cfg.Upstream.DefaultModel)
}

func TestLoadConfig_APIKeyResolution(t *testing.T) {
	os.Clearenv()
	t.Setenv("ZEABUR_API_KEY", "sk-test-12345")

	cfg, err := LoadConfig()
	assert.NoError(t, err)

	assert.Equal(t, "sk-test-12345", cfg.Upstream.APIKey)
}

func TestClientConfig_SaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadClientConfig()
	assert.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.RelayURL)
	assert.Empty(t, cfg.EnabledModels)

	cfg.EnabledModels = []string{"gpt-5", "claude-sonnet-4-5"}
	assert.NoError(t, SaveClientConfig(cfg))

	reloaded, err := LoadClientConfig()
	assert.NoError(t, err)
	assert.Equal(t, []string{"gpt-5", "claude-sonnet-4-5"}, reloaded.EnabledModels)
	assert.Equal(t, "http://localhost:8080", reloaded.RelayURL)
}
