package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Redis     RedisConfig     `mapstructure:"redis"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Env  string `mapstructure:"env"`
}

// UpstreamConfig points the proxy at the hosted inference gateway. The
// credential is server-held and never reaches the browser or terminal
// client; supports "ENV:VAR" indirection like provider keys elsewhere.
type UpstreamConfig struct {
	CompletionsURL string `mapstructure:"completions_url"`
	ModelsURL      string `mapstructure:"models_url"`
	APIKey         string `mapstructure:"api_key"`
	DefaultModel   string `mapstructure:"default_model"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Enabled  bool   `mapstructure:"enabled"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

// AnalyticsConfig controls the relay usage log.
type AnalyticsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig() (*Config, error) {
	// Load .env file if present
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Default Values
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.env", "development")
	v.SetDefault("upstream.completions_url", "https://hnd1.aihub.zeabur.ai/v1/chat/completions")
	v.SetDefault("upstream.models_url", "https://hnd1.aihub.zeabur.ai/v1/models")
	v.SetDefault("upstream.api_key", "ENV:ZEABUR_API_KEY")
	v.SetDefault("upstream.default_model", "gemini-2.5-flash")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("rate_limit.requests_per_second", 10.0)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("analytics.enabled", true)
	v.SetDefault("analytics.dsn", "file:reaxo.db?cache=shared&mode=rwc&_journal_mode=WAL&_busy_timeout=5000")

	// Environment Variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	// Resolve the upstream credential.
	if strings.HasPrefix(cfg.Upstream.APIKey, "ENV:") {
		envVar := strings.TrimPrefix(cfg.Upstream.APIKey, "ENV:")
		val := os.Getenv(envVar)
		if val == "" {
			val = v.GetString(envVar)
		}
		cfg.Upstream.APIKey = val
	}

	return &cfg, nil
}
