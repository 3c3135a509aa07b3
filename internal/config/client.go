package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ClientConfig is the terminal client's yaml config, kept separate from the
// relay's viper config because the client is distributed standalone.
type ClientConfig struct {
	RelayURL      string   `yaml:"relay_url"`
	IdentityURL   string   `yaml:"identity_url"`
	IdentityKey   string   `yaml:"identity_key"`
	EnabledModels []string `yaml:"enabled_models"`
}

func clientConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "reaxo", "config.yaml"), nil
}

// LoadClientConfig reads the client config, returning defaults when the
// file does not exist yet.
func LoadClientConfig() (*ClientConfig, error) {
	cfg := &ClientConfig{
		RelayURL: "http://localhost:8080",
	}

	path, err := clientConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read client config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse client config: %w", err)
	}

	if cfg.RelayURL == "" {
		cfg.RelayURL = "http://localhost:8080"
	}

	return cfg, nil
}

// SaveClientConfig writes the config back, creating the directory on first
// use.
func SaveClientConfig(cfg *ClientConfig) error {
	path, err := clientConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
