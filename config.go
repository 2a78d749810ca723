package rackspace

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the credentials and settings used to build an Identity.
type Config struct {
	Username         string `yaml:"username"`
	APIKey           string `yaml:"api_key"`
	IdentityEndpoint string `yaml:"identity_endpoint"`
	LogLevel         string `yaml:"log_level"`
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Username:         getEnv("RACKSPACE_USERNAME", ""),
		APIKey:           getEnv("RACKSPACE_API_KEY", ""),
		IdentityEndpoint: getEnv("RACKSPACE_IDENTITY_ENDPOINT", USEndpoint),
		LogLevel:         getEnv("RACKSPACE_LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// LoadConfigFile reads the configuration from a YAML file. Environment
// variables that are set take precedence over values from the file.
func LoadConfigFile(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.Username = getEnv("RACKSPACE_USERNAME", cfg.Username)
	cfg.APIKey = getEnv("RACKSPACE_API_KEY", cfg.APIKey)
	cfg.IdentityEndpoint = getEnv("RACKSPACE_IDENTITY_ENDPOINT", cfg.IdentityEndpoint)
	cfg.LogLevel = getEnv("RACKSPACE_LOG_LEVEL", cfg.LogLevel)

	if cfg.IdentityEndpoint == "" {
		cfg.IdentityEndpoint = USEndpoint
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// Validate reports every missing required setting.
func (c *Config) Validate() error {
	var missing []string
	if c.Username == "" {
		missing = append(missing, "RACKSPACE_USERNAME")
	}
	if c.APIKey == "" {
		missing = append(missing, "RACKSPACE_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Identity returns an unauthenticated identity for the configured
// credentials, logging at the configured level.
func (c *Config) Identity() *Identity {
	identity := NewIdentity(c.Username, c.APIKey, c.IdentityEndpoint)
	identity.Logger = NewLogger(c.LogLevel)
	return identity
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
