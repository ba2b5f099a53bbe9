package config

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	AaveAPI AaveAPIConfig `yaml:"aaveApi"`
	Scan    ScanConfig    `yaml:"scan"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// AaveAPIConfig holds the configuration for the protocol GraphQL client.
// MaxRetries and RetryDelayMs define the bounded retry policy for transient
// transport failures; RateLimitPerSecond guards the public API.
type AaveAPIConfig struct {
	EndpointURL          string  `yaml:"endpointURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	MaxRetries           int     `yaml:"maxRetries"`
	RetryDelayMs         int64   `yaml:"retryDelayMs"`
	RateLimitPerSecond   float64 `yaml:"rateLimitPerSecond"`
	RateBurst            int     `yaml:"rateBurst"`
}

// ScanConfig holds configuration for the cross-network scan.
type ScanConfig struct {
	MaxConcurrentRequests int `yaml:"maxConcurrentRequests"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// LoadConfig loads configuration from a YAML file and applies defaults.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	cfg.applyDefaults()

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

// Default returns a configuration with all defaults applied, for callers
// that run without a config file (e.g. the CLI).
func Default() *Config {
	var cfg Config
	cfg.applyDefaults()
	return &cfg
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 30
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 30
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.AaveAPI.EndpointURL == "" {
		cfg.AaveAPI.EndpointURL = "https://api.v3.aave.com/graphql"
		logrus.Infof("AaveAPI.EndpointURL not set, defaulting to %s", cfg.AaveAPI.EndpointURL)
	}
	if cfg.AaveAPI.RequestTimeoutMillis <= 0 {
		cfg.AaveAPI.RequestTimeoutMillis = 15000 // 15 seconds
		logrus.Infof("AaveAPI.RequestTimeoutMillis not set, defaulting to %d ms", cfg.AaveAPI.RequestTimeoutMillis)
	}
	if cfg.AaveAPI.MaxRetries <= 0 || cfg.AaveAPI.MaxRetries > 1 {
		// At most one transient-network retry; anything beyond surfaces as an
		// error rather than looping against a public API.
		cfg.AaveAPI.MaxRetries = 1
	}
	if cfg.AaveAPI.RetryDelayMs <= 0 {
		cfg.AaveAPI.RetryDelayMs = 500
	}
	if cfg.AaveAPI.RateLimitPerSecond <= 0 {
		cfg.AaveAPI.RateLimitPerSecond = 5
	}
	if cfg.AaveAPI.RateBurst <= 0 {
		cfg.AaveAPI.RateBurst = 5
	}

	if cfg.Scan.MaxConcurrentRequests <= 0 {
		cfg.Scan.MaxConcurrentRequests = 6
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
