package config

import (
	"fmt"
	"net"

	"github.com/kelseyhightower/envconfig"
)

// Dialog backends
const (
	DialogNative   = "native"
	DialogTerminal = "terminal"
	DialogHeadless = "headless"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Logging   LogConfig
	RateLimit RateLimitConfig
	CORS      CORSConfig
	Dialog    DialogConfig
	Files     FilesConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"1430"`
	Host string `envconfig:"HOST" default:"127.0.0.1"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" default:"50"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" default:"100"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// CORSConfig holds the origins the front-end may be served from.
type CORSConfig struct {
	Origins []string `envconfig:"CORS_ORIGINS" default:"*"`
}

// DialogConfig selects how file dialogs are presented.
type DialogConfig struct {
	Backend     string `envconfig:"DIALOG_BACKEND" default:"native"`
	FiltersFile string `envconfig:"DIALOG_FILTERS_FILE"`
}

// FilesConfig holds file access limits.
type FilesConfig struct {
	MaxReadBytes int64 `envconfig:"FILES_MAX_READ_BYTES" default:"0"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Validate rejects values the server cannot start with.
func (c *Config) Validate() error {
	switch c.Dialog.Backend {
	case DialogNative, DialogTerminal, DialogHeadless:
	default:
		return fmt.Errorf("unknown dialog backend %q", c.Dialog.Backend)
	}
	if c.Files.MaxReadBytes < 0 {
		return fmt.Errorf("FILES_MAX_READ_BYTES must not be negative")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be positive when rate limiting is enabled")
	}
	return nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "1430",
			Host: "127.0.0.1",
		},
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 50,
			Burst:             100,
			Enabled:           true,
		},
		CORS: CORSConfig{
			Origins: []string{"*"},
		},
		Dialog: DialogConfig{
			Backend: DialogNative,
		},
	}
}
