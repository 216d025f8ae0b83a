// Package config loads the dashboard configuration from an optional
// YAML file, fills in defaults, and applies environment overrides.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ServerConfig controls the HTTP listener and its middleware.
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	StaticDir      string   `yaml:"static_dir"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	AllowedIPs     []string `yaml:"allowed_ips"`
	RateLimitRPS   int      `yaml:"rate_limit_rps"`
	RateLimitBurst int      `yaml:"rate_limit_burst"`
}

// HistoryConfig bounds the snapshot cache.
type HistoryConfig struct {
	Capacity     int `yaml:"capacity"`
	DefaultLimit int `yaml:"default_limit"`
}

// StreamConfig tunes the WebSocket broadcast loop.
type StreamConfig struct {
	IntervalMS int `yaml:"interval_ms"`
}

// AuthConfig gates the live stream behind JWT tokens.
type AuthConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Secret        string `yaml:"secret"`
	TokenTTLHours int    `yaml:"token_ttl_hours"`
}

// IngestConfig points the NATS bridge at remote transfer engines.
// An empty URL disables the bridge.
type IngestConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// Config is the top-level configuration for the dashboard process.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	History HistoryConfig `yaml:"history"`
	Stream  StreamConfig  `yaml:"stream"`
	Auth    AuthConfig    `yaml:"auth"`
	Ingest  IngestConfig  `yaml:"ingest"`
}

// Load reads the YAML file at path, or starts from pure defaults when
// path is empty. DASHBOARD_PORT overrides the configured port either way.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
		}
	}

	cfg.applyDefaults()
	cfg.applyEnvOverrides()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = "./web/static"
	}
	if c.Server.RateLimitRPS == 0 {
		c.Server.RateLimitRPS = 100
	}
	if c.Server.RateLimitBurst == 0 {
		c.Server.RateLimitBurst = 200
	}
	if c.History.Capacity == 0 {
		c.History.Capacity = 1000
	}
	if c.History.DefaultLimit == 0 {
		c.History.DefaultLimit = 100
	}
	if c.Stream.IntervalMS == 0 {
		c.Stream.IntervalMS = 1000
	}
	if c.Auth.TokenTTLHours == 0 {
		c.Auth.TokenTTLHours = 90 * 24
	}
	if c.Ingest.Subject == "" {
		c.Ingest.Subject = "pitwall.metrics.v1"
	}
}

// applyEnvOverrides lets the launcher script override the listen port
// without touching the config file. Invalid values are ignored with a
// warning so a typo cannot take the dashboard down.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("DASHBOARD_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port < 1 || port > 65535 {
			log.Printf("[config] ignoring invalid DASHBOARD_PORT=%q", v)
			return
		}
		c.Server.Port = port
	}
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server port %d out of range", c.Server.Port)
	}
	if c.History.Capacity < 0 {
		return fmt.Errorf("history capacity must not be negative")
	}
	if c.History.DefaultLimit < 1 {
		return fmt.Errorf("history default_limit must be positive")
	}
	if c.Stream.IntervalMS < 1 {
		return fmt.Errorf("stream interval_ms must be positive")
	}
	if c.Server.RateLimitRPS < 1 || c.Server.RateLimitBurst < 1 {
		return fmt.Errorf("rate limit settings must be positive")
	}
	return nil
}

// StreamInterval returns the broadcast period as a duration.
func (c *Config) StreamInterval() time.Duration {
	return time.Duration(c.Stream.IntervalMS) * time.Millisecond
}

// TokenTTL returns the configured token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}
