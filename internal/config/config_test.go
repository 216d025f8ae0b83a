package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}

	if cfg.Server.Host != "0.0.0.0" || cfg.Server.Port != 8080 {
		t.Errorf("unexpected listen defaults: %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if cfg.Server.StaticDir != "./web/static" {
		t.Errorf("unexpected static dir: %q", cfg.Server.StaticDir)
	}
	if cfg.History.Capacity != 1000 || cfg.History.DefaultLimit != 100 {
		t.Errorf("unexpected history defaults: %d/%d", cfg.History.Capacity, cfg.History.DefaultLimit)
	}
	if cfg.StreamInterval() != time.Second {
		t.Errorf("unexpected stream interval: %v", cfg.StreamInterval())
	}
	if cfg.Auth.Enabled {
		t.Error("auth should be disabled by default")
	}
	if cfg.TokenTTL() != 90*24*time.Hour {
		t.Errorf("unexpected token ttl: %v", cfg.TokenTTL())
	}
	if cfg.Ingest.URL != "" {
		t.Errorf("ingest should be disabled by default, got url %q", cfg.Ingest.URL)
	}
	if cfg.Ingest.Subject != "pitwall.metrics.v1" {
		t.Errorf("unexpected ingest subject: %q", cfg.Ingest.Subject)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
server:
  host: 127.0.0.1
  port: 9400
  allowed_origins:
    - https://pit.example.com
history:
  capacity: 250
stream:
  interval_ms: 500
auth:
  enabled: true
  token_ttl_hours: 2
ingest:
  url: nats://telemetry:4222
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9400 {
		t.Errorf("unexpected listen config: %s:%d", cfg.Server.Host, cfg.Server.Port)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://pit.example.com" {
		t.Errorf("unexpected origins: %v", cfg.Server.AllowedOrigins)
	}
	if cfg.History.Capacity != 250 {
		t.Errorf("unexpected capacity: %d", cfg.History.Capacity)
	}
	// Unset keys still receive defaults.
	if cfg.History.DefaultLimit != 100 {
		t.Errorf("unexpected default limit: %d", cfg.History.DefaultLimit)
	}
	if cfg.StreamInterval() != 500*time.Millisecond {
		t.Errorf("unexpected interval: %v", cfg.StreamInterval())
	}
	if !cfg.Auth.Enabled || cfg.TokenTTL() != 2*time.Hour {
		t.Errorf("unexpected auth config: %+v", cfg.Auth)
	}
	if cfg.Ingest.URL != "nats://telemetry:4222" || cfg.Ingest.Subject != "pitwall.metrics.v1" {
		t.Errorf("unexpected ingest config: %+v", cfg.Ingest)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestPortEnvOverride(t *testing.T) {
	t.Setenv("DASHBOARD_PORT", "9999")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Fatalf("expected env override port 9999, got %d", cfg.Server.Port)
	}
}

func TestPortEnvOverrideInvalid(t *testing.T) {
	for _, v := range []string{"banana", "-1", "70000"} {
		t.Setenv("DASHBOARD_PORT", v)

		cfg, err := Load("")
		if err != nil {
			t.Fatalf("DASHBOARD_PORT=%q: %v", v, err)
		}
		if cfg.Server.Port != 8080 {
			t.Fatalf("DASHBOARD_PORT=%q: expected default port kept, got %d", v, cfg.Server.Port)
		}
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"port out of range", "server:\n  port: 99999\n"},
		{"negative capacity", "history:\n  capacity: -1\n"},
		{"negative default limit", "history:\n  default_limit: -5\n"},
		{"negative interval", "stream:\n  interval_ms: -100\n"},
		{"negative rate limit", "server:\n  rate_limit_rps: -2\n"},
	}

	for _, tc := range cases {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
			t.Fatalf("%s: write config: %v", tc.name, err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected a validation error", tc.name)
		}
	}
}
