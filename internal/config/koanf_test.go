// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Server.Port != 8000 {
		t.Errorf("Server.Port = %d, want 8000", cfg.Server.Port)
	}
	if cfg.Preview.BenchLogPath != "tmp/preview_bench.log" {
		t.Errorf("Preview.BenchLogPath = %q, want tmp/preview_bench.log", cfg.Preview.BenchLogPath)
	}
	if cfg.Preview.DefaultProxyScale != 0.5 {
		t.Errorf("Preview.DefaultProxyScale = %v, want 0.5", cfg.Preview.DefaultProxyScale)
	}
	if cfg.Preview.PlaceholderWidth != 1920 || cfg.Preview.PlaceholderHeight != 1080 {
		t.Errorf("placeholder = %dx%d, want 1920x1080", cfg.Preview.PlaceholderWidth, cfg.Preview.PlaceholderHeight)
	}
	if cfg.Preview.MaxFrameSize != 16384 {
		t.Errorf("Preview.MaxFrameSize = %d, want 16384", cfg.Preview.MaxFrameSize)
	}
	if cfg.Storage.DefaultSlot != "latest" {
		t.Errorf("Storage.DefaultSlot = %q, want latest", cfg.Storage.DefaultSlot)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := loadFrom("")
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if cfg.Server.Timeout != 30*time.Second {
		t.Errorf("Server.Timeout = %v, want 30s", cfg.Server.Timeout)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
}

func TestLoadFrom_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: 9100
preview:
  bench_log_path: /var/log/nodevision/bench.log
  default_proxy_scale: 0.25
storage:
  dir: /data/projects
logging:
  level: debug
  format: console
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Preview.BenchLogPath != "/var/log/nodevision/bench.log" {
		t.Errorf("Preview.BenchLogPath = %q", cfg.Preview.BenchLogPath)
	}
	if cfg.Preview.DefaultProxyScale != 0.25 {
		t.Errorf("Preview.DefaultProxyScale = %v, want 0.25", cfg.Preview.DefaultProxyScale)
	}
	if cfg.Storage.Dir != "/data/projects" {
		t.Errorf("Storage.Dir = %q", cfg.Storage.Dir)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "console" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
	// Untouched sections keep their defaults.
	if cfg.Storage.DefaultSlot != "latest" {
		t.Errorf("Storage.DefaultSlot = %q, want latest", cfg.Storage.DefaultSlot)
	}
}

func TestLoadFrom_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 9100\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("HTTP_PORT", "9200")
	t.Setenv("BENCH_LOG", "/tmp/bench.log")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, app://nodevision")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := loadFrom(path)
	if err != nil {
		t.Fatalf("loadFrom() error = %v", err)
	}
	if cfg.Server.Port != 9200 {
		t.Errorf("Server.Port = %d, want 9200", cfg.Server.Port)
	}
	if cfg.Preview.BenchLogPath != "/tmp/bench.log" {
		t.Errorf("Preview.BenchLogPath = %q", cfg.Preview.BenchLogPath)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "app://nodevision" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Security.RateLimitWindow != 30*time.Second {
		t.Errorf("Security.RateLimitWindow = %v, want 30s", cfg.Security.RateLimitWindow)
	}
}

func TestLoadFrom_InvalidValue(t *testing.T) {
	t.Setenv("PREVIEW_PROXY_SCALE", "2.5")

	_, err := loadFrom("")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"HTTP_PORT":    "server.port",
		"BENCH_LOG":    "preview.bench_log_path",
		"PROJECT_ROOT": "preview.project_root",
		"STORAGE_DIR":  "storage.dir",
		"LOG_LEVEL":    "logging.level",
		"PATH":         "",
		"HOME":         "",
	}
	for in, want := range tests {
		if got := envTransformFunc(in); got != want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestServerAddr(t *testing.T) {
	t.Parallel()

	s := ServerConfig{Host: "127.0.0.1", Port: 8000}
	if got := s.Addr(); got != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q", got)
	}
}
