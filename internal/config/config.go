// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

// Package config loads the backend configuration.
//
// Values are layered with koanf: built-in defaults, then an optional YAML
// file, then environment variables (highest priority). See LoadWithKoanf.
package config

import (
	"net"
	"strconv"
	"time"
)

// Config is the complete backend configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Preview  PreviewConfig  `koanf:"preview"`
	Storage  StorageConfig  `koanf:"storage"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// PreviewConfig is passed explicitly into the render engines.
type PreviewConfig struct {
	// ProjectRoot is the last directory tried when resolving relative media paths.
	ProjectRoot string `koanf:"project_root"`

	// BenchLogPath is the latency log read by the proxy engine and appended
	// by the metrics endpoint.
	BenchLogPath string `koanf:"bench_log_path"`

	// PlaceholderWidth and PlaceholderHeight size placeholders when neither
	// the node nor the project declares a resolution.
	PlaceholderWidth  int `koanf:"placeholder_width"`
	PlaceholderHeight int `koanf:"placeholder_height"`

	// DefaultProxyScale applies when project metadata carries no usable scale.
	DefaultProxyScale float64 `koanf:"default_proxy_scale"`

	// MaxFrameSize caps each side of placeholders and Resize output.
	// It cannot exceed models.MaxFrameSize.
	MaxFrameSize int `koanf:"max_frame_size"`
}

// StorageConfig holds project slot persistence settings.
type StorageConfig struct {
	Dir         string `koanf:"dir"`
	DefaultSlot string `koanf:"default_slot"`
}

// SecurityConfig holds CORS and rate limiting settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// Addr returns the host:port the HTTP server listens on.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// Load is an alias for LoadWithKoanf.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
