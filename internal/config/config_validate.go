// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tomtom215/nodevision/internal/models"
)

// minFrameSize matches the smallest placeholder the resolver draws.
const minFrameSize = 64

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validatePreview(); err != nil {
		return err
	}
	if err := c.validateStorage(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: HTTP_PORT must be between 1 and 65535", ErrInvalidConfig)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("%w: HTTP_TIMEOUT must be positive", ErrInvalidConfig)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: HTTP_SHUTDOWN_TIMEOUT must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) validatePreview() error {
	if strings.TrimSpace(c.Preview.BenchLogPath) == "" {
		return fmt.Errorf("%w: BENCH_LOG is required", ErrInvalidConfig)
	}
	if c.Preview.PlaceholderWidth < 1 || c.Preview.PlaceholderHeight < 1 {
		return fmt.Errorf("%w: placeholder size must be at least 1x1, got %dx%d",
			ErrInvalidConfig, c.Preview.PlaceholderWidth, c.Preview.PlaceholderHeight)
	}
	if m := c.Preview.MaxFrameSize; m < minFrameSize || m > models.MaxFrameSize {
		return fmt.Errorf("%w: MAX_FRAME_SIZE must be within [%d, %d], got %d",
			ErrInvalidConfig, minFrameSize, models.MaxFrameSize, m)
	}
	if c.Preview.PlaceholderWidth > c.Preview.MaxFrameSize || c.Preview.PlaceholderHeight > c.Preview.MaxFrameSize {
		return fmt.Errorf("%w: placeholder size %dx%d exceeds MAX_FRAME_SIZE %d", ErrInvalidConfig,
			c.Preview.PlaceholderWidth, c.Preview.PlaceholderHeight, c.Preview.MaxFrameSize)
	}
	s := c.Preview.DefaultProxyScale
	if math.IsNaN(s) || s < 0.1 || s > 1.0 {
		return fmt.Errorf("%w: PREVIEW_PROXY_SCALE must be within [0.1, 1.0], got %v", ErrInvalidConfig, s)
	}
	return nil
}

func (c *Config) validateStorage() error {
	if strings.TrimSpace(c.Storage.Dir) == "" {
		return fmt.Errorf("%w: STORAGE_DIR is required", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Storage.DefaultSlot) == "" {
		return fmt.Errorf("%w: DEFAULT_SLOT is required", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("%w: RATE_LIMIT_REQS must be positive", ErrInvalidConfig)
	}
	if c.Security.RateLimitWindow <= 0 {
		return fmt.Errorf("%w: RATE_LIMIT_WINDOW must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("%w: LOG_LEVEL must be one of: trace, debug, info, warn, error", ErrInvalidConfig)
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("%w: LOG_FORMAT must be one of: json, console", ErrInvalidConfig)
	}
	return nil
}
