// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package latency

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/tomtom215/nodevision/internal/metrics"
)

// Recorder validation errors.
var (
	ErrInvalidProfile = errors.New("latency: profile must be a non-empty string")
	ErrInvalidDelay   = errors.New("latency: delay must be a finite number")
)

// Metric is one client-side preview measurement.
type Metric struct {
	Profile string
	DelayMs float64

	// Optional fields; nil (or empty Reason) omits the row.
	CPUPercent     *float64
	MemoryMB       *float64
	Proxy          *bool
	Scale          *float64
	Reason         string
	TargetDelayMs  *float64
	AverageDelayMs *float64
}

// Recorder appends measurements to the latency log. Safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	path string
}

// NewRecorder appends to the log at path.
func NewRecorder(path string) *Recorder {
	return &Recorder{path: path}
}

// Append writes the rows for m in one write. The parent directory is created
// when missing. MEM_USAGE falls back to the process heap size.
func (r *Recorder) Append(m Metric) error {
	profile := sanitizeField(m.Profile)
	if profile == "" {
		return ErrInvalidProfile
	}
	if !finite(m.DelayMs) {
		return ErrInvalidDelay
	}

	var b strings.Builder
	writeRow(&b, TagPreviewDelay, profile, formatValue(m.DelayMs))
	if m.CPUPercent != nil && finite(*m.CPUPercent) {
		writeRow(&b, TagCPUUsage, profile, formatValue(math.Min(100, math.Max(0, *m.CPUPercent))))
	}
	writeRow(&b, TagMemUsage, profile, formatValue(memoryMB(m.MemoryMB)))
	if m.Scale != nil && finite(*m.Scale) {
		writeRow(&b, TagProxyScale, profile, formatValue(*m.Scale))
	}
	if m.Proxy != nil {
		enabled := "0"
		if *m.Proxy {
			enabled = "1"
		}
		writeRow(&b, TagProxyEnabled, profile, enabled)
	}
	if reason := sanitizeField(m.Reason); reason != "" {
		writeRow(&b, TagProxyReason, profile, reason)
	}
	if m.TargetDelayMs != nil && finite(*m.TargetDelayMs) {
		writeRow(&b, TagDelayTarget, profile, formatValue(*m.TargetDelayMs))
	}
	if m.AverageDelayMs != nil && finite(*m.AverageDelayMs) {
		writeRow(&b, TagDelaySnapshot, profile, formatValue(*m.AverageDelayMs))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create latency log directory: %w", err)
		}
	}
	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return fmt.Errorf("open latency log: %w", err)
	}
	if _, err := f.WriteString(b.String()); err != nil {
		_ = f.Close()
		return fmt.Errorf("append latency log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close latency log: %w", err)
	}

	metrics.RecordLatencySample()
	return nil
}

// Path returns the log file location.
func (r *Recorder) Path() string {
	return r.path
}

func writeRow(b *strings.Builder, tag, profile, value string) {
	b.WriteString(tag)
	b.WriteByte(',')
	b.WriteString(profile)
	b.WriteByte(',')
	b.WriteString(value)
	b.WriteByte('\n')
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// sanitizeField trims s and removes characters that would break a row.
func sanitizeField(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		switch r {
		case ',', '\n', '\r':
			return '_'
		}
		return r
	}, s)
}

func memoryMB(reported *float64) float64 {
	if reported != nil && finite(*reported) {
		return *reported
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return float64(ms.Sys) / (1024 * 1024)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
