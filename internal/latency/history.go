// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

// Package latency reads and appends the preview latency log.
//
// The log is a plain text file of comma separated rows:
//
//	PREVIEW_DELAY,1920x1080,182.40
//	PREVIEW_DELAY,3840x2160_auto,410.00
//	PROXY_SCALE,3840x2160_auto,0.50
//
// The first field is a tag, the second a profile of the form
// "<width>x<height>" optionally followed by "_<variant>", the third a value.
// Only PREVIEW_DELAY rows feed the history average; other tags are recorded
// for offline benchmarking.
package latency

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/tomtom215/nodevision/internal/logging"
	"github.com/tomtom215/nodevision/internal/metrics"
)

// Row tags written to the log.
const (
	TagPreviewDelay  = "PREVIEW_DELAY"
	TagCPUUsage      = "CPU_USAGE"
	TagMemUsage      = "MEM_USAGE"
	TagProxyScale    = "PROXY_SCALE"
	TagProxyEnabled  = "PROXY_ENABLED"
	TagProxyReason   = "PROXY_REASON"
	TagDelayTarget   = "DELAY_TARGET"
	TagDelaySnapshot = "DELAY_SNAPSHOT"
)

// Sample is one parsed PREVIEW_DELAY row.
type Sample struct {
	// Profile is the base "<width>x<height>" with any variant suffix removed.
	Profile string
	DelayMs float64
}

// Profile formats a resolution the way the log does.
func Profile(width, height int) string {
	return strconv.Itoa(width) + "x" + strconv.Itoa(height)
}

// ParseLine parses a single log row. ok is false for blank lines, rows with
// other tags, rows without exactly three fields and non-finite delays.
func ParseLine(line string) (s Sample, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Sample{}, false
	}
	parts := strings.Split(line, ",")
	if len(parts) != 3 || parts[0] != TagPreviewDelay {
		return Sample{}, false
	}
	delay, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
	if err != nil || math.IsNaN(delay) || math.IsInf(delay, 0) {
		return Sample{}, false
	}
	profile, _, _ := strings.Cut(parts[1], "_")
	return Sample{Profile: profile, DelayMs: delay}, true
}

// History averages PREVIEW_DELAY samples from the log file.
type History struct {
	path string
}

// NewHistory reads the log at path on every call to Average.
func NewHistory(path string) *History {
	return &History{path: path}
}

// Path returns the log file location.
func (h *History) Path() string {
	return h.path
}

// Average returns the mean delay for the exact width x height profile.
// ok is false when the log is missing or holds no matching rows. Rows read
// before an I/O error still count.
func (h *History) Average(width, height int) (avg float64, ok bool) {
	samples, err := h.samples(Profile(width, height))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		logging.Warn().Err(err).Str("path", h.path).Int("samples", len(samples)).
			Msg("Latency log partially unreadable")
	}
	if len(samples) == 0 {
		return 0, false
	}

	var sum float64
	for _, d := range samples {
		sum += d
	}
	return sum / float64(len(samples)), true
}

// maxLineBytes bounds a single row. Longer rows are skipped whole.
const maxLineBytes = 64 << 10

func (h *History) samples(profile string) ([]float64, error) {
	f, err := os.Open(h.path)
	if err != nil {
		return nil, fmt.Errorf("open latency log: %w", err)
	}
	defer func() { _ = f.Close() }()

	var (
		delays  []float64
		skipped int
	)
	defer func() { metrics.RecordSkippedLatencyRows(skipped) }()

	br := bufio.NewReaderSize(f, maxLineBytes)
	for {
		line, oversized, err := readLine(br)
		switch {
		case oversized:
			if isMalformedDelayRow(line) {
				skipped++
			}
		case line != "":
			if s, ok := ParseLine(line); ok {
				if s.Profile == profile {
					delays = append(delays, s.DelayMs)
				}
			} else if isMalformedDelayRow(line) {
				skipped++
			}
		}

		if errors.Is(err, io.EOF) {
			return delays, nil
		}
		if err != nil {
			return delays, fmt.Errorf("read latency log: %w", err)
		}
	}
}

// readLine returns the next row including its terminator. A row that does
// not fit the reader's buffer is drained up to its newline and reported as
// oversized; line then holds only its first buffer-full of bytes.
func readLine(br *bufio.Reader) (line string, oversized bool, err error) {
	chunk, err := br.ReadSlice('\n')
	line = string(chunk)
	if !errors.Is(err, bufio.ErrBufferFull) {
		return line, false, err
	}
	for errors.Is(err, bufio.ErrBufferFull) {
		_, err = br.ReadSlice('\n')
	}
	return line, true, err
}

// isMalformedDelayRow reports PREVIEW_DELAY rows that ParseLine rejected.
func isMalformedDelayRow(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), TagPreviewDelay+",")
}
