// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

package latency

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func ptr[T any](v T) *T { return &v }

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestRecorder_Append(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tmp", "nested", "preview_bench.log")
	r := NewRecorder(path)

	err := r.Append(Metric{
		Profile:        " 1920x1080_auto ",
		DelayMs:        182.456,
		MemoryMB:       ptr(256.0),
		Proxy:          ptr(true),
		Scale:          ptr(0.5),
		Reason:         " historical_delay ",
		TargetDelayMs:  ptr(150.0),
		AverageDelayMs: ptr(181.0),
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	want := []string{
		"PREVIEW_DELAY,1920x1080_auto,182.46",
		"MEM_USAGE,1920x1080_auto,256.00",
		"PROXY_SCALE,1920x1080_auto,0.50",
		"PROXY_ENABLED,1920x1080_auto,1",
		"PROXY_REASON,1920x1080_auto,historical_delay",
		"DELAY_TARGET,1920x1080_auto,150.00",
		"DELAY_SNAPSHOT,1920x1080_auto,181.00",
	}
	got := readLines(t, path)
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Errorf("log rows:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}

	// The history reader picks up the new sample.
	avg, ok := NewHistory(path).Average(1920, 1080)
	if !ok || math.Abs(avg-182.46) > 1e-9 {
		t.Errorf("Average() = %v, %v; want 182.46", avg, ok)
	}
}

func TestRecorder_OptionalRowsOmitted(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bench.log")
	r := NewRecorder(path)

	if err := r.Append(Metric{Profile: "1280x720", DelayMs: 90, Proxy: ptr(false), Scale: ptr(math.NaN())}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	lines := readLines(t, path)
	if len(lines) != 3 {
		t.Fatalf("expected 3 rows, got %v", lines)
	}
	if lines[0] != "PREVIEW_DELAY,1280x720,90.00" {
		t.Errorf("first row = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "MEM_USAGE,1280x720,") {
		t.Errorf("second row = %q, want MEM_USAGE", lines[1])
	}
	if lines[2] != "PROXY_ENABLED,1280x720,0" {
		t.Errorf("third row = %q", lines[2])
	}
}

func TestRecorder_Validation(t *testing.T) {
	t.Parallel()

	r := NewRecorder(filepath.Join(t.TempDir(), "bench.log"))

	if err := r.Append(Metric{Profile: "   ", DelayMs: 10}); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("expected ErrInvalidProfile, got %v", err)
	}
	if err := r.Append(Metric{Profile: "1920x1080", DelayMs: math.Inf(1)}); !errors.Is(err, ErrInvalidDelay) {
		t.Errorf("expected ErrInvalidDelay, got %v", err)
	}
	if _, err := os.Stat(r.Path()); !os.IsNotExist(err) {
		t.Error("rejected metrics must not create the log")
	}
}

func TestRecorder_ReasonCannotInjectRows(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bench.log")
	r := NewRecorder(path)
	if err := r.Append(Metric{Profile: "1920x1080", DelayMs: 1, Reason: "auto\nPREVIEW_DELAY,1920x1080,99999"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	avg, ok := NewHistory(path).Average(1920, 1080)
	if !ok || avg != 1 {
		t.Errorf("Average() = %v, %v; want 1, true", avg, ok)
	}
}

func TestRecorder_Concurrent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bench.log")
	r := NewRecorder(path)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := r.Append(Metric{Profile: "1920x1080", DelayMs: 100, MemoryMB: ptr(1.0)}); err != nil {
				t.Errorf("Append: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := len(readLines(t, path)); got != 40 {
		t.Errorf("expected 40 rows, got %d", got)
	}
}
