// NodeVision - Node Graph Preview Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/nodevision

// Package params converts loosely typed JSON values from node parameters and
// project metadata into Go values. Every converter reports whether the value
// was usable so callers can substitute a default.
package params

import (
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Float accepts JSON numbers, numeric strings and booleans (true is 1).
// NaN and infinities are rejected.
func Float(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case int32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case bool:
		if x {
			f = 1
		}
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Int truncates a Float value toward zero.
func Int(v any) (int, bool) {
	f, ok := Float(v)
	if !ok || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

// Bool accepts only real JSON booleans.
func Bool(v any) (value, ok bool) {
	b, ok := v.(bool)
	return b, ok
}

// String accepts only JSON strings.
func String(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// Map accepts only JSON objects.
func Map(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
