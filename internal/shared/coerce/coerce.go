// Package coerce converts loosely-typed JSON payload values into Go scalars.
// Trading clients report over HTTP with inconsistent typing (numbers arrive as
// strings, flags as floats), so every conversion here falls back to a zero
// value instead of failing.
package coerce

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Float converts v to a float64. Supported inputs are JSON numbers (float64),
// Go integers, json.Number and numeric strings. The second return value
// reports whether the conversion succeeded.
func Float(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	}
	return 0, false
}

// Int converts v to an int64. Float inputs are truncated, matching the
// behavior of parseInt on the reporting side.
func Int(v any) (int64, bool) {
	switch x := v.(type) {
	case float64:
		return int64(x), true
	case float32:
		return int64(x), true
	case int:
		return int64(x), true
	case int64:
		return x, true
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, true
		}
		if f, err := x.Float64(); err == nil {
			return int64(f), true
		}
		return 0, false
	case string:
		s := strings.TrimSpace(x)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, true
		}
		// "12.0" style input: accept via float parse
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int64(f), true
		}
	}
	return 0, false
}

// String converts v to a string. Non-string scalars are formatted; nested
// structures report failure.
func String(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case json.Number:
		return x.String(), true
	}
	return "", false
}

// FloatOr converts v or returns the fallback.
func FloatOr(v any, fallback float64) float64 {
	if f, ok := Float(v); ok {
		return f
	}
	return fallback
}

// IntOr converts v or returns the fallback.
func IntOr(v any, fallback int64) int64 {
	if i, ok := Int(v); ok {
		return i
	}
	return fallback
}
