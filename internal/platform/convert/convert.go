// Package convert coerces loosely-typed upstream JSON values into Go scalars.
//
// Every helper is total: nil, empty strings and unparseable input resolve to
// the caller-supplied default instead of an error.
package convert

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Int returns v as an int64, or def when v is missing or malformed.
// String-encoded floats such as "3.0" are truncated toward zero.
func Int(v any, def int64) int64 {
	out, ok := parseInt(v)
	if !ok {
		return def
	}
	return out
}

// OptionalInt is Int with a nil default, for identity-like fields.
func OptionalInt(v any) *int64 {
	out, ok := parseInt(v)
	if !ok {
		return nil
	}
	return &out
}

// String returns v rendered as a string, or def when v is nil or empty.
func String(v any, def string) string {
	out, ok := parseString(v)
	if !ok {
		return def
	}
	return out
}

// OptionalString is String with a nil default.
func OptionalString(v any) *string {
	out, ok := parseString(v)
	if !ok {
		return nil
	}
	return &out
}

// OptionalFloat returns v as a float64 or nil when missing or malformed.
func OptionalFloat(v any) *float64 {
	out, ok := parseFloat(v)
	if !ok {
		return nil
	}
	return &out
}

// Bool reports whether v is a JSON true or a truthy string.
func Bool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && parsed
	default:
		return false
	}
}

func parseInt(v any) (int64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case int:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case float32:
		return floatToInt(float64(t))
	case float64:
		return floatToInt(t)
	case json.Number:
		return parseIntString(t.String())
	case string:
		return parseIntString(t)
	default:
		return 0, false
	}
}

func parseIntString(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if strings.ContainsAny(raw, ".eE") {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, false
		}
		return floatToInt(f)
	}
	out, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return out, true
}

func floatToInt(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

func parseFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case nil:
		return 0, false
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case string:
		raw := strings.TrimSpace(t)
		if raw == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func parseString(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case string:
		if t == "" {
			return "", false
		}
		return t, true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	case json.Number:
		return t.String(), t.String() != ""
	default:
		return "", false
	}
}
