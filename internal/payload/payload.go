// Package payload provides tolerant accessors over decoded ESPN JSON.
//
// Upstream responses are decoded into map[string]interface{} and their shapes
// drift between endpoints, so every accessor returns a zero value instead of
// failing when a key is missing or has an unexpected type.
package payload

import (
	"math"
	"strconv"
	"strings"
)

// String returns m[key] when it is a string
func String(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if str, ok := v.(string); ok {
			return str
		}
	}
	return ""
}

// FirstString returns the first non-blank value
func FirstString(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// Int returns m[key] coerced to an int (0 when absent or unparseable)
func Int(m map[string]interface{}, key string) int {
	if v, ok := m[key]; ok {
		return ParseInt(v)
	}
	return 0
}

// Bool reports m[key] and whether it was a boolean at all
func Bool(m map[string]interface{}, key string) (bool, bool) {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b, true
		}
	}
	return false, false
}

// Map returns m[key] as an object, or an empty object
func Map(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key]; ok {
		if mapVal, ok := v.(map[string]interface{}); ok {
			return mapVal
		}
	}
	return map[string]interface{}{}
}

// Array returns m[key] as an array, or an empty array
func Array(m map[string]interface{}, key string) []interface{} {
	if v, ok := m[key]; ok {
		if arrVal, ok := v.([]interface{}); ok {
			return arrVal
		}
	}
	return []interface{}{}
}

// Maps returns the object elements of m[key], skipping anything else
func Maps(m map[string]interface{}, key string) []map[string]interface{} {
	arr := Array(m, key)
	out := make([]map[string]interface{}, 0, len(arr))
	for _, item := range arr {
		if obj, ok := item.(map[string]interface{}); ok {
			out = append(out, obj)
		}
	}
	return out
}

// First returns the first object element of m[key]
func First(m map[string]interface{}, key string) map[string]interface{} {
	if items := Maps(m, key); len(items) > 0 {
		return items[0]
	}
	return map[string]interface{}{}
}

// ID reads an identifier that ESPN sends either as a string or as a number
func ID(m map[string]interface{}, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	}
	return ""
}

// ParseInt coerces a JSON scalar to an int
func ParseInt(v interface{}) int {
	switch val := v.(type) {
	case float64:
		return int(val)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(val))
		return i
	case int:
		return val
	default:
		return 0
	}
}

// ParseNumber coerces a JSON scalar to a float. ok is false for nil, blank
// strings and anything that is not a finite number.
func ParseNumber(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case int:
		return float64(val), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
