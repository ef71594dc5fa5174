package jsonx

import "encoding/json"

// ParseOrDefault decodes a JSON document and substitutes a fallback on any
// failure, including empty input. Settings rows that hold serialized lists
// (special dates, portfolio) rely on this: a corrupt cell degrades to the
// default instead of failing the whole request.
func ParseOrDefault[T any](raw string, fallback T) T {
	if raw == "" {
		return fallback
	}
	var out T
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return fallback
	}
	return out
}

// MustString serializes a value, returning "null" rather than an error. The
// inputs here are plain settings structs that cannot fail to marshal.
func MustString(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(data)
}
