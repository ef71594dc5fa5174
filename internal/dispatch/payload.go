package dispatch

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"nailbook/pkg/jsonx"
)

// Payload is the flat key-value view of an action request. Query parameters
// and JSON body fields are folded into one map; nested objects survive as
// their JSON text so handlers can decode them with the settings codec.
type Payload map[string]string

func (p Payload) Get(key string) string {
	return strings.TrimSpace(p[key])
}

func (p Payload) Int(key string, fallback int) int {
	v, err := strconv.Atoi(p.Get(key))
	if err != nil {
		return fallback
	}
	return v
}

func (p Payload) Bool(key string) bool {
	switch strings.ToLower(p.Get(key)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}

// parseRequest extracts the action name and payload. Query parameters are
// read first; for POSTs a JSON body is merged on top, so body fields win.
func parseRequest(r *http.Request) (string, Payload, error) {
	payload := Payload{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}

	if r.Method == http.MethodPost && r.Body != nil {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return "", nil, err
		}
		if len(body) > 0 {
			var fields map[string]any
			if err := json.Unmarshal(body, &fields); err != nil {
				return "", nil, err
			}
			for key, value := range fields {
				payload[key] = valueToString(value)
			}
		}
	}

	action := payload.Get("action")
	delete(payload, "action")
	return action, payload, nil
}

// decodeSettingsArg flattens a nested settings object into string values the
// settings table can hold.
func decodeSettingsArg(raw string) map[string]string {
	parsed := jsonx.ParseOrDefault(raw, map[string]any{})
	out := make(map[string]string, len(parsed))
	for k, v := range parsed {
		out[k] = valueToString(v)
	}
	return out
}

func valueToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		// Objects and arrays keep their JSON form.
		raw, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
