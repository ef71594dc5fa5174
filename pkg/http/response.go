package http

import (
	"encoding/json"
	"net/http"

	apperrors "nailbook/pkg/errors"
)

// Envelope statuses shared by every action response.
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusFound    = "found"
	StatusNotFound = "not_found"
)

// Envelope is the uniform action response: a status plus a flat payload.
type Envelope map[string]any

// Success builds a success envelope merged with the handler payload.
func Success(payload map[string]any) Envelope {
	return build(StatusSuccess, payload)
}

// Found and NotFound are the lookup-endpoint variants of Success.
func Found(payload map[string]any) Envelope {
	return build(StatusFound, payload)
}

func NotFound() Envelope {
	return Envelope{"status": StatusNotFound}
}

func build(status string, payload map[string]any) Envelope {
	env := Envelope{"status": status}
	for k, v := range payload {
		if k == "status" {
			continue
		}
		env[k] = v
	}
	return env
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(data)
}

// WriteEnvelope writes a prepared envelope with HTTP 200; envelope status
// carries the outcome, matching the dispatch wire contract.
func WriteEnvelope(w http.ResponseWriter, env Envelope) error {
	code := http.StatusOK
	if env["status"] == StatusNotFound {
		code = http.StatusNotFound
	}
	return WriteJSON(w, code, env)
}

// WriteError converts any error into an error envelope. The HTTP status
// comes from the AppError taxonomy; unknown errors map to 500.
func WriteError(w http.ResponseWriter, err error) error {
	appErr := apperrors.AsAppError(err)

	code := appErr.HTTPStatus
	if code == 0 {
		code = http.StatusInternalServerError
	}

	env := Envelope{
		"status":  StatusError,
		"message": appErr.Message,
	}
	if appErr.Details != nil {
		env["details"] = appErr.Details
	}
	return WriteJSON(w, code, env)
}
