// internal/api/errors.go
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Error is an API failure classified by HTTP status code.
// A zero status code means the request never reached the service.
type Error struct {
	StatusCode int
	Message    string
	Underlying error
}

// Error implements the error interface
func (e *Error) Error() string {
	switch {
	case e.Underlying != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	case e.StatusCode > 0:
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
	default:
		return e.Message
	}
}

// Unwrap returns the underlying transport error
func (e *Error) Unwrap() error {
	return e.Underlying
}

// GetStatusCode exposes the HTTP status for retry/rate-limit classification
func (e *Error) GetStatusCode() int {
	return e.StatusCode
}

// IsAuth reports whether the error is an authentication rejection
func (e *Error) IsAuth() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsRateLimit reports whether the error is a rate-limit rejection
func (e *Error) IsRateLimit() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// parseErrorBody extracts a human-readable message from an error response.
// The service uses both {"error": "..."} and {"detail": "..."} shapes.
func parseErrorBody(body []byte) string {
	var payload struct {
		Error  string          `json:"error"`
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Error != "" {
			return payload.Error
		}
		if len(payload.Detail) > 0 {
			var s string
			if json.Unmarshal(payload.Detail, &s) == nil {
				return s
			}
			return string(payload.Detail)
		}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return "unknown error"
}
