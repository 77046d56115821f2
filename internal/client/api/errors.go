package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/apexfit/apexfit-go/internal/common"
)

// errorBody covers the error envelope shapes the backend is known to emit:
// {"message": "..."}, {"error": "..."} or {"error": {"message": "..."}}.
type errorBody struct {
	Message string          `json:"message"`
	Error   json.RawMessage `json:"error"`
}

// serverMessage extracts the best available human-readable message from an
// error response body, or falls back to the HTTP status text.
func serverMessage(status int, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		if eb.Message != "" {
			return eb.Message
		}
		if len(eb.Error) > 0 {
			var s string
			if json.Unmarshal(eb.Error, &s) == nil && s != "" {
				return s
			}
			var nested struct {
				Message string `json:"message"`
			}
			if json.Unmarshal(eb.Error, &nested) == nil && nested.Message != "" {
				return nested.Message
			}
		}
	}
	return fmt.Sprintf("request failed: %s", http.StatusText(status))
}

// mapStatusError converts a non-2xx response into a sentinel-wrapped error
// carrying the server's message.
func mapStatusError(status int, body []byte) error {
	msg := serverMessage(status, body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", common.ErrUnauthorized, msg)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", common.ErrValidation, msg)
	case status >= http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", common.ErrUnavailable, msg)
	default:
		return fmt.Errorf("unexpected status %d: %s", status, msg)
	}
}
