package api

import (
	"encoding/json"
	"fmt"
)

// unwrapEnvelope strips the `{ "data": T }` envelope when present and
// returns the raw payload otherwise.
func unwrapEnvelope(raw []byte) []byte {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		return env.Data
	}
	return raw
}

// decodeBody unwraps the response envelope and unmarshals the payload into
// v. A nil v discards the body.
func decodeBody(raw []byte, v any) error {
	if v == nil {
		return nil
	}
	if err := json.Unmarshal(unwrapEnvelope(raw), v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
