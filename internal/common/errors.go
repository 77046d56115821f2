// Package common defines shared constants and sentinel errors used across
// the ApexFit client packages. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Transport-level errors.
	ErrUnauthenticated = errors.New("not authenticated")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrUnavailable     = errors.New("server unavailable")

	// Validation errors raised before any network call.
	ErrValidation = errors.New("validation error")

	// Store-level errors.
	ErrIncompleteTokenPair = errors.New("access and refresh token must be set together")

	// Session-level errors.
	ErrNotLoggedIn = errors.New("not logged in")
)
