// Package api implements the HTTP client for the ApexFit backend
// (/api/v1). Authenticated calls transparently attach the stored bearer
// token and recover from access-token expiry with a single
// refresh-and-retry cycle.
package api

import (
	"context"

	"github.com/apexfit/apexfit-go/internal/client/models"
)

// AuthResult is the decoded body of the auth endpoints. Profile is absent
// while email verification is pending; Tokens are only issued once the
// account is verified.
type AuthResult struct {
	Account models.Account      `json:"account"`
	Profile *models.Profile     `json:"profile"`
	Tokens  *models.Credentials `json:"tokens"`
}

// Client is the backend surface consumed by the session layer.
type Client interface {
	// Unauthenticated endpoints.
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, payload models.RegistrationPayload) (*AuthResult, error)
	Logout(ctx context.Context, refreshToken string) error
	SendOTP(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, code string) error

	// Bearer-authenticated endpoints.
	Me(ctx context.Context) (*AuthResult, error)
	ChangePassword(ctx context.Context, current, updated string) error
}
