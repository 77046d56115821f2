package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenInfo is the read-only view of an access token's claims. The parse is
// unverified: signature checking is the server's job, this exists only for
// display (whoami, expiry countdown) and must never gate authorization.
type TokenInfo struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// ParseTokenInfo extracts claims from a JWT access token without verifying
// its signature.
func ParseTokenInfo(accessToken string) (*TokenInfo, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return nil, err
	}

	info := &TokenInfo{}
	if sub, err := claims.GetSubject(); err == nil {
		info.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		info.ExpiresAt = exp.Time
	}
	if role, ok := claims["role"].(string); ok {
		info.Role = role
	}
	return info, nil
}
