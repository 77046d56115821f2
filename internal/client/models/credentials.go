// Package models defines the client-side view of backend identities and
// the locally persisted credential pair.
package models

// Credentials is the access/refresh token pair issued by the backend.
// The two tokens are always stored and cleared together; a pair with
// only one of them present cannot complete a refresh exchange.
type Credentials struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Complete reports whether both tokens are present.
func (c Credentials) Complete() bool {
	return c.AccessToken != "" && c.RefreshToken != ""
}
